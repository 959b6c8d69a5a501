package service

import (
	"context"
	"encoding/json"
	"time"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	consultaPreciosKeyPrefix = "precio:"
	consultaPreciosTTL       = 30 * time.Second
)

// ConsultaPreciosService answers the public price-check lookup (the scanner
// kiosk on the shop floor). Responses are cached briefly in redis; a short
// TTL keeps stock numbers honest without hammering the catalog on every scan.
type ConsultaPreciosService interface {
	PorCodigoBarras(ctx context.Context, barcode string) (*dto.ConsultaPreciosResponse, error)
}

type consultaPreciosService struct {
	repo  repository.ProductoRepository
	cache *redis.Client // nil disables caching
}

func NewConsultaPreciosService(repo repository.ProductoRepository, cache *redis.Client) ConsultaPreciosService {
	return &consultaPreciosService{repo: repo, cache: cache}
}

func (s *consultaPreciosService) PorCodigoBarras(ctx context.Context, barcode string) (*dto.ConsultaPreciosResponse, error) {
	if barcode == "" {
		return nil, apierror.Validation("codigo_barras es requerido")
	}

	key := consultaPreciosKeyPrefix + barcode
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached dto.ConsultaPreciosResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil || !p.Activo {
		return nil, apierror.NotFound("producto no encontrado")
	}
	resp := &dto.ConsultaPreciosResponse{
		Nombre:          p.Nombre,
		PrecioVenta:     p.PrecioVenta,
		StockDisponible: p.Stock,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, raw, consultaPreciosTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear la consulta de precios")
			}
		}
	}
	return resp, nil
}
