package service

import (
	"context"
	"time"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/repository"

	"github.com/shopspring/decimal"
)

type ReporteService interface {
	Resumen(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenReporteResponse, error)
	VentasPorProducto(ctx context.Context, filter dto.ReporteFilter) (*dto.ProductosReporteResponse, error)
}

type reporteService struct {
	repo repository.ReporteRepository
}

func NewReporteService(repo repository.ReporteRepository) ReporteService {
	return &reporteService{repo: repo}
}

func validarRango(filter dto.ReporteFilter) error {
	desde, err := time.Parse("2006-01-02", filter.Desde)
	if err != nil {
		return apierror.Validation("desde debe tener formato YYYY-MM-DD")
	}
	hasta, err := time.Parse("2006-01-02", filter.Hasta)
	if err != nil {
		return apierror.Validation("hasta debe tener formato YYYY-MM-DD")
	}
	if hasta.Before(desde) {
		return apierror.Validation("hasta no puede ser anterior a desde")
	}
	return nil
}

func (s *reporteService) Resumen(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenReporteResponse, error) {
	if err := validarRango(filter); err != nil {
		return nil, err
	}
	ingresos, costos, cantidad, err := s.repo.ResumenVentas(ctx, filter.Desde, filter.Hasta, filter.SucursalID)
	if err != nil {
		return nil, err
	}
	egresos, err := s.repo.SumEgresos(ctx, filter.Desde, filter.Hasta, filter.SucursalID)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenReporteResponse{
		IngresosTotales: ingresos,
		CostosTotales:   costos,
		EgresosTotales:  egresos,
		UtilidadNeta:    ingresos.Sub(costos).Sub(egresos),
		CantidadVentas:  cantidad,
	}, nil
}

func (s *reporteService) VentasPorProducto(ctx context.Context, filter dto.ReporteFilter) (*dto.ProductosReporteResponse, error) {
	if err := validarRango(filter); err != nil {
		return nil, err
	}
	rows, err := s.repo.VentasPorProducto(ctx, filter.Desde, filter.Hasta, filter.SucursalID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Ingresos)
	}

	cien := decimal.NewFromInt(100)
	data := make([]dto.ProductoReporteItem, 0, len(rows))
	for _, r := range rows {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = r.Ingresos.Div(total).Mul(cien).Round(2)
		}
		data = append(data, dto.ProductoReporteItem{
			ProductoID:       r.ProductoID,
			Nombre:           r.Nombre,
			CantidadVendida:  r.Cantidad,
			Ingresos:         r.Ingresos,
			PorcentajeVentas: pct,
		})
	}
	return &dto.ProductosReporteResponse{Data: data, IngresosTotales: total}, nil
}
