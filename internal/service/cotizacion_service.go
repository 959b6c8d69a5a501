package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/model"
	"nexopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Dispatcher abstracts the async job queue so the service does not depend on
// the worker package. A nil dispatcher disables enqueueing (unit tests).
type Dispatcher interface {
	EncolarCotizacionPDF(ctx context.Context, cotizacionID uuid.UUID, email *string) error
}

type CotizacionService interface {
	Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
	List(ctx context.Context) ([]dto.CotizacionResponse, error)
}

type cotizacionService struct {
	repo          repository.CotizacionRepository
	productoRepo  repository.ProductoRepository
	plantillaRepo repository.PlantillaRepository
	clienteRepo   repository.ClienteRepository
	dispatcher    Dispatcher
}

func NewCotizacionService(
	repo repository.CotizacionRepository,
	productoRepo repository.ProductoRepository,
	plantillaRepo repository.PlantillaRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher Dispatcher,
) CotizacionService {
	return &cotizacionService{
		repo:          repo,
		productoRepo:  productoRepo,
		plantillaRepo: plantillaRepo,
		clienteRepo:   clienteRepo,
		dispatcher:    dispatcher,
	}
}

// nextCodigo derives the successor of the latest issued code. The sequence
// starts at COT-0001 and widens naturally past COT-9999 (%04d is a minimum).
func nextCodigo(last string) string {
	n := 0
	if last != "" {
		raw := strings.TrimPrefix(last, "COT-")
		if v, err := strconv.Atoi(raw); err == nil {
			n = v
		}
	}
	return fmt.Sprintf("COT-%04d", n+1)
}

func (s *cotizacionService) Crear(ctx context.Context, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	plantillaID, err := uuid.Parse(req.PlantillaID)
	if err != nil {
		return nil, apierror.Validation("plantilla_id inválido")
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.Validation("cliente_id inválido")
	}
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, apierror.Validation("sucursal_id inválido")
	}

	var cotizacionID uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		plantilla, err := s.plantillaRepo.FindByIDTx(tx, plantillaID)
		if err != nil {
			return apierror.NotFound("plantilla no encontrada")
		}
		if _, err := s.clienteRepo.FindByIDTx(tx, clienteID); err != nil {
			return apierror.NotFound("cliente no encontrado")
		}

		lineas, total, err := s.resolverLineas(tx, req.Productos)
		if err != nil {
			return err
		}

		last, err := s.repo.LastCodigoTx(tx)
		if err != nil {
			return err
		}

		cot := model.Cotizacion{
			Codigo:           nextCodigo(last),
			FechaEmision:     time.Now(),
			FechaVencimiento: req.FechaVencimiento,
			ClienteID:        clienteID,
			SucursalID:       sucursalID,
			PlantillaID:      plantillaID,
			// Snapshot of the plantilla text: later template edits must not
			// rewrite history.
			Terminos:    plantilla.Terminos,
			MetodosPago: plantilla.MetodosPago,
			Notas:       plantilla.Notas,
			Total:       total,
			Estado:      "pendiente",
			Productos:   lineas,
		}
		if err := s.repo.CreateTx(tx, &cot); err != nil {
			if isUniqueViolation(err) {
				return apierror.Conflict("conflicto generando el código de cotización, reintente")
			}
			return err
		}
		cotizacionID = cot.ID
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EncolarCotizacionPDF(ctx, cotizacionID, req.ClienteEmail); err != nil {
			// The cotización is committed; the retry cron picks up missing PDFs.
			log.Error().Err(err).Str("cotizacion_id", cotizacionID.String()).
				Msg("no se pudo encolar la generación del PDF")
		}
	}

	cot, err := s.repo.FindByID(ctx, cotizacionID)
	if err != nil {
		return nil, err
	}
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) resolverLineas(tx *gorm.DB, productos []dto.LineaCotizacionRequest) ([]model.CotizacionProducto, decimal.Decimal, error) {
	lineas := make([]model.CotizacionProducto, 0, len(productos))
	total := decimal.Zero
	for _, l := range productos {
		pid, err := uuid.Parse(l.ProductoID)
		if err != nil {
			return nil, decimal.Zero, apierror.Validation("producto_id inválido: %s", l.ProductoID)
		}
		if l.Cantidad <= 0 {
			return nil, decimal.Zero, apierror.Validation("cantidad debe ser mayor a cero")
		}
		p, err := s.productoRepo.FindByIDTx(tx, pid)
		if err != nil {
			return nil, decimal.Zero, apierror.NotFound("producto %s no encontrado", pid)
		}
		lineaTotal := p.PrecioVenta.Mul(decimal.NewFromInt(int64(l.Cantidad)))
		total = total.Add(lineaTotal)
		lineas = append(lineas, model.CotizacionProducto{
			ProductoID:     p.ID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: p.PrecioVenta,
			Total:          lineaTotal,
		})
	}
	return lineas, total, nil
}

// Actualizar applies a partial update. A non-nil Productos slice replaces the
// full line set and recomputes the total; every other nil field keeps its
// stored value. Codigo and the plantilla snapshot are never touched.
func (s *cotizacionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCotizacionRequest) (*dto.CotizacionResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cot, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return apierror.NotFound("cotización no encontrada")
		}

		if req.ClienteID != nil {
			cid, err := uuid.Parse(*req.ClienteID)
			if err != nil {
				return apierror.Validation("cliente_id inválido")
			}
			if _, err := s.clienteRepo.FindByIDTx(tx, cid); err != nil {
				return apierror.NotFound("cliente no encontrado")
			}
			cot.ClienteID = cid
		}
		if req.SucursalID != nil {
			sid, err := uuid.Parse(*req.SucursalID)
			if err != nil {
				return apierror.Validation("sucursal_id inválido")
			}
			cot.SucursalID = sid
		}
		if req.FechaVencimiento != nil {
			cot.FechaVencimiento = *req.FechaVencimiento
		}
		if req.Estado != nil {
			cot.Estado = *req.Estado
		}
		if req.Notas != nil {
			cot.Notas = req.Notas
		}

		if req.Productos != nil {
			if len(*req.Productos) == 0 {
				return apierror.Validation("productos no puede quedar vacío")
			}
			lineas, total, err := s.resolverLineas(tx, *req.Productos)
			if err != nil {
				return err
			}
			if err := s.repo.DeleteLineasTx(tx, cot.ID); err != nil {
				return err
			}
			for i := range lineas {
				lineas[i].CotizacionID = cot.ID
			}
			if err := s.repo.CreateLineasTx(tx, lineas); err != nil {
				return err
			}
			cot.Total = total
			cot.Productos = nil // avoid GORM re-saving the stale association
		}

		return s.repo.SaveTx(tx, cot)
	})
	if txErr != nil {
		return nil, txErr
	}

	cot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDTx(tx, id); err != nil {
			return apierror.NotFound("cotización no encontrada")
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func (s *cotizacionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	cot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("cotización no encontrada")
	}
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) List(ctx context.Context) ([]dto.CotizacionResponse, error) {
	cotizaciones, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CotizacionResponse, 0, len(cotizaciones))
	for i := range cotizaciones {
		out = append(out, *cotizacionToResponse(&cotizaciones[i]))
	}
	return out, nil
}

func cotizacionToResponse(c *model.Cotizacion) *dto.CotizacionResponse {
	productos := make([]dto.LineaCotizacionResponse, 0, len(c.Productos))
	for _, l := range c.Productos {
		nombre := ""
		if l.Producto != nil {
			nombre = l.Producto.Nombre
		}
		productos = append(productos, dto.LineaCotizacionResponse{
			ID:             l.ID.String(),
			ProductoID:     l.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Total:          l.Total,
		})
	}
	resp := &dto.CotizacionResponse{
		ID:               c.ID.String(),
		Codigo:           c.Codigo,
		FechaEmision:     c.FechaEmision.Format("2006-01-02"),
		FechaVencimiento: c.FechaVencimiento.Format("2006-01-02"),
		Terminos:         c.Terminos,
		MetodosPago:      c.MetodosPago,
		Notas:            c.Notas,
		Total:            c.Total,
		Estado:           c.Estado,
		Productos:        productos,
		PDFPath:          c.PDFPath,
		CreatedAt:        c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if c.Cliente != nil {
		resp.Cliente = dto.ClienteVentaResponse{
			ID:             c.Cliente.ID.String(),
			NombreCompleto: c.Cliente.NombreCompleto,
			CI:             c.Cliente.CI,
		}
	}
	if c.Sucursal != nil {
		resp.Sucursal = c.Sucursal.Nombre
	}
	if c.Plantilla != nil {
		resp.Plantilla = dto.PlantillaResumenResponse{
			ID:        c.Plantilla.ID.String(),
			Titulo:    c.Plantilla.Titulo,
			ColorTema: c.Plantilla.ColorTema,
		}
	}
	return resp
}
