package service

import (
	"context"

	"nexopos/internal/apierror"
	"nexopos/internal/dto"
	"nexopos/internal/model"
	"nexopos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorBarcode(ctx context.Context, barcode string) (*dto.ProductoResponse, error)
	List(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	ListMovimientos(ctx context.Context, id uuid.UUID) ([]dto.MovimientoStockResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, apierror.Validation("id_sucursal inválido")
	}
	categoriaID, err := parseOptionalUUID(req.CategoriaID, "categoria_id")
	if err != nil {
		return nil, err
	}
	proveedorID, err := parseOptionalUUID(req.ProveedorID, "proveedor_id")
	if err != nil {
		return nil, err
	}

	p := &model.Producto{
		CodigoBarras:       req.CodigoBarras,
		Nombre:             req.Nombre,
		Descripcion:        req.Descripcion,
		Costo:              req.Costo,
		PrecioVenta:        req.PrecioVenta,
		PorcentajeGanancia: req.PorcentajeGanancia,
		Stock:              req.Stock,
		FechaCaducidad:     req.FechaCaducidad,
		CategoriaID:        categoriaID,
		ProveedorID:        proveedorID,
		SucursalID:         sucursalID,
		Activo:             true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, apierror.Conflict("ya existe un producto con el código de barras %s", req.CodigoBarras)
		}
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}

	if req.CodigoBarras != nil {
		p.CodigoBarras = *req.CodigoBarras
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Costo != nil {
		p.Costo = *req.Costo
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.PorcentajeGanancia != nil {
		p.PorcentajeGanancia = *req.PorcentajeGanancia
	}
	if req.FechaCaducidad != nil {
		p.FechaCaducidad = req.FechaCaducidad
	}
	if req.CategoriaID != nil {
		cid, err := parseOptionalUUID(req.CategoriaID, "categoria_id")
		if err != nil {
			return nil, err
		}
		p.CategoriaID = cid
	}
	if req.ProveedorID != nil {
		pid, err := parseOptionalUUID(req.ProveedorID, "proveedor_id")
		if err != nil {
			return nil, err
		}
		p.ProveedorID = pid
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, apierror.Conflict("el código de barras ya está en uso")
		}
		return nil, err
	}
	return productoToResponse(p), nil
}

// AjustarStock applies a signed manual correction under the same lock the
// venta coordinator uses, so adjustments and sales serialize on the row.
func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	if req.Delta == 0 {
		return nil, apierror.Validation("delta no puede ser cero")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.LockByIDTx(tx, id)
		if err != nil {
			return apierror.NotFound("producto no encontrado")
		}
		nuevo := p.Stock + req.Delta
		if nuevo < 0 {
			return apierror.Validation("el ajuste dejaría el stock en %d", nuevo)
		}
		if err := s.repo.UpdateStockTx(tx, id, req.Delta); err != nil {
			return err
		}
		return s.repo.RegistrarMovimientoTx(tx, &model.MovimientoStock{
			ProductoID:    id,
			Tipo:          "ajuste",
			Cantidad:      req.Delta,
			StockAnterior: p.Stock,
			StockNuevo:    nuevo,
			Motivo:        req.Motivo,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("producto no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("producto no encontrado")
	}
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorBarcode(ctx context.Context, barcode string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) List(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) ListMovimientos(ctx context.Context, id uuid.UUID) ([]dto.MovimientoStockResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	movs, err := s.repo.ListMovimientos(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoStockResponse, 0, len(movs))
	for _, m := range movs {
		ref := ""
		if m.ReferenciaID != nil {
			ref = m.ReferenciaID.String()
		}
		out = append(out, dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			ReferenciaID:  ref,
			Fecha:         m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

func parseOptionalUUID(s *string, field string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, apierror.Validation("%s inválido", field)
	}
	return &id, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:                 p.ID.String(),
		CodigoBarras:       p.CodigoBarras,
		Nombre:             p.Nombre,
		Descripcion:        p.Descripcion,
		Costo:              p.Costo,
		PrecioVenta:        p.PrecioVenta,
		PorcentajeGanancia: p.PorcentajeGanancia,
		Stock:              p.Stock,
		SucursalID:         p.SucursalID.String(),
		Activo:             p.Activo,
	}
	if p.Categoria != nil {
		resp.Categoria = &p.Categoria.Nombre
	}
	if p.Proveedor != nil {
		resp.Proveedor = &p.Proveedor.Nombre
	}
	return resp
}
