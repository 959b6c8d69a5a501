package service

import (
	"context"
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

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	EliminarVenta(ctx context.Context, id uuid.UUID) error
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	cajaRepo     repository.CajaRepository
	clienteRepo  repository.ClienteRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	cajaRepo repository.CajaRepository,
	clienteRepo repository.ClienteRepository,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		cajaRepo:     cajaRepo,
		clienteRepo:  clienteRepo,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// One ACID transaction:
//   1. Lock the sucursal's open caja (none → NoOpenRegister, two → Conflict)
//   2. Resolve cliente (explicit id, find-or-create by CI, or anónima)
//   3. Lock every product, validate stock — all checks before any write
//   4. Create venta + detalles, decrement stock, record movimientos de stock
//   5. Post the total to caja ingresos, recompute saldo_final, ledger entry
// Any error rolls the whole thing back; no partial effect is observable.

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	sucursalID, err := uuid.Parse(req.SucursalID)
	if err != nil {
		return nil, apierror.Validation("id_sucursal inválido")
	}
	if len(req.Detalles) == 0 {
		return nil, apierror.Validation("la venta debe incluir al menos un detalle")
	}

	type lineaEntrada struct {
		productoID uuid.UUID
		cantidad   int
		precio     decimal.Decimal // zero = use catalog price
	}
	entradas := make([]lineaEntrada, 0, len(req.Detalles))
	for _, d := range req.Detalles {
		pid, err := uuid.Parse(d.ProductoID)
		if err != nil {
			return nil, apierror.Validation("producto_id inválido: %s", d.ProductoID)
		}
		if d.Cantidad <= 0 {
			return nil, apierror.Validation("cantidad debe ser mayor a cero")
		}
		entradas = append(entradas, lineaEntrada{productoID: pid, cantidad: d.Cantidad, precio: d.PrecioUnitario})
	}

	var ventaID uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// 1. Open caja, locked for the duration of the transaction. A sale
		// cannot be recorded with nowhere to post cash.
		caja, err := s.lockCajaAbierta(tx, sucursalID)
		if err != nil {
			return err
		}

		// 2. Cliente resolution.
		clienteID, err := s.resolverCliente(tx, req)
		if err != nil {
			return err
		}

		// 3. Pre-flight: lock + validate every product before mutating any.
		type resolvedLinea struct {
			producto *model.Producto
			cantidad int
			precio   decimal.Decimal
			subtotal decimal.Decimal
		}
		resolved := make([]resolvedLinea, 0, len(entradas))
		total := decimal.Zero
		for _, e := range entradas {
			p, err := s.productoRepo.LockByIDTx(tx, e.productoID)
			if err != nil {
				return apierror.NotFound("producto %s no encontrado", e.productoID)
			}
			if !p.Activo {
				return apierror.Validation("producto %s está inactivo y no puede venderse", p.Nombre)
			}
			if p.Stock < e.cantidad {
				return apierror.InsufficientStock("stock insuficiente para %s: disponible %d, solicitado %d",
					p.Nombre, p.Stock, e.cantidad)
			}
			precio := e.precio
			if precio.IsZero() {
				precio = p.PrecioVenta
			}
			subtotal := precio.Mul(decimal.NewFromInt(int64(e.cantidad)))
			total = total.Add(subtotal)
			resolved = append(resolved, resolvedLinea{producto: p, cantidad: e.cantidad, precio: precio, subtotal: subtotal})
		}

		// The line-sum is authoritative; a divergent declared total is logged
		// but never posted.
		if !req.MontoTotal.IsZero() && !req.MontoTotal.Equal(total) {
			log.Warn().
				Str("declarado", req.MontoTotal.String()).
				Str("calculado", total.String()).
				Msg("monto_total declarado difiere de la suma de detalles")
		}

		// 4. Persist venta + detalles, decrement stock.
		vendedor := "Vendedor"
		if req.Vendedor != nil && *req.Vendedor != "" {
			vendedor = *req.Vendedor
		}
		fecha := time.Now()
		if req.Fecha != nil {
			fecha = *req.Fecha
		}
		venta := model.Venta{
			ClienteID:  clienteID,
			UsuarioID:  usuarioID,
			SucursalID: sucursalID,
			MontoTotal: total,
			Vendedor:   vendedor,
			Fecha:      fecha,
		}
		for _, r := range resolved {
			venta.Detalles = append(venta.Detalles, model.DetalleVenta{
				ProductoID:     r.producto.ID,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
			})
		}
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}
		ventaID = venta.ID

		for _, r := range resolved {
			if err := s.productoRepo.UpdateStockTx(tx, r.producto.ID, -r.cantidad); err != nil {
				return err
			}
			ref := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:    r.producto.ID,
				Tipo:          "venta",
				Cantidad:      -r.cantidad,
				StockAnterior: r.producto.Stock,
				StockNuevo:    r.producto.Stock - r.cantidad,
				Motivo:        "Venta " + venta.ID.String(),
				ReferenciaID:  &ref,
			}
			if err := s.productoRepo.RegistrarMovimientoTx(tx, mov); err != nil {
				return err
			}
		}

		// 5. Post to caja.
		caja.Ingresos = caja.Ingresos.Add(total)
		caja.Recalcular()
		if err := s.cajaRepo.UpdateTx(tx, caja); err != nil {
			return err
		}
		ref := venta.ID
		return s.cajaRepo.CreateMovimientoTx(tx, &model.MovimientoCaja{
			CajaID:       caja.ID,
			Tipo:         "venta",
			Monto:        total,
			Descripcion:  "Venta registrada",
			ReferenciaID: &ref,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	venta, err := s.repo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(venta), nil
}

// lockCajaAbierta returns the sucursal's single open caja, locked FOR UPDATE.
// Zero open cajas is an operational precondition failure; more than one means
// the one-open-per-sucursal invariant broke and nothing should be posted.
func (s *ventaService) lockCajaAbierta(tx *gorm.DB, sucursalID uuid.UUID) (*model.Caja, error) {
	cajas, err := s.cajaRepo.LockAbiertasPorSucursalTx(tx, sucursalID)
	if err != nil {
		return nil, err
	}
	switch len(cajas) {
	case 0:
		return nil, apierror.NoOpenRegister("no hay una caja abierta para esta sucursal")
	case 1:
		return &cajas[0], nil
	default:
		return nil, apierror.Conflict("múltiples cajas abiertas para la sucursal %s", sucursalID)
	}
}

// resolverCliente implements the three-way cliente rule: explicit id must
// exist, an identity (ci + nombre) finds-or-creates, anything else is an
// anonymous sale.
func (s *ventaService) resolverCliente(tx *gorm.DB, req dto.RegistrarVentaRequest) (*uuid.UUID, error) {
	if req.ClienteID != nil && *req.ClienteID != "" {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.Validation("id_cliente inválido")
		}
		cliente, err := s.clienteRepo.FindByIDTx(tx, cid)
		if err != nil {
			return nil, apierror.NotFound("cliente no encontrado con el ID proporcionado")
		}
		return &cliente.ID, nil
	}

	if req.CI != nil && *req.CI != "" && *req.CI != "0" &&
		req.NombreCompleto != nil && *req.NombreCompleto != "" {
		if existing, err := s.clienteRepo.FindByCITx(tx, *req.CI); err == nil {
			return &existing.ID, nil
		}
		nuevo := &model.Cliente{NombreCompleto: *req.NombreCompleto, CI: *req.CI}
		if err := s.clienteRepo.CreateTx(tx, nuevo); err != nil {
			return nil, err
		}
		return &nuevo.ID, nil
	}

	return nil, nil // venta anónima
}

// ── EliminarVenta ─────────────────────────────────────────────────────────────
// Full reversal: restore stock, retract the total from the currently open
// caja (skipped when none exists — a reporting discrepancy, not a failure),
// then delete detalles and the venta. All-or-nothing.

func (s *ventaService) EliminarVenta(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return apierror.NotFound("venta no encontrada")
		}

		for _, d := range venta.Detalles {
			p, err := s.productoRepo.LockByIDTx(tx, d.ProductoID)
			if err != nil {
				// Product row gone (hard-deleted out of band): nothing to restore.
				continue
			}
			if err := s.productoRepo.UpdateStockTx(tx, d.ProductoID, d.Cantidad); err != nil {
				return err
			}
			ref := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:    d.ProductoID,
				Tipo:          "anulacion",
				Cantidad:      d.Cantidad,
				StockAnterior: p.Stock,
				StockNuevo:    p.Stock + d.Cantidad,
				Motivo:        "Anulación venta " + venta.ID.String(),
				ReferenciaID:  &ref,
			}
			if err := s.productoRepo.RegistrarMovimientoTx(tx, mov); err != nil {
				return err
			}
		}

		cajas, err := s.cajaRepo.LockAbiertasPorSucursalTx(tx, venta.SucursalID)
		if err != nil {
			return err
		}
		if len(cajas) > 1 {
			return apierror.Conflict("múltiples cajas abiertas para la sucursal %s", venta.SucursalID)
		}
		if len(cajas) == 1 {
			caja := &cajas[0]
			caja.Ingresos = caja.Ingresos.Sub(venta.MontoTotal)
			caja.Recalcular()
			if err := s.cajaRepo.UpdateTx(tx, caja); err != nil {
				return err
			}
			ref := venta.ID
			if err := s.cajaRepo.CreateMovimientoTx(tx, &model.MovimientoCaja{
				CajaID:       caja.ID,
				Tipo:         "anulacion",
				Monto:        venta.MontoTotal.Neg(),
				Descripcion:  "Anulación de venta",
				ReferenciaID: &ref,
			}); err != nil {
				return err
			}
		} else {
			log.Warn().Str("venta_id", venta.ID.String()).
				Msg("anulación sin caja abierta: el ajuste de caja queda como discrepancia de reporte")
		}

		return s.repo.DeleteTx(tx, venta.ID)
	})
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		nombre, barcode := "", ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
			barcode = d.Producto.CodigoBarras
		}
		detalles = append(detalles, dto.DetalleVentaResponse{
			ID:             d.ID.String(),
			ProductoID:     d.ProductoID.String(),
			Producto:       nombre,
			CodigoBarras:   barcode,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}

	var cliente *dto.ClienteVentaResponse
	if v.Cliente != nil {
		cliente = &dto.ClienteVentaResponse{
			ID:             v.Cliente.ID.String(),
			NombreCompleto: v.Cliente.NombreCompleto,
			CI:             v.Cliente.CI,
		}
	}
	usuario := ""
	if v.Usuario != nil {
		usuario = v.Usuario.Nombre
	}
	sucursal := ""
	if v.Sucursal != nil {
		sucursal = v.Sucursal.Nombre
	}

	return &dto.VentaResponse{
		ID:         v.ID.String(),
		Cliente:    cliente,
		Usuario:    usuario,
		Sucursal:   sucursal,
		SucursalID: v.SucursalID.String(),
		Vendedor:   v.Vendedor,
		MontoTotal: v.MontoTotal,
		Detalles:   detalles,
		Fecha:      v.Fecha.Format("2006-01-02T15:04:05Z"),
		CreatedAt:  v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
