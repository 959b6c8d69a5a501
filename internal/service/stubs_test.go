package service_test

import (
	"context"
	"errors"
	"time"

	"nexopos/internal/dto"
	"nexopos/internal/model"
	"nexopos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
//
// In-memory repositories. DB() returns nil so the services execute their
// transaction closures directly against the stubs; a *_Tx method receiving a
// nil *gorm.DB is the expected calling convention here.

type stubProductoRepo struct {
	productos   map[uuid.UUID]*model.Producto
	movimientos []model.MovimientoStock
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) seed(nombre, barcode string, precio decimal.Decimal, stock int) *model.Producto {
	p := &model.Producto{
		ID:           uuid.New(),
		CodigoBarras: barcode,
		Nombre:       nombre,
		Costo:        precio.Div(decimal.NewFromInt(2)),
		PrecioVenta:  precio,
		Stock:        stock,
		SucursalID:   uuid.New(),
		Activo:       true,
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for _, existing := range r.productos {
		if existing.CodigoBarras == p.CodigoBarras {
			return errors.New(`duplicate key value violates unique constraint "idx_productos_codigo_barras"`)
		}
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras == barcode && p.Activo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

// LockByIDTx returns a copy, like a real row scan would.
func (r *stubProductoRepo) LockByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.LockByIDTx(nil, id)
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProductoRepo) RegistrarMovimientoTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubProductoRepo) ListMovimientos(_ context.Context, productoID uuid.UUID) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

type stubVentaRepo struct {
	ventas   map[uuid.UUID]*model.Venta
	clientes *stubClienteRepo // emulates FindByID's Preload("Cliente")
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Detalles {
		if v.Detalles[i].ID == uuid.Nil {
			v.Detalles[i].ID = uuid.New()
		}
		v.Detalles[i].VentaID = v.ID
	}
	cp := *v
	r.ventas[v.ID] = &cp
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	if cp.ClienteID != nil && r.clientes != nil {
		if c, ok := r.clientes.clientes[*cp.ClienteID]; ok {
			ccp := *c
			cp.Cliente = &ccp
		}
	}
	return &cp, nil
}

func (r *stubVentaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubVentaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.ventas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

type stubCajaRepo struct {
	cajas       map[uuid.UUID]*model.Caja
	movimientos []model.MovimientoCaja
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (r *stubCajaRepo) seedAbierta(sucursalID uuid.UUID, saldoInicial decimal.Decimal) *model.Caja {
	c := &model.Caja{
		ID:           uuid.New(),
		SucursalID:   sucursalID,
		SaldoInicial: saldoInicial,
		Ingresos:     decimal.Zero,
		Egresos:      decimal.Zero,
		Estado:       "abierta",
		AbiertaPor:   uuid.New(),
		CreatedAt:    time.Now(),
	}
	c.Recalcular()
	r.cajas[c.ID] = c
	return c
}

func (r *stubCajaRepo) Create(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.cajas[c.ID] = &cp
	return nil
}

// CreateTx mimics the partial unique index on open cajas per sucursal.
func (r *stubCajaRepo) CreateTx(_ *gorm.DB, c *model.Caja) error {
	if c.Estado == "abierta" {
		for _, existing := range r.cajas {
			if existing.SucursalID == c.SucursalID && existing.Estado == "abierta" {
				return errors.New(`duplicate key value violates unique constraint "idx_cajas_abierta_por_sucursal"`)
			}
		}
	}
	return r.Create(context.Background(), c)
}

func (r *stubCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCajaRepo) FindAbiertaPorSucursal(_ context.Context, sucursalID uuid.UUID) (*model.Caja, error) {
	for _, c := range r.cajas {
		if c.SucursalID == sucursalID && c.Estado == "abierta" {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) LockAbiertasPorSucursalTx(_ *gorm.DB, sucursalID uuid.UUID) ([]model.Caja, error) {
	var out []model.Caja
	for _, c := range r.cajas {
		if c.SucursalID == sucursalID && c.Estado == "abierta" {
			out = append(out, *c)
		}
	}
	return out, nil
}

// LockByIDTx returns a copy of the current row, like a FOR UPDATE scan.
func (r *stubCajaRepo) LockByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCajaRepo) Update(_ context.Context, c *model.Caja) error {
	cp := *c
	r.cajas[c.ID] = &cp
	return nil
}

func (r *stubCajaRepo) UpdateTx(tx *gorm.DB, c *model.Caja) error {
	return r.Update(context.Background(), c)
}

func (r *stubCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubCajaRepo) ListMovimientos(_ context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.CajaID == cajaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	return r.CreateTx(nil, c)
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) FindByCITx(_ *gorm.DB, ci string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.CI == ci {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) CreateTx(_ *gorm.DB, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for _, existing := range r.clientes {
		if existing.CI == c.CI {
			return errors.New(`duplicate key value violates unique constraint "idx_clientes_ci"`)
		}
	}
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubPlantillaRepo struct {
	plantillas map[uuid.UUID]*model.PlantillaCotizacion
}

func newStubPlantillaRepo() *stubPlantillaRepo {
	return &stubPlantillaRepo{plantillas: make(map[uuid.UUID]*model.PlantillaCotizacion)}
}

func (r *stubPlantillaRepo) Create(_ context.Context, p *model.PlantillaCotizacion) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.plantillas[p.ID] = &cp
	return nil
}

func (r *stubPlantillaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PlantillaCotizacion, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubPlantillaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.PlantillaCotizacion, error) {
	p, ok := r.plantillas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPlantillaRepo) List(_ context.Context) ([]model.PlantillaCotizacion, error) {
	out := make([]model.PlantillaCotizacion, 0, len(r.plantillas))
	for _, p := range r.plantillas {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPlantillaRepo) Update(_ context.Context, p *model.PlantillaCotizacion) error {
	cp := *p
	r.plantillas[p.ID] = &cp
	return nil
}

func (r *stubPlantillaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.plantillas, id)
	return nil
}

var _ repository.PlantillaRepository = (*stubPlantillaRepo)(nil)

type stubCotizacionRepo struct {
	cotizaciones map[uuid.UUID]*model.Cotizacion
	orden        []uuid.UUID // insertion order, for LastCodigoTx
}

func newStubCotizacionRepo() *stubCotizacionRepo {
	return &stubCotizacionRepo{cotizaciones: make(map[uuid.UUID]*model.Cotizacion)}
}

func (r *stubCotizacionRepo) LastCodigoTx(_ *gorm.DB) (string, error) {
	if len(r.orden) == 0 {
		return "", nil
	}
	return r.cotizaciones[r.orden[len(r.orden)-1]].Codigo, nil
}

func (r *stubCotizacionRepo) CreateTx(_ *gorm.DB, c *model.Cotizacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for _, existing := range r.cotizaciones {
		if existing.Codigo == c.Codigo {
			return errors.New(`duplicate key value violates unique constraint "idx_cotizaciones_codigo"`)
		}
	}
	for i := range c.Productos {
		if c.Productos[i].ID == uuid.Nil {
			c.Productos[i].ID = uuid.New()
		}
		c.Productos[i].CotizacionID = c.ID
	}
	cp := *c
	cp.Productos = append([]model.CotizacionProducto(nil), c.Productos...)
	r.cotizaciones[c.ID] = &cp
	r.orden = append(r.orden, c.ID)
	return nil
}

func (r *stubCotizacionRepo) SaveTx(_ *gorm.DB, c *model.Cotizacion) error {
	stored, ok := r.cotizaciones[c.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	lineas := stored.Productos
	cp := *c
	cp.Productos = lineas // lines are managed via *LineasTx, not Save
	r.cotizaciones[c.ID] = &cp
	return nil
}

func (r *stubCotizacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubCotizacionRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Cotizacion, error) {
	c, ok := r.cotizaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	cp.Productos = append([]model.CotizacionProducto(nil), c.Productos...)
	return &cp, nil
}

func (r *stubCotizacionRepo) List(_ context.Context) ([]model.Cotizacion, error) {
	out := make([]model.Cotizacion, 0, len(r.orden))
	for _, id := range r.orden {
		out = append(out, *r.cotizaciones[id])
	}
	return out, nil
}

func (r *stubCotizacionRepo) DeleteLineasTx(_ *gorm.DB, cotizacionID uuid.UUID) error {
	if c, ok := r.cotizaciones[cotizacionID]; ok {
		c.Productos = nil
	}
	return nil
}

func (r *stubCotizacionRepo) CreateLineasTx(_ *gorm.DB, lineas []model.CotizacionProducto) error {
	if len(lineas) == 0 {
		return errors.New("empty slice found")
	}
	c, ok := r.cotizaciones[lineas[0].CotizacionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range lineas {
		if lineas[i].ID == uuid.Nil {
			lineas[i].ID = uuid.New()
		}
	}
	c.Productos = append(c.Productos, lineas...)
	return nil
}

func (r *stubCotizacionRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.cotizaciones[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.cotizaciones, id)
	for i, oid := range r.orden {
		if oid == id {
			r.orden = append(r.orden[:i], r.orden[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubCotizacionRepo) UpdatePDFPath(_ context.Context, id uuid.UUID, path string) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.PDFPath = &path
	return nil
}

func (r *stubCotizacionRepo) ListSinPDF(_ context.Context, olderThan time.Time, limit int) ([]model.Cotizacion, error) {
	var out []model.Cotizacion
	for _, id := range r.orden {
		c := r.cotizaciones[id]
		if c.PDFPath == nil && c.CreatedAt.Before(olderThan) {
			out = append(out, *c)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *stubCotizacionRepo) DB() *gorm.DB { return nil }

var _ repository.CotizacionRepository = (*stubCotizacionRepo)(nil)

// stubDispatcher records enqueue calls and optionally fails them.
type stubDispatcher struct {
	encolados []uuid.UUID
	emails    []*string
	fail      bool
}

func (d *stubDispatcher) EncolarCotizacionPDF(_ context.Context, cotizacionID uuid.UUID, email *string) error {
	if d.fail {
		return errors.New("redis: connection refused")
	}
	d.encolados = append(d.encolados, cotizacionID)
	d.emails = append(d.emails, email)
	return nil
}
