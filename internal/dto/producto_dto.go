package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	CodigoBarras       string          `json:"codigo_barras"       validate:"required"`
	Nombre             string          `json:"nombre"              validate:"required"`
	Descripcion        *string         `json:"descripcion"`
	Costo              decimal.Decimal `json:"costo"               validate:"required"`
	PrecioVenta        decimal.Decimal `json:"precio_venta"        validate:"required"`
	PorcentajeGanancia decimal.Decimal `json:"porcentaje_ganancia" validate:"min=0"`
	Stock              int             `json:"stock"               validate:"min=0"`
	FechaCaducidad     *time.Time      `json:"fecha_caducidad"`
	CategoriaID        *string         `json:"categoria_id"        validate:"omitempty,uuid"`
	ProveedorID        *string         `json:"proveedor_id"        validate:"omitempty,uuid"`
	SucursalID         string          `json:"id_sucursal"         validate:"required,uuid"`
}

// ActualizarProductoRequest is a partial update: nil = keep stored value.
// Pointer fields distinguish "not sent" from legitimate zero/empty updates.
type ActualizarProductoRequest struct {
	CodigoBarras       *string          `json:"codigo_barras"`
	Nombre             *string          `json:"nombre"`
	Descripcion        *string          `json:"descripcion"`
	Costo              *decimal.Decimal `json:"costo"`
	PrecioVenta        *decimal.Decimal `json:"precio_venta"`
	PorcentajeGanancia *decimal.Decimal `json:"porcentaje_ganancia"`
	FechaCaducidad     *time.Time       `json:"fecha_caducidad"`
	CategoriaID        *string          `json:"categoria_id" validate:"omitempty,uuid"`
	ProveedorID        *string          `json:"proveedor_id" validate:"omitempty,uuid"`
}

type AjustarStockRequest struct {
	// Delta may be negative; the resulting stock must stay >= 0.
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	Barcode     string `form:"codigo_barras"`
	CategoriaID string `form:"categoria_id" validate:"omitempty,uuid"`
	SucursalID  string `form:"id_sucursal"  validate:"omitempty,uuid"`
	Activo      string `form:"activo"` // "", "false", "all"
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID                 string          `json:"id"`
	CodigoBarras       string          `json:"codigo_barras"`
	Nombre             string          `json:"nombre"`
	Descripcion        *string         `json:"descripcion"`
	Costo              decimal.Decimal `json:"costo"`
	PrecioVenta        decimal.Decimal `json:"precio_venta"`
	PorcentajeGanancia decimal.Decimal `json:"porcentaje_ganancia"`
	Stock              int             `json:"stock"`
	Categoria          *string         `json:"categoria"`
	Proveedor          *string         `json:"proveedor"`
	SucursalID         string          `json:"id_sucursal"`
	Activo             bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type MovimientoStockResponse struct {
	ID            string `json:"id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo"`
	ReferenciaID  string `json:"referencia_id,omitempty"`
	Fecha         string `json:"fecha"`
}

// ConsultaPreciosResponse is the public price-check payload, cached in redis.
type ConsultaPreciosResponse struct {
	Nombre          string          `json:"nombre"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	StockDisponible int             `json:"stock_disponible"`
}
