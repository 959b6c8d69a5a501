package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleVentaRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	// PrecioUnitario is optional: zero means "use the catalog price". A
	// non-zero value lets the counter apply a negotiated price; the snapshot
	// stored on the line is whichever was used.
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

type RegistrarVentaRequest struct {
	SucursalID string  `json:"id_sucursal" validate:"required,uuid"`
	// Explicit cliente reference; must exist when present.
	ClienteID *string `json:"id_cliente"  validate:"omitempty,uuid"`
	// Identity resolution for walk-ins: both present → find-or-create by CI.
	NombreCompleto *string `json:"nombre_completo"`
	CI             *string `json:"ci"`

	Detalles []DetalleVentaRequest `json:"detalles" validate:"required,min=1,dive"`
	// MontoTotal is the client-declared total, kept for validation only. The
	// line-sum computed server side is what gets persisted and posted to caja.
	MontoTotal decimal.Decimal `json:"monto_total" validate:"required"`
	Vendedor   *string         `json:"vendedor"`
	Fecha      *time.Time      `json:"fecha"`
}

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha      string `form:"fecha"` // YYYY-MM-DD; empty = all
	SucursalID string `form:"id_sucursal" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	CodigoBarras   string          `json:"codigo_barras"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type ClienteVentaResponse struct {
	ID             string `json:"id"`
	NombreCompleto string `json:"nombre_completo"`
	CI             string `json:"ci"`
}

type VentaResponse struct {
	ID         string                 `json:"id"`
	Cliente    *ClienteVentaResponse  `json:"cliente"` // nil = anónima
	Usuario    string                 `json:"usuario"`
	Sucursal   string                 `json:"sucursal"`
	SucursalID string                 `json:"id_sucursal"`
	Vendedor   string                 `json:"vendedor"`
	MontoTotal decimal.Decimal        `json:"monto_total"`
	Detalles   []DetalleVentaResponse `json:"detalles"`
	Fecha      string                 `json:"fecha"`
	CreatedAt  string                 `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
