package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LineaCotizacionRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type CrearCotizacionRequest struct {
	PlantillaID      string                   `json:"plantilla_id"      validate:"required,uuid"`
	ClienteID        string                   `json:"cliente_id"        validate:"required,uuid"`
	SucursalID       string                   `json:"sucursal_id"       validate:"required,uuid"`
	FechaVencimiento time.Time                `json:"fecha_vencimiento" validate:"required"`
	Productos        []LineaCotizacionRequest `json:"productos"         validate:"required,min=1,dive"`
	// ClienteEmail: optional — when present, the worker mails the rendered PDF.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

// ActualizarCotizacionRequest is a partial update: nil pointer = keep the
// stored value. A non-nil Productos slice replaces ALL existing lines and
// recomputes the total from the new lines only.
type ActualizarCotizacionRequest struct {
	ClienteID        *string                   `json:"cliente_id"        validate:"omitempty,uuid"`
	SucursalID       *string                   `json:"sucursal_id"       validate:"omitempty,uuid"`
	FechaVencimiento *time.Time                `json:"fecha_vencimiento"`
	Estado           *string                   `json:"estado"            validate:"omitempty,oneof=pendiente aceptada rechazada"`
	Notas            *string                   `json:"notas"`
	Productos        *[]LineaCotizacionRequest `json:"productos"         validate:"omitempty,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaCotizacionResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"`
}

type PlantillaResumenResponse struct {
	ID        string `json:"id"`
	Titulo    string `json:"titulo"`
	ColorTema string `json:"color_tema"`
}

type CotizacionResponse struct {
	ID               string                    `json:"id"`
	Codigo           string                    `json:"codigo"`
	FechaEmision     string                    `json:"fecha_emision"`
	FechaVencimiento string                    `json:"fecha_vencimiento"`
	Cliente          ClienteVentaResponse      `json:"cliente"`
	Sucursal         string                    `json:"sucursal"`
	Plantilla        PlantillaResumenResponse  `json:"plantilla"`
	Terminos         string                    `json:"terminos"`
	MetodosPago      string                    `json:"metodos_pago"`
	Notas            *string                   `json:"notas"`
	Total            decimal.Decimal           `json:"total"`
	Estado           string                    `json:"estado"`
	Productos        []LineaCotizacionResponse `json:"productos"`
	PDFPath          *string                   `json:"pdf_path"`
	CreatedAt        string                    `json:"created_at"`
}
