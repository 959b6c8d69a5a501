package dto

import "github.com/shopspring/decimal"

// ReporteFilter bounds a report query to a date range and optional sucursal.
type ReporteFilter struct {
	Desde      string `form:"desde" validate:"required,datetime=2006-01-02"`
	Hasta      string `form:"hasta" validate:"required,datetime=2006-01-02"`
	SucursalID string `form:"id_sucursal" validate:"omitempty,uuid"`
}

// ResumenReporteResponse mirrors the classic utilidad-neta summary:
// ingresos − costos − egresos = utilidad.
type ResumenReporteResponse struct {
	IngresosTotales decimal.Decimal `json:"ingresos_totales"`
	CostosTotales   decimal.Decimal `json:"costos_totales"`
	EgresosTotales  decimal.Decimal `json:"egresos_totales"`
	UtilidadNeta    decimal.Decimal `json:"utilidad_neta"`
	CantidadVentas  int64           `json:"cantidad_ventas"`
}

// ProductoReporteItem is one row of the ventas-por-producto report.
type ProductoReporteItem struct {
	ProductoID       string          `json:"producto_id"`
	Nombre           string          `json:"nombre"`
	CantidadVendida  int64           `json:"cantidad_vendida"`
	Ingresos         decimal.Decimal `json:"ingresos"`
	PorcentajeVentas decimal.Decimal `json:"porcentaje_ventas"`
}

type ProductosReporteResponse struct {
	Data            []ProductoReporteItem `json:"data"`
	IngresosTotales decimal.Decimal       `json:"ingresos_totales"`
}
