package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	SucursalID   string          `json:"id_sucursal"   validate:"required,uuid"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
}

type MovimientoManualRequest struct {
	Tipo        string          `json:"tipo"        validate:"required,oneof=ingreso egreso"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoCajaResponse struct {
	ID           string          `json:"id"`
	Tipo         string          `json:"tipo"`
	Monto        decimal.Decimal `json:"monto"`
	Descripcion  string          `json:"descripcion"`
	ReferenciaID string          `json:"referencia_id,omitempty"`
	Fecha        string          `json:"fecha"`
}

type CajaResponse struct {
	ID            string          `json:"id"`
	SucursalID    string          `json:"id_sucursal"`
	SaldoInicial  decimal.Decimal `json:"saldo_inicial"`
	Ingresos      decimal.Decimal `json:"ingresos"`
	Egresos       decimal.Decimal `json:"egresos"`
	SaldoFinal    decimal.Decimal `json:"saldo_final"`
	Estado        string          `json:"estado"`
	AbiertaPor    string          `json:"abierta_por"`
	CerradaPor    string          `json:"cerrada_por,omitempty"`
	FechaApertura string          `json:"fecha_apertura"`
	FechaCierre   string          `json:"fecha_cierre,omitempty"`
}
