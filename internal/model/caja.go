package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja is a cash register session for a sucursal.
// Estado: "abierta" | "cerrada". At most one open caja per sucursal — enforced
// by a partial unique index applied in infra.applySchemaPatches.
// Invariant: SaldoFinal = SaldoInicial + Ingresos − Egresos after every mutation.
type Caja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SucursalID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	SaldoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Ingresos     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Egresos      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoFinal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'abierta'"`
	AbiertaPor   uuid.UUID       `gorm:"type:uuid;not null"`
	CerradaPor   *uuid.UUID      `gorm:"type:uuid"`
	FechaCierre  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Sucursal    *Sucursal        `gorm:"foreignKey:SucursalID"`
	Movimientos []MovimientoCaja `gorm:"foreignKey:CajaID"`
}

// Recalcular recomputes SaldoFinal from the running fields. Call after every
// Ingresos/Egresos mutation, always inside the mutating transaction.
func (c *Caja) Recalcular() {
	c.SaldoFinal = c.SaldoInicial.Add(c.Ingresos).Sub(c.Egresos)
}

// MovimientoCaja is an immutable event in the cash register ledger.
// Tipo: "venta" | "anulacion" | "ingreso_manual" | "egreso_manual"
// Movements are NEVER modified or deleted — cancellations create inverse
// entries. The Caja running fields remain the accounting authority; this
// ledger exists for audit and reporting.
type MovimientoCaja struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo        string          `gorm:"type:varchar(20);not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"` // signed
	Descripcion string          `gorm:"not null"`
	// ReferenciaID links to the originating Venta or manual operation
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (Caja) TableName() string           { return "cajas" }
func (MovimientoCaja) TableName() string { return "movimientos_caja" }
