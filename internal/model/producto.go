package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog item scoped to a sucursal.
// Invariants: codigo_barras unique, stock >= 0 at all times (enforced both by
// the venta coordinator and a DB check constraint).
type Producto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras   string    `gorm:"uniqueIndex;not null"`
	Nombre         string    `gorm:"index;not null"`
	Descripcion    *string
	Costo          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioVenta    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// PorcentajeGanancia is supplied by the client, never recomputed here
	PorcentajeGanancia decimal.Decimal `gorm:"type:decimal(5,2);default:0"`
	Stock          int        `gorm:"not null;default:0"`
	FechaCaducidad *time.Time
	Imagen         *string
	CategoriaID    *uuid.UUID `gorm:"type:uuid;index"`
	ProveedorID    *uuid.UUID `gorm:"type:uuid;index"`
	SucursalID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	Activo         bool       `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
	Sucursal  *Sucursal  `gorm:"foreignKey:SucursalID"`
}

// MovimientoStock records every stock mutation for audit purposes.
// Tipo: "venta" | "anulacion" | "ajuste"
// Rows are immutable — corrections create new entries.
type MovimientoStock struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo          string    `gorm:"type:varchar(20);not null"`
	Cantidad      int       `gorm:"not null"` // signed delta
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Motivo        string    `gorm:"not null"`
	// ReferenciaID links to the originating Venta when Tipo is venta/anulacion
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (Producto) TableName() string        { return "productos" }
func (MovimientoStock) TableName() string { return "movimientos_stock" }
