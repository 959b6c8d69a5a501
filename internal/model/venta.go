package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a committed sale. It is immutable once created — the only allowed
// transition is full reversal, which deletes the row together with its
// detalles after restoring every side effect.
type Venta struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID  *uuid.UUID `gorm:"type:uuid;index"` // nil = venta anónima
	UsuarioID  uuid.UUID  `gorm:"type:uuid;not null"`
	SucursalID uuid.UUID  `gorm:"type:uuid;index;not null"`
	MontoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Vendedor   string          `gorm:"not null;default:'Vendedor'"`
	Fecha      time.Time       `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Usuario  *Usuario       `gorm:"foreignKey:UsuarioID"`
	Sucursal *Sucursal      `gorm:"foreignKey:SucursalID"`
	Detalles []DetalleVenta `gorm:"foreignKey:VentaID"`
}

// DetalleVenta is a sale line. PrecioUnitario is a snapshot taken at sale
// time — later catalog price changes never affect committed lines.
type DetalleVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Venta) TableName() string        { return "ventas" }
func (DetalleVenta) TableName() string { return "detalle_venta" }
