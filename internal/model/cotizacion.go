package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cotizacion is a price quote issued to a client. Terminos, MetodosPago and
// Notas are copied verbatim from the plantilla at creation time — editing the
// plantilla afterward never changes issued cotizaciones.
// Estado: "pendiente" | "aceptada" | "rechazada"
type Cotizacion struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo string    `gorm:"uniqueIndex;not null"` // COT-0001, COT-0002, ...

	FechaEmision     time.Time `gorm:"not null"`
	FechaVencimiento time.Time `gorm:"not null"`

	ClienteID   uuid.UUID `gorm:"type:uuid;index;not null"`
	SucursalID  uuid.UUID `gorm:"type:uuid;index;not null"`
	PlantillaID uuid.UUID `gorm:"type:uuid;index;not null"`

	Terminos    string `gorm:"type:text;not null"`
	MetodosPago string `gorm:"type:text;not null"`
	Notas       *string

	Total  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado string          `gorm:"type:varchar(20);not null;default:'pendiente'"`

	// PDFPath is set by the render worker once the document exists on disk;
	// nil means the PDF is still pending (the retry cron re-enqueues those).
	PDFPath   *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente   *Cliente             `gorm:"foreignKey:ClienteID"`
	Sucursal  *Sucursal            `gorm:"foreignKey:SucursalID"`
	Plantilla *PlantillaCotizacion `gorm:"foreignKey:PlantillaID"`
	Productos []CotizacionProducto `gorm:"foreignKey:CotizacionID"`
}

// CotizacionProducto is a quote line. PrecioUnitario is snapshot from the
// product's sale price when the line is written; it is never recomputed.
type CotizacionProducto struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Cotizacion) TableName() string         { return "cotizaciones" }
func (CotizacionProducto) TableName() string { return "cotizacion_productos" }
