package model

import (
	"time"

	"github.com/google/uuid"
)

// PlantillaCotizacion is a reusable cotización header: branding plus the
// boilerplate text blocks that get copied into each issued cotización.
type PlantillaCotizacion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Titulo       string    `gorm:"not null"`
	ColorTema    string    `gorm:"not null"`
	Logo         *string
	LogoSize     int    `gorm:"not null;default:150"`
	LogoPosition string `gorm:"not null;default:'left'"`
	Terminos     string `gorm:"type:text;not null"`
	MetodosPago  string `gorm:"type:text;not null"`
	Notas        *string
	// CamposIncluidos is a JSON array naming the optional fields the rendered
	// PDF shows; stored raw, the backend never interprets it
	CamposIncluidos string `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PlantillaCotizacion) TableName() string { return "plantilla_cotizacion" }
