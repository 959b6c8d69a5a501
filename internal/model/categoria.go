package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria groups productos for catalog browsing and reporting.
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Categoria) TableName() string { return "categorias" }
