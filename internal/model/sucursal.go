package model

import (
	"time"

	"github.com/google/uuid"
)

// Sucursal is a branch/store location.
type Sucursal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Direccion string    `gorm:"not null"`
	Telefono  *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Sucursal) TableName() string { return "sucursales" }
