package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Rol: "cajero" | "supervisor" | "administrador"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	// SucursalID restricts the user to one branch; nil = all branches
	SucursalID *uuid.UUID `gorm:"type:uuid;index"`
	Activo     bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sucursal *Sucursal `gorm:"foreignKey:SucursalID"`
}

func (Usuario) TableName() string { return "usuarios" }
