package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente identifies a buyer by CI (documento de identidad). Ventas may be
// anonymous; when an identity is supplied the coordinator finds-or-creates
// the cliente by CI inside the sale transaction.
type Cliente struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreCompleto string    `gorm:"not null"`
	CI             string    `gorm:"uniqueIndex;not null;column:ci"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Cliente) TableName() string { return "clientes" }
