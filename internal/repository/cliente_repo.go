package repository

import (
	"context"

	"nexopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	// FindByIDTx / FindByCITx / CreateTx run inside the sale transaction so
	// find-or-create is atomic with the rest of the venta.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error)
	FindByCITx(tx *gorm.DB, ci string) (*model.Cliente, error)
	CreateTx(tx *gorm.DB, c *model.Cliente) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("nombre_completo ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) FindByCITx(tx *gorm.DB, ci string) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Where("ci = ?", ci).First(&c).Error
	return &c, err
}

func (r *clienteRepo) CreateTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Create(c).Error
}
