package repository

import (
	"context"

	"nexopos/internal/dto"
	"nexopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	// CreateTx persists the venta together with its detalles inside tx.
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// FindByIDTx loads the venta with detalles inside tx (used by the
	// reversal path so the read shares the transaction's snapshot).
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error)
	// DeleteTx removes detalles first, then the venta header.
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Usuario").Preload("Sucursal").
		Preload("Detalles.Producto").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := tx.Preload("Detalles").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("venta_id = ?", id).Delete(&model.DetalleVenta{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Venta{}, id).Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Fecha != "" {
		q = q.Where("DATE(fecha) = ?", filter.Fecha)
	}
	if filter.SucursalID != "" {
		q = q.Where("sucursal_id = ?", filter.SucursalID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").Preload("Usuario").Preload("Sucursal").
		Preload("Detalles.Producto").
		Order("fecha DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}
