package repository

import (
	"context"

	"nexopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// FindAbiertaPorSucursal returns the most recently opened caja in estado
	// "abierta" for the sucursal (read path; no lock).
	FindAbiertaPorSucursal(ctx context.Context, sucursalID uuid.UUID) (*model.Caja, error)
	// LockAbiertasPorSucursalTx returns every open caja for the sucursal,
	// newest first, under SELECT ... FOR UPDATE. Callers treat zero rows as
	// "no open register" and more than one as a broken invariant.
	LockAbiertasPorSucursalTx(tx *gorm.DB, sucursalID uuid.UUID) ([]model.Caja, error)
	// LockByIDTx reads one caja under SELECT ... FOR UPDATE so a concurrent
	// sale posting and a close cannot interleave their read-modify-write.
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Caja, error)
	CreateTx(tx *gorm.DB, c *model.Caja) error
	Update(ctx context.Context, c *model.Caja) error
	UpdateTx(tx *gorm.DB, c *model.Caja) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error)
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Preload("Movimientos").First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) FindAbiertaPorSucursal(ctx context.Context, sucursalID uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Where("sucursal_id = ? AND estado = 'abierta'", sucursalID).
		Order("created_at DESC").
		First(&c).Error
	return &c, err
}

func (r *cajaRepo) LockAbiertasPorSucursalTx(tx *gorm.DB, sucursalID uuid.UUID) ([]model.Caja, error) {
	var cajas []model.Caja
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sucursal_id = ? AND estado = 'abierta'", sucursalID).
		Order("created_at DESC").
		Find(&cajas).Error
	return cajas, err
}

func (r *cajaRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) CreateTx(tx *gorm.DB, c *model.Caja) error {
	return tx.Create(c).Error
}

func (r *cajaRepo) Update(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) UpdateTx(tx *gorm.DB, c *model.Caja) error {
	return tx.Save(c).Error
}

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).Where("caja_id = ?", cajaID).
		Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) DB() *gorm.DB { return r.db }
