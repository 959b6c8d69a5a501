package repository

import (
	"context"
	"time"

	"nexopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CotizacionRepository interface {
	// LastCodigoTx returns the codigo of the most recently issued cotización
	// under SELECT ... FOR UPDATE, or "" when the table is empty. Locking the
	// latest row serializes concurrent code generation; the unique index on
	// codigo is the backstop for the empty-table window.
	LastCodigoTx(tx *gorm.DB) (string, error)
	CreateTx(tx *gorm.DB, c *model.Cotizacion) error
	SaveTx(tx *gorm.DB, c *model.Cotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cotizacion, error)
	List(ctx context.Context) ([]model.Cotizacion, error)
	DeleteLineasTx(tx *gorm.DB, cotizacionID uuid.UUID) error
	CreateLineasTx(tx *gorm.DB, lineas []model.CotizacionProducto) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// PDF render bookkeeping (worker + retry cron).
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
	ListSinPDF(ctx context.Context, olderThan time.Time, limit int) ([]model.Cotizacion, error)

	DB() *gorm.DB
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) LastCodigoTx(tx *gorm.DB) (string, error) {
	var c model.Cotizacion
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("created_at DESC").
		First(&c).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return c.Codigo, nil
}

func (r *cotizacionRepo) CreateTx(tx *gorm.DB, c *model.Cotizacion) error {
	return tx.Create(c).Error
}

func (r *cotizacionRepo) SaveTx(tx *gorm.DB, c *model.Cotizacion) error {
	return tx.Save(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Sucursal").Preload("Plantilla").
		Preload("Productos.Producto").
		First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := tx.Preload("Productos").First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) List(ctx context.Context) ([]model.Cotizacion, error) {
	var cotizaciones []model.Cotizacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Sucursal").Preload("Plantilla").
		Preload("Productos.Producto").
		Order("created_at DESC").
		Find(&cotizaciones).Error
	return cotizaciones, err
}

func (r *cotizacionRepo) DeleteLineasTx(tx *gorm.DB, cotizacionID uuid.UUID) error {
	return tx.Where("cotizacion_id = ?", cotizacionID).Delete(&model.CotizacionProducto{}).Error
}

func (r *cotizacionRepo) CreateLineasTx(tx *gorm.DB, lineas []model.CotizacionProducto) error {
	return tx.Create(&lineas).Error
}

func (r *cotizacionRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := r.DeleteLineasTx(tx, id); err != nil {
		return err
	}
	return tx.Delete(&model.Cotizacion{}, id).Error
}

func (r *cotizacionRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Cotizacion{}).
		Where("id = ?", id).Update("pdf_path", path).Error
}

func (r *cotizacionRepo) ListSinPDF(ctx context.Context, olderThan time.Time, limit int) ([]model.Cotizacion, error) {
	var cotizaciones []model.Cotizacion
	err := r.db.WithContext(ctx).
		Where("pdf_path IS NULL AND created_at < ?", olderThan).
		Order("created_at ASC").
		Limit(limit).
		Find(&cotizaciones).Error
	return cotizaciones, err
}

func (r *cotizacionRepo) DB() *gorm.DB { return r.db }
