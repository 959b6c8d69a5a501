package repository

import (
	"context"

	"nexopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlantillaRepository interface {
	Create(ctx context.Context, p *model.PlantillaCotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PlantillaCotizacion, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PlantillaCotizacion, error)
	List(ctx context.Context) ([]model.PlantillaCotizacion, error)
	Update(ctx context.Context, p *model.PlantillaCotizacion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type plantillaRepo struct{ db *gorm.DB }

func NewPlantillaRepository(db *gorm.DB) PlantillaRepository { return &plantillaRepo{db: db} }

func (r *plantillaRepo) Create(ctx context.Context, p *model.PlantillaCotizacion) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *plantillaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PlantillaCotizacion, error) {
	var p model.PlantillaCotizacion
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *plantillaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PlantillaCotizacion, error) {
	var p model.PlantillaCotizacion
	err := tx.First(&p, id).Error
	return &p, err
}

func (r *plantillaRepo) List(ctx context.Context) ([]model.PlantillaCotizacion, error) {
	var plantillas []model.PlantillaCotizacion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&plantillas).Error
	return plantillas, err
}

func (r *plantillaRepo) Update(ctx context.Context, p *model.PlantillaCotizacion) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *plantillaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PlantillaCotizacion{}, id).Error
}
