package repository

// Thin CRUD repositories: sucursales, categorías, proveedores. No business
// rules here — the transactional core only reads these by id.

import (
	"context"

	"nexopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SucursalRepository interface {
	Create(ctx context.Context, s *model.Sucursal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error)
	List(ctx context.Context) ([]model.Sucursal, error)
	Update(ctx context.Context, s *model.Sucursal) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type sucursalRepo struct{ db *gorm.DB }

func NewSucursalRepository(db *gorm.DB) SucursalRepository { return &sucursalRepo{db: db} }

func (r *sucursalRepo) Create(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sucursalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error) {
	var s model.Sucursal
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *sucursalRepo) List(ctx context.Context) ([]model.Sucursal, error) {
	var sucursales []model.Sucursal
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&sucursales).Error
	return sucursales, err
}

func (r *sucursalRepo) Update(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sucursalRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Sucursal{}).Where("id = ?", id).Update("activo", false).Error
}

type CategoriaRepository interface {
	Create(ctx context.Context, c *model.Categoria) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	List(ctx context.Context) ([]model.Categoria, error)
	Update(ctx context.Context, c *model.Categoria) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository { return &categoriaRepo{db: db} }

func (r *categoriaRepo) Create(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *categoriaRepo) List(ctx context.Context) ([]model.Categoria, error) {
	var categorias []model.Categoria
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&categorias).Error
	return categorias, err
}

func (r *categoriaRepo) Update(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Categoria{}, id).Error
}

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	List(ctx context.Context) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *proveedorRepo) List(ctx context.Context) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Update("activo", false).Error
}
