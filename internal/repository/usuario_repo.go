package repository

import (
	"context"

	"nexopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("username = ? AND activo = true", username).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	q := r.db.WithContext(ctx)
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}
