package repository

import (
	"context"

	"nexopos/internal/dto"
	"nexopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
//
// Methods with a Tx suffix take an explicit *gorm.DB transaction handle; the
// caller owns the transaction lifetime.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// LockByIDTx loads the product under SELECT ... FOR UPDATE so that two
	// concurrent sales against the same product serialize at the row level.
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	// FindByIDTx reads the product inside tx without locking (price snapshots).
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	// UpdateStockTx applies a signed stock delta inside tx.
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	// RegistrarMovimientoTx writes an immutable stock-audit row inside tx.
	RegistrarMovimientoTx(tx *gorm.DB, m *model.MovimientoStock) error

	ListMovimientos(ctx context.Context, productoID uuid.UUID) ([]model.MovimientoStock, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").Preload("Proveedor").First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo_barras = ? AND activo = true", barcode).First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos (default)
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Barcode != "" {
		q = q.Where("codigo_barras = ?", filter.Barcode)
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.CategoriaID != "" {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}
	if filter.SucursalID != "" {
		q = q.Where("sucursal_id = ?", filter.SucursalID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Categoria").Preload("Proveedor").
		Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.First(&p, id).Error
	return &p, err
}

func (r *productoRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *productoRepo) RegistrarMovimientoTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *productoRepo) ListMovimientos(ctx context.Context, productoID uuid.UUID) ([]model.MovimientoStock, error) {
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).Where("producto_id = ?", productoID).
		Order("created_at DESC").Find(&movs).Error
	return movs, err
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
