package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReporteRepository runs the read-only aggregation queries behind the report
// endpoints. It only ever reads committed data — no locks, no mutations.
type ReporteRepository interface {
	ResumenVentas(ctx context.Context, desde, hasta, sucursalID string) (ingresos, costos decimal.Decimal, cantidad int64, err error)
	SumEgresos(ctx context.Context, desde, hasta, sucursalID string) (decimal.Decimal, error)
	VentasPorProducto(ctx context.Context, desde, hasta, sucursalID string) ([]ProductoVendido, error)
}

// ProductoVendido is one aggregation row of VentasPorProducto.
type ProductoVendido struct {
	ProductoID string          `gorm:"column:producto_id"`
	Nombre     string          `gorm:"column:nombre"`
	Cantidad   int64           `gorm:"column:cantidad"`
	Ingresos   decimal.Decimal `gorm:"column:ingresos"`
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) ResumenVentas(ctx context.Context, desde, hasta, sucursalID string) (decimal.Decimal, decimal.Decimal, int64, error) {
	var row struct {
		Ingresos decimal.Decimal
		Costos   decimal.Decimal
		Cantidad int64
	}
	q := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(v.monto_total), 0)          AS ingresos,
		       COALESCE(SUM(d.cantidad * p.costo), 0)   AS costos,
		       COUNT(DISTINCT v.id)                     AS cantidad
		FROM ventas v
		JOIN detalle_venta d ON d.venta_id = v.id
		JOIN productos p     ON p.id = d.producto_id
		WHERE DATE(v.fecha) BETWEEN ? AND ?
		  AND (?::uuid IS NULL OR v.sucursal_id = ?::uuid)
	`, desde, hasta, nullable(sucursalID), nullable(sucursalID))
	if err := q.Scan(&row).Error; err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}
	return row.Ingresos, row.Costos, row.Cantidad, nil
}

func (r *reporteRepo) SumEgresos(ctx context.Context, desde, hasta, sucursalID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(c.egresos), 0)
		FROM cajas c
		WHERE DATE(c.created_at) BETWEEN ? AND ?
		  AND (?::uuid IS NULL OR c.sucursal_id = ?::uuid)
	`, desde, hasta, nullable(sucursalID), nullable(sucursalID)).Scan(&total).Error
	return total, err
}

func (r *reporteRepo) VentasPorProducto(ctx context.Context, desde, hasta, sucursalID string) ([]ProductoVendido, error) {
	var rows []ProductoVendido
	err := r.db.WithContext(ctx).Raw(`
		SELECT d.producto_id                                   AS producto_id,
		       p.nombre                                        AS nombre,
		       SUM(d.cantidad)                                 AS cantidad,
		       COALESCE(SUM(d.cantidad * d.precio_unitario), 0) AS ingresos
		FROM detalle_venta d
		JOIN ventas v    ON v.id = d.venta_id
		JOIN productos p ON p.id = d.producto_id
		WHERE DATE(v.fecha) BETWEEN ? AND ?
		  AND (?::uuid IS NULL OR v.sucursal_id = ?::uuid)
		GROUP BY d.producto_id, p.nombre
		ORDER BY ingresos DESC
	`, desde, hasta, nullable(sucursalID), nullable(sucursalID)).Scan(&rows).Error
	return rows, err
}

// nullable maps "" to a SQL NULL parameter.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
