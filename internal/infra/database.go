package infra

import (
	"fmt"

	"nexopos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (partial unique indexes, check constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Exported so the
// integration tests can prepare a throwaway database the same way the server
// does.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Sucursal{},
		&model.Usuario{},
		&model.Categoria{},
		&model.Proveedor{},
		&model.Producto{},
		&model.MovimientoStock{},
		&model.Cliente{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.Caja{},
		&model.MovimientoCaja{},
		&model.PlantillaCotizacion{},
		&model.Cotizacion{},
		&model.CotizacionProducto{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that guards the core invariants at
// the database level:
//   - at most one caja "abierta" per sucursal (partial unique index)
//   - stock never negative (check constraint, backstop behind the row locks)
//
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cajas_abierta_por_sucursal') THEN
		    CREATE UNIQUE INDEX idx_cajas_abierta_por_sucursal
		        ON cajas (sucursal_id)
		        WHERE estado = 'abierta';
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_productos_stock_no_negativo') THEN
		    ALTER TABLE productos ADD CONSTRAINT chk_productos_stock_no_negativo CHECK (stock >= 0);
		  END IF;
		END $$`,
		// partial index for the retry cron query over unrendered cotizaciones
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_cotizaciones_sin_pdf') THEN
		    CREATE INDEX idx_cotizaciones_sin_pdf
		        ON cotizaciones (created_at)
		        WHERE pdf_path IS NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
