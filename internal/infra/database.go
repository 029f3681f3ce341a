package infra

import (
	"fmt"

	"rapifarma/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all models, then applies the idempotent SQL patches that GORM cannot
// express (partial indexes).
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

// RunMigrations creates/updates the schema. Also used by the integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Farmacia{},
		&model.Cajero{},
		&model.Cuadre{},
		&model.Gasto{},
		&model.CuentaPorPagar{},
		&model.PagoCPP{},
		&model.Banco{},
		&model.MovimientoBanco{},
		&model.Meta{},
		&model.Reporte{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// partial index for the retry cron query over failed exports
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'reportes')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_reportes_pending_retry') THEN
		    CREATE INDEX idx_reportes_pending_retry
		        ON reportes (next_retry_at)
		        WHERE estado = 'pendiente' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
		// composite index for the ledger listing (bancoId + fecha)
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'movimiento_bancos')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimiento_bancos_banco_fecha') THEN
		    CREATE INDEX idx_movimiento_bancos_banco_fecha
		        ON movimiento_bancos (banco_id, fecha);
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
