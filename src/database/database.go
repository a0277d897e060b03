package database

import (
	"fmt"

	"schnorr-batch/pkg/logger"
	"schnorr-batch/src/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func ConnectToDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSqlite:
		dialector = sqlite.Open(cfg.ConnectionString)
	case DriverPostgres:
		dialector = postgres.Open(cfg.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot establish %s connection: %w", cfg.Driver, err)
	}

	if cfg.Migrate {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	migrationLogger := logger.Default()
	migrationLogger.Info("Running migrations for tables... ")

	if err := db.AutoMigrate(&model.BatchRun{}); err != nil {
		return fmt.Errorf("migrating database failed: %w", err)
	}

	migrationLogger.Info("All tables created (or already exist).")
	return nil
}
