package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sangkips/shop-pos/internal/config"
	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// NewDB opens the configured SQL store. The memory driver has no database
// and must be handled by the caller.
func NewDB(cfg *config.StoreConfig, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
	}

	log.WithField("driver", cfg.Driver).Info("Successfully connected to database")
	return db, nil
}

func dialectorFor(cfg *config.StoreConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		path := cfg.SQLitePath
		if path == "" {
			path = "pos.db"
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
			}
		}
		return sqlite.Open(path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"), nil
	case DriverPostgres:
		return postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), nil
	case DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	err := db.AutoMigrate(
		&entity.StateRecord{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
