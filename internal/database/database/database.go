// Package database opens the output store for the configured driver.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/festy23/nba_pipeline/internal/database/config"
	"github.com/festy23/nba_pipeline/internal/database/pool"
	"github.com/festy23/nba_pipeline/pkg/retry"
)

// ErrStoreDisabled is returned when no store driver is configured.
var ErrStoreDisabled = errors.New("output store is disabled")

const connectTimeout = 2 * time.Minute

// New opens the store configured by environment variables.
func New(ctx context.Context, logger *zap.SugaredLogger) (*gorm.DB, error) {
	return NewWithConfig(ctx, config.LoadConfigFromEnv(), logger)
}

// NewWithConfig opens the store with retries and applies the driver's pool.
func NewWithConfig(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return nil, ErrStoreDisabled
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	retryCfg := config.LoadRetryConfigFromEnv(cfg.Driver)
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("store connection failed, retrying",
			"driver", cfg.Driver,
			"attempt", attempt,
			"delay", delay,
			"error", config.SanitizeError(err, cfg),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		db, err := gorm.Open(dialector, &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Warn),
		})
		if err != nil {
			return nil, err
		}
		if err := HealthCheck(ctx, db); err != nil {
			_ = Close(db)
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, pool.ForDriver(cfg.Driver)); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("output store connected", "driver", cfg.Driver)
	return db, nil
}

func dialectorFor(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(config.BuildDSN(cfg)), nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		return sqlite.Open(config.BuildSQLiteDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
