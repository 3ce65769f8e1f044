// Package pool configures the store's connection pool per driver.
package pool

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	appConfig "github.com/festy23/nba_pipeline/internal/config"
)

// Config holds database connection pool configuration.
type Config struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns the pool for a networked database.
func DefaultPoolConfig() Config {
	return Config{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}
}

// SQLitePoolConfig returns the pool for a SQLite file. SQLite allows a single
// writer, so the pool holds one connection that never expires.
func SQLitePoolConfig() Config {
	return Config{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// ForDriver returns the pool for a driver, with DB_POOL_* overrides applied.
func ForDriver(driver string) Config {
	if driver == "sqlite" {
		return SQLitePoolConfig()
	}
	cfg := DefaultPoolConfig()
	cfg.MaxOpenConns = appConfig.GetEnvInt("DB_POOL_MAX_OPEN", cfg.MaxOpenConns)
	cfg.MaxIdleConns = appConfig.GetEnvInt("DB_POOL_MAX_IDLE", cfg.MaxIdleConns)
	cfg.ConnMaxLifetime = appConfig.GetEnvDuration("DB_POOL_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = appConfig.GetEnvDuration("DB_POOL_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime)
	return cfg
}

// Validate validates pool configuration.
func (c Config) Validate() error {
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("MaxOpenConns must be greater than 0")
	}
	if c.MaxIdleConns < 0 {
		return fmt.Errorf("MaxIdleConns must be non-negative")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf(
			"MaxIdleConns (%d) cannot be greater than MaxOpenConns (%d)",
			c.MaxIdleConns, c.MaxOpenConns)
	}
	return nil
}

// SetupConnectionPool applies pool settings to db.
func SetupConnectionPool(db *gorm.DB, poolCfg Config) error {
	if err := poolCfg.Validate(); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(poolCfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(poolCfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(poolCfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(poolCfg.ConnMaxIdleTime)

	return nil
}
