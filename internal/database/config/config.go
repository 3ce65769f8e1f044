// Package config provides output store configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	appConfig "github.com/festy23/nba_pipeline/internal/config"
	"github.com/festy23/nba_pipeline/pkg/retry"
)

// Supported store drivers.
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds output store connection configuration.
type Config struct {
	// Driver selects the store: none, sqlite or postgres.
	Driver string
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string

	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
}

// LoadConfigFromEnv loads store configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Driver:     strings.ToLower(appConfig.GetEnv("DB_DRIVER", DriverNone)),
		SQLitePath: appConfig.GetEnv("DB_SQLITE_PATH", filepath.Join("data", "processed", "nba_games.sqlite")),
		Host:       appConfig.GetEnv("DB_HOST", "localhost"),
		User:       appConfig.GetEnv("DB_USER", "postgres"),
		Password:   appConfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:     appConfig.GetEnv("DB_NAME", "nba_games"),
		Port:       appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:    appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone:   appConfig.GetEnv("DB_TIMEZONE", "UTC"),
	}
}

// Enabled reports whether a store is configured.
func (c Config) Enabled() bool {
	return c.Driver != "" && c.Driver != DriverNone
}

// Validate validates store configuration.
func (c Config) Validate() error {
	switch c.Driver {
	case "", DriverNone:
		return nil
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Host == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER: %s (must be: none, sqlite, postgres)", c.Driver)
	}
	return nil
}

// BuildDSN constructs PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// BuildSQLiteDSN constructs the SQLite DSN. Writers wait on a locked file
// instead of failing immediately.
func BuildSQLiteDSN(cfg Config) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", cfg.SQLitePath)
}

// SanitizeError removes the password from connection error messages.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	errMsg := err.Error()
	if cfg.Password != "" {
		errMsg = strings.ReplaceAll(errMsg, cfg.Password, "***")
	}
	return fmt.Errorf("failed to connect to %s store: %s", cfg.Driver, errMsg)
}

// LoadRetryConfigFromEnv loads connection retry configuration for the driver.
func LoadRetryConfigFromEnv(driver string) retry.Config {
	cfg := retry.ForDriver(driver)
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	cfg.Multiplier = getEnvFloat("DB_RETRY_MULTIPLIER", cfg.Multiplier)
	return cfg
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := appConfig.GetEnv(key, "")
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}
