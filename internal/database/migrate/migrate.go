// Package migrate applies the output store schema migrations.
package migrate

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	appConfig "github.com/festy23/nba_pipeline/internal/config"
	"github.com/festy23/nba_pipeline/internal/database/config"
)

//go:embed migrations
var migrations embed.FS

// GetMigrationsPath returns the MIGRATIONS_PATH override, or "" for the
// embedded migrations.
func GetMigrationsPath() string {
	return appConfig.GetEnv("MIGRATIONS_PATH", "")
}

// Migrate applies pending migrations for driver (postgres or sqlite).
func Migrate(db *gorm.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var instance database.Driver
	switch driver {
	case config.DriverPostgres:
		instance, err = postgres.WithInstance(sqlDB, &postgres.Config{})
	case config.DriverSQLite:
		instance, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	default:
		return fmt.Errorf("unsupported migration driver: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s driver: %w", driver, err)
	}

	m, err := newMigrate(driver, instance)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func newMigrate(driver string, instance database.Driver) (*migrate.Migrate, error) {
	if dir := GetMigrationsPath(); dir != "" {
		migrationsPath, err := filepath.Abs(filepath.Join(dir, driver))
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for migrations: %w", err)
		}
		if _, statErr := os.Stat(migrationsPath); os.IsNotExist(statErr) {
			return nil, fmt.Errorf("migrations directory does not exist: %s", migrationsPath)
		}
		return migrate.NewWithDatabaseInstance("file://"+migrationsPath, driver, instance)
	}

	source, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", source, driver, instance)
}
