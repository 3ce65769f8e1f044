package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestGetMigrationsPath(t *testing.T) {
	t.Run("embedded by default", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", "")
		assert.Equal(t, "", GetMigrationsPath())
	})

	t.Run("custom path from env", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", "custom/migrations")
		assert.Equal(t, "custom/migrations", GetMigrationsPath())
	})
}

func TestMigrate_SQLite(t *testing.T) {
	t.Setenv("MIGRATIONS_PATH", "")
	db := createTestDB(t)

	require.NoError(t, Migrate(db, "sqlite"))

	assert.True(t, db.Migrator().HasTable("games"))
	assert.True(t, db.Migrator().HasTable("pipeline_runs"))
	assert.True(t, db.Migrator().HasColumn("games", "is_rivalry"))
	assert.True(t, db.Migrator().HasColumn("pipeline_runs", "home_win_rate"))

	t.Run("second run is a no-op", func(t *testing.T) {
		assert.NoError(t, Migrate(db, "sqlite"))
	})
}

func TestMigrate_FileSourceOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sqlite"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "sqlite", "000001_probe.up.sql"),
		[]byte("CREATE TABLE probe (id INTEGER PRIMARY KEY);"),
		0o600,
	))
	t.Setenv("MIGRATIONS_PATH", dir)

	db := createTestDB(t)
	require.NoError(t, Migrate(db, "sqlite"))

	assert.True(t, db.Migrator().HasTable("probe"))
	assert.False(t, db.Migrator().HasTable("games"))
}

func TestMigrate_Errors(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		err := Migrate(nil, "sqlite")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database connection is nil")
	})

	t.Run("unsupported driver", func(t *testing.T) {
		err := Migrate(createTestDB(t), "mysql")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported migration driver")
	})

	t.Run("missing override directory", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", "/non/existent/path")

		err := Migrate(createTestDB(t), "sqlite")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "migrations directory does not exist")
	})

	t.Run("closed connection", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", "")
		db := createTestDB(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		assert.Error(t, Migrate(db, "sqlite"))
	})

	t.Run("postgres driver on sqlite connection", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", "")
		err := Migrate(createTestDB(t), "postgres")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create postgres driver")
	})
}
