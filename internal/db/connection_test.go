package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/sebuszqo/FinanceTracker/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		DBDriver:           config.DriverSQLite,
		DBConnectionString: "file:" + filepath.Join(t.TempDir(), "test.db"),
		DBMaxOpenConns:     1,
		DBMaxIdleConns:     1,
		DBConnMaxLifetime:  time.Minute,
	}
}

func TestRunMigrations_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	require.NoError(t, RunMigrations(cfg.DBDriver, cfg.DBConnectionString, log.Nop()))
	// second run is a no-op
	require.NoError(t, RunMigrations(cfg.DBDriver, cfg.DBConnectionString, log.Nop()))

	service, err := NewDBService(cfg, log.Nop())
	require.NoError(t, err)
	defer service.Close()

	for _, table := range []string{"users", "categories", "expenses", "income", "budgets", "goals"} {
		var name string
		err := service.DB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		assert.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	err := RunMigrations("oracle", "whatever", log.Nop())
	assert.Error(t, err)
}

func TestNewDBService_MissingConnectionString(t *testing.T) {
	_, err := NewDBService(&config.Config{DBDriver: config.DriverSQLite}, log.Nop())
	assert.EqualError(t, err, "missing DB_CONNECTION_STRING in environment variables")
}

func TestHealth(t *testing.T) {
	cfg := sqliteConfig(t)
	service, err := NewDBService(cfg, log.Nop())
	require.NoError(t, err)
	defer service.Close()

	stats := service.Health(context.Background())
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, config.DriverSQLite, stats["driver"])
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)
	require.NoError(t, RunMigrations(cfg.DBDriver, cfg.DBConnectionString, log.Nop()))
	service, err := NewDBService(cfg, log.Nop())
	require.NoError(t, err)
	defer service.Close()

	insert := `INSERT INTO users (id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1, 'A', 'B', 'dup@example.com', 'x', $2, $3)`
	now := time.Now().UTC()

	_, err = service.DB.Exec(insert, uuid.NewString(), now, now)
	require.NoError(t, err)

	_, err = service.DB.Exec(insert, uuid.NewString(), now, now)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", sqliteDSN("file:a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", sqliteDSN("file:a.db?mode=rwc"))
	assert.Equal(t, "file:a.db?_pragma=journal_mode(WAL)", sqliteDSN("file:a.db?_pragma=journal_mode(WAL)"))
}
