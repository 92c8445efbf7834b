// Package dbtest provides migrated throwaway databases for repository tests.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/config"
	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/log"
)

// NewSQLite returns a migrated SQLite database living in the test's temp dir.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver:           config.DriverSQLite,
		DBConnectionString: "file:" + filepath.Join(t.TempDir(), "finance.db"),
		DBMaxOpenConns:     1,
		DBMaxIdleConns:     1,
		DBConnMaxLifetime:  time.Minute,
	}

	if err := database.RunMigrations(cfg.DBDriver, cfg.DBConnectionString, log.Nop()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	service, err := database.NewDBService(cfg, log.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { service.Close() })

	return service.DB
}

// InsertUser stores a bare user row so foreign keys from finance tables resolve.
func InsertUser(t testing.TB, db *sql.DB, id, email string) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO users (id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, id, "Test", "User", email, "hash", now, now)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
}
