//go:build integration

package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/config"
	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/log"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRepositorySuitePostgres(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("finance"),
		postgres.WithUsername("finance"),
		postgres.WithPassword("finance"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(config.DriverPostgres, dsn, log.Nop()))

	service, err := database.NewDBService(&config.Config{
		DBDriver:           config.DriverPostgres,
		DBConnectionString: dsn,
		DBMaxOpenConns:     5,
		DBMaxIdleConns:     5,
		DBConnMaxLifetime:  time.Minute,
	}, log.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { service.Close() })

	suite.Run(t, &RepositorySuite{openDB: func(t testing.TB) *sql.DB {
		_, err := service.DB.Exec(`TRUNCATE users, categories, expenses, income, budgets, goals CASCADE`)
		require.NoError(t, err)
		return service.DB
	}})
}
