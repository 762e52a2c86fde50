package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/linskybing/corpsite-go/internal/config/db"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// SetupPostgres returns a migrated database. TEST_DB_DSN points the tests at
// an existing server; otherwise a throwaway container is started.
func SetupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("corpsite"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = container.Terminate(context.Background()) })

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)
	}

	conn, err := db.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(repository.Models()...))
	t.Cleanup(func() {
		conn.Exec("TRUNCATE job_applications, admin_users, audit_logs RESTART IDENTITY")
	})
	return conn
}
