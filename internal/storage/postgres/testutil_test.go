package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL container for testing.
// Returns a cleanup function that must be called after tests complete.
// Migrations are applied by the caller via the migrations package; they are
// not run here to avoid an import cycle with this package.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	applySchema(t, ctx, pool)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// applySchema creates the token_details table. Mirrors
// migrations/postgres/001_token_details.sql, which the binary applies at
// startup.
func applySchema(t *testing.T, ctx context.Context, pool *Pool) {
	t.Helper()

	schema := `
		CREATE TABLE IF NOT EXISTS token_details (
			id         BIGSERIAL PRIMARY KEY,
			address    TEXT        NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL,
			data       JSONB
		);
		CREATE INDEX IF NOT EXISTS idx_token_details_address ON token_details (address);
	`
	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err, "failed to apply schema")
}
