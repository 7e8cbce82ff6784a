//go:build integration

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

/*
Test helpers that start a real PostgreSQL in Docker.
Set TESTCONTAINERS_REUSE_ENABLE=true to share the container between runs.
*/

const (
	defaultDatabase = "testdb"
	defaultUser     = "testuser"
	defaultPassword = "testpass"
)

// SetupTestRepository starts PostgreSQL, creates the schema and returns a
// repository on it. The container is terminated on test cleanup.
func SetupTestRepository(t testing.TB, ctx context.Context) *Repository {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(defaultDatabase),
		postgres.WithUsername(defaultUser),
		postgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(context.Background()) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	repo, err := NewRepository(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close(context.Background()) })

	require.NoError(t, repo.CreateSchema(ctx))
	return repo
}

// AssertCounts checks how many authors and books are stored
func AssertCounts(t testing.TB, ctx context.Context, repo *Repository, authors, books int64) {
	t.Helper()

	n, err := repo.CountAuthors(ctx)
	require.NoError(t, err)
	require.Equal(t, authors, n, "authors")

	n, err = repo.CountBooks(ctx)
	require.NoError(t, err)
	require.Equal(t, books, n, "books")
}
