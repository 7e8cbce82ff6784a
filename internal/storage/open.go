// Package storage picks the catalog repository for the configured driver.
package storage

import (
	"context"
	"fmt"

	"github.com/marcelsud/book-catalog/catalog"
	"github.com/marcelsud/book-catalog/catalog/postgres"
	"github.com/marcelsud/book-catalog/catalog/sqlite"
	"github.com/marcelsud/book-catalog/config"
	"github.com/marcelsud/book-catalog/metrics"
)

// Store is everything the binaries need from a backend
type Store interface {
	catalog.Repository
	metrics.Counter
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
}

var (
	_ Store = (*postgres.Repository)(nil)
	_ Store = (*sqlite.Repository)(nil)
)

// Open connects to the configured backend. The schema is not touched.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		if err := cfg.ValidatePostgres(); err != nil {
			return nil, fmt.Errorf("invalid postgres configuration: %w", err)
		}
		repo, err := postgres.NewRepositoryWithPoolConfig(
			cfg.PostgresConnectionString(),
			cfg.GetPostgresMaxOpenConns(),
			cfg.GetPostgresMaxIdleConns(),
			cfg.GetPostgresConnMaxLifeMinutes(),
		)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		return repo, nil
	case config.DriverSQLite:
		repo, err := sqlite.NewRepository(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}
