package metrics

import (
	"context"
	"fmt"
	"time"
)

// Counter is the part of a catalog repository the collector needs
type Counter interface {
	CountAuthors(ctx context.Context) (int64, error)
	CountBooks(ctx context.Context) (int64, error)
}

// StoreCollector implements Collector by counting rows in the catalog store
type StoreCollector struct {
	store Counter
}

// NewStoreCollector creates a collector backed by a catalog repository
func NewStoreCollector(store Counter) *StoreCollector {
	return &StoreCollector{store: store}
}

// Collect gathers all metrics from the store
func (c *StoreCollector) Collect(ctx context.Context) (Metrics, error) {
	authors, err := c.GetAuthorCount(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting author count: %w", err)
	}

	books, err := c.GetBookCount(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting book count: %w", err)
	}

	return Metrics{
		Authors:   authors,
		Books:     books,
		Timestamp: time.Now(),
	}, nil
}

func (c *StoreCollector) GetAuthorCount(ctx context.Context) (int64, error) {
	return c.store.CountAuthors(ctx)
}

func (c *StoreCollector) GetBookCount(ctx context.Context) (int64, error) {
	return c.store.CountBooks(ctx)
}
