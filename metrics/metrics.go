package metrics

import (
	"context"
	"time"
)

// Metrics is a snapshot of the catalog size.
type Metrics struct {
	// Authors is the number of stored authors
	Authors int64 `json:"authors"`

	// Books is the number of stored books
	Books int64 `json:"books"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting catalog metrics.
type Collector interface {
	// Collect gathers current metrics from the store
	Collect(ctx context.Context) (Metrics, error)

	// GetAuthorCount returns the number of stored authors
	GetAuthorCount(ctx context.Context) (int64, error)

	// GetBookCount returns the number of stored books
	GetBookCount(ctx context.Context) (int64, error)
}
