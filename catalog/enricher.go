package catalog

import "context"

// Metadata is best-effort data about a book from an external source.
// Empty fields mean the source had nothing, or could not be reached.
type Metadata struct {
	CoverURL    string
	Description string
}

// Enricher looks up Metadata by ISBN. Implementations never fail: every
// error degrades to the zero Metadata.
type Enricher interface {
	FetchBookMetadata(ctx context.Context, isbn string) Metadata
}
