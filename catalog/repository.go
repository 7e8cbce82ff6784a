package catalog

import "context"

/* Small interfaces, composed. Context first on everything that does I/O. */

// Reader provides the query side of the catalog store
type Reader interface {
	SelectBook(ctx context.Context, id int64) (Book, error)
	SelectBooks(ctx context.Context, q ListQuery) ([]Entry, error)
	SelectAuthor(ctx context.Context, id int64) (Author, error)
	SelectAuthors(ctx context.Context) ([]Author, error)
}

// Writer provides the mutation side of the catalog store.
// Every method runs in its own transaction.
type Writer interface {
	// InsertAuthor fails with ErrDuplicate when the name is taken
	InsertAuthor(ctx context.Context, a Author) (Author, error)
	// InsertBook fails with ErrDuplicate or ErrUnknownAuthor
	InsertBook(ctx context.Context, b Book) (Book, error)
	// DeleteBook removes the book and, when it was the last one, its author.
	// It returns the deleted title.
	DeleteBook(ctx context.Context, id int64) (string, error)
}

// Repository is the full catalog store
type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
