package catalog

// Book is a catalog entry owned by exactly one Author
type Book struct {
	ID              int64
	ISBN            string
	Title           string
	PublicationYear *int
	AuthorID        int64
	CoverURL        string
	Description     string
}

// BookForm is the raw key-value input for registering a book.
// CoverURL and Description are optional overrides for enrichment.
type BookForm struct {
	ISBN            string
	Title           string
	PublicationYear string
	AuthorID        int64
	CoverURL        string
	Description     string
}

// Entry is a book joined with its author, as returned by the store
type Entry struct {
	Book   Book
	Author Author
}

// CatalogEntry is a row of the browsable catalog
type CatalogEntry struct {
	Book     Book
	Author   Author
	CoverURL string
}

// BookDetail is everything shown on a book's page
type BookDetail struct {
	Book        Book
	Author      Author
	CoverURL    string
	Description string
}
