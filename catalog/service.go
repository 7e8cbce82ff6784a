package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

/* Service is an API, so pointer semantics. It owns no state besides its
 * collaborators: the store handle is injected, never global.
 */

// UseCase defines the user-facing catalog operations.
// Every error returned is a *Warning.
type UseCase interface {
	AddAuthor(ctx context.Context, form AuthorForm) (Author, error)
	AddBook(ctx context.Context, form BookForm) (Book, error)
	ListCatalog(ctx context.Context, sort, search string) ([]CatalogEntry, error)
	ViewBookDetail(ctx context.Context, id int64) (BookDetail, error)
	DeleteBook(ctx context.Context, id int64) (string, error)
	ListAuthors(ctx context.Context) ([]Author, error)
}

type Service struct {
	Repo     Repository
	Enricher Enricher
	Logger   zerolog.Logger
	// Now is the clock used to bound publication years
	Now func() time.Time
}

// NewService creates a catalog service with dependency injection
func NewService(repo Repository, enricher Enricher, logger zerolog.Logger) *Service {
	return &Service{
		Repo:     repo,
		Enricher: enricher,
		Logger:   logger,
		Now:      time.Now,
	}
}

// AddAuthor validates the form and registers a new author
func (s *Service) AddAuthor(ctx context.Context, form AuthorForm) (Author, error) {
	name, err := ValidateAuthorName(form.Name)
	if err != nil {
		return Author{}, warn(err, "%s", err)
	}
	birth, err := ValidateDate(form.BirthDate, "birth_date")
	if err != nil {
		return Author{}, warn(err, "%s", err)
	}
	death, err := ValidateDate(form.DateOfDeath, "date_of_death")
	if err != nil {
		return Author{}, warn(err, "%s", err)
	}
	if err := ValidateAuthorDates(birth, death); err != nil {
		return Author{}, warn(err, "%s", err)
	}

	a, err := s.Repo.InsertAuthor(ctx, Author{
		Name:        name,
		BirthDate:   birth,
		DateOfDeath: death,
	})
	switch {
	case errors.Is(err, ErrDuplicate):
		return Author{}, warn(err, "Author %q already exists.", name)
	case err != nil:
		s.Logger.Error().Err(err).Str("author", name).Msg("inserting author")
		return Author{}, warn(fmt.Errorf("inserting author: %w", err), "Could not save author %q.", name)
	}
	s.Logger.Info().Int64("author_id", a.ID).Str("author", a.Name).Msg("author added")
	return a, nil
}

// AddBook validates the form, enriches it and registers a new book.
// Cover URL and description supplied in the form take precedence over
// fetched metadata; the lookup is skipped when both are supplied.
func (s *Service) AddBook(ctx context.Context, form BookForm) (Book, error) {
	title, err := ValidateTitle(form.Title)
	if err != nil {
		return Book{}, warn(err, "%s", err)
	}
	isbn, err := ValidateISBN(form.ISBN)
	if err != nil {
		return Book{}, warn(err, "%s", err)
	}
	year, err := ValidatePublicationYear(form.PublicationYear, s.Now().Year())
	if err != nil {
		return Book{}, warn(err, "%s", err)
	}

	b := Book{
		ISBN:            isbn,
		Title:           title,
		PublicationYear: year,
		AuthorID:        form.AuthorID,
		CoverURL:        strings.TrimSpace(form.CoverURL),
		Description:     strings.TrimSpace(form.Description),
	}
	if b.CoverURL == "" || b.Description == "" {
		meta := s.Enricher.FetchBookMetadata(ctx, isbn)
		if b.CoverURL == "" {
			b.CoverURL = meta.CoverURL
		}
		if b.Description == "" {
			b.Description = meta.Description
		}
	}

	saved, err := s.Repo.InsertBook(ctx, b)
	switch {
	case errors.Is(err, ErrDuplicate):
		return Book{}, warn(err, "A book with ISBN %s already exists.", isbn)
	case errors.Is(err, ErrUnknownAuthor):
		return Book{}, warn(err, "Author %d does not exist.", form.AuthorID)
	case err != nil:
		s.Logger.Error().Err(err).Str("isbn", isbn).Msg("inserting book")
		return Book{}, warn(fmt.Errorf("inserting book: %w", err), "Could not save book %q.", title)
	}
	s.Logger.Info().Int64("book_id", saved.ID).Str("isbn", saved.ISBN).Msg("book added")
	return saved, nil
}

// ListCatalog returns the sorted or searched catalog, each row with a cover.
// The cover lookup is one enrichment call per row; a failed lookup falls
// back to the cover stored at creation time.
func (s *Service) ListCatalog(ctx context.Context, sort, search string) ([]CatalogEntry, error) {
	entries, err := s.Repo.SelectBooks(ctx, ListQuery{
		Sort:   NewSortOrder(sort),
		Search: strings.TrimSpace(search),
	})
	if err != nil {
		s.Logger.Error().Err(err).Msg("selecting books")
		return nil, warn(fmt.Errorf("selecting books: %w", err), "Could not load the catalog.")
	}

	result := make([]CatalogEntry, 0, len(entries))
	for _, e := range entries {
		cover := s.Enricher.FetchBookMetadata(ctx, e.Book.ISBN).CoverURL
		if cover == "" {
			cover = e.Book.CoverURL
		}
		result = append(result, CatalogEntry{
			Book:     e.Book,
			Author:   e.Author,
			CoverURL: cover,
		})
	}
	return result, nil
}

// ViewBookDetail returns a book with its author and fresh metadata
func (s *Service) ViewBookDetail(ctx context.Context, id int64) (BookDetail, error) {
	b, err := s.Repo.SelectBook(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return BookDetail{}, warn(err, "Book not found.")
	case err != nil:
		s.Logger.Error().Err(err).Int64("book_id", id).Msg("selecting book")
		return BookDetail{}, warn(fmt.Errorf("selecting book: %w", err), "Could not load book.")
	}

	a, err := s.Repo.SelectAuthor(ctx, b.AuthorID)
	if err != nil {
		s.Logger.Error().Err(err).Int64("author_id", b.AuthorID).Msg("selecting author")
		return BookDetail{}, warn(fmt.Errorf("selecting author: %w", err), "Could not load book.")
	}

	meta := s.Enricher.FetchBookMetadata(ctx, b.ISBN)
	detail := BookDetail{
		Book:        b,
		Author:      a,
		CoverURL:    meta.CoverURL,
		Description: meta.Description,
	}
	if detail.CoverURL == "" {
		detail.CoverURL = b.CoverURL
	}
	if detail.Description == "" {
		detail.Description = b.Description
	}
	return detail, nil
}

// DeleteBook removes a book, and its author when no other book remains
func (s *Service) DeleteBook(ctx context.Context, id int64) (string, error) {
	title, err := s.Repo.DeleteBook(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return "", warn(err, "Book not found.")
	case err != nil:
		s.Logger.Error().Err(err).Int64("book_id", id).Msg("deleting book")
		return "", warn(fmt.Errorf("deleting book: %w", err), "Could not delete book.")
	}
	s.Logger.Info().Int64("book_id", id).Str("title", title).Msg("book deleted")
	return fmt.Sprintf("Book %q deleted successfully.", title), nil
}

// ListAuthors returns every author ordered by name
func (s *Service) ListAuthors(ctx context.Context) ([]Author, error) {
	all, err := s.Repo.SelectAuthors(ctx)
	if err != nil {
		s.Logger.Error().Err(err).Msg("selecting authors")
		return nil, warn(fmt.Errorf("selecting authors: %w", err), "Could not load authors.")
	}
	return all, nil
}
