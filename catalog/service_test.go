package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/marcelsud/book-catalog/catalog"
	"github.com/marcelsud/book-catalog/catalog/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*catalog.Service, *mocks.Repository, *mocks.Enricher) {
	t.Helper()
	repo := mocks.NewRepository(t)
	enricher := mocks.NewEnricher(t)
	s := catalog.NewService(repo, enricher, zerolog.Nop())
	s.Now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s, repo, enricher
}

func warningOf(t *testing.T, err error) *catalog.Warning {
	t.Helper()
	var w *catalog.Warning
	require.ErrorAs(t, err, &w)
	return w
}

func TestAddAuthor(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		s, repo, _ := newService(t)
		birth := time.Date(1892, 1, 3, 0, 0, 0, 0, time.UTC)
		death := time.Date(1973, 9, 2, 0, 0, 0, 0, time.UTC)
		repo.On("InsertAuthor", ctx, catalog.Author{Name: "J. Tolkien", BirthDate: &birth, DateOfDeath: &death}).
			Return(catalog.Author{ID: 1, Name: "J. Tolkien", BirthDate: &birth, DateOfDeath: &death}, nil)

		a, err := s.AddAuthor(ctx, catalog.AuthorForm{Name: " J. Tolkien ", BirthDate: "1892-01-03", DateOfDeath: "1973-09-02"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), a.ID)
	})
	t.Run("no dates", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("InsertAuthor", ctx, catalog.Author{Name: "Homer"}).Return(catalog.Author{ID: 2, Name: "Homer"}, nil)

		a, err := s.AddAuthor(ctx, catalog.AuthorForm{Name: "Homer"})
		require.NoError(t, err)
		assert.Nil(t, a.BirthDate)
	})
	tests := []struct {
		name string
		form catalog.AuthorForm
		want error
	}{
		{"empty name", catalog.AuthorForm{Name: " "}, catalog.ErrEmptyName},
		{"digits in name", catalog.AuthorForm{Name: "R2D2"}, catalog.ErrInvalidCharacters},
		{"bad birth date", catalog.AuthorForm{Name: "Ann", BirthDate: "1/1/1900"}, catalog.ErrBadDateFormat},
		{"bad death date", catalog.AuthorForm{Name: "Ann", DateOfDeath: "1900-13-01"}, catalog.ErrBadDateFormat},
		{"death before birth", catalog.AuthorForm{Name: "Ann", BirthDate: "1900-01-02", DateOfDeath: "1900-01-01"}, catalog.ErrDeathBeforeBirth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newService(t)
			_, err := s.AddAuthor(ctx, tt.form)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, catalog.IsValidation(err))
			assert.NotEmpty(t, warningOf(t, err).Message)
		})
	}
	t.Run("duplicate", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("InsertAuthor", ctx, catalog.Author{Name: "Homer"}).Return(catalog.Author{}, catalog.ErrDuplicate)

		_, err := s.AddAuthor(ctx, catalog.AuthorForm{Name: "Homer"})
		require.ErrorIs(t, err, catalog.ErrDuplicate)
		assert.Equal(t, `Author "Homer" already exists.`, err.Error())
	})
	t.Run("storage failure", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("InsertAuthor", ctx, catalog.Author{Name: "Homer"}).Return(catalog.Author{}, fmt.Errorf("disk full"))

		_, err := s.AddAuthor(ctx, catalog.AuthorForm{Name: "Homer"})
		require.Error(t, err)
		assert.Equal(t, `Could not save author "Homer".`, err.Error())
		assert.False(t, catalog.IsValidation(err))
		assert.False(t, catalog.IsConflict(err))
	})
}

func TestAddBook(t *testing.T) {
	ctx := context.Background()
	year := 1937
	t.Run("enriched", func(t *testing.T) {
		s, repo, enricher := newService(t)
		enricher.On("FetchBookMetadata", ctx, "1234567890").
			Return(catalog.Metadata{CoverURL: "http://covers/1.jpg", Description: "There and back again."})
		want := catalog.Book{
			ISBN: "1234567890", Title: "The Hobbit", PublicationYear: &year, AuthorID: 1,
			CoverURL: "http://covers/1.jpg", Description: "There and back again.",
		}
		saved := want
		saved.ID = 10
		repo.On("InsertBook", ctx, want).Return(saved, nil)

		b, err := s.AddBook(ctx, catalog.BookForm{ISBN: "1234567890", Title: "The Hobbit", PublicationYear: "1937", AuthorID: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(10), b.ID)
		assert.Equal(t, "http://covers/1.jpg", b.CoverURL)
	})
	t.Run("supplied metadata wins", func(t *testing.T) {
		s, repo, enricher := newService(t)
		enricher.On("FetchBookMetadata", ctx, "1234567890").
			Return(catalog.Metadata{CoverURL: "http://covers/1.jpg", Description: "Fetched."})
		want := catalog.Book{
			ISBN: "1234567890", Title: "The Hobbit", AuthorID: 1,
			CoverURL: "http://mine.jpg", Description: "Fetched.",
		}
		repo.On("InsertBook", ctx, want).Return(want, nil)

		_, err := s.AddBook(ctx, catalog.BookForm{ISBN: "1234567890", Title: "The Hobbit", AuthorID: 1, CoverURL: "http://mine.jpg"})
		require.NoError(t, err)
	})
	t.Run("no lookup when both supplied", func(t *testing.T) {
		s, repo, _ := newService(t)
		want := catalog.Book{ISBN: "1234567890", Title: "The Hobbit", AuthorID: 1, CoverURL: "c", Description: "d"}
		repo.On("InsertBook", ctx, want).Return(want, nil)

		_, err := s.AddBook(ctx, catalog.BookForm{ISBN: "1234567890", Title: "The Hobbit", AuthorID: 1, CoverURL: "c", Description: "d"})
		require.NoError(t, err)
	})
	t.Run("enrichment miss still saves", func(t *testing.T) {
		s, repo, enricher := newService(t)
		enricher.On("FetchBookMetadata", ctx, "1234567890").Return(catalog.Metadata{})
		want := catalog.Book{ISBN: "1234567890", Title: "The Hobbit", AuthorID: 1}
		repo.On("InsertBook", ctx, want).Return(want, nil)

		b, err := s.AddBook(ctx, catalog.BookForm{ISBN: "1234567890", Title: "The Hobbit", AuthorID: 1})
		require.NoError(t, err)
		assert.Empty(t, b.CoverURL)
	})
	tests := []struct {
		name string
		form catalog.BookForm
		want error
	}{
		{"title without letters", catalog.BookForm{ISBN: "1234567890", Title: "1984", AuthorID: 1}, catalog.ErrInvalidTitle},
		{"short isbn", catalog.BookForm{ISBN: "12345", Title: "Emma", AuthorID: 1}, catalog.ErrInvalidISBN},
		{"future year", catalog.BookForm{ISBN: "1234567890", Title: "Emma", PublicationYear: "2027", AuthorID: 1}, catalog.ErrInvalidYear},
		{"ancient year", catalog.BookForm{ISBN: "1234567890", Title: "Emma", PublicationYear: "999", AuthorID: 1}, catalog.ErrInvalidYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newService(t)
			_, err := s.AddBook(ctx, tt.form)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, catalog.IsValidation(err))
		})
	}
	t.Run("duplicate isbn", func(t *testing.T) {
		s, repo, enricher := newService(t)
		enricher.On("FetchBookMetadata", ctx, "1234567890").Return(catalog.Metadata{})
		repo.On("InsertBook", ctx, mock.AnythingOfType("catalog.Book")).Return(catalog.Book{}, catalog.ErrDuplicate)

		_, err := s.AddBook(ctx, catalog.BookForm{ISBN: "1234567890", Title: "Emma", AuthorID: 1})
		require.ErrorIs(t, err, catalog.ErrDuplicate)
		assert.Equal(t, "A book with ISBN 1234567890 already exists.", err.Error())
	})
	t.Run("unknown author", func(t *testing.T) {
		s, repo, enricher := newService(t)
		enricher.On("FetchBookMetadata", ctx, "1234567890").Return(catalog.Metadata{})
		repo.On("InsertBook", ctx, mock.AnythingOfType("catalog.Book")).Return(catalog.Book{}, catalog.ErrUnknownAuthor)

		_, err := s.AddBook(ctx, catalog.BookForm{ISBN: "1234567890", Title: "Emma", AuthorID: 42})
		require.ErrorIs(t, err, catalog.ErrUnknownAuthor)
		assert.Equal(t, "Author 42 does not exist.", err.Error())
	})
}

func TestListCatalog(t *testing.T) {
	ctx := context.Background()
	entries := []catalog.Entry{
		{Book: catalog.Book{ID: 1, ISBN: "1111111111", Title: "Emma", CoverURL: "stored.jpg"}, Author: catalog.Author{ID: 1, Name: "Jane Austen"}},
		{Book: catalog.Book{ID: 2, ISBN: "2222222222", Title: "The Hobbit"}, Author: catalog.Author{ID: 2, Name: "J. Tolkien"}},
	}
	t.Run("sorted with covers", func(t *testing.T) {
		s, repo, enricher := newService(t)
		repo.On("SelectBooks", ctx, catalog.ListQuery{Sort: catalog.ByTitle}).Return(entries, nil)
		enricher.On("FetchBookMetadata", ctx, "1111111111").Return(catalog.Metadata{})
		enricher.On("FetchBookMetadata", ctx, "2222222222").Return(catalog.Metadata{CoverURL: "fresh.jpg"})

		got, err := s.ListCatalog(ctx, "title", "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "stored.jpg", got[0].CoverURL)
		assert.Equal(t, "fresh.jpg", got[1].CoverURL)
	})
	t.Run("search overrides sort", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("SelectBooks", ctx, catalog.ListQuery{Sort: catalog.ByAuthorName, Search: "zzz"}).Return([]catalog.Entry{}, nil)

		got, err := s.ListCatalog(ctx, "", " zzz ")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
	t.Run("storage failure", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("SelectBooks", ctx, mock.AnythingOfType("catalog.ListQuery")).Return(nil, errors.New("boom"))

		_, err := s.ListCatalog(ctx, "author", "")
		require.Error(t, err)
		assert.Equal(t, "Could not load the catalog.", err.Error())
	})
}

func TestViewBookDetail(t *testing.T) {
	ctx := context.Background()
	book := catalog.Book{ID: 3, ISBN: "1234567890", Title: "Emma", AuthorID: 7, CoverURL: "stored.jpg", Description: "Stored."}
	author := catalog.Author{ID: 7, Name: "Jane Austen"}
	t.Run("fresh metadata", func(t *testing.T) {
		s, repo, enricher := newService(t)
		repo.On("SelectBook", ctx, int64(3)).Return(book, nil)
		repo.On("SelectAuthor", ctx, int64(7)).Return(author, nil)
		enricher.On("FetchBookMetadata", ctx, "1234567890").Return(catalog.Metadata{CoverURL: "fresh.jpg", Description: "Fresh."})

		d, err := s.ViewBookDetail(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Jane Austen", d.Author.Name)
		assert.Equal(t, "fresh.jpg", d.CoverURL)
		assert.Equal(t, "Fresh.", d.Description)
	})
	t.Run("falls back to stored metadata", func(t *testing.T) {
		s, repo, enricher := newService(t)
		repo.On("SelectBook", ctx, int64(3)).Return(book, nil)
		repo.On("SelectAuthor", ctx, int64(7)).Return(author, nil)
		enricher.On("FetchBookMetadata", ctx, "1234567890").Return(catalog.Metadata{})

		d, err := s.ViewBookDetail(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "stored.jpg", d.CoverURL)
		assert.Equal(t, "Stored.", d.Description)
	})
	t.Run("not found", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("SelectBook", ctx, int64(99)).Return(catalog.Book{}, catalog.ErrNotFound)

		_, err := s.ViewBookDetail(ctx, 99)
		require.ErrorIs(t, err, catalog.ErrNotFound)
		assert.Equal(t, "Book not found.", err.Error())
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("DeleteBook", ctx, int64(3)).Return("Emma", nil)

		msg, err := s.DeleteBook(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, `Book "Emma" deleted successfully.`, msg)
	})
	t.Run("not found", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("DeleteBook", ctx, int64(3)).Return("", catalog.ErrNotFound)

		_, err := s.DeleteBook(ctx, 3)
		require.ErrorIs(t, err, catalog.ErrNotFound)
		assert.Equal(t, "Book not found.", err.Error())
	})
	t.Run("storage failure", func(t *testing.T) {
		s, repo, _ := newService(t)
		repo.On("DeleteBook", ctx, int64(3)).Return("", errors.New("locked"))

		_, err := s.DeleteBook(ctx, 3)
		require.Error(t, err)
		assert.Equal(t, "Could not delete book.", err.Error())
	})
}

func TestListAuthors(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newService(t)
	repo.On("SelectAuthors", ctx).Return([]catalog.Author{{ID: 1, Name: "Homer"}}, nil)

	all, err := s.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
