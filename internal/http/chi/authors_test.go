package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/marcelsud/book-catalog/catalog"
	"github.com/marcelsud/book-catalog/catalog/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAuthors(t *testing.T) {
	ctx := context.Background()
	s := mocks.NewUseCase(t)
	death := time.Date(1817, 7, 18, 0, 0, 0, 0, time.UTC)
	s.On("ListAuthors", mock.Anything).Return([]catalog.Author{
		{ID: 2, Name: "Jane Austen", DateOfDeath: &death},
		{ID: 1, Name: "J. Tolkien"},
	}, nil)
	h := newTestHandler(ctx, s)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/v1/authors", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var results []authorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	require.NotNil(t, results[0].DateOfDeath)
	assert.Equal(t, "1817-07-18", *results[0].DateOfDeath)
	assert.Nil(t, results[1].BirthDate)
}

func TestPostAuthors(t *testing.T) {
	ctx := context.Background()
	t.Run("created", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		form := catalog.AuthorForm{Name: "J. Tolkien", BirthDate: "1892-01-03", DateOfDeath: "1973-09-02"}
		s.On("AddAuthor", mock.Anything, form).Return(catalog.Author{ID: 1, Name: "J. Tolkien"}, nil)
		h := newTestHandler(ctx, s)
		body := `{"name":"J. Tolkien","birth_date":"1892-01-03","date_of_death":"1973-09-02"}`
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/v1/authors", strings.NewReader(body))
		require.NoError(t, err)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
		var result authorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, int64(1), result.ID)
	})
	t.Run("rejected", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("AddAuthor", mock.Anything, catalog.AuthorForm{Name: "R2D2"}).
			Return(catalog.Author{}, &catalog.Warning{
				Message: "name: name may only contain letters, spaces and periods",
				Err:     &catalog.Rejection{Field: "name", Reason: catalog.ErrInvalidCharacters},
			})
		h := newTestHandler(ctx, s)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/v1/authors", strings.NewReader(`{"name":"R2D2"}`))
		require.NoError(t, err)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "letters, spaces and periods")
	})
	t.Run("duplicate", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("AddAuthor", mock.Anything, catalog.AuthorForm{Name: "Jane Austen"}).
			Return(catalog.Author{}, &catalog.Warning{Message: `Author "Jane Austen" already exists.`, Err: catalog.ErrDuplicate})
		h := newTestHandler(ctx, s)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/v1/authors", strings.NewReader(`{"name":"Jane Austen"}`))
		require.NoError(t, err)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRequestIDIsKept(t *testing.T) {
	ctx := context.Background()
	s := mocks.NewUseCase(t)
	s.On("ListAuthors", mock.Anything).Return([]catalog.Author{}, nil)
	h := newTestHandler(ctx, s)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/v1/authors", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
