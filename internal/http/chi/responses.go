package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/marcelsud/book-catalog/catalog"
)

/* HTTP layer DTOs, separate from the catalog records so json tags
 * never leak into the domain.
 */

type authorResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BirthDate   *string `json:"birth_date"`
	DateOfDeath *string `json:"date_of_death"`
}

type bookResponse struct {
	ID              int64  `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	PublicationYear *int   `json:"publication_year"`
	AuthorID        int64  `json:"author_id"`
	CoverURL        string `json:"cover_url,omitempty"`
	Description     string `json:"description,omitempty"`
}

type catalogEntryResponse struct {
	Book     bookResponse   `json:"book"`
	Author   authorResponse `json:"author"`
	CoverURL string         `json:"cover_url,omitempty"`
}

type bookDetailResponse struct {
	Book        bookResponse   `json:"book"`
	Author      authorResponse `json:"author"`
	CoverURL    string         `json:"cover_url,omitempty"`
	Description string         `json:"description,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type warningResponse struct {
	Warning string `json:"warning"`
}

func newAuthorResponse(a catalog.Author) authorResponse {
	return authorResponse{
		ID:          a.ID,
		Name:        a.Name,
		BirthDate:   formatDate(a.BirthDate),
		DateOfDeath: formatDate(a.DateOfDeath),
	}
}

func newBookResponse(b catalog.Book) bookResponse {
	return bookResponse{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		CoverURL:        b.CoverURL,
		Description:     b.Description,
	}
}

func formatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(catalog.DateLayout)
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeWarning maps a service warning onto a status code
func writeWarning(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case catalog.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		status = http.StatusNotFound
	case catalog.IsConflict(err):
		status = http.StatusConflict
	}
	writeJSON(w, status, warningResponse{Warning: err.Error()})
}
