package chi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/book-catalog/catalog"
)

/*
* Represents the book in the web layer, hence the json tags
 */
type bookRequest struct {
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	PublicationYear formValue `json:"publication_year"`
	AuthorID        int64     `json:"author_id"`
	CoverURL        string    `json:"cover_url"`
	Description     string    `json:"description"`
}

// formValue accepts a JSON string or number and keeps its raw text, so
// validation sees exactly what the client sent
type formValue string

func (v *formValue) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}
	*v = formValue(b)
	return nil
}

func getBooks(catalogService catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		all, err := catalogService.ListCatalog(r.Context(), q.Get("sort"), q.Get("search"))
		if err != nil {
			writeWarning(w, err)
			return
		}
		result := make([]catalogEntryResponse, 0, len(all))
		for _, e := range all {
			result = append(result, catalogEntryResponse{
				Book:     newBookResponse(e.Book),
				Author:   newAuthorResponse(e.Author),
				CoverURL: e.CoverURL,
			})
		}
		writeJSON(w, http.StatusOK, result)
	})
}

func getBook(catalogService catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		d, err := catalogService.ViewBookDetail(r.Context(), id)
		if err != nil {
			writeWarning(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookDetailResponse{
			Book:        newBookResponse(d.Book),
			Author:      newAuthorResponse(d.Author),
			CoverURL:    d.CoverURL,
			Description: d.Description,
		})
	})
}

func postBooks(catalogService catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br bookRequest
		if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b, err := catalogService.AddBook(r.Context(), catalog.BookForm{
			ISBN:            br.ISBN,
			Title:           br.Title,
			PublicationYear: string(br.PublicationYear),
			AuthorID:        br.AuthorID,
			CoverURL:        br.CoverURL,
			Description:     br.Description,
		})
		if err != nil {
			writeWarning(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newBookResponse(b))
	})
}

func deleteBook(catalogService catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		msg, err := catalogService.DeleteBook(r.Context(), id)
		if err != nil {
			writeWarning(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
	})
}
