package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/google/uuid"
	"github.com/marcelsud/book-catalog/catalog"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-Id"

// Handlers wires the catalog JSON API. metricsHandler may be nil.
func Handlers(ctx context.Context, catalogService catalog.UseCase, logger zerolog.Logger, metricsHandler http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Method(http.MethodGet, "/v1/authors", getAuthors(catalogService))
	r.Method(http.MethodPost, "/v1/authors", postAuthors(catalogService))
	r.Method(http.MethodGet, "/v1/books", getBooks(catalogService))
	r.Method(http.MethodPost, "/v1/books", postBooks(catalogService))
	r.Method(http.MethodGet, "/v1/books/{id}", getBook(catalogService))
	r.Method(http.MethodDelete, "/v1/books/{id}", deleteBook(catalogService))

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	return r
}

// requestID makes sure every request and response carries an X-Request-Id
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
