package chi

import (
	"encoding/json"
	"net/http"

	"github.com/marcelsud/book-catalog/catalog"
)

type authorRequest struct {
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	DateOfDeath string `json:"date_of_death"`
}

func getAuthors(catalogService catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := catalogService.ListAuthors(r.Context())
		if err != nil {
			writeWarning(w, err)
			return
		}
		result := make([]authorResponse, 0, len(all))
		for _, a := range all {
			result = append(result, newAuthorResponse(a))
		}
		writeJSON(w, http.StatusOK, result)
	})
}

func postAuthors(catalogService catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ar authorRequest
		if err := json.NewDecoder(r.Body).Decode(&ar); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a, err := catalogService.AddAuthor(r.Context(), catalog.AuthorForm{
			Name:        ar.Name,
			BirthDate:   ar.BirthDate,
			DateOfDeath: ar.DateOfDeath,
		})
		if err != nil {
			writeWarning(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newAuthorResponse(a))
	})
}
