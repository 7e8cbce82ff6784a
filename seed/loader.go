package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/marcelsud/book-catalog/catalog"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

/* Loader reads catalog fixtures from a YAML file: authors, each with the
 * books they wrote. Fixtures are validated up front with the catalog
 * validators and applied through the service, never the store.
 */

// Config represents the structure of the seed file
type Config struct {
	Authors []AuthorConfig `yaml:"authors"`
}

// AuthorConfig represents a single author in the YAML file
type AuthorConfig struct {
	Name        string       `yaml:"name"`
	BirthDate   string       `yaml:"birth_date"`
	DateOfDeath string       `yaml:"date_of_death"`
	Books       []BookConfig `yaml:"books"`
}

// BookConfig represents a book nested under its author
type BookConfig struct {
	ISBN            string `yaml:"isbn"`
	Title           string `yaml:"title"`
	PublicationYear string `yaml:"publication_year"`
	CoverURL        string `yaml:"cover_url"`
	Description     string `yaml:"description"`
}

// Result counts what Apply did
type Result struct {
	AuthorsAdded   int
	AuthorsSkipped int
	BooksAdded     int
	BooksSkipped   int
}

// Loader holds the loaded fixtures
type Loader struct {
	authors []AuthorConfig
	logger  zerolog.Logger
	now     func() time.Time
}

// NewLoader creates a new seed loader
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger: logger,
		now:    time.Now,
	}
}

// Load reads and validates the seed file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	return l.Parse(data)
}

// Parse validates fixtures from raw YAML
func (l *Loader) Parse(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing seed YAML: %w", err)
	}

	names := make(map[string]bool)
	isbns := make(map[string]bool)
	for i, ac := range config.Authors {
		if err := l.validateAuthor(ac); err != nil {
			return fmt.Errorf("validating author #%d: %w", i+1, err)
		}
		if names[ac.Name] {
			return fmt.Errorf("duplicate author %q", ac.Name)
		}
		names[ac.Name] = true

		for j, bc := range ac.Books {
			isbn, err := l.validateBook(bc)
			if err != nil {
				return fmt.Errorf("validating book #%d of %q: %w", j+1, ac.Name, err)
			}
			if isbns[isbn] {
				return fmt.Errorf("duplicate ISBN %s", isbn)
			}
			isbns[isbn] = true
		}
	}

	l.authors = config.Authors
	return nil
}

func (l *Loader) validateAuthor(ac AuthorConfig) error {
	if _, err := catalog.ValidateAuthorName(ac.Name); err != nil {
		return err
	}
	birth, err := catalog.ValidateDate(ac.BirthDate, "birth_date")
	if err != nil {
		return err
	}
	death, err := catalog.ValidateDate(ac.DateOfDeath, "date_of_death")
	if err != nil {
		return err
	}
	return catalog.ValidateAuthorDates(birth, death)
}

func (l *Loader) validateBook(bc BookConfig) (string, error) {
	if _, err := catalog.ValidateTitle(bc.Title); err != nil {
		return "", err
	}
	isbn, err := catalog.ValidateISBN(bc.ISBN)
	if err != nil {
		return "", err
	}
	if _, err := catalog.ValidatePublicationYear(bc.PublicationYear, l.now().Year()); err != nil {
		return "", err
	}
	return isbn, nil
}

// Authors returns the loaded fixtures
func (l *Loader) Authors() []AuthorConfig {
	return l.authors
}

// BookCount returns how many books the fixtures hold
func (l *Loader) BookCount() int {
	n := 0
	for _, a := range l.authors {
		n += len(a.Books)
	}
	return n
}

// Apply adds every fixture through svc. Authors and books that already
// exist are skipped, so a seed file can be applied more than once.
func (l *Loader) Apply(ctx context.Context, svc catalog.UseCase) (Result, error) {
	var res Result

	existing, err := svc.ListAuthors(ctx)
	if err != nil {
		return res, fmt.Errorf("listing authors: %w", err)
	}
	ids := make(map[string]int64, len(existing))
	for _, a := range existing {
		ids[a.Name] = a.ID
	}

	for _, ac := range l.authors {
		name, _ := catalog.ValidateAuthorName(ac.Name)
		id, ok := ids[name]
		if ok {
			res.AuthorsSkipped++
			l.logger.Debug().Str("author", name).Msg("author already present")
		} else {
			a, err := svc.AddAuthor(ctx, catalog.AuthorForm{
				Name:        ac.Name,
				BirthDate:   ac.BirthDate,
				DateOfDeath: ac.DateOfDeath,
			})
			if err != nil {
				return res, fmt.Errorf("adding author %q: %w", name, err)
			}
			id = a.ID
			ids[name] = id
			res.AuthorsAdded++
		}

		for _, bc := range ac.Books {
			_, err := svc.AddBook(ctx, catalog.BookForm{
				ISBN:            bc.ISBN,
				Title:           bc.Title,
				PublicationYear: bc.PublicationYear,
				AuthorID:        id,
				CoverURL:        bc.CoverURL,
				Description:     bc.Description,
			})
			switch {
			case errors.Is(err, catalog.ErrDuplicate):
				res.BooksSkipped++
				l.logger.Debug().Str("isbn", bc.ISBN).Msg("book already present")
			case err != nil:
				return res, fmt.Errorf("adding book %q: %w", bc.Title, err)
			default:
				res.BooksAdded++
			}
		}
	}

	l.logger.Info().
		Int("authors_added", res.AuthorsAdded).
		Int("authors_skipped", res.AuthorsSkipped).
		Int("books_added", res.BooksAdded).
		Int("books_skipped", res.BooksSkipped).
		Msg("seed applied")
	return res, nil
}
