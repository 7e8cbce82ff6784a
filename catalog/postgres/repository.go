package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq" // PostgreSQL driver
	"github.com/marcelsud/book-catalog/catalog"
)

/*
PostgreSQL implementation of catalog.Repository

- $1, $2 placeholders
- SERIAL keys, RETURNING id
- UNIQUE constraints on authors.name and books.isbn, so of two racing
  inserts only one commits; the loser surfaces as catalog.ErrDuplicate
- book delete and author cascade share one transaction, serialized per
  author with SELECT ... FOR UPDATE
*/

// PostgreSQL error codes we translate
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Repository struct {
	DB *sql.DB
}

// NewRepository opens a repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig opens a repository with a custom pool.
// Zero values leave the database/sql defaults in place.
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

const selectEntry = `
		SELECT b.id, b.isbn, b.title, b.publication_year, b.author_id, b.cover_url, b.description,
			a.id, a.name, a.birth_date, a.date_of_death
		FROM books b
		JOIN authors a ON a.id = b.author_id`

// SelectBook returns a book by ID
func (r *Repository) SelectBook(ctx context.Context, id int64) (catalog.Book, error) {
	query := `SELECT id, isbn, title, publication_year, author_id, cover_url, description FROM books WHERE id = $1`

	b, err := scanBook(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Book{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

// SelectBooks returns books joined with their authors.
// Search is a case-insensitive title substring match ordered by title.
func (r *Repository) SelectBooks(ctx context.Context, q catalog.ListQuery) ([]catalog.Entry, error) {
	var (
		query string
		args  []any
	)
	switch {
	case q.Search != "":
		query = selectEntry + ` WHERE b.title ILIKE $1 ORDER BY b.title, b.id`
		args = append(args, "%"+escapeLike(q.Search)+"%")
	case q.Sort == catalog.ByTitle:
		query = selectEntry + ` ORDER BY b.title, b.id`
	default:
		query = selectEntry + ` ORDER BY a.name, b.title, b.id`
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	defer rows.Close()

	entries := []catalog.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	return entries, nil
}

// SelectAuthor returns an author by ID
func (r *Repository) SelectAuthor(ctx context.Context, id int64) (catalog.Author, error) {
	query := `SELECT id, name, birth_date, date_of_death FROM authors WHERE id = $1`

	a, err := scanAuthor(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Author{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Author{}, fmt.Errorf("selecting author: %w", err)
	}
	return a, nil
}

// SelectAuthors returns all authors ordered by name
func (r *Repository) SelectAuthors(ctx context.Context) ([]catalog.Author, error) {
	query := `SELECT id, name, birth_date, date_of_death FROM authors ORDER BY name, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting authors: %w", err)
	}
	defer rows.Close()

	authors := []catalog.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating authors: %w", err)
	}
	return authors, nil
}

// InsertAuthor inserts a new author and returns it with its ID
func (r *Repository) InsertAuthor(ctx context.Context, a catalog.Author) (catalog.Author, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE name = $1)`, a.Name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking author name: %w", err)
		}
		if exists {
			return catalog.ErrDuplicate
		}

		query := `
		INSERT INTO authors (name, birth_date, date_of_death)
		VALUES ($1, $2, $3)
		RETURNING id
	`
		err = tx.QueryRowContext(ctx, query, a.Name, nullDate(a.BirthDate), nullDate(a.DateOfDeath)).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("inserting author: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return catalog.Author{}, err
	}
	return a, nil
}

// InsertBook inserts a new book and returns it with its ID
func (r *Repository) InsertBook(ctx context.Context, b catalog.Book) (catalog.Book, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, b.AuthorID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking author: %w", err)
		}
		if !exists {
			return catalog.ErrUnknownAuthor
		}

		err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`, b.ISBN).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking isbn: %w", err)
		}
		if exists {
			return catalog.ErrDuplicate
		}

		query := `
		INSERT INTO books (isbn, title, publication_year, author_id, cover_url, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
		err = tx.QueryRowContext(ctx, query,
			b.ISBN, b.Title, nullYear(b.PublicationYear), b.AuthorID, b.CoverURL, b.Description,
		).Scan(&b.ID)
		if err != nil {
			return fmt.Errorf("inserting book: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return catalog.Book{}, err
	}
	return b, nil
}

// DeleteBook deletes a book and, when it was the author's last one, the author
func (r *Repository) DeleteBook(ctx context.Context, id int64) (string, error) {
	var title string
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var authorID int64
		err := tx.QueryRowContext(ctx, `SELECT title, author_id FROM books WHERE id = $1`, id).Scan(&title, &authorID)
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("selecting book: %w", err)
		}

		// Deletes of sibling books wait here, so the count below sees them.
		if _, err := tx.ExecContext(ctx, `SELECT id FROM authors WHERE id = $1 FOR UPDATE`, authorID); err != nil {
			return fmt.Errorf("locking author: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
			return fmt.Errorf("deleting book: %w", translate(err))
		}

		var remaining int64
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&remaining)
		if err != nil {
			return fmt.Errorf("counting books: %w", err)
		}
		if remaining > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, authorID); err != nil {
			return fmt.Errorf("deleting author: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return title, nil
}

// CountAuthors returns the number of stored authors
func (r *Repository) CountAuthors(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting authors: %w", err)
	}
	return n, nil
}

// CountBooks returns the number of stored books
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateSchema creates the authors and books tables
func (r *Repository) CreateSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// DropSchema removes both tables (useful for tests)
func (r *Repository) DropSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, `DROP TABLE IF EXISTS books, authors CASCADE`); err != nil {
		return fmt.Errorf("dropping schema: %w", err)
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			birth_date DATE,
			date_of_death DATE
		)`,
	`CREATE TABLE IF NOT EXISTS books (
			id SERIAL PRIMARY KEY,
			isbn TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			publication_year INTEGER,
			author_id INTEGER NOT NULL REFERENCES authors (id),
			cover_url TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)`,
}

// withTx commits when fn succeeds and rolls back on any error
func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", translate(err))
	}
	return nil
}

// translate maps constraint violations onto catalog sentinels
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case uniqueViolation:
		return fmt.Errorf("%s: %w", pqErr.Constraint, catalog.ErrDuplicate)
	case foreignKeyViolation:
		return fmt.Errorf("%s: %w", pqErr.Constraint, catalog.ErrUnknownAuthor)
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (catalog.Book, error) {
	var (
		b    catalog.Book
		year sql.NullInt64
	)
	if err := s.Scan(&b.ID, &b.ISBN, &b.Title, &year, &b.AuthorID, &b.CoverURL, &b.Description); err != nil {
		return catalog.Book{}, err
	}
	b.PublicationYear = yearPtr(year)
	return b, nil
}

func scanAuthor(s scanner) (catalog.Author, error) {
	var (
		a            catalog.Author
		birth, death sql.NullTime
	)
	if err := s.Scan(&a.ID, &a.Name, &birth, &death); err != nil {
		return catalog.Author{}, err
	}
	a.BirthDate = datePtr(birth)
	a.DateOfDeath = datePtr(death)
	return a, nil
}

func scanEntry(s scanner) (catalog.Entry, error) {
	var (
		e            catalog.Entry
		year         sql.NullInt64
		birth, death sql.NullTime
	)
	err := s.Scan(
		&e.Book.ID, &e.Book.ISBN, &e.Book.Title, &year, &e.Book.AuthorID, &e.Book.CoverURL, &e.Book.Description,
		&e.Author.ID, &e.Author.Name, &birth, &death,
	)
	if err != nil {
		return catalog.Entry{}, err
	}
	e.Book.PublicationYear = yearPtr(year)
	e.Author.BirthDate = datePtr(birth)
	e.Author.DateOfDeath = datePtr(death)
	return e, nil
}

func nullDate(d *time.Time) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *d, Valid: true}
}

func datePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	d := time.Date(n.Time.Year(), n.Time.Month(), n.Time.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func nullYear(y *int) sql.NullInt64 {
	if y == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*y), Valid: true}
}

func yearPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	y := int(n.Int64)
	return &y
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
