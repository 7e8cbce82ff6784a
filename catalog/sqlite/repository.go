package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marcelsud/book-catalog/catalog"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

/*
SQLite implementation of catalog.Repository, for local use and for the
single-file deployment the catalog started out as.

Differences from the PostgreSQL repository:
- ? placeholders, LastInsertId instead of RETURNING
- foreign keys are opt-in per connection (_pragma=foreign_keys(1))
- dates are ISO-8601 TEXT guarded by CHECK (date(x) IS x)
- one open connection, transactions begin IMMEDIATE, so writers queue
  instead of failing with SQLITE_BUSY
*/

type Repository struct {
	DB *sql.DB
}

// NewRepository opens (creating if needed) the database file at path
func NewRepository(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging sqlite: %w", err)
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

func (r *Repository) SelectBook(ctx context.Context, id int64) (catalog.Book, error) {
	query := `SELECT id, isbn, title, publication_year, author_id, cover_url, description FROM books WHERE id = ?`

	b, err := scanBook(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Book{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

// SelectBooks lists the catalog. SQLite's LIKE folds ASCII case only.
func (r *Repository) SelectBooks(ctx context.Context, q catalog.ListQuery) ([]catalog.Entry, error) {
	var (
		query string
		args  []any
	)
	switch {
	case q.Search != "":
		query = selectEntry + ` WHERE b.title LIKE ? ESCAPE '\' ORDER BY b.title, b.id`
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

func (r *Repository) SelectAuthor(ctx context.Context, id int64) (catalog.Author, error) {
	query := `SELECT id, name, birth_date, date_of_death FROM authors WHERE id = ?`

	a, err := scanAuthor(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Author{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Author{}, fmt.Errorf("selecting author: %w", err)
	}
	return a, nil
}

func (r *Repository) SelectAuthors(ctx context.Context) ([]catalog.Author, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, birth_date, date_of_death FROM authors ORDER BY name, id`)
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

func (r *Repository) InsertAuthor(ctx context.Context, a catalog.Author) (catalog.Author, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE name = ?)`, a.Name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking author name: %w", err)
		}
		if exists {
			return catalog.ErrDuplicate
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO authors (name, birth_date, date_of_death) VALUES (?, ?, ?)`,
			a.Name, nullDate(a.BirthDate), nullDate(a.DateOfDeath),
		)
		if err != nil {
			return fmt.Errorf("inserting author: %w", translate(err))
		}
		a.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting author id: %w", err)
		}
		return nil
	})
	if err != nil {
		return catalog.Author{}, err
	}
	return a, nil
}

func (r *Repository) InsertBook(ctx context.Context, b catalog.Book) (catalog.Book, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE id = ?)`, b.AuthorID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking author: %w", err)
		}
		if !exists {
			return catalog.ErrUnknownAuthor
		}

		err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = ?)`, b.ISBN).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking isbn: %w", err)
		}
		if exists {
			return catalog.ErrDuplicate
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO books (isbn, title, publication_year, author_id, cover_url, description) VALUES (?, ?, ?, ?, ?, ?)`,
			b.ISBN, b.Title, nullYear(b.PublicationYear), b.AuthorID, b.CoverURL, b.Description,
		)
		if err != nil {
			return fmt.Errorf("inserting book: %w", translate(err))
		}
		b.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting book id: %w", err)
		}
		return nil
	})
	if err != nil {
		return catalog.Book{}, err
	}
	return b, nil
}

func (r *Repository) DeleteBook(ctx context.Context, id int64) (string, error) {
	var title string
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var authorID int64
		err := tx.QueryRowContext(ctx, `SELECT title, author_id FROM books WHERE id = ?`, id).Scan(&title, &authorID)
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("selecting book: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting book: %w", translate(err))
		}

		var remaining int64
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM books WHERE author_id = ?`, authorID).Scan(&remaining)
		if err != nil {
			return fmt.Errorf("counting books: %w", err)
		}
		if remaining > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, authorID); err != nil {
			return fmt.Errorf("deleting author: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return title, nil
}

func (r *Repository) CountAuthors(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting authors: %w", err)
	}
	return n, nil
}

func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

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

// DropSchema removes both tables
func (r *Repository) DropSchema(ctx context.Context) error {
	for _, stmt := range []string{`DROP TABLE IF EXISTS books`, `DROP TABLE IF EXISTS authors`} {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("dropping schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			birth_date TEXT CHECK (birth_date IS NULL OR date(birth_date) IS birth_date),
			date_of_death TEXT CHECK (date_of_death IS NULL OR date(date_of_death) IS date_of_death)
		)`,
	`CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			isbn TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			publication_year INTEGER,
			author_id INTEGER NOT NULL REFERENCES authors (id),
			cover_url TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)`,
}

func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
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

// translate maps constraint violations onto catalog sentinels.
// Extended codes are checked first; the message is the fallback when the
// connection reports only the primary SQLITE_CONSTRAINT code.
func translate(err error) error {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	code := sqliteErr.Code()
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return fmt.Errorf("%v: %w", err, catalog.ErrDuplicate)
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%v: %w", err, catalog.ErrUnknownAuthor)
	case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(err.Error(), "UNIQUE"):
		return fmt.Errorf("%v: %w", err, catalog.ErrDuplicate)
	case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(err.Error(), "FOREIGN KEY"):
		return fmt.Errorf("%v: %w", err, catalog.ErrUnknownAuthor)
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
		birth, death sql.NullString
	)
	if err := s.Scan(&a.ID, &a.Name, &birth, &death); err != nil {
		return catalog.Author{}, err
	}
	var err error
	if a.BirthDate, err = parseDate(birth); err != nil {
		return catalog.Author{}, err
	}
	if a.DateOfDeath, err = parseDate(death); err != nil {
		return catalog.Author{}, err
	}
	return a, nil
}

func scanEntry(s scanner) (catalog.Entry, error) {
	var (
		e            catalog.Entry
		year         sql.NullInt64
		birth, death sql.NullString
	)
	err := s.Scan(
		&e.Book.ID, &e.Book.ISBN, &e.Book.Title, &year, &e.Book.AuthorID, &e.Book.CoverURL, &e.Book.Description,
		&e.Author.ID, &e.Author.Name, &birth, &death,
	)
	if err != nil {
		return catalog.Entry{}, err
	}
	e.Book.PublicationYear = yearPtr(year)
	if e.Author.BirthDate, err = parseDate(birth); err != nil {
		return catalog.Entry{}, err
	}
	if e.Author.DateOfDeath, err = parseDate(death); err != nil {
		return catalog.Entry{}, err
	}
	return e, nil
}

func nullDate(d *time.Time) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Format(catalog.DateLayout), Valid: true}
}

func parseDate(n sql.NullString) (*time.Time, error) {
	if !n.Valid {
		return nil, nil
	}
	d, err := time.Parse(catalog.DateLayout, n.String)
	if err != nil {
		return nil, fmt.Errorf("parsing stored date %q: %w", n.String, err)
	}
	return &d, nil
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

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
