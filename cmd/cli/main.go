package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/marcelsud/book-catalog/catalog"
	"github.com/marcelsud/book-catalog/config"
	"github.com/marcelsud/book-catalog/enrichment/googlebooks"
	"github.com/marcelsud/book-catalog/internal/storage"
	"github.com/marcelsud/book-catalog/seed"
	"github.com/rs/zerolog"
)

// CLI represents the complete command structure of the catalog tool
type CLI struct {
	Driver  string `help:"Storage backend (postgres or sqlite); overrides DB_DRIVER"`
	Offline bool   `help:"Skip metadata lookups"`
	Verbose bool   `short:"v" help:"Log debug output"`

	AddAuthor AddAuthorCmd `cmd:"" help:"Register an author"`
	AddBook   AddBookCmd   `cmd:"" help:"Register a book"`
	List      ListCmd      `cmd:"" help:"List the catalog"`
	Show      ShowCmd      `cmd:"" help:"Show one book with its author"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a book (and its author when it was their last)"`
	Authors   AuthorsCmd   `cmd:"" help:"List authors"`
	Seed      SeedCmd      `cmd:"" help:"Apply a YAML fixture file"`
	InitDB    InitDBCmd    `cmd:"" name:"init-db" help:"Create the schema"`
}

type AddAuthorCmd struct {
	Name        string `arg:"" help:"Author name"`
	BirthDate   string `help:"Birth date, YYYY-MM-DD"`
	DateOfDeath string `help:"Date of death, YYYY-MM-DD"`
}

type AddBookCmd struct {
	ISBN        string `arg:"" name:"isbn" help:"10 or 13 digit ISBN"`
	Title       string `arg:"" help:"Book title"`
	Author      int64  `short:"a" required:"" help:"Author id"`
	Year        string `short:"y" help:"Publication year"`
	CoverURL    string `help:"Cover image URL"`
	Description string `help:"Description"`
}

type ListCmd struct {
	Sort   string `short:"s" help:"Sort by author or title" default:"author"`
	Search string `short:"q" help:"Case-insensitive title search"`
}

type ShowCmd struct {
	ID int64 `arg:"" help:"Book id"`
}

type DeleteCmd struct {
	ID int64 `arg:"" help:"Book id"`
}

type AuthorsCmd struct{}

type SeedCmd struct {
	File string `arg:"" optional:"" help:"Seed file; defaults to SEED_FILE"`
}

type InitDBCmd struct {
	Drop bool `help:"Drop existing tables first"`
}

// app carries what every command needs
type app struct {
	ctx     context.Context
	cfg     *config.Config
	store   storage.Store
	service catalog.UseCase
	logger  zerolog.Logger
	out     io.Writer
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("catalog"),
		kong.Description("Manage the library catalog from the command line."),
		kong.UsageOnError(),
	)

	if err := run(kctx, &cli); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.store.Close(a.ctx)
	return kctx.Run(a)
}

func newApp(cli *CLI) (*app, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	if cli.Driver != "" {
		cfg.DBDriver = cli.Driver
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	ctx := context.Background()
	store, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.CreateSchema(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	var enricher catalog.Enricher = offline{}
	if !cli.Offline {
		enricher = googlebooks.New(
			googlebooks.WithBaseURL(cfg.GoogleBooksURL),
			googlebooks.WithAPIKey(cfg.GoogleBooksAPIKey),
			googlebooks.WithTimeout(cfg.EnrichmentTimeout),
			googlebooks.WithRateLimit(cfg.EnrichmentRate, cfg.EnrichmentBurst),
			googlebooks.WithLogger(logger),
		)
	}

	return &app{
		ctx:     ctx,
		cfg:     cfg,
		store:   store,
		service: catalog.NewService(store, enricher, logger),
		logger:  logger,
		out:     os.Stdout,
	}, nil
}

// offline never finds metadata
type offline struct{}

func (offline) FetchBookMetadata(context.Context, string) catalog.Metadata {
	return catalog.Metadata{}
}

func (c *AddAuthorCmd) Run(a *app) error {
	author, err := a.service.AddAuthor(a.ctx, catalog.AuthorForm{
		Name:        c.Name,
		BirthDate:   c.BirthDate,
		DateOfDeath: c.DateOfDeath,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Author %q added with id %d.\n", author.Name, author.ID)
	return nil
}

func (c *AddBookCmd) Run(a *app) error {
	b, err := a.service.AddBook(a.ctx, catalog.BookForm{
		ISBN:            c.ISBN,
		Title:           c.Title,
		PublicationYear: c.Year,
		AuthorID:        c.Author,
		CoverURL:        c.CoverURL,
		Description:     c.Description,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Book %q added with id %d.\n", b.Title, b.ID)
	return nil
}

func (c *ListCmd) Run(a *app) error {
	entries, err := a.service.ListCatalog(a.ctx, c.Sort, c.Search)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No books found.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tYEAR\tISBN\tCOVER")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.Book.ID, e.Book.Title, e.Author.Name, year(e.Book.PublicationYear), e.Book.ISBN, e.CoverURL)
	}
	return w.Flush()
}

func (c *ShowCmd) Run(a *app) error {
	d, err := a.service.ViewBookDetail(a.ctx, c.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", d.Book.Title, year(d.Book.PublicationYear))
	fmt.Fprintf(a.out, "ISBN:   %s\n", d.Book.ISBN)
	fmt.Fprintf(a.out, "Author: %s%s\n", d.Author.Name, lifespan(d.Author))
	if d.CoverURL != "" {
		fmt.Fprintf(a.out, "Cover:  %s\n", d.CoverURL)
	}
	if d.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", d.Description)
	}
	return nil
}

func (c *DeleteCmd) Run(a *app) error {
	msg, err := a.service.DeleteBook(a.ctx, c.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (c *AuthorsCmd) Run(a *app) error {
	all, err := a.service.ListAuthors(a.ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(a.out, "No authors found.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLIFESPAN")
	for _, au := range all {
		fmt.Fprintf(w, "%d\t%s\t%s\n", au.ID, au.Name, strings.TrimSpace(lifespan(au)))
	}
	return w.Flush()
}

func (c *SeedCmd) Run(a *app) error {
	file := c.File
	if file == "" {
		file = a.cfg.SeedFile
	}
	loader := seed.NewLoader(a.logger)
	if err := loader.Load(file); err != nil {
		return err
	}
	res, err := loader.Apply(a.ctx, a.service)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %d author(s) and %d book(s); %d author(s) and %d book(s) already present.\n",
		res.AuthorsAdded, res.BooksAdded, res.AuthorsSkipped, res.BooksSkipped)
	return nil
}

func (c *InitDBCmd) Run(a *app) error {
	if c.Drop {
		if err := a.store.DropSchema(a.ctx); err != nil {
			return err
		}
		if err := a.store.CreateSchema(a.ctx); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "Schema ready on %s.\n", a.cfg.DBDriver)
	return nil
}

func year(y *int) string {
	if y == nil {
		return "-"
	}
	return fmt.Sprint(*y)
}

func lifespan(au catalog.Author) string {
	if au.BirthDate == nil && au.DateOfDeath == nil {
		return ""
	}
	from, to := "?", ""
	if au.BirthDate != nil {
		from = au.BirthDate.Format(catalog.DateLayout)
	}
	if au.DateOfDeath != nil {
		to = au.DateOfDeath.Format(catalog.DateLayout)
	}
	return fmt.Sprintf(" (%s - %s)", from, to)
}
