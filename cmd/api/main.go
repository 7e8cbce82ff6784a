package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/book-catalog/catalog"
	"github.com/marcelsud/book-catalog/config"
	"github.com/marcelsud/book-catalog/enrichment/googlebooks"
	"github.com/marcelsud/book-catalog/internal/http/chi"
	"github.com/marcelsud/book-catalog/internal/storage"
	"github.com/marcelsud/book-catalog/metrics"
)

const TIMEOUT = 30 * time.Second

/* The api binary wires config, storage, enrichment and metrics into the
 * catalog service and serves it over HTTP. Imports only go downwards:
 * cmd -> internal/http -> catalog -> storage.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		return
	}
	logger := httplog.NewLogger("book-catalog", httplog.Options{
		JSON:     cfg.LogJSON,
		LogLevel: cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	store, err := storage.Open(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("opening store")
		return
	}
	defer store.Close(ctx)
	if err := store.CreateSchema(ctx); err != nil {
		logger.Error().Err(err).Msg("creating schema")
		return
	}

	exporter, err := metrics.NewOTelExporter(metrics.NewStoreCollector(store))
	if err != nil {
		logger.Error().Err(err).Msg("creating metrics exporter")
		return
	}
	defer exporter.Shutdown(context.Background())

	enricher := googlebooks.New(
		googlebooks.WithBaseURL(cfg.GoogleBooksURL),
		googlebooks.WithAPIKey(cfg.GoogleBooksAPIKey),
		googlebooks.WithTimeout(cfg.EnrichmentTimeout),
		googlebooks.WithRateLimit(cfg.EnrichmentRate, cfg.EnrichmentBurst),
		googlebooks.WithRecorder(exporter),
		googlebooks.WithLogger(logger.With().Str("component", "enrichment").Logger()),
	)

	s := catalog.NewService(store, enricher, logger)
	r := chi.Handlers(ctx, s, logger, exporter.ServeHTTP())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().Str("port", cfg.Port).Str("driver", cfg.DBDriver).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("serving")
		return
	}
	err = <-errShutdown
	if err != nil {
		logger.Error().Err(err).Msg("shutting down")
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing server close after %s", TIMEOUT)
	default:
		errShutdown <- fmt.Errorf("shutting down server: %w", err)
	}
}
