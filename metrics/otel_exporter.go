package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector
	gatherer      promclient.Gatherer

	// OTel meters and instruments
	meter             metric.Meter
	authorsGauge      metric.Int64ObservableGauge
	booksGauge        metric.Int64ObservableGauge
	enrichmentCounter metric.Int64Counter
}

// NewOTelExporter creates an exporter registered with the default Prometheus registry
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	return newOTelExporter(collector, promclient.DefaultRegisterer, promclient.DefaultGatherer)
}

// NewOTelExporterWithRegistry creates an exporter on its own registry
func NewOTelExporterWithRegistry(collector Collector, reg *promclient.Registry) (*OTelExporter, error) {
	return newOTelExporter(collector, reg, reg)
}

func newOTelExporter(collector Collector, reg promclient.Registerer, gatherer promclient.Gatherer) (*OTelExporter, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"book-catalog",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		gatherer:      gatherer,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.authorsGauge, err = oe.meter.Int64ObservableGauge(
		"catalog.authors",
		metric.WithDescription("Number of authors in the catalog"),
		metric.WithUnit("{authors}"),
		metric.WithInt64Callback(oe.observeAuthors),
	)
	if err != nil {
		return fmt.Errorf("creating authors gauge: %w", err)
	}

	oe.booksGauge, err = oe.meter.Int64ObservableGauge(
		"catalog.books",
		metric.WithDescription("Number of books in the catalog"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeBooks),
	)
	if err != nil {
		return fmt.Errorf("creating books gauge: %w", err)
	}

	oe.enrichmentCounter, err = oe.meter.Int64Counter(
		"catalog.enrichment.lookups",
		metric.WithDescription("Book metadata lookups by outcome"),
		metric.WithUnit("{lookups}"),
	)
	if err != nil {
		return fmt.Errorf("creating enrichment counter: %w", err)
	}

	return nil
}

func (oe *OTelExporter) observeAuthors(ctx context.Context, observer metric.Int64Observer) error {
	n, err := oe.collector.GetAuthorCount(ctx)
	if err != nil {
		return err
	}
	observer.Observe(n)
	return nil
}

func (oe *OTelExporter) observeBooks(ctx context.Context, observer metric.Int64Observer) error {
	n, err := oe.collector.GetBookCount(ctx)
	if err != nil {
		return err
	}
	observer.Observe(n)
	return nil
}

// RecordEnrichment counts one metadata lookup with its outcome
func (oe *OTelExporter) RecordEnrichment(ctx context.Context, outcome string) {
	oe.enrichmentCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// ServeHTTP serves Prometheus-formatted metrics
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.gatherer, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
