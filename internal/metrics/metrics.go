// Package metrics defines the Prometheus collectors for dictionary ingestion,
// queries and the HTTP API.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/at-ishikawa/rechnik/internal/dictionary"
)

// Ingestion results used as the "result" label.
const (
	ResultSuccess           = "success"
	ResultSourceUnavailable = "source_unavailable"
	ResultMalformedPayload  = "malformed_payload"
)

// Metrics holds all Prometheus collectors of the application.
type Metrics struct {
	IngestionsTotal     *prometheus.CounterVec
	IngestionDuration   prometheus.Histogram
	DictionaryEntries   prometheus.Gauge
	DroppedRows         prometheus.Gauge
	SearchQueriesTotal  *prometheus.CounterVec
	SearchResultsCount  prometheus.Histogram
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		IngestionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rechnik_ingestions_total",
				Help: "Total ingestion passes by result (success, source_unavailable, malformed_payload).",
			},
			[]string{"result"},
		),
		IngestionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rechnik_ingestion_duration_seconds",
				Help:    "Time spent fetching and parsing the word list.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		DictionaryEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "rechnik_dictionary_entries",
				Help: "Number of entries in the published snapshot.",
			},
		),
		DroppedRows: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "rechnik_dictionary_dropped_rows",
				Help: "Rows dropped by the validity filter in the last successful ingestion.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rechnik_search_queries_total",
				Help: "Total search queries by result type (hit, zero_result, empty_query).",
			},
			[]string{"result_type"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rechnik_search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rechnik_http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rechnik_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		gatherer: registry,
	}

	registry.MustRegister(
		m.IngestionsTotal,
		m.IngestionDuration,
		m.DictionaryEntries,
		m.DroppedRows,
		m.SearchQueriesTotal,
		m.SearchResultsCount,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

// ObserveIngestion records the outcome of one Store.Ingest call.
// entries is the size of the snapshot published afterwards.
func (m *Metrics) ObserveIngestion(report dictionary.Report, entries int, err error) {
	m.IngestionsTotal.WithLabelValues(ingestionResult(err)).Inc()
	m.DictionaryEntries.Set(float64(entries))
	if err != nil {
		return
	}
	m.IngestionDuration.Observe(report.Duration.Seconds())
	m.DroppedRows.Set(float64(report.Dropped))
}

func ingestionResult(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, dictionary.ErrMalformedPayload):
		return ResultMalformedPayload
	default:
		return ResultSourceUnavailable
	}
}

// ObserveSearch records one search query and its result count.
func (m *Metrics) ObserveSearch(query string, results int) {
	switch {
	case query == "":
		m.SearchQueriesTotal.WithLabelValues("empty_query").Inc()
		return
	case results == 0:
		m.SearchQueriesTotal.WithLabelValues("zero_result").Inc()
	default:
		m.SearchQueriesTotal.WithLabelValues("hit").Inc()
	}
	m.SearchResultsCount.Observe(float64(results))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler returns the Prometheus scrape HTTP handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
