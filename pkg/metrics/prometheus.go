// Package metrics provides Prometheus metrics for the crosstable analysis
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the crosstable service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion metrics
	gamesIngested  prometheus.Counter
	gamesMalformed prometheus.Counter
	pgnFilesParsed prometheus.Counter
	pgnParseErrors prometheus.Counter

	// Pipeline metrics
	enginesTracked     prometheus.Gauge
	tournamentsTracked prometheus.Gauge
	reportBuilds       prometheus.Counter
	pipelineDuration   prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "crosstable",
		subsystem:        "analysis",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.gamesIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_ingested_total",
		Help:      "Total number of valid games accepted by ingestion",
	})

	m.gamesMalformed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_malformed_total",
		Help:      "Total number of raw game tuples skipped as malformed",
	})

	m.pgnFilesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pgn_files_parsed_total",
		Help:      "Total number of PGN files read from the results directory",
	})

	m.pgnParseErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pgn_parse_errors_total",
		Help:      "Total number of PGN files or games that failed to parse",
	})

	m.enginesTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "engines_tracked",
		Help:      "Number of canonical identities in the latest analysis",
	})

	m.tournamentsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tournaments_tracked",
		Help:      "Number of tournaments in the latest analysis",
	})

	m.reportBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_builds_total",
		Help:      "Total number of analysis reports compiled",
	})

	m.pipelineDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_duration_seconds",
		Help:      "Wall-clock duration of a full analysis pipeline run",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordGameIngested increments the valid-game counter.
func RecordGameIngested() {
	globalManager.gamesIngested.Inc()
}

// RecordGameMalformed increments the malformed-game counter.
func RecordGameMalformed() {
	globalManager.gamesMalformed.Inc()
}

// RecordPGNFileParsed increments the parsed-file counter.
func RecordPGNFileParsed() {
	globalManager.pgnFilesParsed.Inc()
}

// RecordPGNParseError increments the parse-error counter.
func RecordPGNParseError() {
	globalManager.pgnParseErrors.Inc()
}

// UpdateEnginesTracked sets the number of canonical identities.
func UpdateEnginesTracked(n int) {
	globalManager.enginesTracked.Set(float64(n))
}

// UpdateTournamentsTracked sets the number of tournaments.
func UpdateTournamentsTracked(n int) {
	globalManager.tournamentsTracked.Set(float64(n))
}

// RecordReportBuild increments the report counter.
func RecordReportBuild() {
	globalManager.reportBuilds.Inc()
}

// RecordPipelineDuration records a full pipeline run duration in seconds.
func RecordPipelineDuration(seconds float64) {
	globalManager.pipelineDuration.Observe(seconds)
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
