// Package metrics provides Prometheus metrics for the athlos report service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the report service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Report metrics
	reportBuilds        prometheus.Counter
	reportBuildDuration prometheus.Histogram
	reportCacheHits     prometheus.Counter
	reportCacheMisses   prometheus.Counter
	athletesReported    prometheus.Gauge
	cellsParsed         *prometheus.CounterVec
	missingColumns      prometheus.Gauge
	missingSheets       prometheus.Gauge

	// Workbook ingestion
	workbookUpdates    *prometheus.CounterVec
	workbookLoadErrors *prometheus.CounterVec
	snapshotLastUnix   prometheus.Gauge

	// Repository metrics
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "athlos",
		subsystem:        "report",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	latencyBuckets := []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}

	m.reportBuilds = m.counter("builds_total", "Total number of reports built from workbook snapshots")
	m.reportBuildDuration = m.histogram("build_duration_milliseconds", "Report build duration in milliseconds", latencyBuckets)
	m.reportCacheHits = m.counter("cache_hits_total", "Reports served from the report cache")
	m.reportCacheMisses = m.counter("cache_misses_total", "Report requests that required a build")
	m.athletesReported = m.gauge("athletes", "Number of athletes in the latest report")
	m.cellsParsed = m.counterVec("cells_parsed_total", "Workbook cells parsed, by outcome (value, absent, rejected)", "status")
	m.missingColumns = m.gauge("missing_columns", "Metrics without a column in the current-week sheet")
	m.missingSheets = m.gauge("missing_sheets", "Metrics without a sheet in the history workbook")

	m.workbookUpdates = m.counterVec("workbook_updates_total", "Workbook snapshots stored, by kind (current, history)", "kind")
	m.workbookLoadErrors = m.counterVec("workbook_load_errors_total", "Workbook snapshots that failed to load, by source", "source")
	m.snapshotLastUnix = m.gauge("snapshot_last_unix", "Unix time of the last snapshot change")

	m.repositoryUpdateLatency = m.histogram("repository_update_latency_milliseconds", "Snapshot store write latency in milliseconds", latencyBuckets)
	m.repositoryQueryLatency = m.histogram("repository_query_latency_milliseconds", "Snapshot store read latency in milliseconds", latencyBuckets)

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		m.histogramBuckets, "endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint, method and type", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds", "Latency of operations that ended in error", latencyBuckets, "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds", latencyBuckets)
}

// Report Metrics Functions.

// RecordReportBuild records one report build and its duration.
func RecordReportBuild(durationMs float64) {
	globalManager.reportBuilds.Inc()
	globalManager.reportBuildDuration.Observe(durationMs)
}

// RecordReportCacheHit increments the report cache hit counter.
func RecordReportCacheHit() {
	globalManager.reportCacheHits.Inc()
}

// RecordReportCacheMiss increments the report cache miss counter.
func RecordReportCacheMiss() {
	globalManager.reportCacheMisses.Inc()
}

// UpdateAthletesReported sets the athlete count of the latest report.
func UpdateAthletesReported(count int) {
	globalManager.athletesReported.Set(float64(count))
}

// RecordCellsParsed adds n parsed cells with the given status.
func RecordCellsParsed(status string, n int) {
	if n <= 0 {
		return
	}
	globalManager.cellsParsed.WithLabelValues(status).Add(float64(n))
}

// UpdateMissingMetrics sets the number of metrics without a current column
// and without a history sheet.
func UpdateMissingMetrics(columns, sheets int) {
	globalManager.missingColumns.Set(float64(columns))
	globalManager.missingSheets.Set(float64(sheets))
}

// Workbook Metrics Functions.

// RecordWorkbookUpdate increments the stored workbook counter for kind.
func RecordWorkbookUpdate(kind string) {
	globalManager.workbookUpdates.WithLabelValues(kind).Inc()
}

// RecordWorkbookLoadError increments the load error counter for source.
func RecordWorkbookLoadError(source string) {
	globalManager.workbookLoadErrors.WithLabelValues(source).Inc()
}

// UpdateSnapshotLastUnix sets the time of the last snapshot change.
func UpdateSnapshotLastUnix(unix float64) {
	globalManager.snapshotLastUnix.Set(unix)
}

// Repository Metrics Functions.

// RecordRepositoryUpdateLatency records repository update operation latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.repositoryUpdateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records repository query operation latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
