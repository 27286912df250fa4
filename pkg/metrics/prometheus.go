// Package metrics provides Prometheus metrics for the portalrank service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultNamespace = "portalrank"

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Valuation
	playersValued    prometheus.Counter
	valuationErrors  *prometheus.CounterVec
	valuationLatency prometheus.Histogram

	// Transfer ingestion
	transfersAccepted  prometheus.Counter
	transfersDuplicate prometheus.Counter
	transfersApplied   *prometheus.CounterVec
	transfersRejected  prometheus.Counter

	// Standings
	memoHits                prometheus.Counter
	memoMisses              prometheus.Counter
	standingsRebuilds       prometheus.Counter
	standingsRebuildLatency prometheus.Histogram
	teamsTracked            prometheus.Gauge
	leagueVersion           prometheus.Gauge

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(subsystem, name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(subsystem, name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(subsystem, name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.playersValued = m.counter("valuation", "players_valued_total", "Total number of players valued")
	m.valuationErrors = m.counterVec("valuation", "errors_total", "Total number of rejected valuation inputs", "source")
	m.valuationLatency = m.histogram("valuation", "latency_milliseconds", "Single player valuation latency in milliseconds")

	m.transfersAccepted = m.counter("transfers", "accepted_total", "Total number of transfers accepted for processing")
	m.transfersDuplicate = m.counter("transfers", "duplicate_total", "Total number of duplicate transfers dropped")
	m.transfersApplied = m.counterVec("transfers", "applied_total", "Total number of transfers applied to the league", "direction")
	m.transfersRejected = m.counter("transfers", "rejected_total", "Total number of transfers rejected by the league store")

	m.memoHits = m.counter("standings", "memo_hits_total", "Team summaries served from the memo cache")
	m.memoMisses = m.counter("standings", "memo_misses_total", "Team summaries recomputed")
	m.standingsRebuilds = m.counter("standings", "rebuilds_total", "Total number of ranked standings rebuilds")
	m.standingsRebuildLatency = m.histogram("standings", "rebuild_latency_milliseconds", "Ranked standings rebuild latency in milliseconds")
	m.teamsTracked = m.gauge("standings", "teams_tracked", "Number of teams in the league")
	m.leagueVersion = m.gauge("standings", "league_version", "Monotonic version of the league store")

	m.queueSize = m.gauge("queue", "size", "Current number of queued transfers")
	m.queueCapacity = m.gauge("queue", "capacity", "Maximum queue capacity")
	m.queueUtilization = m.gauge("queue", "utilization_ratio", "Queue utilization ratio (size / capacity)")
	m.queueEnqueued = m.counter("queue", "enqueue_total", "Total number of transfers enqueued")
	m.queueDequeued = m.counter("queue", "dequeue_total", "Total number of transfers dequeued")
	m.queueEnqueueErrors = m.counter("queue", "enqueue_errors_total", "Total number of enqueue failures")

	m.workerCount = m.gauge("worker", "count", "Configured number of workers")
	m.workerActiveCount = m.gauge("worker", "active_count", "Number of running workers")
	m.workerProcessingLatency = m.histogram("worker", "processing_latency_milliseconds", "Per-transfer processing latency in milliseconds")
	m.workerErrors = m.counter("worker", "errors_total", "Total number of transfers a worker failed to process")

	m.httpRequests = m.counterVec("http", "requests_total", "Total number of HTTP requests", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http", Name: "request_duration_milliseconds",
		Help: "HTTP request duration in milliseconds", ConstLabels: m.constLabels, Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = m.counterVec("", "errors_by_component_total", "Total number of errors by component", "component", "error_type")
	m.errorsByEndpoint = m.counterVec("", "errors_by_endpoint_total", "Total number of errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system", "memory_usage_bytes", "Heap memory in use in bytes")
	m.systemGoroutineCount = m.gauge("system", "goroutine_count", "Number of goroutines")
}

// Valuation.

// RecordPlayerValued counts one valuation and its latency.
func RecordPlayerValued(latencyMs float64) {
	globalManager.playersValued.Inc()
	globalManager.valuationLatency.Observe(latencyMs)
}

// RecordValuationError counts a rejected valuation input by source (api, worker, roster).
func RecordValuationError(source string) {
	globalManager.valuationErrors.WithLabelValues(source).Inc()
}

// Transfers.

// RecordTransferAccepted increments the accepted transfers counter.
func RecordTransferAccepted() { globalManager.transfersAccepted.Inc() }

// RecordTransferDuplicate increments the duplicate transfers counter.
func RecordTransferDuplicate() { globalManager.transfersDuplicate.Inc() }

// RecordTransferApplied counts a transfer applied to the league.
func RecordTransferApplied(direction string) {
	globalManager.transfersApplied.WithLabelValues(direction).Inc()
}

// RecordTransferRejected increments the rejected transfers counter.
func RecordTransferRejected() { globalManager.transfersRejected.Inc() }

// Standings.

// RecordMemoHit increments the memo hit counter.
func RecordMemoHit() { globalManager.memoHits.Inc() }

// RecordMemoMiss increments the memo miss counter.
func RecordMemoMiss() { globalManager.memoMisses.Inc() }

// RecordStandingsRebuild counts a rebuild and its latency.
func RecordStandingsRebuild(latencyMs float64) {
	globalManager.standingsRebuilds.Inc()
	globalManager.standingsRebuildLatency.Observe(latencyMs)
}

// UpdateTeamsTracked sets the number of teams in the league.
func UpdateTeamsTracked(count int) { globalManager.teamsTracked.Set(float64(count)) }

// UpdateLeagueVersion sets the league store version.
func UpdateLeagueVersion(version uint64) { globalManager.leagueVersion.Set(float64(version)) }

// Queue.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) { globalManager.queueUtilization.Set(utilization) }

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// Worker.

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) { globalManager.workerCount.Set(float64(count)) }

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) { globalManager.workerActiveCount.Set(float64(count)) }

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// HTTP.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Errors.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System.

// UpdateSystemMemoryUsage sets the heap memory in use.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
