// Package metrics provides Prometheus metrics for the vigil status monitor.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Numeric encoding of the aggregate server status for the status gauge.
const (
	StatusCodeOperational = 0
	StatusCodeDegraded    = 1
	StatusCodeDown        = 2
)

// Manager manages all Prometheus metrics for the vigil service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Check cycle metrics
	checksTotal        prometheus.Counter
	checkFailuresTotal prometheus.Counter
	checkDuration      prometheus.Histogram

	// Probe metrics
	probeFailuresTotal *prometheus.CounterVec
	probeLatency       *prometheus.HistogramVec

	// Snapshot metrics - current backend state as last observed
	serverStatus        prometheus.Gauge
	responseTime        prometheus.Gauge
	componentsAvailable prometheus.Gauge
	activeConnections   prometheus.Gauge
	projectsCreated     prometheus.Gauge

	// Journal metrics
	journalEntries        prometheus.Gauge
	journalCapacity       prometheus.Gauge
	journalEvictionsTotal prometheus.Counter
	journalClearsTotal    prometheus.Counter

	// Trigger queue metrics
	triggerQueueSize        prometheus.Gauge
	triggerQueueCapacity    prometheus.Gauge
	triggerQueueUtilization prometheus.Gauge
	triggerEnqueueTotal     *prometheus.CounterVec
	triggerEnqueueErrors    prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vigil",
		subsystem:        "monitor",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.checksTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "checks_total",
		Help:      "Total number of completed health check cycles",
	})

	m.checkFailuresTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "check_failures_total",
		Help:      "Total number of health check cycles that marked the backend down",
	})

	m.checkDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "check_duration_milliseconds",
		Help:      "Histogram of full check cycle duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.probeFailuresTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "probe_failures_total",
		Help:      "Total probe failures by probe name",
	}, []string{"probe"})

	m.probeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "probe_latency_milliseconds",
		Help:      "Histogram of per-probe latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"probe"})

	m.serverStatus = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "server_status",
		Help:      "Aggregate backend status (0 operational, 1 degraded, 2 down)",
	})

	m.responseTime = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "response_time_milliseconds",
		Help:      "Wall-clock duration of the most recent check cycle",
	})

	m.componentsAvailable = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "components_available",
		Help:      "Component count reported by the backend capability probe",
	})

	m.activeConnections = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_connections",
		Help:      "Active connection count reported by the backend",
	})

	m.projectsCreated = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projects_created",
		Help:      "Project count reported by the backend",
	})

	m.journalEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_entries",
		Help:      "Current number of entries in the activity journal",
	})

	m.journalCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_capacity",
		Help:      "Configured capacity of the activity journal",
	})

	m.journalEvictionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_evictions_total",
		Help:      "Total journal entries evicted by the capacity cap",
	})

	m.journalClearsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_clears_total",
		Help:      "Total times the activity journal was cleared",
	})

	m.triggerQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trigger_queue_size",
		Help:      "Current number of pending check triggers",
	})

	m.triggerQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trigger_queue_capacity",
		Help:      "Configured capacity of the trigger queue",
	})

	m.triggerQueueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trigger_queue_utilization",
		Help:      "Trigger queue utilization ratio (0.0 to 1.0)",
	})

	m.triggerEnqueueTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trigger_enqueue_total",
		Help:      "Total check triggers enqueued by reason",
	}, []string{"reason"})

	m.triggerEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trigger_enqueue_errors_total",
		Help:      "Total check triggers rejected (queue full or closed)",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

// RecordCheck records a completed check cycle and its duration.
func RecordCheck(durationMs float64) {
	globalManager.checksTotal.Inc()
	globalManager.checkDuration.Observe(durationMs)
}

// RecordCheckFailure records a cycle that marked the backend down.
func RecordCheckFailure() {
	globalManager.checkFailuresTotal.Inc()
}

// RecordProbeFailure records a failed probe by name.
func RecordProbeFailure(probe string) {
	globalManager.probeFailuresTotal.WithLabelValues(probe).Inc()
}

// RecordProbeLatency records latency for a single probe.
func RecordProbeLatency(probe string, durationMs float64) {
	globalManager.probeLatency.WithLabelValues(probe).Observe(durationMs)
}

// UpdateServerStatus sets the aggregate status gauge.
func UpdateServerStatus(code int) {
	globalManager.serverStatus.Set(float64(code))
}

// UpdateResponseTime sets the most recent cycle duration gauge.
func UpdateResponseTime(durationMs int64) {
	globalManager.responseTime.Set(float64(durationMs))
}

// UpdateBackendCounts sets the best-effort backend counters.
func UpdateBackendCounts(components, connections, projects int) {
	globalManager.componentsAvailable.Set(float64(components))
	globalManager.activeConnections.Set(float64(connections))
	globalManager.projectsCreated.Set(float64(projects))
}

// UpdateJournalSize sets the journal entry gauge.
func UpdateJournalSize(n int) {
	globalManager.journalEntries.Set(float64(n))
}

// UpdateJournalCapacity sets the journal capacity gauge.
func UpdateJournalCapacity(n int) {
	globalManager.journalCapacity.Set(float64(n))
}

// RecordJournalEviction records one entry evicted by the cap.
func RecordJournalEviction() {
	globalManager.journalEvictionsTotal.Inc()
}

// RecordJournalClear records a clear-all of the journal.
func RecordJournalClear() {
	globalManager.journalClearsTotal.Inc()
}

// UpdateTriggerQueueSize sets the pending trigger gauge and utilization.
func UpdateTriggerQueueSize(size, capacity int) {
	globalManager.triggerQueueSize.Set(float64(size))
	if capacity > 0 {
		globalManager.triggerQueueUtilization.Set(float64(size) / float64(capacity))
	}
}

// UpdateTriggerQueueCapacity sets the trigger queue capacity gauge.
func UpdateTriggerQueueCapacity(capacity int) {
	globalManager.triggerQueueCapacity.Set(float64(capacity))
}

// RecordTriggerEnqueue records an accepted trigger by reason.
func RecordTriggerEnqueue(reason string) {
	globalManager.triggerEnqueueTotal.WithLabelValues(reason).Inc()
}

// RecordTriggerEnqueueError records a rejected trigger.
func RecordTriggerEnqueueError() {
	globalManager.triggerEnqueueErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the heap usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records average GC pause time.
func RecordSystemGCPauseTime(durationMs float64) {
	globalManager.systemGCPauseTime.Observe(durationMs)
}
