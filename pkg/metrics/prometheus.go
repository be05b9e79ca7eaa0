// Package metrics provides Prometheus metrics for the expert dashboard service.
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

// Manager owns the collectors of the service. Recording goes through the
// package-level functions, which target the global manager.
type Manager struct {
	namespace       string
	subsystem       string
	metricPrefix    string
	latencyBuckets  []float64
	constLabels     map[string]string
	enabled         bool
	refreshInterval time.Duration
	registry        prometheus.Registerer

	// Core business metrics
	uploads            *prometheus.CounterVec
	idsIngested        prometheus.Counter
	profilesGenerated  *prometheus.CounterVec
	generationLatency  prometheus.Histogram
	aggregationLatency prometheus.Histogram
	qualityLabels      *prometheus.CounterVec
	riskLevels         *prometheus.CounterVec

	// Session store metrics
	activeSessions  prometheus.Gauge
	sessionsEvicted *prometheus.CounterVec
	sessionLatency  *prometheus.HistogramVec

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

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
	globalManager = NewManager(WithRegisterer(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "expertlens",
		subsystem:       "dashboard",
		latencyBuckets:  []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:         true,
		refreshInterval: defaultRefreshInterval,
		registry:        prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.uploads = auto.NewCounterVec(
		m.counterOpts("uploads_total", "Total number of identifier file uploads by outcome"),
		[]string{"outcome"},
	)
	m.idsIngested = auto.NewCounter(m.counterOpts("ids_ingested_total", "Total number of unique identifiers ingested"))
	m.profilesGenerated = auto.NewCounterVec(
		m.counterOpts("profiles_generated_total", "Total number of profiles produced by source"),
		[]string{"source"},
	)
	m.generationLatency = auto.NewHistogram(m.histogramOpts(
		"generation_latency_milliseconds", "Histogram of batch profile generation latency in milliseconds", m.latencyBuckets))
	m.aggregationLatency = auto.NewHistogram(m.histogramOpts(
		"aggregation_latency_milliseconds", "Histogram of dashboard aggregation latency in milliseconds", m.latencyBuckets))
	m.qualityLabels = auto.NewCounterVec(
		m.counterOpts("quality_labels_total", "Profiles generated by quality label"),
		[]string{"label"},
	)
	m.riskLevels = auto.NewCounterVec(
		m.counterOpts("template_risk_levels_total", "Profiles generated by template risk level"),
		[]string{"level"},
	)

	m.activeSessions = auto.NewGauge(m.gaugeOpts("active_sessions", "Current number of cached upload sessions"))
	m.sessionsEvicted = auto.NewCounterVec(
		m.counterOpts("sessions_evicted_total", "Sessions removed from the store by reason"),
		[]string{"reason"},
	)
	m.sessionLatency = auto.NewHistogramVec(
		m.histogramOpts("session_store_latency_milliseconds", "Session store operation latency in milliseconds", m.latencyBuckets),
		[]string{"op"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RefreshInterval returns the gauge refresh interval of the global manager.
func RefreshInterval() time.Duration { return globalManager.refreshInterval }

func enabled() bool { return globalManager.enabled }

// Business metrics

func RecordUpload(outcome string) {
	if enabled() {
		globalManager.uploads.WithLabelValues(outcome).Inc()
	}
}

func RecordIDsIngested(n int) {
	if enabled() {
		globalManager.idsIngested.Add(float64(n))
	}
}

func RecordProfilesGenerated(source string, n int) {
	if enabled() {
		globalManager.profilesGenerated.WithLabelValues(source).Add(float64(n))
	}
}

func RecordGenerationLatency(latencyMs float64) {
	if enabled() {
		globalManager.generationLatency.Observe(latencyMs)
	}
}

func RecordAggregationLatency(latencyMs float64) {
	if enabled() {
		globalManager.aggregationLatency.Observe(latencyMs)
	}
}

func RecordQualityLabel(label string) {
	if enabled() {
		globalManager.qualityLabels.WithLabelValues(label).Inc()
	}
}

func RecordRiskLevel(level string) {
	if enabled() {
		globalManager.riskLevels.WithLabelValues(level).Inc()
	}
}

// Session store metrics

func UpdateActiveSessions(count int) {
	if enabled() {
		globalManager.activeSessions.Set(float64(count))
	}
}

func RecordSessionsEvicted(reason string, n int) {
	if enabled() && n > 0 {
		globalManager.sessionsEvicted.WithLabelValues(reason).Add(float64(n))
	}
}

func RecordSessionStoreLatency(op string, latencyMs float64) {
	if enabled() {
		globalManager.sessionLatency.WithLabelValues(op).Observe(latencyMs)
	}
}

// HTTP metrics

func RecordHTTPRequest(endpoint, method, statusCode string) {
	if enabled() {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if enabled() {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// Error metrics

func RecordErrorByComponent(component, errorType string) {
	if enabled() {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

func RecordErrorByType(errorType, severity string) {
	if enabled() {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if enabled() {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// System metrics

func UpdateSystemMemoryUsage(bytes uint64) {
	if enabled() {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

func UpdateSystemGoroutineCount(count int) {
	if enabled() {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

func RecordSystemGCPauseTime(pauseMs float64) {
	if enabled() {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
