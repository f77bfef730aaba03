// Package metrics provides Prometheus metrics for the mentorboard review
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Review lifecycle
	reviewsSaved       prometheus.Counter
	reviewSaveFailures *prometheus.CounterVec
	rollbacks          *prometheus.CounterVec

	// Assignments
	assignmentsCreated   prometheus.Counter
	assignmentsRemoved   prometheus.Counter
	duplicateAssignments prometheus.Counter

	// Drafts
	draftSaves   prometheus.Counter
	draftLoads   *prometheus.CounterVec
	draftEvicted prometheus.Counter

	// Aggregation
	aggregationDuration *prometheus.HistogramVec

	// Store operations
	storeOpDuration *prometheus.HistogramVec
	storeOpErrors   *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Roster gauges
	teamsTracked   prometheus.Gauge
	mentorsTracked prometheus.Gauge
	reviewsTracked prometheus.Gauge

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mentorboard",
		subsystem:        "reviews",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.reviewsSaved = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "saved_total", Help: "Review saves confirmed by the store.",
	})
	m.reviewSaveFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "save_failures_total", Help: "Review save failures by reason.",
	}, []string{"reason"})
	m.rollbacks = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "rollbacks_total", Help: "In-memory state rollbacks by operation.",
	}, []string{"op"})

	m.assignmentsCreated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "assignments",
		Name: "created_total", Help: "Mentor-team assignments created.",
	})
	m.assignmentsRemoved = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "assignments",
		Name: "removed_total", Help: "Mentor-team assignments removed.",
	})
	m.duplicateAssignments = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "assignments",
		Name: "duplicates_total", Help: "Assignment attempts rejected as duplicates.",
	})

	m.draftSaves = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "drafts",
		Name: "saves_total", Help: "Draft writes persisted after debounce.",
	})
	m.draftLoads = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "drafts",
		Name: "loads_total", Help: "Draft load attempts by outcome.",
	}, []string{"outcome"})
	m.draftEvicted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "drafts",
		Name: "evicted_total", Help: "Drafts removed by expiry or replacement.",
	})

	m.aggregationDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "aggregation",
		Name: "duration_ms", Help: "Aggregation recompute duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"view"})

	m.storeOpDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "store",
		Name: "op_duration_ms", Help: "Store operation latency in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"op"})
	m.storeOpErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "store",
		Name: "op_errors_total", Help: "Store operation failures by operation.",
	}, []string{"op"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "requests_total", Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "request_duration_ms", Help: "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.teamsTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "roster",
		Name: "teams", Help: "Teams currently cached in memory.",
	})
	m.mentorsTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "roster",
		Name: "mentors", Help: "Mentors currently cached in memory.",
	})
	m.reviewsTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "roster",
		Name: "reviews", Help: "Reviews currently cached in memory.",
	})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system",
		Name: "memory_bytes", Help: "Allocated heap bytes.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system",
		Name: "goroutines", Help: "Current goroutine count.",
	})
}

// GetRegistry returns the registry backing the global manager, for the
// metrics HTTP handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Global helpers mirror the Manager methods on the singleton.

func RecordReviewSaved() { globalManager.reviewsSaved.Inc() }

func RecordReviewSaveFailure(reason string) {
	globalManager.reviewSaveFailures.WithLabelValues(reason).Inc()
}

func RecordRollback(op string) { globalManager.rollbacks.WithLabelValues(op).Inc() }

func RecordAssignmentCreated() { globalManager.assignmentsCreated.Inc() }

func RecordAssignmentRemoved() { globalManager.assignmentsRemoved.Inc() }

func RecordDuplicateAssignment() { globalManager.duplicateAssignments.Inc() }

func RecordDraftSave() { globalManager.draftSaves.Inc() }

func RecordDraftLoad(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	globalManager.draftLoads.WithLabelValues(outcome).Inc()
}

func RecordDraftEvicted() { globalManager.draftEvicted.Inc() }

func RecordAggregation(view string, ms float64) {
	globalManager.aggregationDuration.WithLabelValues(view).Observe(ms)
}

func RecordStoreOp(op string, ms float64, failed bool) {
	globalManager.storeOpDuration.WithLabelValues(op).Observe(ms)
	if failed {
		globalManager.storeOpErrors.WithLabelValues(op).Inc()
	}
}

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

func UpdateRoster(teams, mentors, reviews int) {
	globalManager.teamsTracked.Set(float64(teams))
	globalManager.mentorsTracked.Set(float64(mentors))
	globalManager.reviewsTracked.Set(float64(reviews))
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}
