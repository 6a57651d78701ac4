// Package metrics provides Prometheus metrics for the poolpick engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector the engine and its adapters record into.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Generation
	runsTotal          *prometheus.CounterVec
	runDuration        prometheus.Histogram
	picksEmitted       prometheus.Counter
	emptyPools         prometheus.Counter
	candidatesScored   *prometheus.CounterVec
	candidatesSkipped  *prometheus.CounterVec
	underdogFlips      *prometheus.CounterVec
	reallocCollisions  prometheus.Counter
	recommendations    *prometheus.CounterVec
	combineRuns        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec

	// Workers
	workerActive prometheus.Gauge
	workerJobs   prometheus.Counter

	// System
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
	systemGCPause    prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec
}

var (
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process registry without default Go collectors
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "poolpick",
		subsystem:        "engine",
		histogramBuckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		enabled:          true,
		constLabels:      prometheus.Labels{},
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
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runsTotal = m.counterVec("runs_total", "Generation runs by strategy tag", "strategy")
	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_ms",
		Help:        "Wall time of one generation run in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
	m.picksEmitted = m.counter("picks_emitted_total", "Picks returned to callers")
	m.emptyPools = m.counter("empty_pools_total", "Runs that produced an empty candidate pool")
	m.candidatesScored = m.counterVec("candidates_scored_total", "Candidates produced by the scorer", "strategy")
	m.candidatesSkipped = m.counterVec("candidates_skipped_total", "Games skipped by the scorer", "strategy")
	m.underdogFlips = m.counterVec("underdog_flips_total", "Candidates deliberately flipped to the lower rated side", "strategy")
	m.reallocCollisions = m.counter("reallocation_collisions_total", "Duplicate points corrected by the reallocation re-rank")
	m.recommendations = m.counterVec("recommendations_total", "Value plays by recommendation", "recommendation")
	m.combineRuns = m.counterVec("combine_runs_total", "Multi-source combinations by mode", "mode")
	m.validationFailures = m.counterVec("validation_failures_total", "Rejected inputs by error kind", "kind")

	m.workerActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "workers", Name: "active", Help: "Workers currently scoring games", ConstLabels: m.constLabels,
	})
	m.workerJobs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "workers", Name: "jobs_total", Help: "Jobs completed by the worker pool", ConstLabels: m.constLabels,
	})

	m.systemMemory = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system", Name: "memory_bytes", Help: "Heap bytes allocated", ConstLabels: m.constLabels,
	})
	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system", Name: "goroutines", Help: "Live goroutines", ConstLabels: m.constLabels,
	})
	m.systemGCPause = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "system", Name: "gc_pause_ms", Help: "Average GC pause in milliseconds",
		Buckets: m.histogramBuckets, ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http", Name: "requests_total", Help: "HTTP requests", ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http", Name: "request_duration_ms", Help: "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets, ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status"})
	m.httpRateLimited = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http", Name: "rate_limited_total", Help: "Requests rejected by the rate limiter", ConstLabels: m.constLabels,
	}, []string{"endpoint"})
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

// GetRegistry returns the process registry used by the /healthz exporter.
func GetRegistry() *prometheus.Registry { return customRegistry }

// GetManager returns the global manager.
func GetManager() *Manager { return globalManager }

// RecordRun counts a finished run and its duration.
func RecordRun(strategy string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.runsTotal.WithLabelValues(strategy).Inc()
	globalManager.runDuration.Observe(durationMs)
}

// RecordPicks adds emitted picks; zero picks counts as an empty pool.
func RecordPicks(n int) {
	if !globalManager.enabled {
		return
	}
	if n == 0 {
		globalManager.emptyPools.Inc()
		return
	}
	globalManager.picksEmitted.Add(float64(n))
}

// RecordCandidates records scorer output for a strategy.
func RecordCandidates(strategy string, scored, skipped, flipped int) {
	if !globalManager.enabled {
		return
	}
	globalManager.candidatesScored.WithLabelValues(strategy).Add(float64(scored))
	globalManager.candidatesSkipped.WithLabelValues(strategy).Add(float64(skipped))
	globalManager.underdogFlips.WithLabelValues(strategy).Add(float64(flipped))
}

// RecordReallocationCollisions records how many reallocated values collided.
func RecordReallocationCollisions(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.reallocCollisions.Add(float64(n))
}

// RecordRecommendation counts a value play recommendation.
func RecordRecommendation(rec string) {
	if !globalManager.enabled {
		return
	}
	globalManager.recommendations.WithLabelValues(rec).Inc()
}

// RecordCombine counts a multi-source combination.
func RecordCombine(mode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.combineRuns.WithLabelValues(mode).Inc()
}

// RecordValidationFailure counts rejected input by kind.
func RecordValidationFailure(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.validationFailures.WithLabelValues(kind).Inc()
}

// UpdateWorkerActive adjusts the active worker gauge by delta.
func UpdateWorkerActive(delta int) {
	if !globalManager.enabled {
		return
	}
	globalManager.workerActive.Add(float64(delta))
}

// RecordWorkerJob counts a completed worker job.
func RecordWorkerJob() {
	if !globalManager.enabled {
		return
	}
	globalManager.workerJobs.Inc()
}

// RecordHTTPRequest records one HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, status string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordRateLimited counts a request rejected by the limiter.
func RecordRateLimited(endpoint string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemory.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutines.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGCPause.Observe(pauseMs)
}
