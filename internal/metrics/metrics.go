// Package metrics implements the observability hooks with Prometheus
// collectors.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/protoboard/protoboard/pkg/observability"
)

const namespace = "protoboard"

// Metrics holds every protoboard collector. It implements all hook
// interfaces in package observability.
type Metrics struct {
	Mutations     *prometheus.CounterVec
	PlacedModules prometheus.Gauge
	Pruned        *prometheus.CounterVec

	ImportsTotal    *prometheus.CounterVec
	ImportDuration  *prometheus.HistogramVec
	ImportsInFlight prometheus.Gauge
	TransformErrors *prometheus.CounterVec

	CacheOps   *prometheus.CounterVec
	CacheBytes *prometheus.CounterVec

	FetchTotal    *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	FetchErrors   *prometheus.CounterVec

	APIRequests *prometheus.CounterVec
	APIDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workspace_mutations_total",
			Help:      "Placement store mutations by operation",
		}, []string{"op"}),
		PlacedModules: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workspace_placed_modules",
			Help:      "Modules currently placed on the board",
		}),
		Pruned: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workspace_pruned_modules_total",
			Help:      "Modules removed because the selected board excluded them",
		}, []string{"board"}),

		ImportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Module imports by outcome",
		}, []string{"outcome", "status"}),
		ImportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Time taken to import a module",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 15, 30},
		}, []string{"outcome"}),
		ImportsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "imports_in_flight",
			Help:      "Imports currently running",
		}),
		TransformErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_transform_errors_total",
			Help:      "Failed transformer calls by kind",
		}, []string{"kind"}),

		CacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Content cache operations by key type and result",
		}, []string{"key_type", "result"}),
		CacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the content cache",
		}, []string{"key_type"}),

		FetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Outgoing HTTP requests by host and status code",
		}, []string{"method", "host", "code"}),
		FetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Outgoing HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "host"}),
		FetchErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Outgoing HTTP requests that failed without a response",
		}, []string{"method", "host"}),

		APIRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "API requests by route and status code",
		}, []string{"method", "route", "code"}),
		APIDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Install registers m as the process-wide observability hooks.
func (m *Metrics) Install() {
	observability.SetWorkspaceHooks(m)
	observability.SetImportHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// ObserveRequest records one served API request. route is the router
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.APIRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.APIDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// =============================================================================
// Workspace Hooks
// =============================================================================

func (m *Metrics) OnMutation(op string, placed int) {
	m.Mutations.WithLabelValues(op).Inc()
	m.PlacedModules.Set(float64(placed))
}

func (m *Metrics) OnPruned(boardID string, count int) {
	m.Pruned.WithLabelValues(boardID).Add(float64(count))
}

// =============================================================================
// Import Hooks
// =============================================================================

func (m *Metrics) OnImportStart(context.Context, string) {
	m.ImportsInFlight.Inc()
}

func (m *Metrics) OnImportComplete(_ context.Context, _ string, outcome string, d time.Duration, err error) {
	m.ImportsInFlight.Dec()
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ImportsTotal.WithLabelValues(outcome, status).Inc()
	m.ImportDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *Metrics) OnTransformError(_ context.Context, kind string, _ error) {
	m.TransformErrors.WithLabelValues(kind).Inc()
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheOps.WithLabelValues(keyType, "set").Inc()
	m.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// =============================================================================
// HTTP Hooks
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, host, _ string, code int, d time.Duration) {
	m.FetchTotal.WithLabelValues(method, host, strconv.Itoa(code)).Inc()
	m.FetchDuration.WithLabelValues(method, host).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, host, _ string, _ error) {
	m.FetchErrors.WithLabelValues(method, host).Inc()
}

var (
	_ observability.WorkspaceHooks = (*Metrics)(nil)
	_ observability.ImportHooks    = (*Metrics)(nil)
	_ observability.CacheHooks     = (*Metrics)(nil)
	_ observability.HTTPHooks      = (*Metrics)(nil)
)
