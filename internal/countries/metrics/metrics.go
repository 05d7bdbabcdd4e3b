package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for country retrieval and resolution.
// Tracks remote fetch latency and failures, cache effectiveness, discarded
// stale results and neighbor codes that did not resolve.
type Metrics struct {
	FetchDuration       *prometheus.HistogramVec
	FetchFailures       *prometheus.CounterVec
	CacheLookups        *prometheus.CounterVec
	SupersededResults   *prometheus.CounterVec
	UnresolvedNeighbors prometheus.Counter
	ActiveSessions      prometheus.Gauge
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers all metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countries_fetch_duration_seconds",
			Help:    "Duration of remote country fetches by operation",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"op"}),
		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_fetch_failures_total",
			Help: "Total number of failed remote country fetches",
		}, []string{"op", "category"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_response_cache_lookups_total",
			Help: "Response cache lookups by result (hit or miss)",
		}, []string{"result"}),
		SupersededResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_superseded_results_total",
			Help: "Results discarded because a newer request replaced them",
		}, []string{"view"}),
		UnresolvedNeighbors: factory.NewCounter(prometheus.CounterOpts{
			Name: "countries_unresolved_neighbors_total",
			Help: "Border codes that did not resolve to a country",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "countries_active_sessions",
			Help: "Current number of live browsing sessions",
		}),
	}
}

// ObserveFetch records the duration of a remote fetch.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveFetch(op string, start time.Time) {
	m.FetchDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// IncrementFetchFailure records a failed fetch by category.
func (m *Metrics) IncrementFetchFailure(op, category string) {
	m.FetchFailures.WithLabelValues(op, category).Inc()
}

// IncrementCacheHit records a response cache hit.
func (m *Metrics) IncrementCacheHit() {
	m.CacheLookups.WithLabelValues("hit").Inc()
}

// IncrementCacheMiss records a response cache miss.
func (m *Metrics) IncrementCacheMiss() {
	m.CacheLookups.WithLabelValues("miss").Inc()
}

// IncrementSuperseded records a discarded stale result for a view ("search" or "detail").
func (m *Metrics) IncrementSuperseded(view string) {
	m.SupersededResults.WithLabelValues(view).Inc()
}

// AddUnresolvedNeighbors records border codes with no matching record.
func (m *Metrics) AddUnresolvedNeighbors(count int) {
	if count > 0 {
		m.UnresolvedNeighbors.Add(float64(count))
	}
}

// SetActiveSessions sets the live session gauge.
func (m *Metrics) SetActiveSessions(count int) {
	m.ActiveSessions.Set(float64(count))
}
