package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for point lookups.
type Metrics struct {
	// Lookup outcomes by kind (student, program, stream) and outcome
	// (found, not_found, error)
	LookupOutcome *prometheus.CounterVec

	// Lookup latency by kind
	LookupLatency *prometheus.HistogramVec

	// Cache hits and misses by kind
	CacheResult *prometheus.CounterVec
}

// New registers lookup metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mymyunsw_lookup_outcomes_total",
			Help: "Point lookups by kind and outcome",
		}, []string{"kind", "outcome"}),

		LookupLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mymyunsw_lookup_duration_seconds",
			Help:    "Duration of point lookups by kind",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),

		CacheResult: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mymyunsw_lookup_cache_total",
			Help: "Lookup cache results by kind",
		}, []string{"kind", "result"}),
	}
}

// ObserveLookup records one lookup's outcome and duration.
func (m *Metrics) ObserveLookup(kind, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.LookupOutcome.WithLabelValues(kind, outcome).Inc()
	m.LookupLatency.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordCacheHit increments the hit counter for kind.
func (m *Metrics) RecordCacheHit(kind string) {
	if m != nil {
		m.CacheResult.WithLabelValues(kind, "hit").Inc()
	}
}

// RecordCacheMiss increments the miss counter for kind.
func (m *Metrics) RecordCacheMiss(kind string) {
	if m != nil {
		m.CacheResult.WithLabelValues(kind, "miss").Inc()
	}
}
