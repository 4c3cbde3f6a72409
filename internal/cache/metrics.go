package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts cache traffic per namespace.
type Metrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
}

// NewMetrics creates the cache counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Cache lookups served from the cache.",
		}, []string{"namespace"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Cache lookups that fell through to the database.",
		}, []string{"namespace"}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Namespace evictions triggered by writes.",
		}, []string{"namespace"}),
	}
	if reg != nil {
		reg.MustRegister(m.hits, m.misses, m.evictions)
	}
	return m
}

func (m *Metrics) hit(ns Namespace) {
	if m != nil {
		m.hits.WithLabelValues(string(ns)).Inc()
	}
}

func (m *Metrics) miss(ns Namespace) {
	if m != nil {
		m.misses.WithLabelValues(string(ns)).Inc()
	}
}

func (m *Metrics) eviction(ns Namespace) {
	if m != nil {
		m.evictions.WithLabelValues(string(ns)).Inc()
	}
}
