package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the service collectors on a private registry
type Metrics struct {
	Registry *prometheus.Registry

	ProfilesComputed  *prometheus.CounterVec
	CacheHits         prometheus.Counter
	VerticesProcessed prometheus.Histogram
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		ProfilesComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "terrain_profile",
			Name:      "profiles_total",
			Help:      "Profile requests by input format and result.",
		}, []string{"format", "result"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "terrain_profile",
			Name:      "cache_hits_total",
			Help:      "Profile requests served from cache.",
		}),
		VerticesProcessed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "terrain_profile",
			Name:      "vertices",
			Help:      "Number of vertices per computed profile.",
			Buckets:   prometheus.ExponentialBuckets(2, 4, 8),
		}),
	}

	reg.MustRegister(
		m.ProfilesComputed,
		m.CacheHits,
		m.VerticesProcessed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Result labels
const (
	ResultOK           = "ok"
	ResultCached       = "cached"
	ResultInvalidInput = "invalid_input"
	ResultError        = "error"
)

// RegisterCacheEntries exposes fresh and stale cache entry counts, read from
// stats at scrape time
func (m *Metrics) RegisterCacheEntries(stats func() (fresh, stale int)) {
	gauge := func(state string, value func() float64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "terrain_profile",
			Name:        "cache_entries",
			Help:        "Cached profiles by expiry state.",
			ConstLabels: prometheus.Labels{"state": state},
		}, value)
	}

	m.Registry.MustRegister(
		gauge("fresh", func() float64 {
			fresh, _ := stats()
			return float64(fresh)
		}),
		gauge("stale", func() float64 {
			_, stale := stats()
			return float64(stale)
		}),
	)
}
