package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache miss reasons.
const (
	missAbsent = "absent"
	missStale  = "stale"
)

var (
	// cacheHits tracks resolutions served from a fresh cache entry.
	cacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redirectd_cache_hits_total",
			Help: "Total resolutions served from a fresh cache entry",
		},
	)

	// cacheMisses tracks resolutions that went to the durable store.
	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redirectd_cache_misses_total",
			Help: "Total cache misses by reason (absent, stale)",
		},
		[]string{"reason"},
	)

	// resolutionsTotal tracks resolution outcomes.
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redirectd_resolutions_total",
			Help: "Total resolutions by outcome",
		},
		[]string{"outcome"},
	)
)
