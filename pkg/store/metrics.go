package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label values.
const (
	backendRedis   = "redis"
	backendLevelDB = "leveldb"

	resultFound    = "found"
	resultNotFound = "not_found"
	resultError    = "error"
)

var (
	// lookupsTotal tracks durable-store lookups by backend and result.
	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redirectd_store_lookups_total",
			Help: "Total durable-store lookups by backend and result",
		},
		[]string{"backend", "result"},
	)

	// lookupDuration tracks durable-store lookup latency by backend.
	lookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redirectd_store_lookup_duration_seconds",
			Help:    "Durable-store lookup duration in seconds by backend",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"backend"},
	)
)
