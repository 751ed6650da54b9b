// Package metrics provides the centralized Prometheus registry reference
// for the redirect service. All metrics are defined in their respective
// packages (resolver, store, server) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the service.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Resolver Metrics (pkg/resolver):
//   - redirectd_cache_hits_total (Counter): Resolutions served from a fresh cache entry
//   - redirectd_cache_misses_total{reason} (Counter): Cache misses by reason (absent, stale)
//   - redirectd_resolutions_total{outcome} (Counter): Resolutions by outcome
//     (found, not_found, transient_error)
//
// Store Metrics (pkg/store):
//   - redirectd_store_lookups_total{backend, result} (Counter): Durable lookups
//     by backend (redis, leveldb) and result (found, not_found, error)
//   - redirectd_store_lookup_duration_seconds{backend} (Histogram): Lookup latency
//
// Server Metrics (pkg/server):
//   - redirectd_responses_total{class} (Counter): Responses by class
//     (redirect, not_found, invalid_target)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(redirectd_cache_hits_total[5m])) /
//   (sum(rate(redirectd_cache_hits_total[5m])) + sum(rate(redirectd_cache_misses_total[5m])))
//
//   # Store Error Rate (transient failures)
//   rate(redirectd_store_lookups_total{result="error"}[5m])
//
//   # Share of requests answered without a redirect
//   sum(rate(redirectd_responses_total{class!="redirect"}[5m])) /
//   sum(rate(redirectd_responses_total[5m]))
//
//   # P95 Store Lookup Latency
//   histogram_quantile(0.95, rate(redirectd_store_lookup_duration_seconds_bucket[5m]))
