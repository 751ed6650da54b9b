// Package store provides keyed access to the durable system of record for
// redirect mappings.
//
// The schema is fixed and external: one Record per (hostname, "default")
// pair, carrying an optional RedirectUrl string. Two backends implement the
// Store interface:
//
//   - RedisStore: shared deployments, records as JSON blobs in Redis
//   - LevelDBStore: embedded single-node deployments, same encoding
//
// Both map their native not-found signal to ErrNotFound. Every other
// failure is wrapped and surfaces as a plain error, which the resolver
// treats as transient.
//
// # Basic Usage
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	st := store.NewRedisStore(client, "redirects")
//
//	rec, err := st.Get(ctx, "old.example.com")
//	if errors.Is(err, store.ErrNotFound) {
//		// host has no configured redirect
//	}
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - redirectd_store_lookups_total{backend, result} - lookups by outcome
//   - redirectd_store_lookup_duration_seconds{backend} - lookup latency
package store
