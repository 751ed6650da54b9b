// Package resolver implements the lookup-and-cache core of the redirect
// service: mapping a normalized hostname to a configured destination with
// an in-memory freshness cache in front of the durable store.
//
// The resolver classifies every resolution as one of three outcomes:
//
//   - StatusFound: a destination is configured
//   - StatusNotFound: the host confirmedly has no destination
//   - StatusTransientError: the store could not answer
//
// Both positive and negative definitive outcomes are cached for the same
// TTL. A transient failure never creates or overwrites a cache entry; a
// flaky store must not be remembered as permanently broken, and any prior
// (now stale) entry stays in place so the next request retries the store.
//
// The cache holds entries forever and judges nothing itself; staleness is
// the resolver's call, made against an injected clock so tests can simulate
// TTL expiry without sleeping. A stale entry is never served, it only
// signals that the store must be re-asked.
//
// Concurrent resolutions for the same stale host may each perform a store
// lookup; both write the same outcome, so the duplicate work is tolerated
// instead of introducing per-key locking.
package resolver
