package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kwarden/host-redirector/pkg/store"
)

// DefaultTTL is how long a recorded outcome is trusted without
// re-verification against the durable store.
const DefaultTTL = 300 * time.Second

// Status classifies the outcome of a resolution.
type Status string

const (
	// StatusFound means a destination is configured for the host.
	StatusFound Status = "found"

	// StatusNotFound means the host is confirmed to have no destination.
	StatusNotFound Status = "not_found"

	// StatusTransientError means the durable store could not answer; the
	// outcome is not cached so the next request retries.
	StatusTransientError Status = "transient_error"
)

// Outcome is the result of resolving a host. URL is set only for StatusFound.
type Outcome struct {
	Status Status
	URL    string
}

// Config holds resolver configuration.
type Config struct {
	// Store is the durable system of record. Required.
	Store store.Store

	// Cache is the shared freshness cache. Required.
	Cache *Cache

	// TTL bounds how long cached outcomes are trusted (default: DefaultTTL).
	TTL time.Duration

	// Now is the clock used for freshness checks (default: time.Now).
	Now func() time.Time
}

// Resolver maps a normalized hostname to a redirect destination,
// consulting the freshness cache before the durable store.
type Resolver struct {
	store  store.Store
	cache  *Cache
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// New creates a resolver.
func New(cfg Config) (*Resolver, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Resolver{
		store:  cfg.Store,
		cache:  cfg.Cache,
		ttl:    cfg.TTL,
		now:    cfg.Now,
		logger: log.With().Str("component", "resolver").Logger(),
	}, nil
}

// Resolve returns the redirect outcome for a normalized hostname.
//
// A fresh cached outcome, positive or negative, is served without touching
// the store. A stale or missing entry triggers exactly one store lookup;
// definitive answers overwrite the cache with a fresh timestamp, transient
// failures leave it untouched so the next request retries instead of being
// pinned to an error for a full TTL window.
func (r *Resolver) Resolve(ctx context.Context, host string) Outcome {
	if entry, ok := r.cache.Get(host); ok {
		if r.now().Sub(entry.RecordedAt) < r.ttl {
			cacheHits.Inc()
			return r.outcomeFrom(entry.URL, entry.Found)
		}
		cacheMisses.WithLabelValues(missStale).Inc()
	} else {
		cacheMisses.WithLabelValues(missAbsent).Inc()
	}

	rec, err := r.store.Get(ctx, host)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.logger.Warn().Str("host", host).Msg("No redirect entry for host")
			r.cache.Put(host, "", false)
			resolutionsTotal.WithLabelValues(string(StatusNotFound)).Inc()
			return Outcome{Status: StatusNotFound}
		}

		r.logger.Error().Err(err).Str("host", host).Msg("Failed to look up redirect")
		resolutionsTotal.WithLabelValues(string(StatusTransientError)).Inc()
		return Outcome{Status: StatusTransientError}
	}

	// A record with no RedirectUrl field is a definitive answer too.
	if rec.RedirectURL == nil {
		r.logger.Warn().Str("host", host).Msg("Redirect entry has no destination")
		r.cache.Put(host, "", false)
		resolutionsTotal.WithLabelValues(string(StatusNotFound)).Inc()
		return Outcome{Status: StatusNotFound}
	}

	r.cache.Put(host, *rec.RedirectURL, true)
	resolutionsTotal.WithLabelValues(string(StatusFound)).Inc()
	return Outcome{Status: StatusFound, URL: *rec.RedirectURL}
}

func (r *Resolver) outcomeFrom(url string, found bool) Outcome {
	if !found {
		resolutionsTotal.WithLabelValues(string(StatusNotFound)).Inc()
		return Outcome{Status: StatusNotFound}
	}
	resolutionsTotal.WithLabelValues(string(StatusFound)).Inc()
	return Outcome{Status: StatusFound, URL: url}
}
