// Package server exposes the redirect service over HTTP: a catch-all
// handler that turns any request into a 307 to the configured destination,
// plus health and readiness endpoints for the admin listener.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kwarden/host-redirector/pkg/hostkey"
	"github.com/kwarden/host-redirector/pkg/redirect"
	"github.com/kwarden/host-redirector/pkg/resolver"
	"github.com/kwarden/host-redirector/pkg/store"
)

// The two user-visible failure messages. Unconfigured hosts and store
// outages share one message so responses never leak which of the two it
// was; operator logs do distinguish them.
const (
	MsgNotFound      = "Configuration error: redirect url not found."
	MsgInvalidTarget = "Configuration error: invalid redirect target."
)

// DefaultLookupTimeout bounds a single durable lookup from the request.
const DefaultLookupTimeout = 10 * time.Second

// Handler is the catch-all redirect handler. It accepts any method on any
// path and derives the lookup key from the request authority.
type Handler struct {
	resolver      *resolver.Resolver
	lookupTimeout time.Duration
	logger        zerolog.Logger
}

// NewHandler creates the redirect handler. A non-positive timeout falls
// back to DefaultLookupTimeout.
func NewHandler(r *resolver.Resolver, lookupTimeout time.Duration) *Handler {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}
	return &Handler{
		resolver:      r,
		lookupTimeout: lookupTimeout,
		logger:        log.With().Str("component", "server").Logger(),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	host := hostkey.FromAuthority(r.Host)

	ctx, cancel := context.WithTimeout(r.Context(), h.lookupTimeout)
	defer cancel()

	out := h.resolver.Resolve(ctx, host)
	if out.Status != resolver.StatusFound {
		// NotFound and TransientError are already logged distinctly by
		// the resolver.
		responsesTotal.WithLabelValues(responseNotFound).Inc()
		http.Error(w, MsgNotFound, http.StatusInternalServerError)
		return
	}

	location, err := redirect.Build(out.URL, r.URL.Path, r.URL.RawQuery)
	if err != nil {
		h.logger.Error().
			Str("host", host).
			Str("target", out.URL).
			Msg("Invalid redirect URL for host")
		responsesTotal.WithLabelValues(responseInvalidTarget).Inc()
		http.Error(w, MsgInvalidTarget, http.StatusInternalServerError)
		return
	}

	h.logger.Info().
		Str("method", r.Method).
		Str("host", host).
		Str("path", r.URL.Path).
		Str("location", location).
		Str("user_agent", r.UserAgent()).
		Msg("Redirecting")
	responsesTotal.WithLabelValues(responseRedirect).Inc()

	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

// HealthHandler reports process liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// ReadyHandler reports readiness by pinging the durable store.
func ReadyHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	}
}
