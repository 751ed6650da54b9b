package store

import (
	"context"
	"errors"
)

// RowKey is the fixed row discriminator within a host's partition. The
// schema is external and fixed: one record per (hostname, "default") pair.
const RowKey = "default"

// DefaultTable is the table name used when none is configured.
const DefaultTable = "redirects"

// ErrNotFound indicates the store holds no record for the requested host.
// Any other error from a Store is treated as transient by callers.
var ErrNotFound = errors.New("redirect record not found")

// Record is the durable-store entity for one hostname.
//
// RedirectURL is a pointer so that a record whose field was never written
// stays distinguishable from one explicitly set to the empty string.
type Record struct {
	RedirectURL *string `json:"RedirectUrl,omitempty"`
}

// Store is a keyed lookup against the system of record for redirect
// mappings. Implementations must map their native not-found signal to
// ErrNotFound and wrap everything else; no backend-specific error type
// may escape this boundary.
type Store interface {
	// Get fetches the record for a normalized hostname.
	Get(ctx context.Context, host string) (*Record, error)

	// Put writes or overwrites the record for a normalized hostname.
	Put(ctx context.Context, host string, rec *Record) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
