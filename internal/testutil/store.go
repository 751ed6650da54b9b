// Package testutil provides testing utilities for the redirect service.
package testutil

import (
	"context"
	"sync"

	"github.com/kwarden/host-redirector/pkg/store"
)

// MemStore is a configurable in-memory Store for testing. It tracks call
// counts and can be switched into a failing mode to simulate a transient
// store outage.
type MemStore struct {
	mu      sync.Mutex
	records map[string]*store.Record

	// FailWith, when non-nil, is returned by every Get until cleared.
	FailWith error

	// Tracking
	GetCount  int
	LastHost  string
	PingCount int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		records: make(map[string]*store.Record),
	}
}

// Seed stores a destination URL for a host without going through Put.
func (m *MemStore) Seed(host, url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[host] = &store.Record{RedirectURL: &url}
}

// SeedEmpty stores a record with no destination field for a host.
func (m *MemStore) SeedEmpty(host string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[host] = &store.Record{}
}

// Fail switches every subsequent Get to return err.
func (m *MemStore) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailWith = err
}

// Recover clears a previously injected failure.
func (m *MemStore) Recover() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailWith = nil
}

// Gets returns the number of Get calls observed so far.
func (m *MemStore) Gets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GetCount
}

// Get implements store.Store.
func (m *MemStore) Get(ctx context.Context, host string) (*store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCount++
	m.LastHost = host

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	rec, ok := m.records[host]
	if !ok {
		return nil, store.ErrNotFound
	}
	// Copy so callers can't mutate seeded state.
	out := *rec
	return &out, nil
}

// Put implements store.Store.
func (m *MemStore) Put(ctx context.Context, host string, rec *store.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := *rec
	m.records[host] = &out
	return nil
}

// Ping implements store.Store.
func (m *MemStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PingCount++
	return m.FailWith
}

// Close implements store.Store.
func (m *MemStore) Close() error {
	return nil
}
