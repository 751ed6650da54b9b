package resolver

import (
	"sync"
	"time"
)

// Entry is one recorded lookup outcome. Found=false marks a confirmed
// negative result (host known to have no redirect), which is cached the
// same way as a positive one so unconfigured hosts don't hammer the store.
type Entry struct {
	// URL is the raw destination as stored, meaningful only when Found.
	URL string

	// Found reports whether the durable store had a destination.
	Found bool

	// RecordedAt is when the outcome was written. Freshness is judged by
	// the resolver, not the cache.
	RecordedAt time.Time
}

// Cache is the in-memory memoization of lookup outcomes, keyed by
// normalized hostname. It lives for the process lifetime and is shared by
// all in-flight resolutions; entries are only ever overwritten, never
// removed, and go stale by age.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewCache creates an empty cache. A nil clock falls back to time.Now.
func NewCache(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]Entry),
		now:     now,
	}
}

// Get returns the stored entry for a host regardless of its age.
func (c *Cache) Get(host string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[host]
	return e, ok
}

// Put records an outcome for a host, stamped with the cache clock's now,
// overwriting any previous entry.
func (c *Cache) Put(host, url string, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[host] = Entry{
		URL:        url,
		Found:      found,
		RecordedAt: c.now(),
	}
}

// Len returns the number of distinct hosts ever recorded.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
