// Package cache provides the default CacheAdapter implementations: a
// bounded TTL cache backed by github.com/binaek/perch (the same library
// the teacher vendors for exactly this purpose), and a NoopCache for
// engines that disable both cacheRuleSets and cacheResults.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/binaek/perch"
)

// defaultTTL is used when Set is called with ttl<=0 — perch's Get only
// caches when ttl>0, so a non-positive value here is mapped to a short
// default rather than silently never caching.
const defaultTTL = time.Minute

// PerchCache adapts perch.Perch[any] to engine.CacheAdapter.
type PerchCache struct {
	mu       sync.Mutex
	capacity int
	store    *perch.Perch[any]
}

// NewPerchCache builds a PerchCache bounded at capacity entries.
func NewPerchCache(capacity int) *PerchCache {
	return &PerchCache{capacity: capacity, store: perch.New[any](capacity)}
}

// Get returns the cached value if present and fresh. It never loads —
// read-only, matching engine.CacheAdapter's "read failures are misses"
// contract (there is simply never a read failure here).
func (c *PerchCache) Get(_ context.Context, key string) (any, bool, error) {
	c.mu.Lock()
	store := c.store
	c.mu.Unlock()
	v, ok := store.Peek(key)
	return v, ok, nil
}

// Set inserts value at key with ttl (defaulting when ttl<=0). perch's Get
// returns the existing entry without invoking the loader whenever key
// already holds a fresh one, so key is deleted first — otherwise a Set
// racing a still-fresh prior entry would silently keep the old value.
func (c *PerchCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	c.mu.Lock()
	store := c.store
	c.mu.Unlock()
	store.Delete(key)
	_, err := store.Get(ctx, key, ttl, func(context.Context, string) (any, error) { return value, nil })
	return err
}

// Delete evicts key.
func (c *PerchCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	store := c.store
	c.mu.Unlock()
	store.Delete(key)
	return nil
}

// Has reports whether key is present and fresh.
func (c *PerchCache) Has(ctx context.Context, key string) (bool, error) {
	_, found, err := c.Get(ctx, key)
	return found, err
}

// Clear drops every entry by replacing the underlying store — perch has no
// native bulk-clear, so this swaps in a fresh, equally-sized one.
func (c *PerchCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = perch.New[any](c.capacity)
	return nil
}

// NoopCache satisfies engine.CacheAdapter by never caching anything —
// every Get/Has is a miss, every Set/Delete/Clear a no-op.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (any, bool, error)   { return nil, false, nil }
func (NoopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (NoopCache) Delete(context.Context, string) error             { return nil }
func (NoopCache) Has(context.Context, string) (bool, error)        { return false, nil }
func (NoopCache) Clear(context.Context) error                      { return nil }
