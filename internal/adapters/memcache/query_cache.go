package memcache

import (
	"context"
	"sync"

	"listing-console-service/internal/core/domain"
)

// QueryCache is the in-memory listing cache. Entries live for the lifetime of
// the owning session; there is no TTL or eviction, matching the legacy
// in-browser behavior where result sets are small and session-scoped.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

func NewQueryCache() *QueryCache {
	return &QueryCache{
		entries: make(map[string]domain.CacheEntry),
	}
}

func (c *QueryCache) Get(_ context.Context, key string) (domain.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

func (c *QueryCache) Put(_ context.Context, key string, entry domain.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}
