package catalog

import (
	"context"
	"sync"

	"github.com/smallprintlabs/clausecheck/internal/common"
)

// Cache memoizes a loaded catalog until explicitly invalidated.
//
// The catalog is read-mostly shared state: analyses read one immutable
// snapshot, and the pattern store invalidates the cache after any write so
// subsequent loads observe newly approved categories.
type Cache struct {
	user    UserSource
	current *Catalog
	mu      sync.RWMutex
}

// NewCache creates a cache over the given user source.
func NewCache(user UserSource) *Cache {
	return &Cache{user: user}
}

// Get returns the cached catalog, loading it on first use or after
// invalidation. Load warnings are logged, not returned: a degraded catalog
// must never abort an analysis.
func (c *Cache) Get(ctx context.Context) *Catalog {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()
	if current != nil {
		return current
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		loaded, warnings := Load(ctx, c.user)
		for _, w := range warnings {
			common.LogWarn("catalog load warning", common.Fields{"warning": w.String()})
		}
		c.current = loaded
	}
	return c.current
}

// Invalidate discards the cached snapshot so the next Get reloads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
