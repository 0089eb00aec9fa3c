package overlay

import (
	"sync"

	"github.com/conflictwatch/overlay/pkg/core"
)

// BundleCache caches loaded conflict bundles by conflict id so switching
// back to a previously viewed conflict skips the store round-trip. It is an
// explicit injected object, not process-wide state; invalidation is an
// explicit call on conflict switch.
type BundleCache struct {
	mu      sync.RWMutex
	bundles map[string]*core.ConflictBundle
}

// NewBundleCache creates an empty cache.
func NewBundleCache() *BundleCache {
	return &BundleCache{
		bundles: make(map[string]*core.ConflictBundle),
	}
}

// Get retrieves a bundle by conflict id.
func (c *BundleCache) Get(conflictID string) (*core.ConflictBundle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bundles[conflictID]
	return b, ok
}

// Put stores a bundle under its conflict id.
func (c *BundleCache) Put(b *core.ConflictBundle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundles[b.ConflictID] = b
}

// Invalidate drops one conflict's cached bundle.
func (c *BundleCache) Invalidate(conflictID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bundles, conflictID)
}

// Reset clears the whole cache.
func (c *BundleCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundles = make(map[string]*core.ConflictBundle)
}
