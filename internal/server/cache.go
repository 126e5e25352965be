package server

import (
	"sync"
	"time"

	"github.com/mj1618/webimage/internal/model"
	"github.com/mj1618/webimage/internal/platform"
)

// cacheKey identifies a unique control tree read scope.
type cacheKey struct {
	Window   string
	WindowID int
	Depth    int
}

type cacheEntry struct {
	elements  []model.Element
	timestamp time.Time
}

// ControlsCache is a TTL cache for native control trees, so agents polling
// read_controls do not walk the window on every call.
type ControlsCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewControlsCache creates a new cache. A ttl of 0 disables caching.
func NewControlsCache(ttl time.Duration) *ControlsCache {
	return &ControlsCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// ReadElements returns cached elements if within TTL, otherwise reads fresh.
// Reads by native handle bypass the cache; handles are reused by the OS.
func (c *ControlsCache) ReadElements(reader platform.Reader, opts platform.ReadOptions) ([]model.Element, error) {
	if c.ttl == 0 || opts.Handle != 0 {
		return reader.ReadElements(opts)
	}

	key := cacheKey{Window: opts.Window, WindowID: opts.WindowID, Depth: opts.Depth}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		elements := entry.elements
		c.mu.Unlock()
		return elements, nil
	}
	c.mu.Unlock()

	elements, err := reader.ReadElements(opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{elements: elements, timestamp: c.now()}
	c.mu.Unlock()

	return elements, nil
}

// InvalidateAll clears the entire cache.
func (c *ControlsCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
