package travel

import (
	"context"
	"sync"
	"time"

	"github.com/ygoas29/fieldway/core/model"
)

// MemoryCache is the default in-process Cache backed by a mutex guarded map.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[pairKey]*Entry
	now     func() time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[pairKey]*Entry),
		now:     time.Now,
	}
}

// Get implements Cache. Reading a stale entry marks it expired as a side
// effect so a concurrent reader also observes the miss.
func (c *MemoryCache) Get(_ context.Context, from, to string) (model.TravelEstimate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[pairKey{from, to}]
	if !ok || e.Expired {
		return model.TravelEstimate{}, false
	}
	if c.now().Sub(e.CalculatedAt) >= StaleAfter {
		e.Expired = true
		return model.TravelEstimate{}, false
	}
	return e.Estimate, true
}

// Put implements Cache with upsert semantics.
func (c *MemoryCache) Put(_ context.Context, from, to string, est model.TravelEstimate) {
	c.mu.Lock()
	c.entries[pairKey{from, to}] = &Entry{Estimate: est, CalculatedAt: c.now()}
	c.mu.Unlock()
}

// Sweep implements Cache by hard-evicting entries older than olderThan.
func (c *MemoryCache) Sweep(_ context.Context, olderThan time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := c.now().Add(-olderThan)
	removed := 0
	for k, e := range c.entries {
		if e.CalculatedAt.Before(cutoff) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed > 0 {
		sweepEvictions.Add(float64(removed))
	}
	return removed
}

// Len returns the number of entries currently held, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
