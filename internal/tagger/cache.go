package tagger

import (
	"sync"
	"sync/atomic"

	"github.com/spigell/whoami-engine/internal/catalog"
)

// Cache memoizes tagged tables. Entries are written once and never mutated,
// so returned slices must be treated as read-only.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]TaggedJob

	hits   atomic.Int64
	misses atomic.Int64
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]TaggedJob)}
}

// Tag returns the cached result for the table or tags it and stores it.
func (c *Cache) Tag(t *Tagger, jobs *catalog.Jobs) []TaggedJob {
	key := t.Key(jobs)

	c.mu.RLock()
	tagged, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return tagged
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if tagged, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return tagged
	}

	c.misses.Add(1)
	tagged = t.Tag(jobs)
	c.entries[key] = tagged
	return tagged
}

// Stats returns cache hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
