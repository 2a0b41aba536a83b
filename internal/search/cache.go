package search

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
)

// Cache is a TTL-bound in-memory cache for normalized search results, shared
// by all provider adapters. Expired entries are deleted lazily on the next
// read of the same key. There is no size-based eviction.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration

	now func() time.Time
}

type cacheEntry struct {
	records    []*jobs.Job
	insertedAt time.Time
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached records for key, or nil when the entry is absent or
// expired. An expired entry is removed rather than returned stale.
func (c *Cache) Get(key string) []*jobs.Job {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil
	}

	if c.now().Sub(entry.insertedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, ok := c.entries[key]; ok && c.now().Sub(current.insertedAt) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil
	}

	return entry.records
}

// Set stores records under key with the current timestamp.
func (c *Cache) Set(key string, records []*jobs.Job) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{records: records, insertedAt: c.now()}
	c.mu.Unlock()
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CacheKey derives a deterministic, collision-resistant key for the
// (provider, query, location, page, limit) tuple. Callers must normalize the
// query and location beforehand; equal tuples always hash equally.
func CacheKey(provider string, p Params) string {
	raw := strings.Join([]string{
		provider,
		strings.ToLower(p.Query),
		strings.ToLower(p.Location),
		fmt.Sprintf("%d", p.Page),
		fmt.Sprintf("%d", p.Limit),
	}, "|")
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", sum)
}
