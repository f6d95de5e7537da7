// File: cache.go
// Title: Bounded Memo Cache
// Description: Implements a thread-safe in-memory cache with optional
//              per-entry expiry and a capacity bound. Used to memoize
//              formula compilation outcomes keyed by source text, so a
//              column set that is reconfigured repeatedly does not pay
//              for recompiling unchanged formulas. Expired entries are
//              reaped lazily on access and before capacity eviction;
//              there is no background goroutine.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-10
// Modified: 2026-08-10
//
// Change History:
// - 2026-08-10 v0.1.0: Initial implementation

package cache

import (
	"sync"
	"time"
)

// entry is a stored value with its optional expiry.
type entry struct {
	value     interface{}
	expiresAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Config holds cache settings.
type Config struct {
	// MaxEntries bounds the cache size; at capacity the entry closest
	// to expiry (or an arbitrary one if nothing expires) is evicted
	// (default: 512).
	MaxEntries int

	// TTL is the default lifetime of an entry. Zero means entries
	// never expire (default: 0).
	TTL time.Duration
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// HitRate returns the hit percentage over all lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Cache is a thread-safe memo keyed by string.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	maxEntries int
	ttl        time.Duration

	hits   int64
	misses int64
}

// New creates a cache. Zero or negative config fields fall back to
// defaults.
func New(cfg Config) *Cache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 512
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}
	return &Cache{
		entries:    make(map[string]*entry),
		maxEntries: cfg.MaxEntries,
		ttl:        cfg.TTL,
	}
}

// Get retrieves a value. Expired entries read as absent.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if e.expired(time.Now()) {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}
	c.hits++
	return e.value, true
}

// Set stores a value under the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with an explicit lifetime. A zero ttl
// stores the value without expiry.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value, ttl)
}

func (c *Cache) store(key string, value interface{}, ttl time.Duration) {
	now := time.Now()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.reap(now)
		if len(c.entries) >= c.maxEntries {
			c.evictOne()
		}
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}
	c.entries[key] = &entry{value: value, expiresAt: expiresAt}
}

// GetOrCompute returns the cached value for key, computing and storing
// it on a miss. The computation runs under the cache lock, so
// concurrent callers asking for the same key compute it once.
func (c *Cache) GetOrCompute(key string, fn func() interface{}) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && !e.expired(time.Now()) {
		c.hits++
		return e.value
	}
	c.misses++

	value := fn()
	c.store(key, value, c.ttl)
	return value
}

// Delete removes one entry.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops all entries. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Size returns the current entry count.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the effectiveness counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

// reap removes expired entries. Caller holds the lock.
func (c *Cache) reap(now time.Time) {
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
}

// evictOne removes the entry closest to expiry, or an arbitrary one
// when nothing expires. Caller holds the lock.
func (c *Cache) evictOne() {
	var victim string
	var victimAt time.Time
	first := true

	for key, e := range c.entries {
		if first {
			victim, victimAt, first = key, e.expiresAt, false
			continue
		}
		switch {
		case victimAt.IsZero() && !e.expiresAt.IsZero():
			victim, victimAt = key, e.expiresAt
		case !victimAt.IsZero() && !e.expiresAt.IsZero() && e.expiresAt.Before(victimAt):
			victim, victimAt = key, e.expiresAt
		}
	}

	if !first {
		delete(c.entries, victim)
	}
}
