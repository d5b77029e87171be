// Package cache holds recent extraction results in memory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/ChaitanyaVootla/movie-browser-api/models"
)

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// Cache is an in-memory TTL cache. It is safe for concurrent use.
// A zero TTL disables it: Get always misses and Set is a no-op.
type Cache[V any] struct {
	mu         sync.RWMutex
	store      map[string]entry[V]
	maxEntries int
	ttl        time.Duration
	now        func() time.Time

	stopOnce sync.Once
	done     chan struct{}
}

// New creates a Cache and starts a loop evicting expired entries.
// Call Stop to end the loop.
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		store:      make(map[string]entry[V]),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
		done:       make(chan struct{}),
	}
	if ttl > 0 {
		go c.cleanupLoop(min(ttl, 5*time.Minute))
	}
	return c
}

// Key hashes the parts into a fixed-length key.
func Key(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte("|"))
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GoogleKey keys a knowledge-panel result by query and region. Case and
// surrounding whitespace are ignored.
func GoogleKey(req models.GoogleSearchRequest) string {
	return Key("google", strings.ToLower(strings.TrimSpace(req.SearchString)), strings.ToUpper(strings.TrimSpace(req.Region)))
}

// RatingsKey keys a ratings result by both source identifiers.
func RatingsKey(req models.RatingsRequest) string {
	return Key("ratings", strings.TrimSpace(req.IMDbID), strings.TrimSpace(req.RottenTomatoesURL))
}

// Get returns a value younger than the TTL.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c.ttl <= 0 {
		return zero, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.createdAt) > c.ttl {
		return zero, false
	}
	return e.value, true
}

// Set stores a value. At capacity one arbitrary entry is evicted first.
func (c *Cache[V]) Set(key string, v V) {
	if c.ttl <= 0 || c.maxEntries <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}
	c.store[key] = entry[V]{value: v, createdAt: c.now()}
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Stop ends the eviction loop. It is safe to call more than once.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *Cache[V]) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *Cache[V]) evictExpired() {
	cutoff := c.now().Add(-c.ttl)
	c.mu.Lock()
	for k, e := range c.store {
		if e.createdAt.Before(cutoff) {
			delete(c.store, k)
		}
	}
	c.mu.Unlock()
}
