package store

import (
	"os"
	"strconv"
	"sync"
	"time"

	"chunkmetrics/api/models"
)

const defaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	events    []models.Event
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache for fetched event ranges.
// Expired entries are dropped lazily on read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewCache builds a cache with the given TTL; zero or negative falls back to
// the default of five minutes.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// CacheTTLFromEnv reads EVENT_CACHE_TTL_SECONDS, falling back to the default
// when unset or unparseable.
func CacheTTLFromEnv() time.Duration {
	raw := os.Getenv("EVENT_CACHE_TTL_SECONDS")
	if raw == "" {
		return defaultCacheTTL
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return defaultCacheTTL
	}
	return time.Duration(secs) * time.Second
}

func cacheKey(from, to string) string {
	return from + "|" + to
}

// Get returns the cached events for a range, or false when missing or
// expired.
func (c *Cache) Get(from, to string) ([]models.Event, bool) {
	key := cacheKey(from, to)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.events, true
}

// Set stores the events for a range with the cache's TTL.
func (c *Cache) Set(from, to string, events []models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(from, to)] = cacheEntry{
		events:    events,
		expiresAt: time.Now().Add(c.ttl),
	}
}
