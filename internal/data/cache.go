package data

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// ResponseCache is an in-memory cache for statistical-data responses, keyed
// by request URL. Enabled only when FISCALDATA_CACHE=true and never when
// API_ENV=production. Published statistical series change rarely; this is a
// development convenience, not a correctness layer.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	raw       json.RawMessage
	expiresAt time.Time
}

var (
	globalCache *ResponseCache
	cacheOnce   sync.Once
)

// GetCache returns the global cache if caching is enabled, else nil.
func GetCache() *ResponseCache {
	if os.Getenv("FISCALDATA_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 6 * time.Hour
		if ttlStr := os.Getenv("FISCALDATA_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalCache = &ResponseCache{
			store: make(map[string]cacheEntry),
			ttl:   ttl,
		}
		go globalCache.cleanup()
	})
	return globalCache
}

// Get retrieves a cached raw response if present and unexpired.
func (c *ResponseCache) Get(key string) (json.RawMessage, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.raw, true
}

// Set stores a raw response.
func (c *ResponseCache) Set(key string, raw json.RawMessage) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = cacheEntry{raw: raw, expiresAt: time.Now().Add(c.ttl)}
}

// Clear removes all entries.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}

func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}
