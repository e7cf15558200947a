// Package cache holds recent query responses in memory. Entries carry
// an absolute expiry time in Unix seconds. Reads remove entries whose
// time has lapsed, and a background sweeper clears the rest, so stale
// data is never served and memory does not grow unbounded.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/YCN-AFS/LandmarkNavigator/internal/logger"
	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
)

// Cache is an expiring key-value cache safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]models.CacheEntry
	ttl     time.Duration
	now     func() time.Time // injectable for deterministic tests
}

// New returns an empty cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]models.CacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the payload stored under key. An entry whose expiry
// time has been reached is removed and reported as a miss.
func (c *Cache) Get(key string) (models.CachePayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		missesTotal.Inc()
		return models.CachePayload{}, false
	}
	if c.now().Unix() >= entry.ExpiresAt {
		delete(c.entries, key)
		expiredTotal.Inc()
		missesTotal.Inc()
		entriesGauge.Set(float64(len(c.entries)))
		return models.CachePayload{}, false
	}

	hitsTotal.Inc()
	return entry.Data, true
}

// Set stores payload under key, replacing any previous entry. The new
// entry expires at now plus the configured ttl.
func (c *Cache) Set(key string, payload models.CachePayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = models.CacheEntry{
		Key:       key,
		Data:      payload,
		ExpiresAt: c.now().Add(c.ttl).Unix(),
	}
	setsTotal.Inc()
	entriesGauge.Set(float64(len(c.entries)))
}

// Invalidate removes the entry under key and reports whether one was
// present. Absent keys are a no-op.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	invalidationsTotal.Inc()
	entriesGauge.Set(float64(len(c.entries)))
	return true
}

// Purge drops every entry and returns how many were removed.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]models.CacheEntry)
	invalidationsTotal.Add(float64(removed))
	entriesGauge.Set(0)
	return removed
}

// SweepExpired removes every entry whose expiry time has been reached
// and returns how many were removed.
func (c *Cache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Unix()
	removed := 0
	for key, entry := range c.entries {
		if cutoff >= entry.ExpiresAt {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		expiredTotal.Add(float64(removed))
	}
	entriesGauge.Set(float64(len(c.entries)))
	return removed
}

// Len reports how many entries the cache currently holds, including
// expired entries not yet swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Run sweeps expired entries every interval until ctx is cancelled.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	log := logger.GetLogger("cache")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infow("cache sweeper started", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			log.Info("cache sweeper stopped")
			return
		case <-ticker.C:
			if removed := c.SweepExpired(); removed > 0 {
				log.Infow("swept expired cache entries", "removed", removed)
			}
		}
	}
}
