// Package ristretto provides the in-process L1 cache for tool results.
// Scraped pages and search responses are the main tenants; values are
// cost-accounted by byte size so one huge page cannot evict everything.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a byte-size-bounded in-process cache.
type Cache struct {
	c *ristretto.Cache[string, []byte]
}

// New creates an L1 cache capped at maxSizeMB megabytes of cached values.
func New(maxSizeMB int) (*Cache, error) {
	maxCost := int64(maxSizeMB) << 20
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		// Assume ~16KB average entry (a cleaned scrape), 10x counters.
		NumCounters: maxCost / (16 << 10) * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := c.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.c.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.c.Del(key)
	return nil
}

// Close releases the cache's background goroutines.
func (c *Cache) Close() {
	c.c.Close()
}
