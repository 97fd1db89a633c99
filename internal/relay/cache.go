package relay

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"cloud-storage-bot/internal/shared/metrics"
)

// ResolveCache remembers resolved direct URLs per file reference for less than
// the origin's link lifetime. It never holds file bytes.
type ResolveCache struct {
	lru *expirable.LRU[string, string]
}

// NewResolveCache returns nil when size or ttl is not positive; a nil cache is a no-op.
func NewResolveCache(size int, ttl time.Duration) *ResolveCache {
	if size <= 0 || ttl <= 0 {
		return nil
	}
	return &ResolveCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (c *ResolveCache) get(originID string) (string, bool) {
	if c == nil {
		return "", false
	}
	url, ok := c.lru.Get(originID)
	metrics.IncResolveCache(ok)
	return url, ok
}

func (c *ResolveCache) add(originID, url string) {
	if c == nil {
		return
	}
	c.lru.Add(originID, url)
}

func (c *ResolveCache) forget(originID string) {
	if c == nil {
		return
	}
	c.lru.Remove(originID)
}
