// Package cache is a tag-aware read cache in front of the catalog accessors.
package cache

import (
	"context"
	"sync/atomic"
	"time"
)

type Cache interface {
	// Get decodes the entry for key into dest and reports whether it existed.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...Tag) error
	// Invalidate drops every entry under tags and their dependents.
	Invalidate(ctx context.Context, tags ...Tag) error
	Stats() StatsSnapshot
}

type stats struct {
	hits          uint64
	misses        uint64
	sets          uint64
	invalidations uint64
	errors        uint64
}

type StatsSnapshot struct {
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	Sets          uint64  `json:"sets"`
	Invalidations uint64  `json:"invalidations"`
	Errors        uint64  `json:"errors"`
	HitRate       float64 `json:"hitRate"`
}

func (s *stats) snapshot() StatsSnapshot {
	hits := atomic.LoadUint64(&s.hits)
	misses := atomic.LoadUint64(&s.misses)

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return StatsSnapshot{
		Hits:          hits,
		Misses:        misses,
		Sets:          atomic.LoadUint64(&s.sets),
		Invalidations: atomic.LoadUint64(&s.invalidations),
		Errors:        atomic.LoadUint64(&s.errors),
		HitRate:       hitRate,
	}
}

type nopCache struct {
	stats stats
}

// Nop never stores anything. Used when no redis address is configured.
func Nop() Cache {
	return &nopCache{}
}

func (c *nopCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	atomic.AddUint64(&c.stats.misses, 1)
	return false, nil
}

func (c *nopCache) Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...Tag) error {
	return nil
}

func (c *nopCache) Invalidate(ctx context.Context, tags ...Tag) error {
	atomic.AddUint64(&c.stats.invalidations, 1)
	return nil
}

func (c *nopCache) Stats() StatsSnapshot {
	return c.stats.snapshot()
}
