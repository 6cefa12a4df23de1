package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// tagSetTTL must exceed every entry TTL so no live entry loses its tag.
const tagSetTTL = 24 * time.Hour

// Redis stores JSON entries under prefix+key and remembers, per tag, the set
// of keys written under it.
type Redis struct {
	client *redis.Client
	prefix string
	stats  stats
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (c *Redis) tagKey(tag Tag) string {
	return c.prefix + "tag:" + string(tag)
}

func (c *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			atomic.AddUint64(&c.stats.misses, 1)
			return false, nil
		}
		atomic.AddUint64(&c.stats.errors, 1)
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		atomic.AddUint64(&c.stats.errors, 1)
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	atomic.AddUint64(&c.stats.hits, 1)
	return true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...Tag) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		atomic.AddUint64(&c.stats.errors, 1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	fullKey := c.prefix + key
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, fullKey, data, ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, c.tagKey(tag), fullKey)
			pipe.Expire(ctx, c.tagKey(tag), tagSetTTL)
		}
		return nil
	})
	if err != nil {
		atomic.AddUint64(&c.stats.errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.sets, 1)
	return nil
}

func (c *Redis) Invalidate(ctx context.Context, tags ...Tag) error {
	for _, tag := range Expand(tags...) {
		tagKey := c.tagKey(tag)
		keys, err := c.client.SMembers(ctx, tagKey).Result()
		if err != nil {
			atomic.AddUint64(&c.stats.errors, 1)
			return fmt.Errorf("cache invalidate error: %w", err)
		}
		if err := c.client.Del(ctx, append(keys, tagKey)...).Err(); err != nil {
			atomic.AddUint64(&c.stats.errors, 1)
			return fmt.Errorf("cache invalidate error: %w", err)
		}
		atomic.AddUint64(&c.stats.invalidations, 1)
	}
	return nil
}

func (c *Redis) Stats() StatsSnapshot {
	return c.stats.snapshot()
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}
