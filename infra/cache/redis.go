package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ygoas29/fieldway/core/model"
	"github.com/ygoas29/fieldway/core/travel"
	"github.com/ygoas29/fieldway/infra/logger"
)

// Config holds the Redis connection settings.
type Config struct {
	Addr      string `json:"addr"`
	Password  string `json:"password"`
	DB        int    `json:"db"`
	KeyPrefix string `json:"key_prefix"`
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "fieldway:travel:"
	}
}

// RedisCache is a travel.Cache backed by Redis, for deployments where the
// estimate cache must survive restarts and be shared between instances.
// Entries carry a TTL equal to the eviction age, so Redis expiry acts as a
// continuous janitor; Sweep remains available for an explicit pass.
type RedisCache struct {
	client *redis.Client
	prefix string
	log    logger.Logger
	now    func() time.Time
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, cfg Config) (*RedisCache, error) {
	cfg.SetDefaults()
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{
		client: client,
		prefix: cfg.KeyPrefix,
		log:    logger.New("redis-cache"),
		now:    time.Now,
	}, nil
}

func (c *RedisCache) key(from, to string) string {
	return c.prefix + from + "|" + to
}

// Get implements travel.Cache. A stale entry is rewritten with its expired
// flag set so other readers observe the miss too.
func (c *RedisCache) Get(ctx context.Context, from, to string) (model.TravelEstimate, bool) {
	raw, err := c.client.Get(ctx, c.key(from, to)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Errorf("redis get %s->%s: %v", from, to, err)
		}
		return model.TravelEstimate{}, false
	}
	var e travel.Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.log.Errorf("redis decode %s->%s: %v", from, to, err)
		return model.TravelEstimate{}, false
	}
	if e.Expired {
		return model.TravelEstimate{}, false
	}
	if c.now().Sub(e.CalculatedAt) >= travel.StaleAfter {
		e.Expired = true
		if raw, err := json.Marshal(e); err == nil {
			remaining := travel.EvictAfter - c.now().Sub(e.CalculatedAt)
			if remaining > 0 {
				c.client.Set(ctx, c.key(from, to), raw, remaining)
			}
		}
		return model.TravelEstimate{}, false
	}
	return e.Estimate, true
}

// Put implements travel.Cache with upsert semantics.
func (c *RedisCache) Put(ctx context.Context, from, to string, est model.TravelEstimate) {
	e := travel.Entry{Estimate: est, CalculatedAt: c.now()}
	raw, err := json.Marshal(e)
	if err != nil {
		c.log.Errorf("redis encode %s->%s: %v", from, to, err)
		return
	}
	if err := c.client.Set(ctx, c.key(from, to), raw, travel.EvictAfter).Err(); err != nil {
		c.log.Errorf("redis set %s->%s: %v", from, to, err)
	}
}

// Sweep implements travel.Cache by scanning the key space and deleting
// entries older than olderThan. Redis TTLs already bound entry lifetime, so
// this is only needed for sweeps shorter than the eviction age.
func (c *RedisCache) Sweep(ctx context.Context, olderThan time.Duration) int {
	cutoff := c.now().Add(-olderThan)
	removed := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}
		var e travel.Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			c.client.Del(ctx, key)
			removed++
			continue
		}
		if e.CalculatedAt.Before(cutoff) {
			c.client.Del(ctx, key)
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Errorf("redis sweep: %v", err)
	}
	return removed
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
