package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/metrics"
	"github.com/MKhiriev/go-data-hub/internal/store"
	"github.com/MKhiriev/go-data-hub/models"
)

type redisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RedisCache shares snapshots between processes. Entry keys embed a
// generation that Invalidate bumps, so an entry written by a fetch that
// raced an invalidation is never looked up again and simply expires.
//
// Redis failures degrade to reading the source directly.
type RedisCache struct {
	client   redisCommander
	source   Source
	ttl      time.Duration
	prefix   string
	recorder metrics.Recorder
	logger   *logger.Logger

	group singleflight.Group
}

// NewRedisCache returns a cache storing entries in client under prefix.
func NewRedisCache(client redisCommander, source Source, ttl time.Duration, prefix string, rec metrics.Recorder, log *logger.Logger) *RedisCache {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &RedisCache{
		client:   client,
		source:   source,
		ttl:      ttl,
		prefix:   prefix,
		recorder: rec,
		logger:   log,
	}
}

func (c *RedisCache) epochKey() string {
	return c.prefix + ":epoch"
}

func (c *RedisCache) generationKey(table string) string {
	return c.prefix + ":gen:" + table
}

func (c *RedisCache) entryKey(table, stamp string) string {
	return c.prefix + ":table:" + table + ":" + stamp
}

func (c *RedisCache) counter(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (c *RedisCache) stamp(ctx context.Context, table string) (string, error) {
	epoch, err := c.counter(ctx, c.epochKey())
	if err != nil {
		return "", err
	}
	gen, err := c.counter(ctx, c.generationKey(table))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", epoch, gen), nil
}

func (c *RedisCache) GetOrFetch(ctx context.Context, table string) (models.Snapshot, error) {
	log := logger.FromContext(ctx)

	stamp, err := c.stamp(ctx, table)
	if err != nil {
		log.Warn().Err(err).Str("func", "*RedisCache.GetOrFetch").Str("table", table).Msg("redis unavailable, reading source")
		c.recorder.RecordCacheMiss(table)
		return c.source.Read(ctx, table)
	}

	key := c.entryKey(table, stamp)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		snap, decodeErr := store.UnmarshalSnapshot(raw)
		if decodeErr == nil {
			c.recorder.RecordCacheHit(table)
			return snap, nil
		}
		log.Warn().Err(decodeErr).Str("func", "*RedisCache.GetOrFetch").Str("table", table).Msg("dropping undecodable entry")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("func", "*RedisCache.GetOrFetch").Str("table", table).Msg("redis get failed")
	}

	c.recorder.RecordCacheMiss(table)

	v, err, _ := c.group.Do(key, func() (any, error) {
		snap, err := c.source.Read(context.WithoutCancel(ctx), table)
		if err != nil {
			return nil, err
		}

		payload, err := store.MarshalSnapshot(snap)
		if err != nil {
			log.Warn().Err(err).Str("table", table).Msg("snapshot not cached")
			return snap, nil
		}
		if err = c.client.Set(context.WithoutCancel(ctx), key, payload, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("table", table).Msg("redis set failed")
		}
		return snap, nil
	})
	if err != nil {
		return models.Snapshot{}, err
	}

	return v.(models.Snapshot).Clone(), nil
}

func (c *RedisCache) Invalidate(ctx context.Context, table string) {
	if err := c.client.Incr(ctx, c.generationKey(table)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*RedisCache.Invalidate").Str("table", table).Msg("error invalidating table")
	}
}

func (c *RedisCache) InvalidateAll(ctx context.Context) {
	if err := c.client.Incr(ctx, c.epochKey()).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*RedisCache.InvalidateAll").Msg("error invalidating cache")
	}
}
