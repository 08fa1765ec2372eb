package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/metrics"
)

// ErrUnsupportedDriver is returned for an unknown cache driver.
var ErrUnsupportedDriver = errors.New("unsupported cache driver")

// NewTableCache builds the cache selected by cfg.Driver. The returned
// cleanup function releases driver resources and is never nil.
func NewTableCache(ctx context.Context, cfg config.Cache, source Source, rec metrics.Recorder, log *logger.Logger) (TableCache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.CacheDriverMemory, "":
		return NewMemoryCache(source, cfg.TTL, rec), noop, nil
	case config.CacheDriverRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("redis parse: %w", err)
		}
		client := redis.NewClient(opts)
		if err = client.Ping(ctx).Err(); err != nil {
			log.Err(err).Str("func", "NewTableCache").Msg("error connecting redis")
			return nil, noop, errors.Join(fmt.Errorf("redis ping: %w", err), client.Close())
		}
		log.Info().Str("func", "NewTableCache").Msg("connected to redis")
		return NewRedisCache(client, source, cfg.TTL, cfg.KeyPrefix, rec, log), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}
