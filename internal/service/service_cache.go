package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/models"
)

type cacheService struct {
	cache cache.TableCache
}

func NewCacheService(c cache.TableCache) CacheService {
	return &cacheService{cache: c}
}

// Invalidate accepts only the tables the application knows about.
func (s *cacheService) Invalidate(ctx context.Context, table string) error {
	if _, ok := models.TableColumns[table]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	s.cache.Invalidate(ctx, table)
	logger.FromContext(ctx).Info().Str("table", table).Msg("cache entry invalidated")
	return nil
}

func (s *cacheService) InvalidateAll(ctx context.Context) {
	s.cache.InvalidateAll(ctx)
	logger.FromContext(ctx).Info().Msg("cache cleared")
}
