// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache serves table snapshots read through to a table store and
// kept for a fixed lifetime.
//
// Two drivers are provided: an in-process map (MemoryCache) and a shared
// Redis cache (RedisCache). Both return deep copies, so callers may modify a
// snapshot without affecting other readers.
package cache

import (
	"context"

	"github.com/MKhiriev/go-data-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/table_cache_mock.go -package=mock

// TableCache is a read-through cache of whole tables.
type TableCache interface {
	// GetOrFetch returns the cached snapshot of table, reading it from the
	// source when absent or expired.
	GetOrFetch(ctx context.Context, table string) (models.Snapshot, error)

	// Invalidate drops table so the next GetOrFetch reads the source. A fetch
	// already in flight when Invalidate is called never repopulates the entry.
	Invalidate(ctx context.Context, table string)

	// InvalidateAll drops every table.
	InvalidateAll(ctx context.Context)
}

// Source is what the cache reads through to; store.TableStore satisfies it.
type Source interface {
	Read(ctx context.Context, table string) (models.Snapshot, error)
}
