package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-data-hub/internal/metrics"
	"github.com/MKhiriev/go-data-hub/models"
)

// Option customizes a cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type memoryEntry struct {
	snapshot models.Snapshot
	storedAt time.Time
}

// MemoryCache keeps snapshots in process memory. Staleness is checked
// lazily on read; nothing runs in the background.
type MemoryCache struct {
	source   Source
	ttl      time.Duration
	now      func() time.Time
	recorder metrics.Recorder

	mu          sync.Mutex
	entries     map[string]memoryEntry
	generations map[string]uint64
	epoch       uint64

	group singleflight.Group
}

// NewMemoryCache returns a cache over source whose entries live for ttl.
func NewMemoryCache(source Source, ttl time.Duration, rec metrics.Recorder, opts ...Option) *MemoryCache {
	if rec == nil {
		rec = metrics.Nop{}
	}
	o := buildOptions(opts)

	return &MemoryCache{
		source:      source,
		ttl:         ttl,
		now:         o.now,
		recorder:    rec,
		entries:     make(map[string]memoryEntry),
		generations: make(map[string]uint64),
	}
}

// stamp identifies the cache state of table; callers must hold c.mu.
func (c *MemoryCache) stamp(table string) string {
	return fmt.Sprintf("%d.%d", c.epoch, c.generations[table])
}

func (c *MemoryCache) GetOrFetch(ctx context.Context, table string) (models.Snapshot, error) {
	c.mu.Lock()
	if e, ok := c.entries[table]; ok && c.now().Sub(e.storedAt) < c.ttl {
		c.mu.Unlock()
		c.recorder.RecordCacheHit(table)
		return e.snapshot.Clone(), nil
	}
	stamp := c.stamp(table)
	c.mu.Unlock()

	c.recorder.RecordCacheMiss(table)

	// callers arriving after an invalidation get their own fetch
	v, err, _ := c.group.Do(table+"@"+stamp, func() (any, error) {
		snap, err := c.source.Read(context.WithoutCancel(ctx), table)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.stamp(table) == stamp {
			c.entries[table] = memoryEntry{snapshot: snap, storedAt: c.now()}
		}
		c.mu.Unlock()

		return snap, nil
	})
	if err != nil {
		return models.Snapshot{}, err
	}

	return v.(models.Snapshot).Clone(), nil
}

func (c *MemoryCache) Invalidate(_ context.Context, table string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, table)
	c.generations[table]++
}

func (c *MemoryCache) InvalidateAll(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.epoch++
}
