package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/models"
)

// fakeRedis is an in-memory redisCommander.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	down bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

var errRedisDown = errors.New("dial tcp: connection refused")

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.down {
		return redis.NewStringResult("", errRedisDown)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.down {
		return redis.NewStatusResult("", errRedisDown)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.down {
		return redis.NewIntResult(0, errRedisDown)
	}
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestRedisCache_ReadThrough(t *testing.T) {
	src := newFakeSource()
	src.set(models.TableAuth, "Ana")
	rdb := newFakeRedis()
	c := NewRedisCache(rdb, src, 5*time.Minute, "hub", nil, logger.Nop())
	ctx := context.Background()

	snap, err := c.GetOrFetch(ctx, models.TableAuth)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, names(snap))

	snap, err = c.GetOrFetch(ctx, models.TableAuth)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, names(snap))
	assert.Equal(t, int32(1), src.reads.Load())

	assert.Equal(t, 5*time.Minute, rdb.ttls["hub:table:Autenticação:0.0"])
}

func TestRedisCache_Invalidate(t *testing.T) {
	src := newFakeSource()
	src.set(models.TableProjects, "Horta")
	rdb := newFakeRedis()
	c := NewRedisCache(rdb, src, time.Hour, "hub", nil, logger.Nop())
	ctx := context.Background()

	_, err := c.GetOrFetch(ctx, models.TableProjects)
	require.NoError(t, err)

	src.set(models.TableProjects, "Horta", "Oficina")
	c.Invalidate(ctx, models.TableProjects)

	snap, err := c.GetOrFetch(ctx, models.TableProjects)
	require.NoError(t, err)
	assert.Equal(t, []string{"Horta", "Oficina"}, names(snap))
	assert.Equal(t, "1", rdb.data["hub:gen:Projetos"])

	c.InvalidateAll(ctx)
	_, err = c.GetOrFetch(ctx, models.TableProjects)
	require.NoError(t, err)
	assert.Equal(t, int32(3), src.reads.Load())
}

func TestRedisCache_DegradesWhenRedisIsDown(t *testing.T) {
	src := newFakeSource()
	src.set(models.TableAuth, "Ana")
	rdb := newFakeRedis()
	rdb.down = true
	c := NewRedisCache(rdb, src, time.Hour, "hub", nil, logger.Nop())
	ctx := context.Background()

	for range 2 {
		snap, err := c.GetOrFetch(ctx, models.TableAuth)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ana"}, names(snap))
	}
	assert.Equal(t, int32(2), src.reads.Load())

	// invalidation failures are logged, not raised
	c.Invalidate(ctx, models.TableAuth)
	c.InvalidateAll(ctx)
}

func TestRedisCache_SourceErrorPropagates(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("quota")
	c := NewRedisCache(newFakeRedis(), src, time.Hour, "hub", nil, logger.Nop())

	_, err := c.GetOrFetch(context.Background(), models.TableAuth)
	assert.EqualError(t, err, "quota")
}

func TestRedisCache_KeepsCellKinds(t *testing.T) {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	src := newFakeSource()
	src.tables[models.TableProjects] = models.Snapshot{
		Table:   models.TableProjects,
		Columns: []string{models.ColProjectCount, models.ColProjectCreatedAt},
		Records: []models.Record{{
			models.ColProjectCount:     models.Int(7),
			models.ColProjectCreatedAt: models.Date(created),
		}},
	}
	c := NewRedisCache(newFakeRedis(), src, time.Hour, "hub", nil, logger.Nop())
	ctx := context.Background()

	_, err := c.GetOrFetch(ctx, models.TableProjects)
	require.NoError(t, err)
	snap, err := c.GetOrFetch(ctx, models.TableProjects)
	require.NoError(t, err)

	require.Equal(t, int32(1), src.reads.Load())
	assert.Equal(t, 7, snap.Records[0].Get(models.ColProjectCount).Count())
	got, ok := snap.Records[0].Get(models.ColProjectCreatedAt).Time()
	require.True(t, ok)
	assert.True(t, created.Equal(got))
}
