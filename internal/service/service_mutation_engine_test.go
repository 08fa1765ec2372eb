package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/internal/mock"
	"github.com/MKhiriev/go-data-hub/internal/store"
	"github.com/MKhiriev/go-data-hub/models"
)

type testStack struct {
	store  store.TableStore
	cache  *cache.MemoryCache
	engine MutationEngine
}

func newTestStack(t *testing.T, seed ...models.Snapshot) testStack {
	t.Helper()

	ts := store.NewMemoryTableStore(seed...)
	c := cache.NewMemoryCache(ts, time.Hour, nil)
	return testStack{store: ts, cache: c, engine: NewMutationEngine(ts, c, nil)}
}

func authSnapshot(emails ...string) models.Snapshot {
	snap := models.Snapshot{Table: models.TableAuth, Columns: models.TableColumns[models.TableAuth]}
	for _, e := range emails {
		snap.Records = append(snap.Records, models.Record{
			models.ColUserName: models.String("user " + e),
			models.ColEmail:    models.String(e),
			models.ColPhone:    models.String("11 99999-0000"),
		})
	}
	return snap
}

func projectsTable(projects ...models.Record) models.Snapshot {
	return models.Snapshot{Table: models.TableProjects, Columns: models.TableColumns[models.TableProjects], Records: projects}
}

func projectRow(id, name, active string, count models.Value) models.Record {
	return models.Record{
		models.ColProjectID:     models.String(id),
		models.ColProjectName:   models.String(name),
		models.ColProjectActive: models.String(active),
		models.ColProjectCount:  count,
	}
}

func readTable(t *testing.T, ts store.TableStore, table string) models.Snapshot {
	t.Helper()
	snap, err := ts.Read(context.Background(), table)
	require.NoError(t, err)
	return snap
}

func TestAppend_AddsOneRecord(t *testing.T) {
	s := newTestStack(t, authSnapshot("a@x.com"))
	ctx := context.Background()

	err := s.engine.Append(ctx, models.TableAuth, models.Record{models.ColEmail: models.String("new@x.com")})
	require.NoError(t, err)

	snap := readTable(t, s.store, models.TableAuth)
	require.Equal(t, 2, snap.Len())
	last := snap.Records[1]
	assert.Equal(t, "new@x.com", last.Text(models.ColEmail))
	assert.True(t, last.Get(models.ColUserName).IsEmpty(), "omitted fields read back as empty")
}

func TestAppend_KeepsOrder(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()

	require.NoError(t, s.engine.Append(ctx, "scratch", models.Record{"x": models.Int(1)}))
	require.NoError(t, s.engine.Append(ctx, "scratch", models.Record{"x": models.Int(2)}))

	snap := readTable(t, s.store, "scratch")
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, 1, snap.Records[0].Get("x").Count())
	assert.Equal(t, 2, snap.Records[1].Get("x").Count())
}

func TestAppend_EmptyRecordRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := mock.NewMockTableStore(ctrl)
	c := mock.NewMockTableCache(ctrl)

	engine := NewMutationEngine(ts, c, nil)

	err := engine.Append(context.Background(), models.TableAuth, models.Record{models.ColEmail: models.String("  ")})
	assert.ErrorIs(t, err, ErrEmptyRecord)
}

func TestAppend_VisibleThroughCache(t *testing.T) {
	s := newTestStack(t, authSnapshot("a@x.com"))
	ctx := context.Background()

	before, err := s.cache.GetOrFetch(ctx, models.TableAuth)
	require.NoError(t, err)
	require.Equal(t, 1, before.Len())

	require.NoError(t, s.engine.Append(ctx, models.TableAuth, models.Record{models.ColEmail: models.String("b@x.com")}))

	after, err := s.cache.GetOrFetch(ctx, models.TableAuth)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Len())
}

func TestUpdateField_ChangesOnlyTargetField(t *testing.T) {
	s := newTestStack(t, projectsTable(
		projectRow("p1", "Horta", "Sim", models.Int(3)),
		projectRow("p2", "Oficina", "Sim", models.Int(1)),
	))
	ctx := context.Background()
	before := readTable(t, s.store, models.TableProjects)

	updated, err := s.engine.UpdateField(ctx, models.TableProjects, models.ByID("p2"), models.ColProjectActive, models.String("Não"))
	require.NoError(t, err)
	assert.Equal(t, "Não", updated.Text(models.ColProjectActive))

	after := readTable(t, s.store, models.TableProjects)
	require.Equal(t, before.Len(), after.Len())
	assert.Equal(t, before.Records[0], after.Records[0])

	want := before.Records[1].With(models.ColProjectActive, models.String("Não"))
	assert.Equal(t, want, after.Records[1])
}

func TestUpdateField_FirstMatchWins(t *testing.T) {
	s := newTestStack(t, projectsTable(
		projectRow("dup", "A", "Sim", models.Int(0)),
		projectRow("dup", "B", "Sim", models.Int(0)),
	))

	_, err := s.engine.UpdateField(context.Background(), models.TableProjects, models.ByID("dup"), models.ColProjectActive, models.String("Não"))
	require.NoError(t, err)

	after := readTable(t, s.store, models.TableProjects)
	assert.Equal(t, "Não", after.Records[0].Text(models.ColProjectActive))
	assert.Equal(t, "Sim", after.Records[1].Text(models.ColProjectActive))
}

func TestUpdateField_NotFound(t *testing.T) {
	s := newTestStack(t, projectsTable(projectRow("p1", "Horta", "Sim", models.Int(3))))

	_, err := s.engine.UpdateField(context.Background(), models.TableProjects, models.ByID("nope"), models.ColProjectActive, models.String("Não"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFieldFunc_UsesFreshValue(t *testing.T) {
	s := newTestStack(t, projectsTable(projectRow("p1", "Horta", "Sim", models.Int(3))))
	ctx := context.Background()

	// Warm the cache, then change the row behind its back.
	_, err := s.cache.GetOrFetch(ctx, models.TableProjects)
	require.NoError(t, err)
	require.NoError(t, s.store.Write(ctx, projectsTable(projectRow("p1", "Horta", "Não", models.Int(3)))))

	updated, err := s.engine.UpdateFieldFunc(ctx, models.TableProjects, models.ByID("p1"), models.ColProjectActive,
		func(v models.Value) models.Value { return models.String(models.ToggledStatus(v.Text())) })
	require.NoError(t, err)
	assert.Equal(t, "Sim", updated.Text(models.ColProjectActive))
}

func TestDelete_RemovesFirstMatch(t *testing.T) {
	s := newTestStack(t, authSnapshot("a@x.com", "B@X.com", "c@x.com"))

	removed, err := s.engine.Delete(context.Background(), models.TableAuth, models.ByEmail("b@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "B@X.com", removed.Text(models.ColEmail))

	after := readTable(t, s.store, models.TableAuth)
	require.Equal(t, 2, after.Len())
	assert.Equal(t, "a@x.com", after.Records[0].Text(models.ColEmail))
	assert.Equal(t, "c@x.com", after.Records[1].Text(models.ColEmail))
}

func TestDelete_AbsentKeyLeavesTableUntouched(t *testing.T) {
	s := newTestStack(t, authSnapshot("a@x.com", "b@x.com"))
	before := readTable(t, s.store, models.TableAuth)

	_, err := s.engine.Delete(context.Background(), models.TableAuth, models.ByEmail("z@x.com"))
	assert.ErrorIs(t, err, ErrNotFound)

	after := readTable(t, s.store, models.TableAuth)
	assert.Equal(t, before.Records, after.Records)
	assert.Equal(t, before.Columns, after.Columns)
}

func TestDelete_NotFoundDoesNotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := mock.NewMockTableStore(ctrl)
	c := mock.NewMockTableCache(ctrl)

	ts.EXPECT().Read(gomock.Any(), models.TableAuth).Return(authSnapshot("a@x.com"), nil)

	engine := NewMutationEngine(ts, c, nil)
	_, err := engine.Delete(context.Background(), models.TableAuth, models.ByEmail("z@x.com"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncrementCounts_CoercesAndSkipsUnknown(t *testing.T) {
	s := newTestStack(t, projectsTable(
		projectRow("p1", "Horta Comunitária", "Sim", models.String("3")),
		projectRow("p2", "Oficina", "Sim", models.Empty()),
		projectRow("p3", "Reforço", "Sim", models.String("n/a")),
	))

	applied, err := s.engine.IncrementCounts(context.Background(), models.TableProjects, models.ColProjectName,
		[]string{"Horta Comunitária", "Oficina", "Reforço", "Inexistente"}, models.ColProjectCount)
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	after := readTable(t, s.store, models.TableProjects)
	assert.Equal(t, 4, after.Records[0].Get(models.ColProjectCount).Count())
	assert.Equal(t, 1, after.Records[1].Get(models.ColProjectCount).Count())
	assert.Equal(t, 1, after.Records[2].Get(models.ColProjectCount).Count())
}

func TestIncrementCounts_DuplicateNamesCountOnce(t *testing.T) {
	s := newTestStack(t, projectsTable(projectRow("p1", "Horta", "Sim", models.Int(0))))

	applied, err := s.engine.IncrementCounts(context.Background(), models.TableProjects, models.ColProjectName,
		[]string{"Horta", " Horta "}, models.ColProjectCount)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, readTable(t, s.store, models.TableProjects).Records[0].Get(models.ColProjectCount).Count())
}

func TestIncrementCounts_NothingMatchedSkipsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := mock.NewMockTableStore(ctrl)
	c := mock.NewMockTableCache(ctrl)

	ts.EXPECT().Read(gomock.Any(), models.TableProjects).
		Return(projectsTable(projectRow("p1", "Horta", "Sim", models.Int(0))), nil)

	engine := NewMutationEngine(ts, c, nil)
	applied, err := engine.IncrementCounts(context.Background(), models.TableProjects, models.ColProjectName,
		[]string{"Inexistente"}, models.ColProjectCount)
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestMutation_WriteFailureKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := mock.NewMockTableStore(ctrl)
	c := mock.NewMockTableCache(ctrl)

	writeErr := &store.StoreError{Op: store.OpWrite, Table: models.TableAuth, Err: store.ErrQuotaExceeded}
	ts.EXPECT().Read(gomock.Any(), models.TableAuth).Return(authSnapshot("a@x.com"), nil)
	ts.EXPECT().Write(gomock.Any(), gomock.Any()).Return(writeErr)
	// no Invalidate expected

	engine := NewMutationEngine(ts, c, nil)
	err := engine.Append(context.Background(), models.TableAuth, models.Record{models.ColEmail: models.String("b@x.com")})

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
	var se *store.StoreError
	assert.True(t, errors.As(err, &se))
}

func TestMutation_ReadFailureSkipsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := mock.NewMockTableStore(ctrl)
	c := mock.NewMockTableCache(ctrl)

	readErr := &store.StoreError{Op: store.OpRead, Table: models.TableProjects, Err: store.ErrTimeout}
	ts.EXPECT().Read(gomock.Any(), models.TableProjects).Return(models.Snapshot{}, readErr)

	engine := NewMutationEngine(ts, c, nil)
	_, err := engine.Delete(context.Background(), models.TableProjects, models.ByID("p1"))
	assert.ErrorIs(t, err, store.ErrTimeout)
}

func TestMutation_InvalidatesAfterWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := mock.NewMockTableStore(ctrl)
	c := mock.NewMockTableCache(ctrl)

	gomock.InOrder(
		ts.EXPECT().Read(gomock.Any(), models.TableAuth).Return(authSnapshot("a@x.com"), nil),
		ts.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, snap models.Snapshot) error {
			assert.Equal(t, 2, snap.Len())
			return nil
		}),
		c.EXPECT().Invalidate(gomock.Any(), models.TableAuth),
	)

	engine := NewMutationEngine(ts, c, nil)
	err := engine.Append(context.Background(), models.TableAuth, models.Record{models.ColEmail: models.String("b@x.com")})
	require.NoError(t, err)
}

func TestMutation_CallerCancelDoesNotAbortWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := mock.NewMockTableStore(ctrl)
	c := mock.NewMockTableCache(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		ts.EXPECT().Read(gomock.Any(), models.TableAuth).Return(authSnapshot("a@x.com"), nil),
		ts.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(func(writeCtx context.Context, _ models.Snapshot) error {
			cancel()
			require.Error(t, ctx.Err())
			assert.NoError(t, writeCtx.Err())
			return nil
		}),
		c.EXPECT().Invalidate(gomock.Any(), models.TableAuth).Do(func(invCtx context.Context, _ string) {
			assert.NoError(t, invCtx.Err())
		}),
	)

	engine := NewMutationEngine(ts, c, nil)
	err := engine.Append(ctx, models.TableAuth, models.Record{models.ColEmail: models.String("b@x.com")})
	require.NoError(t, err)
}

func TestMutation_CancelDuringWriteStillRefreshesCache(t *testing.T) {
	s := newTestStack(t, authSnapshot("a@x.com"))
	_, err := s.cache.GetOrFetch(context.Background(), models.TableAuth)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	engine := NewMutationEngine(cancellingStore{TableStore: s.store, cancel: cancel}, s.cache, nil)

	err = engine.Append(ctx, models.TableAuth, models.Record{models.ColEmail: models.String("b@x.com")})
	require.NoError(t, err)

	cached, err := s.cache.GetOrFetch(context.Background(), models.TableAuth)
	require.NoError(t, err)
	assert.Equal(t, 2, cached.Len())
	assert.Equal(t, 2, readTable(t, s.store, models.TableAuth).Len())
}

// cancellingStore cancels the caller mid-write and fails like a network
// client would if the cancellation reached it.
type cancellingStore struct {
	store.TableStore
	cancel context.CancelFunc
}

func (s cancellingStore) Write(ctx context.Context, snap models.Snapshot) error {
	if err := s.TableStore.Write(ctx, snap); err != nil {
		return err
	}
	s.cancel()
	if err := ctx.Err(); err != nil {
		return &store.StoreError{Op: store.OpWrite, Table: snap.Table, Err: store.ErrUnavailable}
	}
	return nil
}

func TestMutation_ConcurrentAppendsAreSerialized(t *testing.T) {
	s := newTestStack(t, authSnapshot())
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.engine.Append(ctx, models.TableAuth, models.Record{models.ColEmail: models.Int(i)}))
		}()
	}
	wg.Wait()

	assert.Equal(t, writers, readTable(t, s.store, models.TableAuth).Len())
}
