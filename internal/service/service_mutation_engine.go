package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/metrics"
	"github.com/MKhiriev/go-data-hub/internal/store"
	"github.com/MKhiriev/go-data-hub/models"
)

// Mutation kinds reported to metrics.
const (
	mutationAppend    = "append"
	mutationUpdate    = "update"
	mutationDelete    = "delete"
	mutationIncrement = "increment"
)

// mutationEngine serializes mutations per table within the process. Writers
// in other processes can still interleave between our read and write; the
// last write wins.
type mutationEngine struct {
	store    store.TableStore
	cache    cache.TableCache
	recorder metrics.Recorder

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMutationEngine(ts store.TableStore, c cache.TableCache, rec metrics.Recorder) MutationEngine {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &mutationEngine{
		store:    ts,
		cache:    c,
		recorder: rec,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (e *mutationEngine) lock(table string) func() {
	e.mu.Lock()
	l, ok := e.locks[table]
	if !ok {
		l = &sync.Mutex{}
		e.locks[table] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// mutate runs one read-modify-write cycle. change edits the fresh snapshot
// in place and reports whether anything needs writing.
func (e *mutationEngine) mutate(ctx context.Context, kind, table string, change func(*models.Snapshot) (bool, error)) (err error) {
	log := logger.FromContext(ctx)
	defer func() {
		e.recorder.RecordMutation(kind, table, metrics.Outcome(err))
	}()

	unlock := e.lock(table)
	defer unlock()

	snap, err := e.store.Read(ctx, table)
	if err != nil {
		log.Err(err).Str("func", "*mutationEngine.mutate").Str("kind", kind).Str("table", table).Msg("error reading table")
		return err
	}

	changed, err := change(&snap)
	if err != nil || !changed {
		return err
	}

	// Once dispatched, the write's outcome belongs to the store. The store's
	// own timeout still bounds it.
	detached := context.WithoutCancel(ctx)
	if err = e.store.Write(detached, snap); err != nil {
		log.Err(err).Str("func", "*mutationEngine.mutate").Str("kind", kind).Str("table", table).Msg("error writing table")
		return err
	}

	e.cache.Invalidate(detached, table)
	log.Info().Str("kind", kind).Str("table", table).Int("rows", snap.Len()).Msg("table mutated")

	return nil
}

func notFound(table string, key models.Key) error {
	return fmt.Errorf("%w: %s where %s = %q", ErrNotFound, table, key.Column, key.Value)
}

func (e *mutationEngine) Append(ctx context.Context, table string, record models.Record) error {
	if !hasValues(record) {
		return ErrEmptyRecord
	}

	return e.mutate(ctx, mutationAppend, table, func(snap *models.Snapshot) (bool, error) {
		snap.Records = append(snap.Records, record.Clone())
		return true, nil
	})
}

func hasValues(r models.Record) bool {
	for _, v := range r {
		if !v.IsEmpty() {
			return true
		}
	}
	return false
}

func (e *mutationEngine) UpdateField(ctx context.Context, table string, key models.Key, field string, value models.Value) (models.Record, error) {
	return e.UpdateFieldFunc(ctx, table, key, field, func(models.Value) models.Value {
		return value
	})
}

func (e *mutationEngine) UpdateFieldFunc(ctx context.Context, table string, key models.Key, field string, fn func(models.Value) models.Value) (models.Record, error) {
	var updated models.Record

	err := e.mutate(ctx, mutationUpdate, table, func(snap *models.Snapshot) (bool, error) {
		i := snap.IndexOf(key)
		if i < 0 {
			return false, notFound(table, key)
		}

		current := snap.Records[i]
		snap.Records[i] = current.With(field, fn(current.Get(field)))
		updated = snap.Records[i].Clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (e *mutationEngine) Delete(ctx context.Context, table string, key models.Key) (models.Record, error) {
	var removed models.Record

	err := e.mutate(ctx, mutationDelete, table, func(snap *models.Snapshot) (bool, error) {
		i := snap.IndexOf(key)
		if i < 0 {
			return false, notFound(table, key)
		}

		removed = snap.Records[i]
		snap.Records = append(snap.Records[:i:i], snap.Records[i+1:]...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

func (e *mutationEngine) IncrementCounts(ctx context.Context, table, keyColumn string, names []string, countColumn string) (int, error) {
	applied := 0

	err := e.mutate(ctx, mutationIncrement, table, func(snap *models.Snapshot) (bool, error) {
		seen := make(map[string]bool, len(names))
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			i := snap.IndexOf(models.Key{Column: keyColumn, Value: name, Mode: models.MatchExact})
			if i < 0 {
				continue
			}

			r := snap.Records[i]
			snap.Records[i] = r.With(countColumn, models.Int(r.Get(countColumn).Count()+1))
			applied++
		}
		return applied > 0, nil
	})
	if err != nil {
		return 0, err
	}

	return applied, nil
}
