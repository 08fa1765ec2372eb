package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/metrics"
	"github.com/MKhiriev/go-data-hub/models"
)

// InstrumentedTableStore decorates a TableStore with a per-call deadline,
// call metrics and error normalization into StoreError.
type InstrumentedTableStore struct {
	inner    TableStore
	timeout  time.Duration
	recorder metrics.Recorder
}

// NewInstrumentedTableStore returns a decorator; attach the store with Wrap.
// A zero timeout leaves the caller's deadline untouched. Calls are logged to
// the logger carried by the call context.
func NewInstrumentedTableStore(timeout time.Duration, rec metrics.Recorder) *InstrumentedTableStore {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &InstrumentedTableStore{timeout: timeout, recorder: rec}
}

// Wrap sets the decorated store and returns the decorator.
func (s *InstrumentedTableStore) Wrap(inner TableStore) TableStore {
	s.inner = inner
	return s
}

func (s *InstrumentedTableStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *InstrumentedTableStore) Read(ctx context.Context, table string) (models.Snapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	snap, err := s.inner.Read(ctx, table)
	err = newStoreError(OpRead, table, err)
	s.observe(ctx, OpRead, table, start, err)

	return snap, err
}

func (s *InstrumentedTableStore) Write(ctx context.Context, snapshot models.Snapshot) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := newStoreError(OpWrite, snapshot.Table, s.inner.Write(ctx, snapshot))
	s.observe(ctx, OpWrite, snapshot.Table, start, err)

	return err
}

func (s *InstrumentedTableStore) observe(ctx context.Context, op, table string, start time.Time, err error) {
	elapsed := time.Since(start)
	s.recorder.ObserveStoreCall(op, table, metrics.Outcome(err), elapsed)

	log := logger.FromContext(ctx)
	if err != nil {
		log.Err(err).Str("op", op).Str("table", table).Dur("elapsed", elapsed).Msg("table store call failed")
		return
	}
	log.Debug().Str("op", op).Str("table", table).Dur("elapsed", elapsed).Msg("table store call")
}

// Close releases the wrapped store's resources, if it holds any.
func (s *InstrumentedTableStore) Close() error {
	if c, ok := s.inner.(Closer); ok {
		return c.Close()
	}
	return nil
}
