package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/models"
)

// fileTableStore keeps every table in one JSON document. With an empty path
// or ":memory:" nothing touches the disk.
type fileTableStore struct {
	path     string
	inMemory bool

	mu     sync.RWMutex
	tables map[string]persistedTable

	now    func() time.Time
	logger *logger.Logger
}

type persistedTable struct {
	Columns []string          `json:"columns"`
	Rows    []map[string]cell `json:"rows"`
}

type persistedState struct {
	Tables map[string]persistedTable `json:"tables"`
}

// NewFileTableStore opens (or lazily creates) a JSON table file.
func NewFileTableStore(path string, log *logger.Logger) (TableStore, error) {
	if path == "" {
		path = ":memory:"
	}

	s := &fileTableStore{
		path:     path,
		inMemory: path == ":memory:" || path == "memory",
		tables:   make(map[string]persistedTable),
		now:      time.Now,
		logger:   log,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMemoryTableStore returns an in-process store seeded with snapshots.
func NewMemoryTableStore(seed ...models.Snapshot) TableStore {
	s := &fileTableStore{
		path:     ":memory:",
		inMemory: true,
		tables:   make(map[string]persistedTable),
		now:      time.Now,
		logger:   logger.Nop(),
	}
	for _, snap := range seed {
		s.tables[snap.Table] = toPersisted(snap)
	}
	return s
}

func toPersisted(snap models.Snapshot) persistedTable {
	t := persistedTable{Columns: snap.Header(), Rows: make([]map[string]cell, 0, len(snap.Records))}
	for _, r := range snap.Records {
		t.Rows = append(t.Rows, encodeRecord(r))
	}
	return t
}

// load re-reads the file so that writes from another process are seen.
func (s *fileTableStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read table file: %w", ErrUnavailable, err)
	}

	var st persistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: decode table file: %w", ErrMalformedResponse, err)
	}
	if st.Tables == nil {
		st.Tables = make(map[string]persistedTable)
	}
	s.tables = st.Tables

	return nil
}

// persist writes through a temporary file and a rename so a crash never
// leaves a half-written document.
func (s *fileTableStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create table dir: %w", ErrUnavailable, err)
	}

	payload, err := json.MarshalIndent(persistedState{Tables: s.tables}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode table file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tables-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write temp file: %w", ErrUnavailable, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %w", ErrUnavailable, err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replace table file: %w", ErrUnavailable, err)
	}

	return nil
}

func (s *fileTableStore) Read(ctx context.Context, table string) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, newStoreError(OpRead, table, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return models.Snapshot{}, newStoreError(OpRead, table, err)
	}

	t, ok := s.tables[table]
	if !ok {
		return emptySnapshot(table, s.now()), nil
	}

	snap := models.Snapshot{
		Table:     table,
		Columns:   slices.Clone(t.Columns),
		Records:   make([]models.Record, 0, len(t.Rows)),
		FetchedAt: s.now(),
	}
	for _, row := range t.Rows {
		r, err := decodeRecord(row)
		if err != nil {
			return models.Snapshot{}, newStoreError(OpRead, table, err)
		}
		snap.Records = append(snap.Records, r)
	}

	return snap, nil
}

func (s *fileTableStore) Write(ctx context.Context, snapshot models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return newStoreError(OpWrite, snapshot.Table, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return newStoreError(OpWrite, snapshot.Table, err)
	}

	prev, existed := s.tables[snapshot.Table]
	s.tables[snapshot.Table] = toPersisted(snapshot)

	if err := s.persist(); err != nil {
		if existed {
			s.tables[snapshot.Table] = prev
		} else {
			delete(s.tables, snapshot.Table)
		}
		return newStoreError(OpWrite, snapshot.Table, err)
	}

	s.logger.Debug().Str("func", "*fileTableStore.Write").
		Str("table", snapshot.Table).
		Int("rows", len(snapshot.Records)).
		Msg("table replaced")

	return nil
}
