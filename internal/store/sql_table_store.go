package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/models"
)

const (
	columnsTable = "datahub_columns"
	rowsTable    = "datahub_rows"

	// insertBatchRows keeps one INSERT (three bind parameters per row) well
	// under the SQLite and Postgres parameter limits.
	insertBatchRows = 500
)

// sqlTableStore keeps tables in two relational tables: the header in
// datahub_columns and each row, as a JSON object of typed cells, in
// datahub_rows. A missing table reads as empty.
type sqlTableStore struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewSQLTableStore builds a TableStore over an already migrated database.
func NewSQLTableStore(db *DB, log *logger.Logger) TableStore {
	log.Debug().Msg("creating sql table store")
	return &sqlTableStore{db: db, now: time.Now, logger: log}
}

func (s *sqlTableStore) fail(op, table string, cause, err error) error {
	wrapped := newStoreError(op, table, fmt.Errorf("%w: %w", cause, err))

	var se *StoreError
	if errors.As(wrapped, &se) && s.db.classify(err) == Retryable {
		se.Temporary = true
	}
	return wrapped
}

// Read loads header and rows inside one read-only transaction, so both come
// from the same version of the table.
func (s *sqlTableStore) Read(ctx context.Context, table string) (models.Snapshot, error) {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		log.Err(err).Str("func", "*sqlTableStore.Read").Str("table", table).Msg("error beginning transaction")
		return models.Snapshot{}, s.fail(OpRead, table, ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	columns, err := s.readColumns(ctx, tx, table)
	if err != nil {
		log.Err(err).Str("func", "*sqlTableStore.Read").Str("table", table).Msg("error reading header")
		return models.Snapshot{}, err
	}

	records, err := s.readRows(ctx, tx, table)
	if err != nil {
		log.Err(err).Str("func", "*sqlTableStore.Read").Str("table", table).Msg("error reading rows")
		return models.Snapshot{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Snapshot{}, s.fail(OpRead, table, ErrCommitingTransaction, err)
	}

	if len(columns) == 0 && len(records) == 0 {
		return emptySnapshot(table, s.now()), nil
	}

	return models.Snapshot{Table: table, Columns: columns, Records: records, FetchedAt: s.now()}, nil
}

func (s *sqlTableStore) readColumns(ctx context.Context, tx *sql.Tx, table string) ([]string, error) {
	query, args, err := s.db.builder().
		Select("name").
		From(columnsTable).
		Where("table_name = ?", table).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, s.fail(OpRead, table, ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(OpRead, table, ErrExecutingQuery, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, s.fail(OpRead, table, ErrScanningRows, err)
		}
		columns = append(columns, name)
	}
	if err = rows.Err(); err != nil {
		return nil, s.fail(OpRead, table, ErrScanningRows, err)
	}

	return columns, nil
}

func (s *sqlTableStore) readRows(ctx context.Context, tx *sql.Tx, table string) ([]models.Record, error) {
	query, args, err := s.db.builder().
		Select("cells").
		From(rowsTable).
		Where("table_name = ?", table).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, s.fail(OpRead, table, ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(OpRead, table, ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return nil, s.fail(OpRead, table, ErrScanningRows, err)
		}

		var cells map[string]cell
		if err = json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, s.fail(OpRead, table, ErrMalformedResponse, err)
		}
		record, err := decodeRecord(cells)
		if err != nil {
			return nil, newStoreError(OpRead, table, err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, s.fail(OpRead, table, ErrScanningRows, err)
	}

	return records, nil
}

// Write replaces header and rows inside one transaction, so readers see
// either the old or the new table.
func (s *sqlTableStore) Write(ctx context.Context, snapshot models.Snapshot) (err error) {
	log := logger.FromContext(ctx)
	table := snapshot.Table

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sqlTableStore.Write").Str("table", table).Msg("error beginning transaction")
		return s.fail(OpWrite, table, ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, target := range []string{columnsTable, rowsTable} {
		query, args, buildErr := s.db.builder().
			Delete(target).
			Where("table_name = ?", table).
			ToSql()
		if buildErr != nil {
			return s.fail(OpWrite, table, ErrBuildingSQLQuery, buildErr)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*sqlTableStore.Write").Str("table", table).Msg("error clearing table")
			return s.fail(OpWrite, table, ErrExecutingStatement, err)
		}
	}

	header := snapshot.Header()
	for start := 0; start < len(header); start += insertBatchRows {
		insert := s.db.builder().Insert(columnsTable).Columns("table_name", "position", "name")
		for i := start; i < min(start+insertBatchRows, len(header)); i++ {
			insert = insert.Values(table, i, header[i])
		}
		if err = s.exec(ctx, tx, table, insert.ToSql); err != nil {
			return err
		}
	}

	for start := 0; start < len(snapshot.Records); start += insertBatchRows {
		insert := s.db.builder().Insert(rowsTable).Columns("table_name", "position", "cells")
		for i := start; i < min(start+insertBatchRows, len(snapshot.Records)); i++ {
			raw, marshalErr := json.Marshal(encodeRecord(snapshot.Records[i]))
			if marshalErr != nil {
				return s.fail(OpWrite, table, ErrBuildingSQLQuery, marshalErr)
			}
			insert = insert.Values(table, i, string(raw))
		}
		if err = s.exec(ctx, tx, table, insert.ToSql); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*sqlTableStore.Write").Str("table", table).Msg("error committing transaction")
		return s.fail(OpWrite, table, ErrCommitingTransaction, err)
	}

	log.Debug().Str("func", "*sqlTableStore.Write").Str("table", table).
		Int("rows", len(snapshot.Records)).Msg("table replaced")
	return nil
}

func (s *sqlTableStore) exec(ctx context.Context, tx *sql.Tx, table string, build func() (string, []any, error)) error {
	query, args, err := build()
	if err != nil {
		return s.fail(OpWrite, table, ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return s.fail(OpWrite, table, ErrExecutingStatement, err)
	}
	return nil
}

// Close releases the database handle.
func (s *sqlTableStore) Close() error {
	return s.db.Close()
}
