// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/metrics"
)

// NewTableStore builds the driver selected by cfg.Driver, applies the SQL
// schema when needed, and wraps the result with per-call timeout, metrics
// and logging.
func NewTableStore(ctx context.Context, cfg config.Storage, log *logger.Logger, rec metrics.Recorder) (TableStore, error) {
	base, err := openDriver(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	log.Info().Str("driver", cfg.Driver).Msg("table store ready")

	return NewInstrumentedTableStore(cfg.RequestTimeout, rec).Wrap(base), nil
}

func openDriver(ctx context.Context, cfg config.Storage, log *logger.Logger) (TableStore, error) {
	switch cfg.Driver {
	case config.StorageDriverSheets:
		return NewSheetsTableStore(cfg.Sheets, log)
	case config.StorageDriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return migrated(db, log)
	case config.StorageDriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return migrated(db, log)
	case config.StorageDriverFile:
		return NewFileTableStore(cfg.File.Path, log)
	case config.StorageDriverMemory:
		return NewMemoryTableStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func migrated(db *DB, log *logger.Logger) (TableStore, error) {
	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "migrated").Msg("error applying table store schema")
		return nil, errors.Join(err, db.Close())
	}
	return NewSQLTableStore(db, log), nil
}
