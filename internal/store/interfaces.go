// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides the backing table stores of the data hub.
//
// Every store exposes the same two primitives: read a whole table and
// replace a whole table. There is no append, partial update or conditional
// write; row-level mutations are built on top of these by the service layer.
package store

import (
	"context"

	"github.com/MKhiriev/go-data-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/table_store_mock.go -package=mock

// TableStore is a remote table-shaped store.
type TableStore interface {
	// Read returns the current content of table. The snapshot's Columns hold
	// the header row and Records every data row in stored order.
	Read(ctx context.Context, table string) (models.Snapshot, error)

	// Write replaces the entire content of snapshot.Table. Rows present
	// before the call and absent from snapshot are gone afterwards.
	Write(ctx context.Context, snapshot models.Snapshot) error
}

// Closer is implemented by stores holding connections.
type Closer interface {
	Close() error
}
