package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-data-hub/models"
)

// cell is the self-describing JSON form of a models.Value used by the file
// and SQL stores, which, unlike a spreadsheet, keep the cell kind.
type cell struct {
	T string     `json:"t"`
	S string     `json:"s,omitempty"`
	N *float64   `json:"n,omitempty"`
	D *time.Time `json:"d,omitempty"`
}

func encodeCell(v models.Value) cell {
	switch v.Kind() {
	case models.KindString:
		return cell{T: "s", S: v.Text()}
	case models.KindNumber:
		n, _ := v.Measure()
		return cell{T: "n", N: &n}
	case models.KindDate:
		d, _ := v.Time()
		return cell{T: "d", D: &d}
	default:
		return cell{T: "e"}
	}
}

func decodeCell(c cell) (models.Value, error) {
	switch c.T {
	case "s":
		return models.String(c.S), nil
	case "n":
		if c.N == nil {
			return models.Value{}, fmt.Errorf("%w: number cell without value", ErrMalformedResponse)
		}
		return models.Number(*c.N), nil
	case "d":
		if c.D == nil {
			return models.Value{}, fmt.Errorf("%w: date cell without value", ErrMalformedResponse)
		}
		return models.Date(*c.D), nil
	case "e", "":
		return models.Empty(), nil
	default:
		return models.Value{}, fmt.Errorf("%w: unknown cell kind %q", ErrMalformedResponse, c.T)
	}
}

func encodeRecord(r models.Record) map[string]cell {
	out := make(map[string]cell, len(r))
	for k, v := range r {
		out[k] = encodeCell(v)
	}
	return out
}

func decodeRecord(in map[string]cell) (models.Record, error) {
	out := make(models.Record, len(in))
	for k, c := range in {
		v, err := decodeCell(c)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// emptySnapshot is what a store without the table returns: the canonical
// header of a known table and no rows.
func emptySnapshot(table string, at time.Time) models.Snapshot {
	var columns []string
	if known, ok := models.TableColumns[table]; ok {
		columns = append(columns, known...)
	}
	return models.Snapshot{Table: table, Columns: columns, Records: []models.Record{}, FetchedAt: at}
}

type encodedSnapshot struct {
	Table     string            `json:"table"`
	Columns   []string          `json:"columns"`
	Rows      []map[string]cell `json:"rows"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// MarshalSnapshot encodes a snapshot keeping every cell kind, so that
// UnmarshalSnapshot restores it exactly.
func MarshalSnapshot(snap models.Snapshot) ([]byte, error) {
	enc := encodedSnapshot{
		Table:     snap.Table,
		Columns:   snap.Columns,
		Rows:      make([]map[string]cell, 0, len(snap.Records)),
		FetchedAt: snap.FetchedAt,
	}
	for _, r := range snap.Records {
		enc.Rows = append(enc.Rows, encodeRecord(r))
	}
	return json.Marshal(enc)
}

// UnmarshalSnapshot decodes the output of MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (models.Snapshot, error) {
	var enc encodedSnapshot
	if err := json.Unmarshal(data, &enc); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	snap := models.Snapshot{
		Table:     enc.Table,
		Columns:   enc.Columns,
		Records:   make([]models.Record, 0, len(enc.Rows)),
		FetchedAt: enc.FetchedAt,
	}
	for i, row := range enc.Rows {
		r, err := decodeRecord(row)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("row %d: %w", i, err)
		}
		snap.Records = append(snap.Records, r)
	}
	return snap, nil
}
