// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strings"
	"time"
)

// Record is one table row keyed by column name. Records are schema-less:
// a missing column reads as an empty cell.
type Record map[string]Value

// Get returns the cell stored under column, or an empty cell.
func (r Record) Get(column string) Value {
	if r == nil {
		return Empty()
	}
	return r[column]
}

// Text is shorthand for r.Get(column).Text().
func (r Record) Text(column string) string {
	return r.Get(column).Text()
}

// Clone returns a shallow copy; cells are values so the copy is independent.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// With returns a copy of r with column set to value.
func (r Record) With(column string, value Value) Record {
	out := r.Clone()
	if out == nil {
		out = make(Record, 1)
	}
	out[column] = value
	return out
}

// Snapshot is the full content of a table at a point in time.
type Snapshot struct {
	// Table is the worksheet or table name.
	Table string `json:"table"`
	// Columns is the header row in its stored order.
	Columns []string `json:"columns"`
	// Records are the data rows in stored order.
	Records []Record `json:"records"`
	// FetchedAt is when the snapshot was read from the backing store.
	FetchedAt time.Time `json:"fetched_at"`
}

// Len returns the number of records.
func (s Snapshot) Len() int { return len(s.Records) }

// Clone deep-copies the snapshot so callers may mutate the result.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Table:     s.Table,
		Columns:   slices.Clone(s.Columns),
		FetchedAt: s.FetchedAt,
	}
	if s.Records != nil {
		out.Records = make([]Record, len(s.Records))
		for i, r := range s.Records {
			out.Records[i] = r.Clone()
		}
	}
	return out
}

// Header returns the columns a write of this snapshot must carry: the known
// columns in their stored order followed by any new record keys, sorted.
func (s Snapshot) Header() []string {
	header := slices.Clone(s.Columns)
	seen := make(map[string]struct{}, len(header))
	for _, c := range header {
		seen[c] = struct{}{}
	}

	var extra []string
	for _, r := range s.Records {
		for k := range r {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)

	return append(header, extra...)
}

// IndexOf returns the position of the first record matching key, or -1.
func (s Snapshot) IndexOf(key Key) int {
	for i, r := range s.Records {
		if key.Matches(r) {
			return i
		}
	}
	return -1
}

// Column returns the values of one column across all records.
func (s Snapshot) Column(column string) []Value {
	out := make([]Value, 0, len(s.Records))
	for _, r := range s.Records {
		out = append(out, r.Get(column))
	}
	return out
}

// MatchMode selects how a Key compares cell text.
type MatchMode uint8

const (
	// MatchExact compares whitespace-trimmed text exactly.
	MatchExact MatchMode = iota
	// MatchFold compares whitespace-trimmed text case-insensitively.
	MatchFold
)

// Key identifies records by the text of one column.
type Key struct {
	Column string
	Value  string
	Mode   MatchMode
}

// Matches reports whether record r is identified by k.
func (k Key) Matches(r Record) bool {
	got := strings.TrimSpace(r.Text(k.Column))
	want := strings.TrimSpace(k.Value)
	if k.Mode == MatchFold {
		return strings.EqualFold(got, want)
	}
	return got == want
}

// ByEmail matches the e-mail column of the authorization table.
func ByEmail(email string) Key {
	return Key{Column: ColEmail, Value: email, Mode: MatchFold}
}

// ByID matches a project id.
func ByID(id string) Key {
	return Key{Column: ColProjectID, Value: id, Mode: MatchExact}
}

// ByProjectName matches a project by its display name.
func ByProjectName(name string) Key {
	return Key{Column: ColProjectName, Value: name, Mode: MatchExact}
}

// NormalizeEmail trims and lower-cases an address for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
