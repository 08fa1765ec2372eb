// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind enumerates the closed set of scalar cell types a table may hold.
type Kind uint8

const (
	// KindEmpty marks an absent or blank cell.
	KindEmpty Kind = iota
	// KindString marks a free-text cell.
	KindString
	// KindNumber marks a numeric cell.
	KindNumber
	// KindDate marks a date/time cell.
	KindDate
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// DateTimeLayout is the layout used when timestamps are written into tables.
const DateTimeLayout = "02/01/2006 15:04:05"

// DateLayout is the layout of day-precision dates such as a birth date.
const DateLayout = "02/01/2006"

// Value is a single table cell.
//
// The zero Value is empty. Values are immutable and safe to copy.
type Value struct {
	kind Kind
	str  string
	num  float64
	date time.Time
}

// String returns a text cell.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Int returns a numeric cell holding n.
func Int(n int) Value {
	return Number(float64(n))
}

// Date returns a date cell.
func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// Empty returns an empty cell.
func Empty() Value {
	return Value{}
}

// ValueOf converts a decoded scalar (as produced by encoding/json or a
// database driver) into a Value. Unsupported types are rendered with %v.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Empty()
	case Value:
		return x
	case string:
		if x == "" {
			return Empty()
		}
		return String(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return String(x.String())
	case bool:
		if x {
			return String("TRUE")
		}
		return String("FALSE")
	case time.Time:
		return Date(x)
	case []byte:
		return ValueOf(string(x))
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// Kind reports the cell type.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the cell is blank. A text cell holding only
// whitespace is treated as blank.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindEmpty:
		return true
	case KindString:
		return strings.TrimSpace(v.str) == ""
	default:
		return false
	}
}

// Text renders the cell the way it would be shown in a spreadsheet.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format(DateTimeLayout)
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }

// Time returns the date held by a date cell.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// Equal reports whether two cells hold the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindDate:
		return v.date.Equal(other.date)
	default:
		return true
	}
}

// Measure interprets the cell as a measurement (income, age, household size).
// The boolean is false when the cell is blank or not a number, which is
// distinct from a present zero.
func (v Value) Measure() (float64, bool) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0, false
		}
		return v.num, true
	case KindString:
		return parseNumber(v.str)
	default:
		return 0, false
	}
}

// Count interprets the cell as a counter. Blank or non-numeric cells count
// as zero and fractional values are truncated.
func (v Value) Count() int {
	f, ok := v.Measure()
	if !ok {
		return 0
	}
	return int(f)
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// pt-BR sheets use a decimal comma
		f, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MarshalJSON encodes empty cells as null, numbers as JSON numbers and
// everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindEmpty:
		return []byte("null"), nil
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.Text())
	}
}

// UnmarshalJSON is the inverse of MarshalJSON. Strings are kept as text;
// dates therefore come back as text unless decoded with a typed codec.
func (v *Value) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}
