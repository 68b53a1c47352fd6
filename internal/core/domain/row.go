package domain

import (
	"fmt"
	"strconv"
)

// Row is one result row from the SQL engine: an ordered column list plus
// the value for each column. Values arrive loosely typed from the driver
// (int64, float64, string, []byte or nil); the typed accessors below are
// the single place that tolerance lives.
type Row struct {
	Columns []string
	Values  map[string]any
}

// Get returns the raw value for a column.
func (r Row) Get(column string) (any, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// Int64 converts a column to int64. ok is false when the column is absent
// or the value does not look numeric.
func (r Row) Int64(column string) (int64, bool) {
	v, present := r.Values[column]
	if !present {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case []byte:
		parsed, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// String converts a column to a string. Absent columns and NULLs yield "".
func (r Row) String(column string) string {
	v, present := r.Values[column]
	if !present || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
