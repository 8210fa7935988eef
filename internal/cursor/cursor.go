// Package cursor exposes conversation query rows through positional accessors,
// the shape the message builder reads its raw fields from.
package cursor

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Cursor is a read-only positional view over one row. Index -1 and NULL
// values read as zero values; IsNull tells them apart.
type Cursor interface {
	Len() int
	IsNull(i int) bool
	Int64(i int) int64
	Int(i int) int
	String(i int) string
}

// Values is an in-memory row. It is what ReadAll materializes from *sql.Rows
// and what tests build by hand.
type Values []any

var _ Cursor = Values(nil)

// Len returns the number of columns in the row.
func (v Values) Len() int {
	return len(v)
}

// IsNull reports whether column i is NULL or out of range.
func (v Values) IsNull(i int) bool {
	if i < 0 || i >= len(v) {
		return true
	}
	return v[i] == nil
}

// Int64 reads column i as an integer. Text is parsed the way SQLite coerces
// it; anything unparseable reads as 0.
func (v Values) Int64(i int) int64 {
	if v.IsNull(i) {
		return 0
	}
	switch x := v[i].(type) {
	case int64:
		return x
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case int16:
		return int64(x)
	case float64:
		return int64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case []byte:
		return parseInt(string(x))
	case string:
		return parseInt(x)
	default:
		return 0
	}
}

// Int reads column i as an int.
func (v Values) Int(i int) int {
	return int(v.Int64(i))
}

// String reads column i as text; NULL reads as "".
func (v Values) String(i int) string {
	if v.IsNull(i) {
		return ""
	}
	switch x := v[i].(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

// ReadAll drains rows into memory and returns them with the column names.
// The caller still owns rows and must close it.
func ReadAll(rows *sql.Rows) ([]Values, []string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []Values
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(Values, len(cols))
		for i, val := range raw {
			// drivers may reuse byte buffers between rows
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[i] = val
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, cols, nil
}
