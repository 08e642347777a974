package session

import "strings"

// Table is a materialized, row-oriented query result.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows. A nil Table has no rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of column name, or -1.
// An exact match wins over a case-insensitive one.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	for i, col := range t.Columns {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Value returns the cell at row for column name.
func (t *Table) Value(row int, name string) (any, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= t.Len() || idx >= len(t.Rows[row]) {
		return nil, false
	}
	return t.Rows[row][idx], true
}
