// Package record defines the tabular data model shared by parsers, sorters,
// and writers: a Table of ordered columns and loosely-typed rows.
package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a single row. Values are string, float64, bool, or nil depending
// on what the source format can express.
type Record map[string]any

// Table holds rows plus the column order they should be rendered in.
// Columns is first-seen order and is preserved through sorting and writing.
type Table struct {
	Columns []string
	Rows    []Record
}

// NewTable returns an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// AddColumn appends a column if it is not already present.
func (t *Table) AddColumn(name string) {
	for _, c := range t.Columns {
		if c == name {
			return
		}
	}
	t.Columns = append(t.Columns, name)
}

// Merge appends other's rows to t and unions the column sets, keeping t's
// existing column order and appending unseen columns in other's order.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for _, c := range other.Columns {
		t.AddColumn(c)
	}
	t.Rows = append(t.Rows, other.Rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Value classes for Compare. Ranking the class before the value keeps the
// ordering total even when a column mixes numeric and non-numeric cells;
// comparing pairwise by whatever the two sides happen to be would hand
// sort.SliceStable an intransitive Less.
const (
	classNil = iota
	classNumeric
	classString
)

// Compare orders two cell values: nil sorts first, then everything numeric
// (including numeric strings, so CSV input sorts sanely) in numeric order,
// then everything else by string comparison of the rendered value.
func Compare(a, b any) int {
	classA, af := classify(a)
	classB, bf := classify(b)
	if classA != classB {
		if classA < classB {
			return -1
		}
		return 1
	}

	switch classA {
	case classNil:
		return 0
	case classNumeric:
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	default:
		return strings.Compare(Render(a), Render(b))
	}
}

func classify(v any) (int, float64) {
	if v == nil {
		return classNil, 0
	}
	if f, ok := toFloat(v); ok {
		return classNumeric, f
	}
	return classString, 0
}

// Render converts a cell value to its output string form. Floats that hold
// integral values drop the trailing ".0" so JSON-parsed integers round-trip
// through CSV unchanged.
func Render(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
