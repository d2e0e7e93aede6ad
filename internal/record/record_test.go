package record

import "testing"

func TestCompare(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want int
	}{
		{"nils equal", nil, nil, 0},
		{"nil first", nil, "x", -1},
		{"nil first reversed", "x", nil, 1},
		{"floats", 1.5, 2.5, -1},
		{"numeric strings", "9", "10", -1},
		{"mixed float and numeric string", 2.0, "10", -1},
		{"strings", "apple", "banana", -1},
		{"numeric before non-numeric", "9", "1z", -1},
		{"non-numeric after float", "1z", 2.0, 1},
		{"equal strings", "same", "same", 0},
		{"bools render as strings", true, false, 1}, // "true" > "false"
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compare(tc.a, tc.b)
			if got != tc.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCompareTransitiveOnMixedValues(t *testing.T) {
	// "9" < "10" numerically and "10" < "1z" (numbers rank before
	// non-numbers), so "9" < "1z" must hold too.
	values := []any{"9", "10", "1z", nil, 2.0, "apple"}
	for _, a := range values {
		for _, b := range values {
			for _, c := range values {
				if Compare(a, b) < 0 && Compare(b, c) < 0 && Compare(a, c) >= 0 {
					t.Errorf("intransitive: %v < %v and %v < %v but Compare(%v, %v) = %d",
						a, b, b, c, a, c, Compare(a, c))
				}
			}
		}
	}
}

func TestRender(t *testing.T) {
	if got := Render(42.0); got != "42" {
		t.Errorf("integral float rendered as %q, want 42", got)
	}
	if got := Render(3.25); got != "3.25" {
		t.Errorf("float rendered as %q, want 3.25", got)
	}
	if got := Render(nil); got != "" {
		t.Errorf("nil rendered as %q, want empty", got)
	}
	if got := Render(true); got != "true" {
		t.Errorf("bool rendered as %q, want true", got)
	}
}

func TestTableMerge(t *testing.T) {
	a := NewTable("name", "age")
	a.Rows = append(a.Rows, Record{"name": "ada", "age": 36.0})

	b := NewTable("age", "city")
	b.Rows = append(b.Rows, Record{"age": 41.0, "city": "london"})

	a.Merge(b)

	wantCols := []string{"name", "age", "city"}
	if len(a.Columns) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", a.Columns, wantCols)
	}
	for i, c := range wantCols {
		if a.Columns[i] != c {
			t.Errorf("column[%d] = %q, want %q", i, a.Columns[i], c)
		}
	}
	if a.Len() != 2 {
		t.Errorf("rows = %d, want 2", a.Len())
	}

	a.Merge(nil) // must not panic
	if a.Len() != 2 {
		t.Errorf("rows after nil merge = %d, want 2", a.Len())
	}
}
