package sorter

import (
	"fmt"
	"strings"

	"rowkit/internal/record"
)

// FieldStrategy orders rows by a single column using record.Compare, so
// numeric cells (and numeric strings from CSV) compare numerically.
type FieldStrategy struct {
	FieldName  string
	Descending bool
}

// Field returns a strategy ordering by one column.
func Field(name string, descending bool) *FieldStrategy {
	return &FieldStrategy{FieldName: name, Descending: descending}
}

func (s *FieldStrategy) Name() string {
	if s.Descending {
		return "field(" + s.FieldName + " desc)"
	}
	return "field(" + s.FieldName + ")"
}

func (s *FieldStrategy) Less(a, b record.Record) bool {
	c := record.Compare(a[s.FieldName], b[s.FieldName])
	if s.Descending {
		return c > 0
	}
	return c < 0
}

// MultiStrategy applies strategies lexicographically: the first one that
// distinguishes two rows wins.
type MultiStrategy struct {
	strategies []Strategy
}

// Multi combines strategies into one. A single strategy is returned as-is.
func Multi(strategies ...Strategy) Strategy {
	if len(strategies) == 1 {
		return strategies[0]
	}
	return &MultiStrategy{strategies: strategies}
}

func (s *MultiStrategy) Name() string {
	names := make([]string, len(s.strategies))
	for i, sub := range s.strategies {
		names[i] = sub.Name()
	}
	return "multi(" + strings.Join(names, ", ") + ")"
}

func (s *MultiStrategy) Less(a, b record.Record) bool {
	for _, sub := range s.strategies {
		if sub.Less(a, b) {
			return true
		}
		if sub.Less(b, a) {
			return false
		}
	}
	return false
}

// ReverseStrategy inverts another strategy's order.
type ReverseStrategy struct {
	Inner Strategy
}

// Reverse wraps s so its order is inverted.
func Reverse(s Strategy) *ReverseStrategy {
	return &ReverseStrategy{Inner: s}
}

func (s *ReverseStrategy) Name() string { return "reverse(" + s.Inner.Name() + ")" }

func (s *ReverseStrategy) Less(a, b record.Record) bool { return s.Inner.Less(b, a) }

// ParseSpec builds a strategy from a sort spec like "name" or
// "name,age:desc". Each comma-separated term is a column name with an
// optional ":asc" or ":desc" suffix.
func ParseSpec(spec string) (Strategy, error) {
	terms := strings.Split(spec, ",")
	var strategies []Strategy
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			return nil, fmt.Errorf("sort spec %q: empty field name", spec)
		}
		name, dir := term, "asc"
		if i := strings.LastIndex(term, ":"); i >= 0 {
			name, dir = strings.TrimSpace(term[:i]), strings.ToLower(strings.TrimSpace(term[i+1:]))
		}
		if name == "" {
			return nil, fmt.Errorf("sort spec %q: empty field name", spec)
		}
		switch dir {
		case "asc":
			strategies = append(strategies, Field(name, false))
		case "desc":
			strategies = append(strategies, Field(name, true))
		default:
			return nil, fmt.Errorf("sort spec %q: direction must be asc or desc, got %q", spec, dir)
		}
	}
	return Multi(strategies...), nil
}
