// Package sorter orders tables through swappable Strategy objects. The
// Sorter itself owns no ordering logic: it holds the current strategy and
// delegates the actual work to the standard library's stable sort.
package sorter

import (
	"sort"
	"sync"

	"rowkit/internal/record"
)

// Strategy decides the relative order of two rows.
type Strategy interface {
	// Name identifies the strategy in logs and errors.
	Name() string
	// Less reports whether row a sorts before row b.
	Less(a, b record.Record) bool
}

// Sorter applies its current strategy to tables. The strategy can be swapped
// at any time; swapping and sorting are safe to interleave from different
// goroutines.
type Sorter struct {
	mu       sync.RWMutex
	strategy Strategy
}

// New returns a Sorter using s. A nil strategy is allowed and makes Sort a
// no-op until SetStrategy is called.
func New(s Strategy) *Sorter {
	return &Sorter{strategy: s}
}

// SetStrategy swaps the ordering behavior for subsequent Sort calls.
func (s *Sorter) SetStrategy(strategy Strategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategy = strategy
}

// Strategy returns the currently held strategy, which may be nil.
func (s *Sorter) Strategy() Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy
}

// Sort orders t's rows in place using the held strategy. The sort is stable:
// rows the strategy considers equal keep their input order. With no strategy
// set, the table is left untouched.
func (s *Sorter) Sort(t *record.Table) {
	strategy := s.Strategy()
	if strategy == nil || t == nil {
		return
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return strategy.Less(t.Rows[i], t.Rows[j])
	})
}
