// Package writer renders a record.Table in one of several output formats.
// It mirrors the parser package: concrete writers register under a format
// tag and callers get one from the New factory.
package writer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"rowkit/internal/record"
)

// ErrUnsupportedFormat is returned by New for format tags nothing has
// registered under.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Writer renders a table to a stream.
type Writer interface {
	// Format returns the tag the writer is registered under.
	Format() string
	// Write renders t to w. Columns are emitted in t.Columns order.
	Write(t *record.Table, w io.Writer) error
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Writer)
)

// Register makes a writer constructor available under the given tag.
// Tags are stored lowercase; later registrations win.
func Register(format string, ctor func() Writer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(format)] = ctor
}

// New returns a writer for the given format tag, matched case-insensitively.
// Unrecognized tags return an error wrapping ErrUnsupportedFormat.
func New(format string) (Writer, error) {
	registryMu.RLock()
	ctor, ok := registry[strings.ToLower(format)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
	}
	return ctor(), nil
}

// Formats returns the registered format tags, sorted.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func init() {
	Register("json", func() Writer { return &JSONWriter{} })
	Register("yaml", func() Writer { return &YAMLWriter{} })
	Register("csv", func() Writer { return &CSVWriter{} })
}
