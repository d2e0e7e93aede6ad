// Package parser turns raw input in one of several tabular formats into a
// record.Table. Concrete parsers register themselves under a format tag and
// callers obtain one through the New factory, so adding a format never
// touches call sites.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"rowkit/internal/record"
)

// ErrUnsupportedFormat is returned by New for format tags nothing has
// registered under.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Parser reads one input stream into a table.
type Parser interface {
	// Format returns the tag the parser is registered under.
	Format() string
	// Parse consumes r fully. Empty input yields an empty table, not an error.
	Parse(r io.Reader) (*record.Table, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Parser)
)

// Register makes a parser constructor available under the given tag.
// Later registrations for the same tag win, which lets callers override a
// built-in. Tags are stored lowercase.
func Register(format string, ctor func() Parser) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(format)] = ctor
}

// New returns a parser for the given format tag. Tags are matched
// case-insensitively. Unrecognized tags return an error wrapping
// ErrUnsupportedFormat.
func New(format string) (Parser, error) {
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

// Detect maps a file path to a format tag by extension. Unknown extensions
// return "".
func Detect(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".csv":
		return "csv"
	case ".xlsx":
		return "xlsx"
	default:
		return ""
	}
}

func init() {
	Register("json", func() Parser { return &JSONParser{} })
	Register("yaml", func() Parser { return &YAMLParser{} })
	Register("csv", func() Parser { return &CSVParser{} })
	Register("xlsx", func() Parser { return &XLSXParser{} })
}
