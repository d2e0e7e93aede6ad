package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"rowkit/internal/record"
)

// CSVParser reads comma-separated input whose first row is the header.
// All cell values stay strings; numeric-aware comparison happens at sort
// time, not parse time.
type CSVParser struct{}

func (p *CSVParser) Format() string { return "csv" }

func (p *CSVParser) Parse(r io.Reader) (*record.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are padded below

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return record.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: header: %w", err)
	}

	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return nil, fmt.Errorf("csv: duplicate header column %q", name)
		}
		seen[name] = true
	}

	t := record.NewTable(header...)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		row := record.Record{}
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
