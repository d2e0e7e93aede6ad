package writer

import (
	"encoding/csv"
	"fmt"
	"io"

	"rowkit/internal/record"
)

// CSVWriter emits the header row followed by data rows. Missing cells
// render empty; non-string cells go through record.Render.
type CSVWriter struct{}

func (w *CSVWriter) Format() string { return "csv" }

func (w *CSVWriter) Write(t *record.Table, out io.Writer) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("csv: header: %w", err)
	}
	fields := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			fields[i] = record.Render(row[col])
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
