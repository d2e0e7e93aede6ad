package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"rowkit/internal/record"
)

// JSONWriter emits a 2-space indented array of objects. Keys follow the
// table's column order, which encoding/json's map marshaling cannot do, so
// objects are assembled field by field. Columns absent from a row are
// skipped rather than emitted as null.
type JSONWriter struct{}

func (w *JSONWriter) Format() string { return "json" }

func (w *JSONWriter) Write(t *record.Table, out io.Writer) error {
	if len(t.Rows) == 0 {
		_, err := io.WriteString(out, "[]\n")
		return err
	}

	if _, err := io.WriteString(out, "[\n"); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeObject(out, t.Columns, row); err != nil {
			return err
		}
		sep := ",\n"
		if i == len(t.Rows)-1 {
			sep = "\n"
		}
		if _, err := io.WriteString(out, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, "]\n")
	return err
}

func writeObject(out io.Writer, columns []string, row record.Record) error {
	if _, err := io.WriteString(out, "  {\n"); err != nil {
		return err
	}
	present := make([]string, 0, len(columns))
	for _, col := range columns {
		if _, ok := row[col]; ok {
			present = append(present, col)
		}
	}
	for i, col := range present {
		key, err := json.Marshal(col)
		if err != nil {
			return err
		}
		val, err := json.Marshal(row[col])
		if err != nil {
			return fmt.Errorf("json: column %q: %w", col, err)
		}
		sep := ",\n"
		if i == len(present)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(out, "    %s: %s%s", key, val, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, "  }")
	return err
}
