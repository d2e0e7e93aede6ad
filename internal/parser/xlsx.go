package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"rowkit/internal/record"
)

// XLSXParser reads the first sheet of an .xlsx workbook, first row as the
// header. Legacy .xls (BIFF8) workbooks are not supported by excelize and
// fail at open time.
type XLSXParser struct {
	// Sheet overrides the sheet to read; empty means the first sheet.
	Sheet string
}

func (p *XLSXParser) Format() string { return "xlsx" }

func (p *XLSXParser) Parse(r io.Reader) (*record.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read: %w", err)
	}
	// Empty input means an empty table, same as the text formats.
	if len(data) == 0 {
		return record.NewTable(), nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xlsx: open: %w", err)
	}
	defer f.Close()

	sheet := p.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return record.NewTable(), nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return record.NewTable(), nil
	}

	header := rows[0]
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return nil, fmt.Errorf("xlsx: duplicate header column %q", name)
		}
		seen[name] = true
	}

	t := record.NewTable(header...)
	for _, cells := range rows[1:] {
		row := record.Record{}
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
