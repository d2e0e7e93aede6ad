package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"rowkit/internal/record"
)

// JSONParser reads a top-level array of objects. A top-level single object is
// treated as a one-row table. Decoding goes token by token so the table's
// column order reflects key order of first appearance rather than Go map
// iteration order.
type JSONParser struct{}

func (p *JSONParser) Format() string { return "json" }

func (p *JSONParser) Parse(r io.Reader) (*record.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return record.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}

	t := record.NewTable()
	switch d := tok.(type) {
	case json.Delim:
		switch d {
		case '[':
			for dec.More() {
				if err := p.decodeObject(dec, t); err != nil {
					return nil, err
				}
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, fmt.Errorf("json: %w", err)
			}
		case '{':
			if err := p.decodeFields(dec, t); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("json: unexpected delimiter %q", d)
		}
	default:
		return nil, fmt.Errorf("json: expected array or object, got %T", tok)
	}
	return t, nil
}

// decodeObject consumes one object from an array, including its braces.
func (p *JSONParser) decodeObject(dec *json.Decoder, t *record.Table) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("json: array element is not an object (got %v)", tok)
	}
	return p.decodeFields(dec, t)
}

// decodeFields consumes key/value pairs up to and including the closing
// brace, appending one row to t.
func (p *JSONParser) decodeFields(dec *json.Decoder, t *record.Table) error {
	row := record.Record{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("json: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("json: object key is not a string (got %v)", keyTok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("json: value for %q: %w", key, err)
		}
		t.AddColumn(key)
		row[key] = normalize(v)
	}
	if _, err := dec.Token(); err != nil { // closing }
		return fmt.Errorf("json: %w", err)
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// normalize flattens json.Number into float64 so all parsers agree on the
// cell value types.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		for k, elem := range x {
			x[k] = normalize(elem)
		}
		return x
	case []any:
		for i, elem := range x {
			x[i] = normalize(elem)
		}
		return x
	default:
		return v
	}
}
