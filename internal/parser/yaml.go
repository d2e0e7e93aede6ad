package parser

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"rowkit/internal/record"
)

// YAMLParser reads a top-level sequence of mappings (or a single mapping as a
// one-row table). It walks yaml.Node rather than decoding into maps so column
// order matches the document, mirroring JSONParser.
type YAMLParser struct{}

func (p *YAMLParser) Format() string { return "yaml" }

func (p *YAMLParser) Parse(r io.Reader) (*record.Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return record.NewTable(), nil
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return record.NewTable(), nil
	}

	t := record.NewTable()
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		for _, item := range root.Content {
			if err := appendMapping(t, item); err != nil {
				return nil, err
			}
		}
	case yaml.MappingNode:
		if err := appendMapping(t, root); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("yaml: expected sequence or mapping at top level, got %v", root.Tag)
	}
	return t, nil
}

func appendMapping(t *record.Table, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("yaml: line %d: element is not a mapping", node.Line)
	}
	row := record.Record{}
	// Content holds alternating key and value nodes.
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("yaml: line %d: %w", keyNode.Line, err)
		}
		var v any
		if err := valNode.Decode(&v); err != nil {
			return fmt.Errorf("yaml: line %d: %w", valNode.Line, err)
		}
		t.AddColumn(key)
		row[key] = normalizeYAML(v)
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// normalizeYAML widens yaml.v3's int scalars to float64 so cells carry the
// same numeric type regardless of source format.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return v
	}
}
