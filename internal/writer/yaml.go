package writer

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"rowkit/internal/record"
)

// YAMLWriter emits a sequence of mappings. It builds yaml.Node trees rather
// than encoding maps directly so keys come out in table column order.
type YAMLWriter struct{}

func (w *YAMLWriter) Format() string { return "yaml" }

func (w *YAMLWriter) Write(t *record.Table, out io.Writer) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range t.Rows {
		mapping := &yaml.Node{Kind: yaml.MappingNode}
		for _, col := range t.Columns {
			v, ok := row[col]
			if !ok {
				continue
			}
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: col}
			valNode := &yaml.Node{}
			if err := valNode.Encode(v); err != nil {
				return fmt.Errorf("yaml: column %q: %w", col, err)
			}
			mapping.Content = append(mapping.Content, keyNode, valNode)
		}
		seq.Content = append(seq.Content, mapping)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return enc.Close()
}
