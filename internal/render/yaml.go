package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"reporting-srv/internal/dataset"
)

type yamlRenderer struct{}

// NewYAML renders rows as a YAML sequence, keeping column order inside each row.
func NewYAML() FileRenderer {
	return &yamlRenderer{}
}

func (r *yamlRenderer) Name() string  { return "yaml" }
func (r *yamlRenderer) Label() string { return "YAML" }
func (r *yamlRenderer) Kind() Kind    { return KindFile }

func (r *yamlRenderer) Filename(def dataset.Definition, _ string) (string, error) {
	return filenameFor(def, "yaml")
}

func (r *yamlRenderer) ContentType(_ string) string { return "application/yaml" }

func (r *yamlRenderer) Render(w io.Writer, ds *dataset.DataSet, _ string) error {
	rows := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range ds.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, c := range ds.Columns {
			var val yaml.Node
			if err := val.Encode(yamlValue(row.Get(c))); err != nil {
				return fmt.Errorf("%w: yaml value %s: %v", ErrRenderingFailed, c.Name(), err)
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: c.Name()}, &val)
		}
		rows.Content = append(rows.Content, m)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "definition"},
		{Kind: yaml.ScalarNode, Value: ds.Definition},
		{Kind: yaml.ScalarNode, Value: "rows"},
		rows,
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: yaml: %v", ErrRenderingFailed, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: yaml: %v", ErrRenderingFailed, err)
	}
	return nil
}

func yamlValue(v any) any {
	switch v.(type) {
	case nil, int, int64, float64, string, bool:
		return v
	default:
		return formatValue(v)
	}
}
