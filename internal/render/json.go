package render

import (
	"encoding/json"
	"fmt"
	"io"

	"reporting-srv/internal/dataset"
)

type jsonRenderer struct{}

// NewJSON renders the data set as a JSON document of column names and row objects.
func NewJSON() FileRenderer {
	return &jsonRenderer{}
}

func (r *jsonRenderer) Name() string  { return "json" }
func (r *jsonRenderer) Label() string { return "JSON" }
func (r *jsonRenderer) Kind() Kind    { return KindFile }

func (r *jsonRenderer) Filename(def dataset.Definition, _ string) (string, error) {
	return filenameFor(def, "json")
}

func (r *jsonRenderer) ContentType(_ string) string { return "application/json" }

type jsonDocument struct {
	Definition string        `json:"definition"`
	Columns    []string      `json:"columns"`
	Rows       []dataset.Row `json:"rows"`
}

func (r *jsonRenderer) Render(w io.Writer, ds *dataset.DataSet, _ string) error {
	doc := jsonDocument{
		Definition: ds.Definition,
		Columns:    columnNames(ds),
		Rows:       ds.Rows,
	}
	if doc.Rows == nil {
		doc.Rows = []dataset.Row{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: json: %v", ErrRenderingFailed, err)
	}
	return nil
}
