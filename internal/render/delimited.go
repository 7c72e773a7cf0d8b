package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"reporting-srv/internal/dataset"
)

type delimited struct {
	name        string
	label       string
	ext         string
	contentType string
	comma       rune
}

// NewCSV renders comma separated values with a header row.
func NewCSV() FileRenderer {
	return &delimited{name: "csv", label: "CSV", ext: "csv", contentType: "text/csv", comma: ','}
}

// NewTSV renders tab separated values with a header row.
func NewTSV() FileRenderer {
	return &delimited{name: "tsv", label: "TSV", ext: "tsv", contentType: "text/tab-separated-values", comma: '\t'}
}

func (r *delimited) Name() string  { return r.name }
func (r *delimited) Label() string { return r.label }
func (r *delimited) Kind() Kind    { return KindFile }

func (r *delimited) Filename(def dataset.Definition, _ string) (string, error) {
	return filenameFor(def, r.ext)
}

func (r *delimited) ContentType(_ string) string { return r.contentType }

func (r *delimited) Render(w io.Writer, ds *dataset.DataSet, _ string) error {
	cw := csv.NewWriter(w)
	cw.Comma = r.comma

	if err := cw.Write(columnNames(ds)); err != nil {
		return fmt.Errorf("%w: %s header: %v", ErrRenderingFailed, r.name, err)
	}
	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, c := range ds.Columns {
			record[i] = formatValue(row.Get(c))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %s row: %v", ErrRenderingFailed, r.name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %s flush: %v", ErrRenderingFailed, r.name, err)
	}
	return nil
}
