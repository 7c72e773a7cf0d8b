package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"reporting-srv/internal/dataset"
)

// DefaultInlineBaseURL is where inline renderings are served from.
const DefaultInlineBaseURL = "/api/v1/reports/render"

var htmlTable = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
<p>{{.Count}} row(s)</p>
</body>
</html>
`))

type htmlView struct {
	Title   string
	Columns []string
	Rows    [][]string
	Count   int
}

type htmlRenderer struct {
	baseURL string
}

// NewHTML builds the inline web renderer. An empty baseURL falls back to DefaultInlineBaseURL.
func NewHTML(baseURL string) InlineRenderer {
	if baseURL == "" {
		baseURL = DefaultInlineBaseURL
	}
	return &htmlRenderer{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (r *htmlRenderer) Name() string  { return "html" }
func (r *htmlRenderer) Label() string { return "Web" }
func (r *htmlRenderer) Kind() Kind    { return KindInline }

func (r *htmlRenderer) LinkURL() string { return r.baseURL + "/" + r.Name() }

func (r *htmlRenderer) ContentType() string { return "text/html; charset=utf-8" }

// RenderInline writes an HTML table. A non-empty argument replaces the page title.
func (r *htmlRenderer) RenderInline(w io.Writer, ds *dataset.DataSet, argument string) error {
	view := htmlView{
		Title:   ds.Definition,
		Columns: columnNames(ds),
		Count:   ds.Len(),
	}
	if argument != "" {
		view.Title = argument
	}
	for _, row := range ds.Rows {
		cells := make([]string, len(ds.Columns))
		for i, c := range ds.Columns {
			cells[i] = formatValue(row.Get(c))
		}
		view.Rows = append(view.Rows, cells)
	}

	if err := htmlTable.Execute(w, view); err != nil {
		return fmt.Errorf("%w: html: %v", ErrRenderingFailed, err)
	}
	return nil
}
