package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"reporting-srv/internal/dataset"
)

func sampleDataSet() *dataset.DataSet {
	at := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	return &dataset.DataSet{
		Definition: "weights",
		Columns:    dataset.ObsColumns(),
		Rows: []dataset.Row{
			{
				dataset.ColumnPatientID:         7,
				dataset.ColumnQuestion:          "WEIGHT (KG)",
				dataset.ColumnQuestionConceptID: 5089,
				dataset.ColumnAnswer:            70.5,
				dataset.ColumnAnswerConceptID:   nil,
				dataset.ColumnObsDatetime:       at,
				dataset.ColumnEncounterID:       101,
				dataset.ColumnObsGroupID:        nil,
			},
		},
	}
}

func TestDelimited_Render(t *testing.T) {
	tcs := map[string]struct {
		r      FileRenderer
		header string
		row    string
	}{
		"csv": {
			r:      NewCSV(),
			header: "patientId,question,questionConceptId,answer,answerConceptId,obsDatetime,encounterId,obsGroupId",
			row:    "7,WEIGHT (KG),5089,70.5,,2024-01-15 09:30:00,101,",
		},
		"tsv": {
			r:      NewTSV(),
			header: "patientId\tquestion\tquestionConceptId\tanswer\tanswerConceptId\tobsDatetime\tencounterId\tobsGroupId",
			row:    "7\tWEIGHT (KG)\t5089\t70.5\t\t2024-01-15 09:30:00\t101\t",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tc.r.Render(&buf, sampleDataSet(), ""))

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t, tc.header, lines[0])
			assert.Equal(t, tc.row, lines[1])
		})
	}
}

func TestDelimited_EmptyDataSetWritesHeaderOnly(t *testing.T) {
	ds := sampleDataSet()
	ds.Rows = nil

	var buf bytes.Buffer
	require.NoError(t, NewCSV().Render(&buf, ds, ""))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestExcel_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcel().Render(&buf, sampleDataSet(), ""))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excelSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "patientId", rows[0][0])
	assert.Equal(t, "obsGroupId", rows[0][7])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "WEIGHT (KG)", rows[1][1])
	assert.Equal(t, "70.5", rows[1][3])
	assert.Equal(t, "2024-01-15 09:30:00", rows[1][5])
}

func TestJSON_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSON().Render(&buf, sampleDataSet(), ""))

	var doc struct {
		Definition string           `json:"definition"`
		Columns    []string         `json:"columns"`
		Rows       []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "weights", doc.Definition)
	assert.Equal(t, "patientId", doc.Columns[0])
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, float64(7), doc.Rows[0]["patientId"])
	assert.Nil(t, doc.Rows[0]["answerConceptId"])
}

func TestYAML_RenderKeepsColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAML().Render(&buf, sampleDataSet(), ""))

	out := buf.String()
	prev := -1
	for _, c := range dataset.ObsColumns() {
		idx := strings.Index(out, c.Name()+":")
		require.GreaterOrEqual(t, idx, 0, c.Name())
		assert.Greater(t, idx, prev, c.Name())
		prev = idx
	}
	assert.Contains(t, out, "2024-01-15 09:30:00")
}

func TestHTML_RenderInline(t *testing.T) {
	r := NewHTML("")
	assert.Equal(t, "/api/v1/reports/render/html", r.LinkURL())

	var buf bytes.Buffer
	require.NoError(t, r.RenderInline(&buf, sampleDataSet(), "Weekly weights"))

	out := buf.String()
	assert.Contains(t, out, "<title>Weekly weights</title>")
	assert.Contains(t, out, "<th>patientId</th>")
	assert.Contains(t, out, "<td>70.5</td>")
	assert.Contains(t, out, "1 row(s)")
}

func TestRegistry(t *testing.T) {
	reg := NewDefaultRegistry("/custom/")

	r, err := reg.Get("html")
	require.NoError(t, err)
	ir, ok := AsInline(r)
	require.True(t, ok)
	assert.Equal(t, "/custom/html", ir.LinkURL())

	_, err = reg.Get("pdf")
	assert.ErrorIs(t, err, ErrUnknownRenderer)

	assert.ErrorIs(t, reg.Register(NewCSV()), ErrDuplicateRenderer)

	names := make([]string, 0)
	for _, r := range reg.List() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{"html", "csv", "tsv", "xlsx", "json", "yaml"}, names)
}

type mislabelled struct{ delimited }

func (m *mislabelled) Kind() Kind { return KindInline }

func TestRegistry_RejectsKindMismatch(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(&mislabelled{delimited: delimited{name: "bad"}})
	assert.ErrorIs(t, err, ErrInvalidRenderer)
}

func TestDisplayCode(t *testing.T) {
	named := dataset.NewObsDefinition("weights")
	unnamed := dataset.NewObsDefinition("")

	tcs := map[string]struct {
		r       Renderer
		def     dataset.Definition
		want    string
		wantErr error
	}{
		"inline":         {r: NewHTML(""), def: unnamed, want: "Web"},
		"csv":            {r: NewCSV(), def: named, want: "CSV"},
		"xlsx":           {r: NewExcel(), def: named, want: "XLSX"},
		"unnamed file":   {r: NewCSV(), def: unnamed, wantErr: ErrNoFilename},
		"nil definition": {r: NewTSV(), def: nil, wantErr: ErrNoFilename},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			got, err := DisplayCode(tc.r, tc.def, "")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFilename_StripsPathSyntax(t *testing.T) {
	tcs := map[string]struct {
		name string
		want string
	}{
		"plain":          {name: "weights", want: "weights.csv"},
		"spaces kept":    {name: "weekly weights", want: "weekly weights.csv"},
		"parent segment": {name: "../other/weights", want: "__other_weights.csv"},
		"backslashes":    {name: `..\other\weights`, want: "__other_weights.csv"},
		"absolute":       {name: "/etc/passwd", want: "_etc_passwd.csv"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			got, err := NewCSV().Filename(dataset.NewObsDefinition(tc.name), "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
