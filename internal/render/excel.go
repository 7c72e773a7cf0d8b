package render

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"reporting-srv/internal/dataset"
)

const (
	excelSheetName   = "Data"
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type excel struct{}

// NewExcel renders an .xlsx workbook with a bold header row.
func NewExcel() FileRenderer {
	return &excel{}
}

func (r *excel) Name() string  { return "xlsx" }
func (r *excel) Label() string { return "Excel" }
func (r *excel) Kind() Kind    { return KindFile }

func (r *excel) Filename(def dataset.Definition, _ string) (string, error) {
	return filenameFor(def, "xlsx")
}

func (r *excel) ContentType(_ string) string { return excelContentType }

func (r *excel) Render(w io.Writer, ds *dataset.DataSet, _ string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheetName); err != nil {
		return fmt.Errorf("%w: xlsx sheet: %v", ErrRenderingFailed, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("%w: xlsx style: %v", ErrRenderingFailed, err)
	}

	for i, name := range columnNames(ds) {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("%w: xlsx header: %v", ErrRenderingFailed, err)
		}
		if err := f.SetCellValue(excelSheetName, cell, name); err != nil {
			return fmt.Errorf("%w: xlsx header: %v", ErrRenderingFailed, err)
		}
	}
	if len(ds.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(ds.Columns), 1)
		if err := f.SetCellStyle(excelSheetName, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("%w: xlsx header style: %v", ErrRenderingFailed, err)
		}
	}

	for i, row := range ds.Rows {
		for c, col := range ds.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return fmt.Errorf("%w: xlsx cell: %v", ErrRenderingFailed, err)
			}
			if err := f.SetCellValue(excelSheetName, cell, excelValue(row.Get(col))); err != nil {
				return fmt.Errorf("%w: xlsx cell %s: %v", ErrRenderingFailed, cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: xlsx write: %v", ErrRenderingFailed, err)
	}
	return nil
}

// excelValue keeps numbers numeric and formats dates as text.
func excelValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case int, int64, float64, string:
		return x
	case time.Time:
		return x.Format(valueTimeFormat)
	default:
		return formatValue(x)
	}
}
