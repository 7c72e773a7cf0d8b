package render

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"reporting-srv/internal/dataset"
)

const valueTimeFormat = "2006-01-02 15:04:05"

// filenameReplacer strips path syntax out of definition names.
var filenameReplacer = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

// DisplayCode is the short code shown in listings: "Web" for inline renderers,
// otherwise the upper-cased extension of the derived filename.
func DisplayCode(r Renderer, def dataset.Definition, argument string) (string, error) {
	if _, ok := AsInline(r); ok {
		return WebDisplayCode, nil
	}
	fr, ok := AsFile(r)
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrInvalidRenderer, r)
	}

	name, err := fr.Filename(def, argument)
	if err != nil {
		return "", err
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrNoFilename, name)
	}
	return strings.ToUpper(ext), nil
}

func filenameFor(def dataset.Definition, ext string) (string, error) {
	if def == nil {
		return "", fmt.Errorf("%w: no definition", ErrNoFilename)
	}
	name := filenameReplacer.Replace(strings.TrimSpace(def.Name()))
	if name == "" {
		return "", fmt.Errorf("%w: definition has no name", ErrNoFilename)
	}
	return name + "." + ext, nil
}

func columnNames(ds *dataset.DataSet) []string {
	names := make([]string, 0, len(ds.Columns))
	for _, c := range ds.Columns {
		names = append(names, c.Name())
	}
	return names
}

// formatValue renders a cell for text formats.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(valueTimeFormat)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format(valueTimeFormat)
	default:
		return fmt.Sprint(x)
	}
}
