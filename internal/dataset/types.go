package dataset

import (
	"encoding/json"
	"fmt"
	"time"
)

// ValueType is the declared type of a column's values.
type ValueType string

const (
	ValueTypeInteger  ValueType = "INTEGER"
	ValueTypeString   ValueType = "STRING"
	ValueTypeObject   ValueType = "OBJECT"
	ValueTypeDateTime ValueType = "DATETIME"
)

// IsValid reports whether t is one of the known value types.
func (t ValueType) IsValid() bool {
	switch t {
	case ValueTypeInteger, ValueTypeString, ValueTypeObject, ValueTypeDateTime:
		return true
	}
	return false
}

// Column describes one output column. Columns are immutable once built.
type Column struct {
	name      string
	valueType ValueType
}

// NewColumn creates a column descriptor.
func NewColumn(name string, valueType ValueType) Column {
	return Column{name: name, valueType: valueType}
}

func (c Column) Name() string { return c.name }

func (c Column) Type() ValueType { return c.valueType }

type columnJSON struct {
	Name string    `json:"name"`
	Type ValueType `json:"type"`
}

func (c Column) MarshalJSON() ([]byte, error) {
	return json.Marshal(columnJSON{Name: c.name, Type: c.valueType})
}

func (c *Column) UnmarshalJSON(b []byte) error {
	var v columnJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if !v.Type.IsValid() {
		return fmt.Errorf("%w: unknown column type %q", ErrInvalidDefinitionPayload, v.Type)
	}
	c.name = v.Name
	c.valueType = v.Type
	return nil
}

// Row maps column names to values. Absent values are stored as nil.
type Row map[string]any

// Get returns the value of column c in the row.
func (r Row) Get(c Column) any {
	return r[c.name]
}

// DataSet is the tabular result of evaluating a definition.
type DataSet struct {
	Definition  string    `json:"definition"`
	Columns     []Column  `json:"columns"`
	Rows        []Row     `json:"rows"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// datetimeKey tags time values held in OBJECT columns. Without it a datetime answer
// would come back as a plain string.
const datetimeKey = "$datetime"

// MarshalJSON encodes the data set for storage. Time values in OBJECT columns are
// written as {"$datetime": RFC 3339} so UnmarshalJSON can restore them.
func (d DataSet) MarshalJSON() ([]byte, error) {
	type plain DataSet
	v := plain(d)
	if d.Rows != nil {
		v.Rows = make([]Row, len(d.Rows))
		for i, row := range d.Rows {
			out := make(Row, len(row))
			for k, val := range row {
				out[k] = val
			}
			for _, c := range d.Columns {
				if t, ok := row[c.name].(time.Time); ok && c.valueType == ValueTypeObject {
					out[c.name] = map[string]string{datetimeKey: t.Format(time.RFC3339Nano)}
				}
			}
			v.Rows[i] = out
		}
	}
	return json.Marshal(v)
}

// UnmarshalJSON restores typed values: JSON numbers in INTEGER columns become int,
// strings in DATETIME columns and tagged OBJECT values become time.Time.
func (d *DataSet) UnmarshalJSON(b []byte) error {
	type plain DataSet
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	for _, row := range v.Rows {
		for _, c := range v.Columns {
			switch x := row[c.name].(type) {
			case float64:
				if c.valueType == ValueTypeInteger {
					row[c.name] = int(x)
				}
			case string:
				if c.valueType == ValueTypeDateTime {
					t, err := time.Parse(time.RFC3339Nano, x)
					if err != nil {
						return fmt.Errorf("%w: column %s: %v", ErrInvalidDefinitionPayload, c.name, err)
					}
					row[c.name] = t
				}
			case map[string]any:
				s, ok := x[datetimeKey].(string)
				if !ok || len(x) != 1 || c.valueType != ValueTypeObject {
					continue
				}
				t, err := time.Parse(time.RFC3339Nano, s)
				if err != nil {
					return fmt.Errorf("%w: column %s: %v", ErrInvalidDefinitionPayload, c.name, err)
				}
				row[c.name] = t
			}
		}
	}
	*d = DataSet(v)
	return nil
}

// Len returns the number of rows.
func (d *DataSet) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// EmptyQuestionsPolicy decides what an obs definition without questions matches.
type EmptyQuestionsPolicy string

const (
	// EmptyQuestionsMatchAll treats an empty question set as "no concept restriction".
	EmptyQuestionsMatchAll EmptyQuestionsPolicy = "match_all"
	// EmptyQuestionsMatchNone makes an empty question set produce no rows.
	EmptyQuestionsMatchNone EmptyQuestionsPolicy = "match_none"
)

// IsValid reports whether p is a known policy.
func (p EmptyQuestionsPolicy) IsValid() bool {
	return p == EmptyQuestionsMatchAll || p == EmptyQuestionsMatchNone
}
