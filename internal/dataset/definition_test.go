package dataset

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObsDefinition_QuestionsNeverNil(t *testing.T) {
	d := NewObsDefinition("weights")

	q := d.Questions()
	require.NotNil(t, q)
	assert.Equal(t, 0, q.Len())

	q.Add(Concept{ID: 5089, Name: "WEIGHT (KG)"})
	assert.True(t, d.Questions().Contains(5089))

	d.SetQuestions(nil)
	assert.NotNil(t, d.Questions())
}

func TestObsDefinition_Columns(t *testing.T) {
	d := NewObsDefinition("weights")

	cols := d.Columns()
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{
		ColumnPatientID, ColumnQuestion, ColumnQuestionConceptID, ColumnAnswer,
		ColumnAnswerConceptID, ColumnObsDatetime, ColumnEncounterID, ColumnObsGroupID,
	}, names)
	assert.Equal(t, ValueTypeObject, cols[3].Type())
	assert.Equal(t, ValueTypeDateTime, cols[5].Type())

	cols[0] = NewColumn("mutated", ValueTypeString)
	assert.Equal(t, ColumnPatientID, d.Columns()[0].Name())
}

func TestObsDefinition_Validate(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tcs := map[string]struct {
		from, to *time.Time
		wantErr  bool
	}{
		"unbounded": {},
		"only from": {from: &feb},
		"ordered":   {from: &jan, to: &feb},
		"same day":  {from: &jan, to: &jan},
		"inverted":  {from: &feb, to: &jan, wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			d := NewObsDefinition("d")
			d.SetFromDate(tc.from)
			d.SetToDate(tc.to)

			err := d.Validate()
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDefinition))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCohort_SetOperations(t *testing.T) {
	a := NewCohort(1, 2, 3, 3)
	b := NewCohort(2, 3, 4)

	assert.Equal(t, 3, a.Size())
	assert.Equal(t, []int{2, 3}, a.Intersect(b).IDs())
	assert.Equal(t, []int{1, 2, 3, 4}, a.Union(b).IDs())
	assert.Equal(t, 0, a.Intersect(NewCohort()).Size())
}

func TestEvaluationContext_Immutable(t *testing.T) {
	base := NewCohort(1, 2)
	params := map[string]any{"location": "ward-a"}

	ec := NewEvaluationContext(&base, params)
	params["location"] = "ward-b"

	v, ok := ec.Parameter("location")
	require.True(t, ok)
	assert.Equal(t, "ward-a", v)

	got := ec.Parameters()
	got["location"] = "ward-c"
	v, _ = ec.Parameter("location")
	assert.Equal(t, "ward-a", v)

	c, ok := ec.BaseCohort()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, c.IDs())

	_, ok = NewEvaluationContext(nil, nil).BaseCohort()
	assert.False(t, ok)
}
