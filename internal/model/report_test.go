package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReportStatus_IsTerminal(t *testing.T) {
	assert.False(t, ReportStatusRequested.IsTerminal())
	assert.False(t, ReportStatusProcessing.IsTerminal())
	assert.True(t, ReportStatusCompleted.IsTerminal())
	assert.True(t, ReportStatusFailed.IsTerminal())
	assert.True(t, ReportStatusCancelled.IsTerminal())
	assert.False(t, ReportStatus("DONE").IsValid())
}

func TestReportRequest_CloneIsIndependent(t *testing.T) {
	now := time.Now()
	r := &ReportRequest{
		ID:                uuid.New(),
		BaseCohort:        []int{1, 2},
		Labels:            []string{"a"},
		Parameters:        map[string]any{"k": 1},
		Failure:           &Failure{Kind: FailureKindEvaluation, Message: "boom"},
		EvaluateStartedAt: &now,
	}

	c := r.Clone()
	c.BaseCohort[0] = 99
	c.Labels[0] = "z"
	c.Parameters["k"] = 2
	c.Failure.Message = "changed"
	*c.EvaluateStartedAt = now.Add(time.Hour)

	assert.Equal(t, 1, r.BaseCohort[0])
	assert.Equal(t, "a", r.Labels[0])
	assert.Equal(t, 1, r.Parameters["k"])
	assert.Equal(t, "boom", r.Failure.Message)
	assert.Equal(t, now, *r.EvaluateStartedAt)
}

func TestNormalizeLabels(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeLabels([]string{" b", "a", "", "b", "a "}))
	assert.Equal(t, []string{}, NormalizeLabels(nil))
}
