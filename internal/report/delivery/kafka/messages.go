package kafka

import (
	"encoding/json"
	"time"
)

// SubmitRequestMessage is a report request submitted by another service.
type SubmitRequestMessage struct {
	Definition json.RawMessage `json:"definition"`
	Renderer   string          `json:"renderer"`
	Argument   string          `json:"argument,omitempty"`
	Labels     []string        `json:"labels,omitempty"`
	BaseCohort []int           `json:"base_cohort,omitempty"`
	Parameters map[string]any  `json:"parameters,omitempty"`
}

// LifecycleMessage is published on every report request state change.
type LifecycleMessage struct {
	Type           string    `json:"type"`
	RequestID      string    `json:"request_id"`
	Status         string    `json:"status"`
	Renderer       string    `json:"renderer,omitempty"`
	FailureKind    string    `json:"failure_kind,omitempty"`
	FailureMessage string    `json:"failure_message,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
