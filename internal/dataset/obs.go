package dataset

import "time"

// ValueKind says which value field of an observation is populated.
type ValueKind string

const (
	ValueKindCoded    ValueKind = "coded"
	ValueKindNumeric  ValueKind = "numeric"
	ValueKindText     ValueKind = "text"
	ValueKindDatetime ValueKind = "datetime"
)

// Obs is one recorded observation as read from the observation source.
type Obs struct {
	ID            int        `json:"id" yaml:"id"`
	PatientID     int        `json:"patient_id" yaml:"patient_id"`
	Concept       Concept    `json:"concept" yaml:"concept"`
	EncounterID   int        `json:"encounter_id" yaml:"encounter_id"`
	ObsGroupID    *int       `json:"obs_group_id,omitempty" yaml:"obs_group_id,omitempty"`
	ObsDatetime   time.Time  `json:"obs_datetime" yaml:"obs_datetime"`
	ValueKind     ValueKind  `json:"value_kind" yaml:"value_kind"`
	ValueCoded    *Concept   `json:"value_coded,omitempty" yaml:"value_coded,omitempty"`
	ValueNumeric  *float64   `json:"value_numeric,omitempty" yaml:"value_numeric,omitempty"`
	ValueText     *string    `json:"value_text,omitempty" yaml:"value_text,omitempty"`
	ValueDatetime *time.Time `json:"value_datetime,omitempty" yaml:"value_datetime,omitempty"`
}
