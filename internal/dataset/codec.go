package dataset

import (
	"encoding/json"
	"fmt"
	"time"
)

type definitionPayload struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Questions   []Concept       `json:"questions,omitempty"`
	Filter      json.RawMessage `json:"filter,omitempty"`
	FromDate    *time.Time      `json:"from_date,omitempty"`
	ToDate      *time.Time      `json:"to_date,omitempty"`
}

type cohortPayload struct {
	Type       string            `json:"type"`
	PatientIDs []int             `json:"patient_ids,omitempty"`
	Members    []json.RawMessage `json:"members,omitempty"`
	ConceptIDs []int             `json:"concept_ids,omitempty"`
	FromDate   *time.Time        `json:"from_date,omitempty"`
	ToDate     *time.Time        `json:"to_date,omitempty"`
}

// MarshalDefinition encodes def with a type tag so it can be stored and decoded later.
func MarshalDefinition(def Definition) ([]byte, error) {
	switch d := def.(type) {
	case *ObsDefinition:
		p := definitionPayload{
			Type:        DefinitionTypeObs,
			Name:        d.Name(),
			Description: d.Description(),
			Questions:   d.Questions().Concepts(),
			FromDate:    d.FromDate(),
			ToDate:      d.ToDate(),
		}
		if d.Filter() != nil {
			f, err := MarshalCohortDefinition(d.Filter())
			if err != nil {
				return nil, err
			}
			p.Filter = f
		}
		return json.Marshal(p)
	case nil:
		return nil, fmt.Errorf("%w: nil definition", ErrInvalidDefinitionPayload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDefinition, def.DefinitionType())
	}
}

// UnmarshalDefinition decodes a payload produced by MarshalDefinition.
func UnmarshalDefinition(b []byte) (Definition, error) {
	var p definitionPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinitionPayload, err)
	}

	switch p.Type {
	case DefinitionTypeObs:
		d := NewObsDefinition(p.Name)
		d.SetDescription(p.Description)
		d.SetQuestions(NewConceptSet(p.Questions...))
		d.SetFromDate(p.FromDate)
		d.SetToDate(p.ToDate)
		if len(p.Filter) > 0 && string(p.Filter) != "null" {
			f, err := UnmarshalCohortDefinition(p.Filter)
			if err != nil {
				return nil, err
			}
			d.SetFilter(f)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDefinition, p.Type)
	}
}

// MarshalCohortDefinition encodes a cohort definition tree.
func MarshalCohortDefinition(def CohortDefinition) ([]byte, error) {
	p, err := toCohortPayload(def)
	if err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

func toCohortPayload(def CohortDefinition) (cohortPayload, error) {
	switch d := def.(type) {
	case StaticCohortDefinition:
		return cohortPayload{Type: CohortTypeStatic, PatientIDs: d.PatientIDs}, nil
	case HasObsCohortDefinition:
		return cohortPayload{Type: CohortTypeHasObs, ConceptIDs: d.ConceptIDs, FromDate: d.FromDate, ToDate: d.ToDate}, nil
	case IntersectionCohortDefinition:
		members, err := marshalMembers(d.Members)
		return cohortPayload{Type: CohortTypeIntersection, Members: members}, err
	case UnionCohortDefinition:
		members, err := marshalMembers(d.Members)
		return cohortPayload{Type: CohortTypeUnion, Members: members}, err
	default:
		return cohortPayload{}, fmt.Errorf("%w: %T", ErrUnsupportedCohort, def)
	}
}

func marshalMembers(members []CohortDefinition) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(members))
	for _, m := range members {
		b, err := MarshalCohortDefinition(m)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// UnmarshalCohortDefinition decodes a payload produced by MarshalCohortDefinition.
func UnmarshalCohortDefinition(b []byte) (CohortDefinition, error) {
	var p cohortPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinitionPayload, err)
	}

	switch p.Type {
	case CohortTypeStatic:
		return StaticCohortDefinition{PatientIDs: p.PatientIDs}, nil
	case CohortTypeHasObs:
		return HasObsCohortDefinition{ConceptIDs: p.ConceptIDs, FromDate: p.FromDate, ToDate: p.ToDate}, nil
	case CohortTypeIntersection, CohortTypeUnion:
		members := make([]CohortDefinition, 0, len(p.Members))
		for _, raw := range p.Members {
			m, err := UnmarshalCohortDefinition(raw)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		if p.Type == CohortTypeIntersection {
			return IntersectionCohortDefinition{Members: members}, nil
		}
		return UnionCohortDefinition{Members: members}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCohort, p.Type)
	}
}
