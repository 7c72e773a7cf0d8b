package postgre

import (
	"database/sql"
	"time"

	"reporting-srv/internal/dataset"
)

type obsRow struct {
	id             int
	personID       int
	conceptID      int
	conceptName    string
	encounterID    int
	obsGroupID     sql.NullInt64
	obsDatetime    time.Time
	valueKind      string
	valueCoded     sql.NullInt64
	valueCodedName sql.NullString
	valueNumeric   sql.NullFloat64
	valueText      sql.NullString
	valueDatetime  sql.NullTime
}

func (r *obsRow) dest() []any {
	return []any{
		&r.id, &r.personID, &r.conceptID, &r.conceptName, &r.encounterID, &r.obsGroupID,
		&r.obsDatetime, &r.valueKind, &r.valueCoded, &r.valueCodedName, &r.valueNumeric, &r.valueText, &r.valueDatetime,
	}
}

func (r *obsRow) toObs() dataset.Obs {
	o := dataset.Obs{
		ID:          r.id,
		PatientID:   r.personID,
		Concept:     dataset.Concept{ID: r.conceptID, Name: r.conceptName},
		EncounterID: r.encounterID,
		ObsDatetime: r.obsDatetime,
		ValueKind:   dataset.ValueKind(r.valueKind),
	}
	if r.obsGroupID.Valid {
		g := int(r.obsGroupID.Int64)
		o.ObsGroupID = &g
	}
	if r.valueCoded.Valid {
		o.ValueCoded = &dataset.Concept{ID: int(r.valueCoded.Int64), Name: r.valueCodedName.String}
	}
	if r.valueNumeric.Valid {
		v := r.valueNumeric.Float64
		o.ValueNumeric = &v
	}
	if r.valueText.Valid {
		v := r.valueText.String
		o.ValueText = &v
	}
	if r.valueDatetime.Valid {
		v := r.valueDatetime.Time
		o.ValueDatetime = &v
	}
	return o
}
