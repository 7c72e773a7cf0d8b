package postgre

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"reporting-srv/internal/dataset/repository"
)

const obsColumns = `o.obs_id, o.person_id, o.concept_id, o.concept_name, o.encounter_id, o.obs_group_id,
	o.obs_datetime, o.value_kind, o.value_coded, o.value_coded_name, o.value_numeric, o.value_text, o.value_datetime`

type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) dateRange(from, to *time.Time) {
	if from != nil {
		w.add("o.obs_datetime >= $%d", *from)
	}
	if to != nil {
		w.add("o.obs_datetime <= $%d", *to)
	}
}

func (w *whereBuilder) sql() string {
	return " WHERE " + strings.Join(append([]string{"o.voided = false"}, w.conds...), " AND ")
}

func (r *implRepository) buildListObsQuery(opts repository.ListObsOptions) (string, []any) {
	var w whereBuilder
	if opts.PatientIDs != nil {
		w.add("o.person_id = ANY($%d)", pq.Array(opts.PatientIDs))
	}
	if opts.ConceptIDs != nil {
		w.add("o.concept_id = ANY($%d)", pq.Array(opts.ConceptIDs))
	}
	w.dateRange(opts.FromDate, opts.ToDate)

	query := "SELECT " + obsColumns + " FROM obs o" + w.sql() +
		" ORDER BY o.person_id, o.obs_datetime, o.obs_id"
	return query, w.args
}

func (r *implRepository) buildListPatientIDsQuery(opts repository.ListPatientIDsOptions) (string, []any) {
	var w whereBuilder
	if opts.ConceptIDs != nil {
		w.add("o.concept_id = ANY($%d)", pq.Array(opts.ConceptIDs))
	}
	w.dateRange(opts.FromDate, opts.ToDate)

	return "SELECT DISTINCT o.person_id FROM obs o" + w.sql() + " ORDER BY o.person_id", w.args
}
