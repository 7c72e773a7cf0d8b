package postgre

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"reporting-srv/internal/model"
	"reporting-srv/internal/report/repository"
)

const requestColumns = `id, seq, definition, base_cohort, parameters, renderer, argument, labels, status, archived,
	failure_kind, failure_message, requested_at, evaluate_started_at, evaluate_completed_at`

const (
	insertRequestQuery = `INSERT INTO report_requests
	(id, definition, base_cohort, parameters, renderer, argument, labels, status, archived, requested_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, $9) RETURNING seq`
	selectRequestByIDQuery   = "SELECT " + requestColumns + " FROM report_requests WHERE id = $1"
	selectNextRequestedQuery = "SELECT " + requestColumns + " FROM report_requests WHERE status = $1 ORDER BY seq LIMIT 1"
	countByStatusQuery       = "SELECT COUNT(*) FROM report_requests WHERE status = $1"
	existsRequestQuery       = "SELECT EXISTS(SELECT 1 FROM report_requests WHERE id = $1)"
	updateLabelsQuery        = "UPDATE report_requests SET labels = $2 WHERE id = $1"
	setArchivedQuery         = "UPDATE report_requests SET archived = true WHERE id = $1"
	deleteRequestQuery       = "DELETE FROM report_requests WHERE id = $1"
)

// buildListQuery - Select requests by status set and archive flag, oldest first.
func (r *implRepository) buildListQuery(statuses []model.ReportStatus, archived *bool) (string, []any) {
	var conds []string
	var args []any
	if statuses != nil {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		args = append(args, pq.Array(names))
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if archived != nil {
		args = append(args, *archived)
		conds = append(conds, fmt.Sprintf("archived = $%d", len(args)))
	}

	query := "SELECT " + requestColumns + " FROM report_requests"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY seq", args
}

// buildTransitionQuery - Compare-and-swap status update. Timestamps follow the state entered.
func (r *implRepository) buildTransitionQuery(opts repository.TransitionOptions) (string, []any) {
	args := []any{opts.ID, string(opts.From), string(opts.To)}
	sets := []string{"status = $3"}

	if opts.To == model.ReportStatusProcessing {
		args = append(args, opts.At)
		sets = append(sets, fmt.Sprintf("evaluate_started_at = $%d", len(args)))
	}
	if opts.From == model.ReportStatusProcessing && opts.To.IsTerminal() {
		args = append(args, opts.At)
		sets = append(sets, fmt.Sprintf("evaluate_completed_at = $%d", len(args)))
	}
	if opts.Failure != nil {
		args = append(args, string(opts.Failure.Kind))
		sets = append(sets, fmt.Sprintf("failure_kind = $%d", len(args)))
		args = append(args, opts.Failure.Message)
		sets = append(sets, fmt.Sprintf("failure_message = $%d", len(args)))
	}

	return "UPDATE report_requests SET " + strings.Join(sets, ", ") + " WHERE id = $1 AND status = $2", args
}
