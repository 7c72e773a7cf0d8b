package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"reporting-srv/internal/dataset"
	"reporting-srv/internal/dataset/repository"
)

func (r *implRepository) ListObs(ctx context.Context, opts repository.ListObsOptions) ([]dataset.Obs, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []dataset.Obs
	for _, o := range r.obs {
		if opts.PatientIDs != nil && !slices.Contains(opts.PatientIDs, o.PatientID) {
			continue
		}
		if !matches(o, opts.ConceptIDs, opts.FromDate, opts.ToDate) {
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PatientID != b.PatientID {
			return a.PatientID < b.PatientID
		}
		if !a.ObsDatetime.Equal(b.ObsDatetime) {
			return a.ObsDatetime.Before(b.ObsDatetime)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *implRepository) ListPatientIDs(ctx context.Context, opts repository.ListPatientIDsOptions) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[int]struct{}{}
	for _, o := range r.obs {
		if matches(o, opts.ConceptIDs, opts.FromDate, opts.ToDate) {
			seen[o.PatientID] = struct{}{}
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func matches(o dataset.Obs, conceptIDs []int, from, to *time.Time) bool {
	if conceptIDs != nil && !slices.Contains(conceptIDs, o.Concept.ID) {
		return false
	}
	if from != nil && o.ObsDatetime.Before(*from) {
		return false
	}
	if to != nil && o.ObsDatetime.After(*to) {
		return false
	}
	return true
}
