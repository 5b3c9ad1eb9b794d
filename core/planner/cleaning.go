package planner

import (
	"sort"

	"github.com/kochimetro/induction/core/model"
)

// Allocator grants scarce cleaning slots to eligible trains that need
// cleaning. Trains beyond capacity are excluded from the run; trains that do
// not need cleaning bypass the allocator entirely.
type Allocator struct {
	Policy CleaningPolicy
}

// Allocate orders the needs-cleaning candidates by the configured policy and
// grants slots to the first capacity trains. The remainder are marked
// ExcludedNoCleaningCapacity in eval. Returns the granted train ids in grant
// order.
func (a Allocator) Allocate(trains []model.Train, eval map[string]Evaluation, capacity int) ([]string, error) {
	if capacity < 0 {
		return nil, ConfigError{Field: "cleaning capacity", Reason: "must be non-negative"}
	}
	policy := a.Policy
	if policy == "" {
		policy = CleaningMileageAscending
	}
	if policy != CleaningMileageAscending {
		return nil, ConfigError{Field: "cleaning_rank_by", Reason: "unknown policy " + string(policy)}
	}

	var candidates []model.Train
	for _, t := range trains {
		if t.NeedsCleaning && eval[t.ID].Status == model.Eligible {
			candidates = append(candidates, t)
		}
	}
	// Lower mileage first; id breaks ties so the grant order never depends
	// on input order.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Mileage != candidates[j].Mileage {
			return candidates[i].Mileage < candidates[j].Mileage
		}
		return candidates[i].ID < candidates[j].ID
	})

	granted := make([]string, 0, min(capacity, len(candidates)))
	for i, t := range candidates {
		if i < capacity {
			granted = append(granted, t.ID)
			eval[t.ID] = Evaluation{Status: model.Eligible, Reason: "needs cleaning"}
			continue
		}
		eval[t.ID] = Evaluation{
			Status: model.ExcludedNoCleaningCapacity,
			Reason: "needs cleaning; no cleaning slot available",
		}
	}
	return granted, nil
}
