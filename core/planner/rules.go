package planner

import (
	"fmt"
	"time"

	"github.com/kochimetro/induction/core/model"
)

// evalContext carries the per-run facts the eligibility rules evaluate
// against.
type evalContext struct {
	date     time.Time
	openJobs map[string]model.JobCard
}

// rule pairs an exclusion tag with its predicate. Rules are evaluated in
// order and the first match wins, so safety checks stay an auditable decision
// list. New rules are added by appending to exclusionRules.
type rule struct {
	status model.EligibilityStatus
	reason func(model.Train, evalContext) string
	match  func(model.Train, evalContext) bool
}

// exclusionRules is the fixed safety decision list: fitness before job cards.
// Cleaning capacity is applied afterwards by the Allocator because it depends
// on the whole eligible pool, not a single train.
var exclusionRules = []rule{
	{
		status: model.ExcludedExpiredFitness,
		match: func(t model.Train, ctx evalContext) bool {
			return !t.FitnessValidOn(ctx.date)
		},
		reason: func(model.Train, evalContext) string { return "expired fitness" },
	},
	{
		status: model.ExcludedOpenJobCard,
		match: func(t model.Train, ctx evalContext) bool {
			_, open := ctx.openJobs[t.ID]
			return open
		},
		reason: func(t model.Train, ctx evalContext) string {
			card := ctx.openJobs[t.ID]
			if card.Severity == "" {
				return "open job-card"
			}
			return fmt.Sprintf("open job-card (%s)", card.Severity)
		},
	},
}

// Evaluation is the per-train outcome of the rule pass.
type Evaluation struct {
	Status model.EligibilityStatus
	Reason string
}

// Evaluate tags every train with its provisional eligibility for the given
// planning date. A train with no job cards at all simply has zero open cards.
// Cleaning capacity is not considered here; see Allocator.
func Evaluate(trains []model.Train, cards []model.JobCard, date time.Time) map[string]Evaluation {
	ctx := evalContext{date: date, openJobs: model.OpenJobCards(cards)}
	out := make(map[string]Evaluation, len(trains))
	for _, t := range trains {
		out[t.ID] = evaluate(t, ctx)
	}
	return out
}

func evaluate(t model.Train, ctx evalContext) Evaluation {
	for _, r := range exclusionRules {
		if r.match(t, ctx) {
			return Evaluation{Status: r.status, Reason: r.reason(t, ctx)}
		}
	}
	return Evaluation{Status: model.Eligible, Reason: "ok"}
}
