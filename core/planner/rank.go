package planner

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kochimetro/induction/core/model"
)

// rankLess is the composite ordering key for the eligible pool: branding
// priority descending, mileage ascending, train id ascending. The id tie-break
// makes the order a strict total order, so ranking never depends on the
// insertion order of the input.
func rankLess(a, b model.Train) bool {
	if a.BrandingPriority != b.BrandingPriority {
		return a.BrandingPriority > b.BrandingPriority
	}
	if a.Mileage != b.Mileage {
		return a.Mileage < b.Mileage
	}
	return a.ID < b.ID
}

// Rank returns a new slice with the trains in assignment order. The input is
// left untouched.
func Rank(trains []model.Train) []model.Train {
	ranked := make([]model.Train, len(trains))
	copy(ranked, trains)
	sort.Slice(ranked, func(i, j int) bool { return rankLess(ranked[i], ranked[j]) })
	return ranked
}

const (
	brandingScoreWeight = 1000
	mileageScoreWeight  = 100
)

// Scores computes the reported heuristic score for every train:
// branding*1000 minus the fleet mileage z-score*100. The score is carried on
// the plan for presentation; role assignment uses the strict composite order.
func Scores(fleet []model.Train) map[string]float64 {
	scores := make(map[string]float64, len(fleet))
	if len(fleet) == 0 {
		return scores
	}
	mileages := make([]float64, len(fleet))
	for i, t := range fleet {
		mileages[i] = t.Mileage
	}
	mean, std := stat.MeanStdDev(mileages, nil)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}
	for _, t := range fleet {
		norm := (t.Mileage - mean) / std
		scores[t.ID] = float64(t.BrandingPriority)*brandingScoreWeight - norm*mileageScoreWeight
	}
	return scores
}
