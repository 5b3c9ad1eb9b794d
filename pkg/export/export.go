// Package export serializes induction plans for download and archival.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kochimetro/induction/core/planner"
)

// WriteJSON writes the plan to w in JSON format.
func WriteJSON(w io.Writer, plan *planner.InductionPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// WriteCSV writes the plan assignments to w as a tabular file.
func WriteCSV(w io.Writer, plan *planner.InductionPlan) error {
	cw := csv.NewWriter(w)
	header := []string{
		"train_id", "role", "status", "reason", "score", "rank",
		"branding_priority", "mileage_last_week", "bay_position", "cleaning_granted",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, a := range plan.Assignments {
		rec := []string{
			a.TrainID,
			a.Role.String(),
			a.Status.String(),
			a.Reason,
			strconv.FormatFloat(a.Score, 'f', 2, 64),
			strconv.Itoa(a.Rank),
			strconv.Itoa(a.BrandingPriority),
			strconv.FormatFloat(a.Mileage, 'f', -1, 64),
			strconv.Itoa(a.BayPosition),
			strconv.FormatBool(a.CleaningGranted),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
