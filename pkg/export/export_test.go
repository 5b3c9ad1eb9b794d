package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/kochimetro/induction/core/model"
	"github.com/kochimetro/induction/core/planner"
)

func samplePlan() *planner.InductionPlan {
	return &planner.InductionPlan{
		ID: "p1",
		Assignments: []planner.Assignment{
			{TrainID: "TS01", Role: model.RoleService, Status: model.Eligible, Reason: "ok", Score: 1900.5, Rank: 1, Mileage: 400},
			{TrainID: "TS02", Role: model.RoleMaintenance, Status: model.ExcludedExpiredFitness, Reason: "expired fitness"},
		},
		Summary: planner.Summary{Service: 1, Maintenance: 1},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, samplePlan()); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "train_id" || records[0][1] != "role" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Service" || records[2][2] != "ExcludedExpiredFitness" {
		t.Fatalf("unexpected rows: %v", records[1:])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, samplePlan()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out planner.InductionPlan
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != "p1" || len(out.Assignments) != 2 {
		t.Fatalf("unexpected plan: %+v", out)
	}
	if out.Assignments[0].Role != model.RoleService {
		t.Fatalf("role did not round-trip: %v", out.Assignments[0].Role)
	}
}
