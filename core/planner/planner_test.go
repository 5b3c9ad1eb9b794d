package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/kochimetro/induction/core/model"
)

func testConfig(service, standby int) Config {
	return Config{
		ServiceTarget: service,
		StandbyTarget: standby,
		PlanningDate:  "2025-09-16",
	}
}

// Fleet of five: A expired fitness, B open job card, C needs cleaning with
// lowest mileage, D carries the highest branding priority, E plain eligible.
func scenarioFleet() ([]model.Train, []model.JobCard) {
	expiry := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	trains := []model.Train{
		{ID: "TS-A", FitnessExpiry: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), Mileage: 500},
		{ID: "TS-B", FitnessExpiry: expiry, Mileage: 700},
		{ID: "TS-C", FitnessExpiry: expiry, Mileage: 300, NeedsCleaning: true},
		{ID: "TS-D", FitnessExpiry: expiry, Mileage: 800, BrandingRequired: true, BrandingPriority: 5},
		{ID: "TS-E", FitnessExpiry: expiry, Mileage: 600},
	}
	cards := []model.JobCard{{ID: "JC-B", TrainID: "TS-B", Status: model.JobOpen, Severity: "medium"}}
	return trains, cards
}

func TestPlanScenario(t *testing.T) {
	p := New(nil, nil)
	trains, cards := scenarioFleet()
	plan, warnings, err := p.Plan(trains, cards, 2, testConfig(2, 2))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if role, _ := plan.RoleOf("TS-A"); role != model.RoleMaintenance {
		t.Fatalf("expired fitness must fall to Maintenance, got %v", role)
	}
	if role, _ := plan.RoleOf("TS-B"); role != model.RoleMaintenance {
		t.Fatalf("open job card must fall to Maintenance, got %v", role)
	}
	// D outranks everything on branding; C beats E on mileage for the second
	// Service slot; E lands on Standby.
	if role, _ := plan.RoleOf("TS-D"); role != model.RoleService {
		t.Fatalf("highest branding must be Service, got %v", role)
	}
	if role, _ := plan.RoleOf("TS-C"); role != model.RoleService {
		t.Fatalf("lowest mileage eligible must take the second Service slot, got %v", role)
	}
	if role, _ := plan.RoleOf("TS-E"); role != model.RoleStandby {
		t.Fatalf("remaining eligible must be Standby, got %v", role)
	}

	for _, a := range plan.Assignments {
		if a.TrainID == "TS-C" && !a.CleaningGranted {
			t.Fatalf("TS-C cleaning must be granted with capacity 2")
		}
	}
	if plan.Summary.Service != 2 || plan.Summary.Standby != 1 || plan.Summary.Maintenance != 2 {
		t.Fatalf("unexpected summary %+v", plan.Summary)
	}
}

func TestPlanNeverAssignsExcludedTrainsToService(t *testing.T) {
	p := New(nil, nil)
	trains, cards := scenarioFleet()
	plan, _, err := p.Plan(trains, cards, 0, testConfig(5, 5))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, a := range plan.Assignments {
		if a.Status != model.Eligible && a.Role != model.RoleMaintenance {
			t.Fatalf("%s excluded (%v) but assigned %v", a.TrainID, a.Status, a.Role)
		}
	}
	// Capacity 0: the needs-cleaning train is squeezed out entirely.
	for _, a := range plan.Assignments {
		if a.TrainID == "TS-C" && a.Status != model.ExcludedNoCleaningCapacity {
			t.Fatalf("TS-C must be ExcludedNoCleaningCapacity, got %v", a.Status)
		}
	}
}

func TestPlanTargetsNeverExceeded(t *testing.T) {
	p := New(nil, nil)
	trains, cards := scenarioFleet()
	for _, tc := range []struct{ s, b int }{{0, 0}, {1, 1}, {2, 2}, {10, 10}} {
		plan, _, err := p.Plan(trains, cards, 5, testConfig(tc.s, tc.b))
		if err != nil {
			t.Fatalf("plan (%d,%d): %v", tc.s, tc.b, err)
		}
		if plan.Summary.Service > tc.s || plan.Summary.Standby > tc.b {
			t.Fatalf("targets (%d,%d) exceeded: %+v", tc.s, tc.b, plan.Summary)
		}
	}
}

func TestPlanZeroTargets(t *testing.T) {
	p := New(nil, nil)
	trains, cards := scenarioFleet()
	plan, _, err := p.Plan(trains, cards, 5, testConfig(0, 0))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, a := range plan.Assignments {
		if a.Role != model.RoleMaintenance {
			t.Fatalf("%s: expected Maintenance with zero targets, got %v", a.TrainID, a.Role)
		}
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	p := New(nil, nil)
	in := Input{
		Trains: []Row{
			{"train_id": "TS01", "fitness_valid_until": "2025-09-20", "mileage_last_week": "400", "branding_priority": "2"},
			{"train_id": "TS02", "fitness_valid_until": "2025-09-20", "mileage_last_week": "300", "needs_cleaning": "true"},
			{"train_id": "TS03", "fitness_valid_until": "2025-09-01"},
		},
		JobCards:      []Row{{"train_id": "TS01", "status": "closed"}},
		CleaningSlots: []Row{{"slot_id": "CS1", "available": "true"}},
	}
	cfg := testConfig(1, 1)

	first, warn1, err := p.Recompute(in, cfg)
	if err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	second, warn2, err := p.Recompute(in, cfg)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("each run must produce a fresh plan artifact")
	}
	if len(first.Assignments) != len(second.Assignments) {
		t.Fatalf("assignment counts differ")
	}
	for i := range first.Assignments {
		a, b := first.Assignments[i], second.Assignments[i]
		if a.TrainID != b.TrainID || a.Role != b.Role || a.Status != b.Status || a.Rank != b.Rank {
			t.Fatalf("run differs at %d: %+v vs %+v", i, a, b)
		}
	}
	if len(warn1) != len(warn2) {
		t.Fatalf("warning counts differ: %d vs %d", len(warn1), len(warn2))
	}
}

func TestRecomputeWhatIfEdit(t *testing.T) {
	p := New(nil, nil)
	base := Input{
		Trains: []Row{
			{"train_id": "TS01", "fitness_valid_until": "2025-09-20", "mileage_last_week": "400"},
			{"train_id": "TS02", "fitness_valid_until": "2025-09-20", "mileage_last_week": "300"},
		},
	}
	cfg := testConfig(1, 0)
	plan, _, err := p.Recompute(base, cfg)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if role, _ := plan.RoleOf("TS02"); role != model.RoleService {
		t.Fatalf("lower mileage must take Service, got %v", role)
	}

	// The caller edits its copy and re-runs: TS02 loses its fitness.
	edited := Input{
		Trains: []Row{
			base.Trains[0],
			{"train_id": "TS02", "fitness_valid_until": "2025-09-01", "mileage_last_week": "300"},
		},
	}
	replan, _, err := p.Recompute(edited, cfg)
	if err != nil {
		t.Fatalf("recompute after edit: %v", err)
	}
	if role, _ := replan.RoleOf("TS01"); role != model.RoleService {
		t.Fatalf("edit must reshuffle Service to TS01, got %v", role)
	}
	// The first plan is untouched by the re-run.
	if role, _ := plan.RoleOf("TS02"); role != model.RoleService {
		t.Fatalf("earlier plan mutated by recompute")
	}
}

func TestRecomputeConfigErrorReturnsNoPlan(t *testing.T) {
	p := New(nil, nil)
	for _, cfg := range []Config{
		{ServiceTarget: -1},
		{StandbyTarget: -2},
		{PlanningDate: "16/09/2025"},
		{CleaningRankBy: "branding_descending"},
	} {
		plan, warnings, err := p.Recompute(Input{}, cfg)
		var cerr ConfigError
		if !errors.As(err, &cerr) {
			t.Fatalf("cfg %+v: expected ConfigError, got %v", cfg, err)
		}
		if plan != nil || warnings != nil {
			t.Fatalf("cfg %+v: no partial plan on fatal error", cfg)
		}
	}
}

func TestPlanDuplicateTypedIDs(t *testing.T) {
	p := New(nil, nil)
	expiry := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	trains := []model.Train{
		{ID: "TS01", FitnessExpiry: expiry},
		{ID: "TS01", FitnessExpiry: expiry},
	}
	plan, warnings, err := p.Plan(trains, nil, 0, testConfig(1, 0))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Assignments) != 1 {
		t.Fatalf("duplicate id must be dropped, got %d assignments", len(plan.Assignments))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected duplicate warning, got %v", warnings)
	}
}
