package planner

import (
	"time"

	"github.com/kochimetro/induction/core/model"
)

// Assignment is the per-train outcome of a plan run: the role, the
// eligibility tag justifying it and the reported score.
type Assignment struct {
	TrainID          string                  `json:"train_id"`
	Role             model.Role              `json:"role"`
	Status           model.EligibilityStatus `json:"status"`
	Reason           string                  `json:"reason"`
	Score            float64                 `json:"score"`
	Rank             int                     `json:"rank"` // 1-based position among eligible trains, 0 when excluded
	BrandingPriority int                     `json:"branding_priority"`
	Mileage          float64                 `json:"mileage_last_week"`
	BayPosition      int                     `json:"bay_position,omitempty"`
	CleaningGranted  bool                    `json:"cleaning_granted"`
}

// Summary counts assignments per role.
type Summary struct {
	Service     int `json:"service"`
	Standby     int `json:"standby"`
	Maintenance int `json:"maintenance"`
}

// InductionPlan is the immutable artifact of one recompute run. A new plan is
// produced on every run; callers own the returned value.
type InductionPlan struct {
	ID           string       `json:"id"`
	GeneratedAt  time.Time    `json:"generated_at"`
	PlanningDate time.Time    `json:"planning_date"`
	Config       Config       `json:"config"`
	Assignments  []Assignment `json:"assignments"`
	Summary      Summary      `json:"summary"`
}

// RoleOf returns the role assigned to the given train id.
func (p *InductionPlan) RoleOf(id string) (model.Role, bool) {
	for _, a := range p.Assignments {
		if a.TrainID == id {
			return a.Role, true
		}
	}
	return 0, false
}

func summarize(assignments []Assignment) Summary {
	var s Summary
	for _, a := range assignments {
		switch a.Role {
		case model.RoleService:
			s.Service++
		case model.RoleStandby:
			s.Standby++
		default:
			s.Maintenance++
		}
	}
	return s
}
