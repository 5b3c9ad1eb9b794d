package planner

import "time"

// CleaningPolicy names the ordering used to grant scarce cleaning slots.
type CleaningPolicy string

// CleaningMileageAscending grants cleaning to lower-mileage trains first.
// Higher-mileage trains already ran more and are deprioritised for cleaning.
const CleaningMileageAscending CleaningPolicy = "mileage_ascending"

// Config defines the targets and policies for one planning run.
type Config struct {
	ServiceTarget  int            `json:"service_target"`
	StandbyTarget  int            `json:"standby_target"`
	PlanningDate   string         `json:"planning_date"` // YYYY-MM-DD, empty means today
	CleaningRankBy CleaningPolicy `json:"cleaning_rank_by"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.CleaningRankBy == "" {
		c.CleaningRankBy = CleaningMileageAscending
	}
}

// Validate checks the configuration. Violations are run-fatal.
func (c Config) Validate() error {
	if c.ServiceTarget < 0 {
		return ConfigError{Field: "service_target", Reason: "must be non-negative"}
	}
	if c.StandbyTarget < 0 {
		return ConfigError{Field: "standby_target", Reason: "must be non-negative"}
	}
	if c.CleaningRankBy != "" && c.CleaningRankBy != CleaningMileageAscending {
		return ConfigError{Field: "cleaning_rank_by", Reason: "unknown policy " + string(c.CleaningRankBy)}
	}
	if c.PlanningDate != "" {
		if _, err := time.Parse(dateLayout, c.PlanningDate); err != nil {
			return ConfigError{Field: "planning_date", Reason: "expected YYYY-MM-DD"}
		}
	}
	return nil
}

const dateLayout = "2006-01-02"

// Date resolves the planning date, falling back to the current day in UTC.
func (c Config) Date(now time.Time) time.Time {
	if c.PlanningDate != "" {
		if d, err := time.Parse(dateLayout, c.PlanningDate); err == nil {
			return d
		}
	}
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
