package metrics

import "time"

// PlanRun summarises one recompute for observability sinks.
type PlanRun struct {
	PlanID       string
	PlanningDate time.Time
	GeneratedAt  time.Time
	Duration     time.Duration
	FleetSize    int
	Service      int
	Standby      int
	Maintenance  int
	Excluded     map[string]int // eligibility tag -> count
	Cleaned      int
	Warnings     int
}

// MetricsSink records plan runs for observability purposes. Recording must
// never affect the plan itself; sink errors are logged and swallowed by the
// planner.
type MetricsSink interface {
	RecordPlanRun(run PlanRun) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlanRun(PlanRun) error { return nil }

// MultiSink fans a plan run out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlanRun forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordPlanRun(run PlanRun) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlanRun(run); err != nil {
			return err
		}
	}
	return nil
}
