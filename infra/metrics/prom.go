package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kochimetro/induction/core/metrics"
)

// PromSink records plan runs in Prometheus metrics.
type PromSink struct {
	runs     prometheus.Counter
	duration prometheus.Histogram
	roles    *prometheus.GaugeVec
	excluded *prometheus.GaugeVec
	fleet    prometheus.Gauge
	warnings prometheus.Counter
}

// NewPromSink registers planner metrics on the default Prometheus registerer.
// The Prometheus server should be started separately via StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "induction_plan_runs_total",
		Help: "Total number of induction plan recomputations",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "induction_plan_duration_seconds",
		Help:    "Time spent computing one induction plan",
		Buckets: prometheus.DefBuckets,
	})
	roles := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "induction_plan_role_trains",
		Help: "Trains per role in the most recent plan",
	}, []string{"role"})
	excluded := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "induction_plan_excluded_trains",
		Help: "Excluded trains per eligibility tag in the most recent plan",
	}, []string{"status"})
	fleet := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "induction_plan_fleet_size",
		Help: "Fleet size considered by the most recent plan",
	})
	warnings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "induction_plan_warnings_total",
		Help: "Total normalization warnings across plan runs",
	})

	s := &PromSink{runs: runs, duration: duration, roles: roles, excluded: excluded, fleet: fleet, warnings: warnings}
	for _, c := range []prometheus.Collector{runs, duration, roles, excluded, fleet, warnings} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordPlanRun updates the counters and gauges for one recompute.
func (s *PromSink) RecordPlanRun(run coremetrics.PlanRun) error {
	s.runs.Inc()
	s.duration.Observe(run.Duration.Seconds())
	s.roles.WithLabelValues("Service").Set(float64(run.Service))
	s.roles.WithLabelValues("Standby").Set(float64(run.Standby))
	s.roles.WithLabelValues("Maintenance").Set(float64(run.Maintenance))
	s.excluded.Reset()
	for status, n := range run.Excluded {
		s.excluded.WithLabelValues(status).Set(float64(n))
	}
	s.fleet.Set(float64(run.FleetSize))
	s.warnings.Add(float64(run.Warnings))
	return nil
}
