package planner

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kochimetro/induction/core/logger"
	"github.com/kochimetro/induction/core/metrics"
	"github.com/kochimetro/induction/core/model"
)

// Planner drives the full induction pipeline: normalize, filter, allocate
// cleaning, rank, assign. It holds no state between runs; every call operates
// on the caller's snapshot and returns a fresh plan, which makes what-if
// editing a plain re-invocation.
type Planner struct {
	norm *Normalizer
	log  logger.Logger
	sink metrics.MetricsSink
	now  func() time.Time
}

// New creates a Planner. Nil logger and sink are replaced with no-ops.
func New(log logger.Logger, sink metrics.MetricsSink) *Planner {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{norm: NewNormalizer(log), log: log, sink: sink, now: time.Now}
}

// Input bundles the raw record snapshot for one run.
type Input struct {
	Trains        []Row `json:"trains"`
	JobCards      []Row `json:"job_cards"`
	CleaningSlots []Row `json:"cleaning_slots"`
}

// Recompute runs the pipeline on raw records. Malformed rows are dropped and
// reported as warnings; configuration errors abort the run with no plan.
// Identical inputs and configuration always produce a structurally identical
// plan.
func (p *Planner) Recompute(in Input, cfg Config) (*InductionPlan, []Warning, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	date := cfg.Date(p.now())

	trains, warnings := p.norm.Trains(in.Trains, date)
	cards, w := p.norm.JobCards(in.JobCards)
	warnings = append(warnings, w...)
	slots, w := p.norm.CleaningSlots(in.CleaningSlots)
	warnings = append(warnings, w...)

	plan, err := p.plan(trains, cards, model.CleaningCapacity(slots), cfg, date, len(warnings))
	if err != nil {
		return nil, nil, err
	}
	return plan, warnings, nil
}

// Plan runs the pipeline on already-typed records. Duplicate train ids are
// dropped with a warning, preserving the one-tag-per-train invariant.
func (p *Planner) Plan(trains []model.Train, cards []model.JobCard, capacity int, cfg Config) (*InductionPlan, []Warning, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	date := cfg.Date(p.now())

	var warnings []Warning
	seen := make(map[string]bool, len(trains))
	unique := make([]model.Train, 0, len(trains))
	for _, t := range trains {
		if seen[t.ID] {
			warnings = append(warnings, warnf(t.ID, "train_id", "duplicate train id; record skipped"))
			continue
		}
		seen[t.ID] = true
		unique = append(unique, t)
	}

	plan, err := p.plan(unique, cards, capacity, cfg, date, len(warnings))
	if err != nil {
		return nil, nil, err
	}
	return plan, warnings, nil
}

func (p *Planner) plan(trains []model.Train, cards []model.JobCard, capacity int, cfg Config, date time.Time, warnings int) (*InductionPlan, error) {
	started := p.now()

	eval := Evaluate(trains, cards, date)

	alloc := Allocator{Policy: cfg.CleaningRankBy}
	granted, err := alloc.Allocate(trains, eval, capacity)
	if err != nil {
		return nil, err
	}
	cleaned := make(map[string]bool, len(granted))
	for _, id := range granted {
		cleaned[id] = true
	}

	var eligible []model.Train
	for _, t := range trains {
		if eval[t.ID].Status == model.Eligible {
			eligible = append(eligible, t)
		}
	}
	ranked := Rank(eligible)

	roles, err := Assign(ranked, cfg.ServiceTarget, cfg.StandbyTarget)
	if err != nil {
		return nil, err
	}
	scores := Scores(trains)

	assignments := make([]Assignment, 0, len(trains))
	rank := make(map[string]int, len(ranked))
	for i, t := range ranked {
		rank[t.ID] = i + 1
	}
	for _, t := range ranked {
		assignments = append(assignments, p.assignment(t, roles[t.ID], eval[t.ID], scores[t.ID], rank[t.ID], cleaned[t.ID]))
	}
	var excluded []model.Train
	for _, t := range trains {
		if eval[t.ID].Status != model.Eligible {
			excluded = append(excluded, t)
		}
	}
	sort.Slice(excluded, func(i, j int) bool { return excluded[i].ID < excluded[j].ID })
	for _, t := range excluded {
		assignments = append(assignments, p.assignment(t, model.RoleMaintenance, eval[t.ID], scores[t.ID], 0, false))
	}

	plan := &InductionPlan{
		ID:           uuid.NewString(),
		GeneratedAt:  started.UTC(),
		PlanningDate: date,
		Config:       cfg,
		Assignments:  assignments,
		Summary:      summarize(assignments),
	}

	p.record(plan, eval, len(granted), warnings, p.now().Sub(started))
	p.log.Infof("plan %s: %d service, %d standby, %d maintenance (fleet %d)",
		plan.ID, plan.Summary.Service, plan.Summary.Standby, plan.Summary.Maintenance, len(trains))
	return plan, nil
}

func (p *Planner) assignment(t model.Train, role model.Role, ev Evaluation, score float64, rank int, cleaned bool) Assignment {
	return Assignment{
		TrainID:          t.ID,
		Role:             role,
		Status:           ev.Status,
		Reason:           ev.Reason,
		Score:            score,
		Rank:             rank,
		BrandingPriority: t.BrandingPriority,
		Mileage:          t.Mileage,
		BayPosition:      t.BayPosition,
		CleaningGranted:  cleaned,
	}
}

func (p *Planner) record(plan *InductionPlan, eval map[string]Evaluation, cleaned, warnings int, dur time.Duration) {
	excluded := make(map[string]int)
	for _, ev := range eval {
		if ev.Status != model.Eligible {
			excluded[ev.Status.String()]++
		}
	}
	run := metrics.PlanRun{
		PlanID:       plan.ID,
		PlanningDate: plan.PlanningDate,
		GeneratedAt:  plan.GeneratedAt,
		Duration:     dur,
		FleetSize:    len(plan.Assignments),
		Service:      plan.Summary.Service,
		Standby:      plan.Summary.Standby,
		Maintenance:  plan.Summary.Maintenance,
		Excluded:     excluded,
		Cleaned:      cleaned,
		Warnings:     warnings,
	}
	if err := p.sink.RecordPlanRun(run); err != nil {
		p.log.Warnf("record plan run: %v", err)
	}
}
