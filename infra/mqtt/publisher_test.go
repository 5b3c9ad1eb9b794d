package mqtt

import (
	"testing"

	"github.com/kochimetro/induction/core/planner"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	if cfg.ClientID != "induction" || cfg.Topic != "depot/induction/plan" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Enabled: true}).Validate(); err == nil {
		t.Fatalf("enabled config without broker must fail")
	}
	if err := (Config{Enabled: false}).Validate(); err != nil {
		t.Fatalf("disabled config must not require a broker: %v", err)
	}
}

func TestMockPublisher(t *testing.T) {
	m := NewMockPublisher()
	plan := &planner.InductionPlan{ID: "p1"}
	if err := m.PublishPlan(plan); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(m.Plans) != 1 || m.Plans[0].ID != "p1" {
		t.Fatalf("plan not recorded")
	}
	m.Fail = true
	if err := m.PublishPlan(plan); err == nil {
		t.Fatalf("expected failure")
	}
	if err := m.Close(); err != nil || !m.Closed {
		t.Fatalf("close: %v", err)
	}
}
