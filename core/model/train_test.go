package model

import (
	"testing"
	"time"
)

func TestFitnessValidOn(t *testing.T) {
	date := time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)
	tr := Train{ID: "TS01", FitnessExpiry: date}
	if !tr.FitnessValidOn(date) {
		t.Fatalf("expiry on the planning date must still be valid")
	}
	if !tr.FitnessValidOn(date.AddDate(0, 0, -1)) {
		t.Fatalf("future expiry must be valid")
	}
	if tr.FitnessValidOn(date.AddDate(0, 0, 1)) {
		t.Fatalf("past expiry must be invalid")
	}
}

func TestCleaningCapacity(t *testing.T) {
	slots := []CleaningSlot{
		{ID: "CS1", Available: true},
		{ID: "CS2", Available: false},
		{ID: "CS3", Available: true, Shift: "night"},
	}
	if got := CleaningCapacity(slots); got != 2 {
		t.Fatalf("expected capacity 2, got %d", got)
	}
	if got := CleaningCapacity(nil); got != 0 {
		t.Fatalf("expected capacity 0 for no slots, got %d", got)
	}
}

func TestOpenJobCards(t *testing.T) {
	cards := []JobCard{
		{ID: "JC-1", TrainID: "TS01", Status: JobClosed},
		{ID: "JC-2", TrainID: "TS02", Status: JobOpen, Severity: "high"},
		{ID: "JC-3", TrainID: "TS02", Status: JobOpen, Severity: "low"},
	}
	open := OpenJobCards(cards)
	if _, ok := open["TS01"]; ok {
		t.Fatalf("closed card must not index the train")
	}
	c, ok := open["TS02"]
	if !ok {
		t.Fatalf("open card missing")
	}
	if c.Severity != "high" {
		t.Fatalf("expected first open card kept, got severity %q", c.Severity)
	}
}

func TestRoleText(t *testing.T) {
	for _, r := range []Role{RoleService, RoleStandby, RoleMaintenance} {
		b, err := r.MarshalText()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Role
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back != r {
			t.Fatalf("role %v did not round-trip", r)
		}
	}
	var r Role
	if err := r.UnmarshalText([]byte("Parked")); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}
