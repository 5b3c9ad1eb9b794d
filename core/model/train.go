package model

import "time"

// Train represents a single trainset stabled at the depot.
type Train struct {
	ID               string    `json:"train_id"`
	FitnessExpiry    time.Time `json:"fitness_valid_until"` // certificate covers dates up to and including this one
	Mileage          float64   `json:"mileage_last_week"`
	BrandingRequired bool      `json:"branding_required"`
	BrandingPriority int       `json:"branding_priority"` // higher means more urgent
	NeedsCleaning    bool      `json:"needs_cleaning"`
	BayPosition      int       `json:"bay_position,omitempty"` // stabling bay, 0 when unknown
}

// FitnessValidOn reports whether the fitness certificate covers the given date.
// Expiry exactly on the date still counts as valid.
func (t Train) FitnessValidOn(date time.Time) bool {
	return !t.FitnessExpiry.Before(date)
}

// JobStatus describes the lifecycle state of a maintenance work order.
type JobStatus int

const (
	JobOpen JobStatus = iota
	JobClosed
)

// String returns a human-readable representation of the job status.
func (s JobStatus) String() string {
	switch s {
	case JobOpen:
		return "open"
	case JobClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// JobCard is a maintenance work order attached to a train. An open card
// blocks the train from revenue service.
type JobCard struct {
	ID       string    `json:"job_card_id"`
	TrainID  string    `json:"train_id"`
	Status   JobStatus `json:"status"`
	Severity string    `json:"severity,omitempty"` // low, medium or high; empty when not reported
}

// CleaningSlot is one deep-cleaning bay slot in the current cycle.
type CleaningSlot struct {
	ID        string `json:"slot_id"`
	Available bool   `json:"available"`
	Shift     string `json:"shift,omitempty"`
}

// CleaningCapacity counts the slots available in the current cycle.
func CleaningCapacity(slots []CleaningSlot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}

// OpenJobCards indexes open job cards by train id. The severity of the first
// open card per train is kept for reporting.
func OpenJobCards(cards []JobCard) map[string]JobCard {
	open := make(map[string]JobCard)
	for _, c := range cards {
		if c.Status != JobOpen {
			continue
		}
		if _, ok := open[c.TrainID]; !ok {
			open[c.TrainID] = c
		}
	}
	return open
}
