package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kochimetro/induction/core/logger"
	"github.com/kochimetro/induction/core/model"
)

// Row is one raw record as delivered by the upstream source. Field values may
// be strings (CSV), JSON numbers and booleans, or already-typed Go values.
type Row map[string]any

// Normalizer validates and coerces raw rows into typed entities. It is a pure
// transform: malformed rows are dropped and reported, never fatal.
type Normalizer struct {
	log logger.Logger
}

// NewNormalizer creates a Normalizer. A nil logger disables logging.
func NewNormalizer(log logger.Logger) *Normalizer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Normalizer{log: log}
}

// Trains coerces raw trainset rows. Rows without a usable train id and rows
// with malformed values are skipped with a warning. Missing optional fields
// are defaulted, reported once per field per run.
func (n *Normalizer) Trains(rows []Row, planningDate time.Time) ([]model.Train, []Warning) {
	var (
		trains   []model.Train
		warnings []Warning
		seen     = make(map[string]bool, len(rows))
		defaults = make(map[string]bool)
	)
	defaulted := func(field, reason string) {
		if defaults[field] {
			return
		}
		defaults[field] = true
		warnings = append(warnings, warnf("trainsets", field, "%s", reason))
	}

	for i, row := range rows {
		ref := fmt.Sprintf("trainsets row %d", i+1)
		id, err := stringField(row, "train_id")
		if err != nil || strings.TrimSpace(id) == "" {
			warnings = append(warnings, warnf(ref, "train_id", "missing train id; row skipped"))
			continue
		}
		id = strings.TrimSpace(id)
		if seen[id] {
			warnings = append(warnings, warnf(ref, "train_id", "duplicate train id %s; row skipped", id))
			continue
		}

		tr := model.Train{ID: id, FitnessExpiry: planningDate}

		if v, ok := row["fitness_valid_until"]; ok {
			d, err := asDate(v)
			if err != nil {
				warnings = append(warnings, rowError(ref, "fitness_valid_until", err))
				continue
			}
			tr.FitnessExpiry = d
		} else {
			defaulted("fitness_valid_until", "column missing; defaulting to planning date")
		}

		if v, ok := row["mileage_last_week"]; ok {
			f, err := asFloat(v)
			if err != nil {
				warnings = append(warnings, rowError(ref, "mileage_last_week", err))
				continue
			}
			if f < 0 || math.IsNaN(f) {
				warnings = append(warnings, warnf(ref, "mileage_last_week", "must be non-negative; row skipped"))
				continue
			}
			tr.Mileage = f
		} else {
			defaulted("mileage_last_week", "column missing; defaulting to 0")
		}

		if v, ok := row["branding_priority"]; ok {
			p, err := asInt(v)
			if err != nil {
				warnings = append(warnings, rowError(ref, "branding_priority", err))
				continue
			}
			if p < 0 {
				warnings = append(warnings, warnf(ref, "branding_priority", "must be non-negative; row skipped"))
				continue
			}
			tr.BrandingPriority = p
		} else {
			defaulted("branding_priority", "column missing; defaulting to 0")
		}

		var bad bool
		tr.BrandingRequired, bad = n.boolField(row, "branding_required", ref, &warnings)
		if bad {
			continue
		}
		tr.NeedsCleaning, bad = n.boolField(row, "needs_cleaning", ref, &warnings)
		if bad {
			continue
		}

		if v, ok := row["bay_position"]; ok && v != nil && v != "" {
			b, err := asInt(v)
			if err != nil {
				warnings = append(warnings, rowError(ref, "bay_position", err))
				continue
			}
			tr.BayPosition = b
		}

		seen[id] = true
		trains = append(trains, tr)
	}
	n.log.Debugf("normalized %d/%d trainset rows", len(trains), len(rows))
	return trains, warnings
}

func (n *Normalizer) boolField(row Row, field, ref string, warnings *[]Warning) (value, skipped bool) {
	v, ok := row[field]
	if !ok {
		return false, false
	}
	b, err := asBool(v)
	if err != nil {
		*warnings = append(*warnings, rowError(ref, field, err))
		return false, true
	}
	return b, false
}

// JobCards coerces raw job-card rows. A row without a status is treated as an
// open card, matching the upstream convention that only open work orders are
// exported.
func (n *Normalizer) JobCards(rows []Row) ([]model.JobCard, []Warning) {
	var (
		cards    []model.JobCard
		warnings []Warning
	)
	for i, row := range rows {
		ref := fmt.Sprintf("job_cards row %d", i+1)
		id, err := stringField(row, "train_id")
		if err != nil || strings.TrimSpace(id) == "" {
			warnings = append(warnings, warnf(ref, "train_id", "missing train id; row skipped"))
			continue
		}
		id = strings.TrimSpace(id)

		card := model.JobCard{TrainID: id, Status: model.JobOpen}
		if v, ok := row["job_card_id"]; ok {
			if s, err := asString(v); err == nil {
				card.ID = s
			}
		}
		if card.ID == "" {
			card.ID = "JC-" + id
		}
		if v, ok := row["status"]; ok {
			s, err := asString(v)
			if err != nil {
				warnings = append(warnings, rowError(ref, "status", err))
				continue
			}
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "open", "":
				card.Status = model.JobOpen
			case "closed":
				card.Status = model.JobClosed
			default:
				warnings = append(warnings, warnf(ref, "status", "unknown status %q; row skipped", s))
				continue
			}
		}
		if v, ok := row["severity"]; ok {
			if s, err := asString(v); err == nil {
				card.Severity = strings.ToLower(strings.TrimSpace(s))
			}
		}
		cards = append(cards, card)
	}
	return cards, warnings
}

// CleaningSlots coerces raw cleaning-slot rows. A slot without an
// availability flag counts as available.
func (n *Normalizer) CleaningSlots(rows []Row) ([]model.CleaningSlot, []Warning) {
	var (
		slots    []model.CleaningSlot
		warnings []Warning
	)
	for i, row := range rows {
		ref := fmt.Sprintf("cleaning_slots row %d", i+1)
		slot := model.CleaningSlot{Available: true}
		if v, ok := row["slot_id"]; ok {
			if s, err := asString(v); err == nil {
				slot.ID = strings.TrimSpace(s)
			}
		}
		if slot.ID == "" {
			slot.ID = fmt.Sprintf("CS%d", i+1)
		}
		if v, ok := row["available"]; ok {
			b, err := asBool(v)
			if err != nil {
				warnings = append(warnings, rowError(ref, "available", err))
				continue
			}
			slot.Available = b
		}
		if v, ok := row["shift"]; ok {
			if s, err := asString(v); err == nil {
				slot.Shift = strings.TrimSpace(s)
			}
		}
		slots = append(slots, slot)
	}
	return slots, warnings
}

func rowError(ref, field string, err error) Warning {
	return Warning{Row: ref, Field: field, Reason: err.Error() + "; row skipped"}
}

func stringField(row Row, field string) (string, error) {
	v, ok := row[field]
	if !ok {
		return "", fmt.Errorf("missing")
	}
	return asString(v)
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func asFloat(v any) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", f)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func asInt(v any) (int, error) {
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	return int(f), nil
}

func asBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true, nil
		case "false", "no", "0", "":
			return false, nil
		}
		return false, fmt.Errorf("expected boolean, got %q", b)
	case float64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
		return false, fmt.Errorf("expected boolean, got %v", b)
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

var dateLayouts = []string{dateLayout, time.RFC3339, "2006-01-02 15:04:05"}

func asDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("expected date, got %q", d)
	default:
		return time.Time{}, fmt.Errorf("expected date, got %T", v)
	}
}
