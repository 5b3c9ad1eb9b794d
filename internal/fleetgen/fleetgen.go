// Package fleetgen produces synthetic depot snapshots for demos and load
// tests. The distributions mirror a typical 25-trainset metro depot: most
// certificates valid, a quarter of the fleet under maintenance, a third due
// for cleaning.
package fleetgen

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kochimetro/induction/core/model"
)

// Options control the synthetic fleet.
type Options struct {
	Trains int
	Slots  int
	Seed   int64
	Date   time.Time // planning date the fitness windows are generated around
}

// Fleet is one generated depot snapshot.
type Fleet struct {
	Trains   []model.Train
	JobCards []model.JobCard
	Slots    []model.CleaningSlot
}

var severities = []string{"low", "low", "medium", "medium", "high"}

// Generate builds a random fleet. The same seed always yields the same
// snapshot.
func Generate(opts Options) Fleet {
	if opts.Trains <= 0 {
		opts.Trains = 25
	}
	if opts.Slots <= 0 {
		opts.Slots = 6
	}
	if opts.Date.IsZero() {
		y, m, d := time.Now().UTC().Date()
		opts.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	var fleet Fleet
	for i := 1; i <= opts.Trains; i++ {
		id := fmt.Sprintf("TS%02d", i)
		tr := model.Train{
			ID:          id,
			Mileage:     float64(200 + rng.Intn(1300)),
			BayPosition: 1 + rng.Intn(10),
		}
		if rng.Float64() < 0.7 {
			tr.FitnessExpiry = opts.Date.AddDate(0, 0, 1+rng.Intn(9))
		} else {
			tr.FitnessExpiry = opts.Date.AddDate(0, 0, -(1 + rng.Intn(4)))
		}
		if p := rng.Float64(); p < 0.3 {
			tr.BrandingRequired = true
			tr.BrandingPriority = 1 + rng.Intn(5)
		}
		tr.NeedsCleaning = rng.Float64() < 0.3
		fleet.Trains = append(fleet.Trains, tr)

		if rng.Float64() < 0.25 {
			fleet.JobCards = append(fleet.JobCards, model.JobCard{
				ID:       "JC-" + id,
				TrainID:  id,
				Status:   model.JobOpen,
				Severity: severities[rng.Intn(len(severities))],
			})
		}
	}
	for i := 1; i <= opts.Slots; i++ {
		fleet.Slots = append(fleet.Slots, model.CleaningSlot{
			ID:        fmt.Sprintf("CS%d", i),
			Available: rng.Float64() < 0.7,
			Shift:     "night",
		})
	}
	return fleet
}

// WriteCSVs writes the snapshot as the three depot export files:
// trainsets.csv, job_cards.csv and cleaning_slots.csv.
func WriteCSVs(dir string, fleet Fleet) error {
	if err := writeCSV(filepath.Join(dir, "trainsets.csv"),
		[]string{"train_id", "fitness_valid_until", "mileage_last_week", "branding_required", "branding_priority", "needs_cleaning", "bay_position"},
		len(fleet.Trains), func(i int) []string {
			t := fleet.Trains[i]
			return []string{
				t.ID,
				t.FitnessExpiry.Format("2006-01-02"),
				strconv.FormatFloat(t.Mileage, 'f', -1, 64),
				strconv.FormatBool(t.BrandingRequired),
				strconv.Itoa(t.BrandingPriority),
				strconv.FormatBool(t.NeedsCleaning),
				strconv.Itoa(t.BayPosition),
			}
		}); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "job_cards.csv"),
		[]string{"train_id", "job_card_id", "status", "severity"},
		len(fleet.JobCards), func(i int) []string {
			c := fleet.JobCards[i]
			return []string{c.TrainID, c.ID, c.Status.String(), c.Severity}
		}); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "cleaning_slots.csv"),
		[]string{"slot_id", "available", "shift"},
		len(fleet.Slots), func(i int) []string {
			s := fleet.Slots[i]
			return []string{s.ID, strconv.FormatBool(s.Available), s.Shift}
		})
}

func writeCSV(path string, header []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return f.Close()
}
