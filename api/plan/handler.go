// Package plan exposes the recompute pipeline over HTTP for what-if editing
// frontends.
package plan

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/kochimetro/induction/core/logger"
	"github.com/kochimetro/induction/core/planner"
)

// Request is the full input snapshot for one recompute call.
type Request struct {
	Trains        []planner.Row  `json:"trains"`
	JobCards      []planner.Row  `json:"job_cards"`
	CleaningSlots []planner.Row  `json:"cleaning_slots"`
	Config        planner.Config `json:"config"`
}

// Response carries the fresh plan and the row-level warnings of the run.
type Response struct {
	Plan     *planner.InductionPlan `json:"plan"`
	Warnings []planner.Warning      `json:"warnings"`
}

// NewRecomputeHandler returns an HTTP handler running the full pipeline via
// POST /api/plan/recompute. The request body is validated against the request
// schema before normalization. onPlan, when non-nil, observes every
// successful plan (broadcasting, logging).
func NewRecomputeHandler(p *planner.Planner, log logger.Logger, onPlan func(*planner.InductionPlan)) http.Handler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
		if err != nil {
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
			return
		}

		var raw any
		if err := json.Unmarshal(body, &raw); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := compiledSchema.Validate(raw); err != nil {
			http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
			return
		}

		var req Request
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "decode request: "+err.Error(), http.StatusBadRequest)
			return
		}

		in := planner.Input{Trains: req.Trains, JobCards: req.JobCards, CleaningSlots: req.CleaningSlots}
		result, warnings, err := p.Recompute(in, req.Config)
		if err != nil {
			var cerr planner.ConfigError
			if errors.As(err, &cerr) {
				http.Error(w, cerr.Error(), http.StatusBadRequest)
				return
			}
			log.Errorf("recompute: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if onPlan != nil {
			onPlan(result)
		}

		if warnings == nil {
			warnings = []planner.Warning{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Response{Plan: result, Warnings: warnings}); err != nil {
			log.Errorf("encode response: %v", err)
		}
	})
}

// NewSchemaHandler serves the recompute request schema via GET, so editing
// frontends can validate before submitting.
func NewSchemaHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(requestSchema))
	})
}
