package planner

import "fmt"

// ConfigError indicates an invalid planner configuration. It is run-fatal:
// Recompute returns no plan until the configuration is corrected.
type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// ValidationError reports a malformed input row. It is row-scoped: the
// offending record is dropped from the pool and the run continues.
type ValidationError struct {
	Row    string
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: field %s: %s", e.Row, e.Field, e.Reason)
}

// Warning pairs a row reference with the reason a record was dropped or a
// field was defaulted. Warnings accompany a successful plan.
type Warning struct {
	Row    string `json:"row"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func warnf(row, field, format string, args ...any) Warning {
	return Warning{Row: row, Field: field, Reason: fmt.Sprintf(format, args...)}
}
