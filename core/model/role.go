package model

import "fmt"

// Role is the daily operational duty assigned to a trainset.
type Role int

const (
	RoleService Role = iota
	RoleStandby
	RoleMaintenance
)

// String returns the stable role vocabulary used in plans and exports.
func (r Role) String() string {
	switch r {
	case RoleService:
		return "Service"
	case RoleStandby:
		return "Standby"
	case RoleMaintenance:
		return "Maintenance"
	default:
		return "unknown"
	}
}

// MarshalText encodes the role for JSON and CSV output.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role from its text form.
func (r *Role) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Service":
		*r = RoleService
	case "Standby":
		*r = RoleStandby
	case "Maintenance":
		*r = RoleMaintenance
	default:
		return fmt.Errorf("unknown role %q", string(b))
	}
	return nil
}

// EligibilityStatus tags the outcome of the eligibility rules for one train.
// Exactly one tag applies per train per run; the first matching rule wins.
type EligibilityStatus int

const (
	Eligible EligibilityStatus = iota
	ExcludedExpiredFitness
	ExcludedOpenJobCard
	ExcludedNoCleaningCapacity
)

// String returns a human-readable representation of the status.
func (s EligibilityStatus) String() string {
	switch s {
	case Eligible:
		return "Eligible"
	case ExcludedExpiredFitness:
		return "ExcludedExpiredFitness"
	case ExcludedOpenJobCard:
		return "ExcludedOpenJobCard"
	case ExcludedNoCleaningCapacity:
		return "ExcludedNoCleaningCapacity"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status for JSON and CSV output.
func (s EligibilityStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status from its text form.
func (s *EligibilityStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Eligible":
		*s = Eligible
	case "ExcludedExpiredFitness":
		*s = ExcludedExpiredFitness
	case "ExcludedOpenJobCard":
		*s = ExcludedOpenJobCard
	case "ExcludedNoCleaningCapacity":
		*s = ExcludedNoCleaningCapacity
	default:
		return fmt.Errorf("unknown eligibility status %q", string(b))
	}
	return nil
}
