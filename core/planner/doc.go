// Package planner implements the daily induction decision engine for a metro
// trainset fleet.
//
// Raw per-train records are normalized, filtered through a fixed safety
// decision list (fitness certificate, open job cards), squeezed through the
// cleaning-slot capacity, ranked by branding urgency and mileage balance and
// finally partitioned into Service, Standby and Maintenance roles.
//
// Key components:
//   - Normalizer: coerces raw rows into typed entities, dropping and
//     reporting malformed ones.
//   - Evaluate: the ordered predicate/tag rule pass.
//   - Allocator: capacity-constrained cleaning slot allocation.
//   - Rank / Scores: composite ordering and the reported heuristic score.
//   - Assign: target-count role partitioning, Service before Standby.
//   - Planner: the stateless recompute controller tying the stages together.
//
// The engine owns no state between invocations and performs no I/O, so
// what-if editing is a plain re-invocation on an edited snapshot. Two calls
// with identical inputs and configuration produce structurally identical
// plans.
package planner
