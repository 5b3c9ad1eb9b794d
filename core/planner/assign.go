package planner

import "github.com/kochimetro/induction/core/model"

// Assign partitions the ranked eligible pool into roles. The top
// serviceTarget trains go to Service, the next standbyTarget to Standby, the
// rest to Maintenance. When the pool is short, Service is filled before
// Standby.
func Assign(ranked []model.Train, serviceTarget, standbyTarget int) (map[string]model.Role, error) {
	if serviceTarget < 0 {
		return nil, ConfigError{Field: "service_target", Reason: "must be non-negative"}
	}
	if standbyTarget < 0 {
		return nil, ConfigError{Field: "standby_target", Reason: "must be non-negative"}
	}
	roles := make(map[string]model.Role, len(ranked))
	for i, t := range ranked {
		switch {
		case i < serviceTarget:
			roles[t.ID] = model.RoleService
		case i < serviceTarget+standbyTarget:
			roles[t.ID] = model.RoleStandby
		default:
			roles[t.ID] = model.RoleMaintenance
		}
	}
	return roles, nil
}
