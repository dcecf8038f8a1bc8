package access

import "github.com/SatuPadu/fses-client/core/session"

// Role names
const (
	RoleOfficeAssistant    = "OfficeAssistant"
	RoleSupervisor         = "Supervisor"
	RoleCoSupervisor       = "CoSupervisor"
	RoleProgramCoordinator = "ProgramCoordinator"
	RoleChairperson        = "Chairperson"
	RolePGAM               = "PGAM"
)

// hierarchyLevels is the implicit total order used for highest-role
// resolution. Unlisted role names rank 0, below all listed ones.
var hierarchyLevels = map[string]int{
	RoleOfficeAssistant:    1,
	RoleSupervisor:         2,
	RoleCoSupervisor:       2,
	RoleProgramCoordinator: 4,
	RoleChairperson:        5,
	RolePGAM:               6,
}

// RoleLevel returns the hierarchy level for a role name; 0 when unknown.
func RoleLevel(roleName string) int {
	return hierarchyLevels[roleName]
}

// HighestRole reduces roles by hierarchy level. Ties are broken by the
// first role encountered, so the result is deterministic for a given
// input order. Returns nil for an empty slice.
func HighestRole(roles []session.Role) *session.Role {
	if len(roles) == 0 {
		return nil
	}
	highest := roles[0]
	for _, role := range roles[1:] {
		if RoleLevel(role.RoleName) > RoleLevel(highest.RoleName) {
			highest = role
		}
	}
	return &highest
}
