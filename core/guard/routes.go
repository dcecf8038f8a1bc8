package guard

import "github.com/SatuPadu/fses-client/core/access"

// DefaultRoutes is the application's navigation table, mirroring the
// frontend sidebar.
var DefaultRoutes = []Route{
	{Path: PathHome, Title: "Dashboard"},
	{
		Path:                "/reports",
		Title:               "Reports & Statistics",
		RequiredPermissions: []string{"reports:view"},
		RequiredRoles:       []string{access.RoleProgramCoordinator, access.RolePGAM},
	},
	{
		Path:                "/users",
		Title:               "All Users",
		RequiredPermissions: []string{"users:view"},
		RequiredRoles:       []string{access.RoleOfficeAssistant, access.RolePGAM},
	},
	{
		Path:                "/lecturers",
		Title:               "Lecturers",
		RequiredPermissions: []string{"lecturers:view"},
		RequiredRoles:       []string{access.RoleOfficeAssistant, access.RolePGAM, access.RoleProgramCoordinator},
	},
	{
		Path:                "/programs",
		Title:               "Programs",
		RequiredPermissions: []string{"programs:view"},
	},
	{
		Path:                "/students",
		Title:               "Students",
		RequiredPermissions: []string{"students:view"},
	},
	{
		Path:                "/nominations",
		Title:               "Examiner Nominations",
		RequiredPermissions: []string{"nominations:view"},
	},
	{
		Path:                "/assign-chairpersons",
		Title:               "Assign Chairpersons",
		RequiredPermissions: []string{"chairpersons:assign"},
		RequiredRoles:       []string{access.RoleProgramCoordinator, access.RolePGAM},
	},
	{
		Path:                "/lock-nominations",
		Title:               "Lock Nominations",
		RequiredPermissions: []string{"nominations:lock"},
		RequiredRoles:       []string{access.RoleProgramCoordinator, access.RolePGAM},
	},
	{
		Path:                "/import",
		Title:               "Import Data",
		RequiredPermissions: []string{"students:import"},
	},
}
