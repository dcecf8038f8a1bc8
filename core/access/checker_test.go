package access

import (
	"reflect"
	"testing"

	"github.com/SatuPadu/fses-client/core/session"
)

func role(id int, name string, perms map[string][]string) session.Role {
	return session.Role{ID: id, RoleName: name, Permissions: perms}
}

func TestChecker_lifecycle(t *testing.T) {
	c := NewChecker()
	if c.IsInitialized() {
		t.Error("new checker must not be initialized")
	}

	c.InitializeFromRoles([]session.Role{role(1, RoleSupervisor, map[string][]string{"nominations": {"view"}})})
	if !c.IsInitialized() {
		t.Error("IsInitialized() = false after InitializeFromRoles")
	}
	if !c.HasRole(RoleSupervisor) {
		t.Error("HasRole(Supervisor) = false")
	}

	// roles can contribute nothing without erroring
	c.InitializeFromRoles([]session.Role{role(2, "Broken", nil)})
	if c.HasRole(RoleSupervisor) {
		t.Error("InitializeFromRoles() must replace, not merge")
	}

	c.Clear()
	if c.IsInitialized() || len(c.Roles()) != 0 {
		t.Error("Clear() left state behind")
	}
	if c.HasPermission("nominations", "view") {
		t.Error("cleared checker still grants permissions")
	}
}

func TestChecker_permissionUnion(t *testing.T) {
	c := NewChecker()
	c.InitializeFromRoles([]session.Role{
		role(1, RoleOfficeAssistant, map[string][]string{
			"users":    {"view", "create"},
			"students": {"view"},
		}),
		role(2, RoleProgramCoordinator, map[string][]string{
			"students":    {"view", "import"},
			"nominations": {"view", "lock"},
		}),
	})

	tests := []struct {
		name   string
		module string
		action string
		want   bool
	}{
		{name: "granted by first role", module: "users", action: "create", want: true},
		{name: "granted by second role", module: "nominations", action: "lock", want: true},
		{name: "granted by both", module: "students", action: "view", want: true},
		{name: "action not granted", module: "users", action: "delete"},
		{name: "unknown module", module: "reports", action: "view"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.HasPermission(tt.module, tt.action); got != tt.want {
				t.Errorf("HasPermission(%s, %s) = %v, want %v", tt.module, tt.action, got, tt.want)
			}
		})
	}

	if !c.HasAnyPermission("users", []string{"delete", "view"}) {
		t.Error("HasAnyPermission() = false, want true")
	}
	if c.HasAllPermissions("users", []string{"view", "delete"}) {
		t.Error("HasAllPermissions() = true, want false")
	}
	if !c.HasAllPermissions("students", []string{"view", "import"}) {
		t.Error("HasAllPermissions() = false, want true")
	}
	if !c.CanAccess("nominations") || c.CanAccess("reports") {
		t.Error("CanAccess() wrong verdict")
	}

	if got := c.ModulePermissions("students"); !reflect.DeepEqual(got, []string{"import", "view"}) {
		t.Errorf("ModulePermissions(students) = %v, want [import view]", got)
	}
	want := map[string][]string{
		"users":       {"create", "view"},
		"students":    {"import", "view"},
		"nominations": {"lock", "view"},
	}
	if got := c.AllPermissions(); !reflect.DeepEqual(got, want) {
		t.Errorf("AllPermissions() = %v, want %v", got, want)
	}
}

func TestHighestRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []session.Role
		want  string // "" means nil
	}{
		{name: "none"},
		{name: "single", roles: []session.Role{role(1, RoleOfficeAssistant, nil)}, want: RoleOfficeAssistant},
		{
			name: "hierarchy wins over order",
			roles: []session.Role{
				role(1, RoleOfficeAssistant, nil),
				role(2, RolePGAM, nil),
				role(3, RoleSupervisor, nil),
			},
			want: RolePGAM,
		},
		{
			name: "tie keeps the first encountered",
			roles: []session.Role{
				role(1, RoleSupervisor, nil),
				role(2, RoleCoSupervisor, nil),
			},
			want: RoleSupervisor,
		},
		{
			name: "unknown ranks below everything",
			roles: []session.Role{
				role(1, "Mystery", nil),
				role(2, RoleOfficeAssistant, nil),
			},
			want: RoleOfficeAssistant,
		},
		{
			name:  "only unknowns keeps the first",
			roles: []session.Role{role(1, "A", nil), role(2, "B", nil)},
			want:  "A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HighestRole(tt.roles)
			if tt.want == "" {
				if got != nil {
					t.Errorf("HighestRole() = %v, want nil", got)
				}
				return
			}
			if got == nil || got.RoleName != tt.want {
				t.Errorf("HighestRole() = %v, want %s", got, tt.want)
			}
		})
	}
}
