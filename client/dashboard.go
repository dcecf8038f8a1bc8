package client

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/SatuPadu/fses-client/core/access"
)

// Dashboard endpoint names, one per role.
const (
	DashboardOfficeAssistant    = "office-assistant"
	DashboardResearchSupervisor = "research-supervisor"
	DashboardProgramCoordinator = "program-coordinator"
	DashboardPGAM               = "pgam"
)

// ErrNoDashboard is returned when none of the session's roles has a
// dashboard.
var ErrNoDashboard = errors.New("no dashboard available for current user role")

// dashboardByRole maps role names to their dashboard endpoint, in
// precedence order.
var dashboardByRole = []struct {
	role     string
	endpoint string
}{
	{access.RoleOfficeAssistant, DashboardOfficeAssistant},
	{access.RoleSupervisor, DashboardResearchSupervisor},
	{access.RoleProgramCoordinator, DashboardProgramCoordinator},
	{access.RolePGAM, DashboardPGAM},
}

// GetDashboard fetches one role dashboard. The payload shape is
// role-specific, so it is returned raw.
func (api *API) GetDashboard(ctx context.Context, endpoint string) (json.RawMessage, error) {
	var data json.RawMessage
	if err := api.get(ctx, "/dashboard/"+endpoint, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetDashboardForRoles picks the dashboard for the first role that has
// one and fetches it.
func (api *API) GetDashboardForRoles(ctx context.Context, roleNames []string) (endpoint string, data json.RawMessage, err error) {
	has := make(map[string]struct{}, len(roleNames))
	for _, name := range roleNames {
		has[name] = struct{}{}
	}
	for _, entry := range dashboardByRole {
		if _, ok := has[entry.role]; ok {
			data, err = api.GetDashboard(ctx, entry.endpoint)
			return entry.endpoint, data, err
		}
	}
	return "", nil, ErrNoDashboard
}
