package testutil

import (
	"io"
	"log"
	"time"

	"github.com/SatuPadu/fses-client/client"
	"github.com/SatuPadu/fses-client/core"
	"github.com/SatuPadu/fses-client/core/session"
)

func DiscardLogger() core.Logger {
	return core.StdLogger{Std: log.New(io.Discard, "", 0)}
}

// NewClient returns a Client pointed at the fake backend.
func NewClient(f *FakeAPI) *client.Client {
	conf := new(core.Config)
	conf.API.BaseURL = f.URL
	conf.API.RequestTimeout = 5 * time.Second
	return client.New(conf, DiscardLogger())
}

// DefaultUser is a ready-made active user for tests. The password has
// already been rotated so no forced change gate triggers.
func DefaultUser() session.User {
	return session.User{
		ID:                1,
		StaffNumber:       "OA001",
		Name:              "Alima Bello",
		Email:             "alima@fses.test",
		IsActive:          true,
		IsPasswordUpdated: true,
	}
}

// RoleWithPerms builds a role granting the given module actions.
func RoleWithPerms(id int, name string, perms map[string][]string) session.Role {
	return session.Role{ID: id, RoleName: name, Permissions: perms}
}
