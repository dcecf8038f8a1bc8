// Package guard reproduces the frontend's global navigation middleware: it
// decides, before a destination is entered, whether to allow it or where to
// redirect instead.
package guard

import "strings"

// Well-known paths.
const (
	PathHome           = "/"
	PathLogin          = "/auth/login"
	PathSetNewPassword = "/auth/set-new-password"
	PathUnauthorized   = "/unauthorized"
)

// publicPaths don't require authentication.
var publicPaths = map[string]struct{}{
	PathLogin:                          {},
	"/auth/forgot-password":            {},
	"/auth/reset-password":             {},
	"/auth/forgot-password-email-sent": {},
}

// Route declares a guarded destination and its access metadata.
// Requirements are existential: any one matching role, and any one
// matching permission, is enough.
type Route struct {
	Path                string
	Title               string
	RequiredRoles       []string
	RequiredPermissions []string // "module:action"
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Allowed    bool
	RedirectTo string // set iff !Allowed
}

func allow() Decision             { return Decision{Allowed: true} }
func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Session is the slice of session state the guard consults.
type Session interface {
	IsAuthenticated() bool
	NeedsPasswordChange() bool
}

// Permissions is the slice of the permission model the guard consults.
type Permissions interface {
	HasRole(roleName string) bool
	HasPermission(module, action string) bool
}

type Guard struct {
	session Session
	perms   Permissions
	ordered []Route
	routes  map[string]Route
}

func New(session Session, perms Permissions, routes []Route) *Guard {
	byPath := make(map[string]Route, len(routes))
	for _, r := range routes {
		byPath[r.Path] = r
	}
	return &Guard{session: session, perms: perms, ordered: routes, routes: byPath}
}

// Resolve runs once per navigation, before the destination renders.
// The password-change gate pre-empts role/permission checks: a user who
// must rotate their password is redirected there even when they hold the
// permission for the destination.
func (g *Guard) Resolve(path string) Decision {
	if _, ok := publicPaths[path]; ok {
		if g.session.IsAuthenticated() {
			if g.session.NeedsPasswordChange() {
				return redirect(PathSetNewPassword)
			}
			return redirect(PathHome)
		}
		return allow()
	}

	// set-new-password requires auth but is otherwise unconditional, so a
	// user whose password is already updated can still change it voluntarily.
	if path == PathSetNewPassword {
		if !g.session.IsAuthenticated() {
			return redirect(PathLogin)
		}
		return allow()
	}

	if !g.session.IsAuthenticated() {
		return redirect(PathLogin)
	}

	if g.session.NeedsPasswordChange() {
		return redirect(PathSetNewPassword)
	}

	if route, ok := g.routes[path]; ok {
		if !g.meetsRequirements(route) {
			return redirect(PathUnauthorized)
		}
	}
	return allow()
}

// Accessible reports whether a route would currently resolve to itself,
// e.g. for menu filtering.
func (g *Guard) Accessible(path string) bool {
	return g.Resolve(path).Allowed
}

// VisibleRoutes filters the route table down to destinations the current
// session may enter, in table order.
func (g *Guard) VisibleRoutes() []Route {
	visible := make([]Route, 0, len(g.ordered))
	for _, route := range g.ordered {
		if g.Resolve(route.Path).Allowed {
			visible = append(visible, route)
		}
	}
	return visible
}

func (g *Guard) meetsRequirements(route Route) bool {
	if len(route.RequiredRoles) > 0 {
		var ok bool
		for _, roleName := range route.RequiredRoles {
			if g.perms.HasRole(roleName) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if len(route.RequiredPermissions) > 0 {
		var ok bool
		for _, perm := range route.RequiredPermissions {
			module, action := SplitPermission(perm)
			if g.perms.HasPermission(module, action) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// SplitPermission splits a "module:action" pair.
func SplitPermission(perm string) (module, action string) {
	parts := strings.SplitN(perm, ":", 2)
	module = parts[0]
	if len(parts) > 1 {
		action = parts[1]
	}
	return module, action
}
