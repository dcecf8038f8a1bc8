// Package access derives a flattened module→actions permission set from a
// session's roles and answers authorization queries over it.
//
// Checks are pure functions over the stored roles, recomputed on demand:
// roles only change at session boundaries (login, refresh, logout) and the
// role/module cardinality is small, so a stale incremental cache is not
// worth its correctness risk.
package access

import (
	"sort"
	"sync"

	"github.com/SatuPadu/fses-client/core/session"
)

type Checker struct {
	mu          sync.RWMutex
	roles       []session.Role
	initialized bool
}

func NewChecker() *Checker { return &Checker{} }

// InitializeFromRoles replaces the role set. Permission encodings have
// already been normalized at the ingest boundary (session decode); a role
// whose permissions failed to parse simply contributes nothing.
func (c *Checker) InitializeFromRoles(roles []session.Role) {
	cp := make([]session.Role, len(roles))
	copy(cp, roles)
	c.mu.Lock()
	c.roles = cp
	c.initialized = true
	c.mu.Unlock()
}

// Clear empties the role set. Must be called on logout.
func (c *Checker) Clear() {
	c.mu.Lock()
	c.roles = nil
	c.initialized = false
	c.mu.Unlock()
}

func (c *Checker) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

func (c *Checker) Roles() []session.Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp := make([]session.Role, len(c.roles))
	copy(cp, c.roles)
	return cp
}

// RoleNames returns the names of all assigned roles, in assignment order.
func (c *Checker) RoleNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.roles))
	for _, role := range c.roles {
		names = append(names, role.RoleName)
	}
	return names
}

// HasRole reports whether any assigned role carries the given name.
func (c *Checker) HasRole(roleName string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, role := range c.roles {
		if role.RoleName == roleName {
			return true
		}
	}
	return false
}

// HasPermission reports whether the union permission set grants action
// under module.
func (c *Checker) HasPermission(module, action string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, role := range c.roles {
		for _, a := range role.Permissions[module] {
			if a == action {
				return true
			}
		}
	}
	return false
}

// HasAnyPermission reports whether at least one of actions is granted
// under module.
func (c *Checker) HasAnyPermission(module string, actions []string) bool {
	for _, action := range actions {
		if c.HasPermission(module, action) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every one of actions is granted
// under module.
func (c *Checker) HasAllPermissions(module string, actions []string) bool {
	for _, action := range actions {
		if !c.HasPermission(module, action) {
			return false
		}
	}
	return true
}

// CanAccess reports whether module has at least one permitted action.
func (c *Checker) CanAccess(module string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, role := range c.roles {
		if len(role.Permissions[module]) > 0 {
			return true
		}
	}
	return false
}

// ModulePermissions returns all actions permitted for module, sorted.
func (c *Checker) ModulePermissions(module string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := make(map[string]struct{})
	for _, role := range c.roles {
		for _, action := range role.Permissions[module] {
			set[action] = struct{}{}
		}
	}
	return setToSortedSlice(set)
}

// AllPermissions returns the derived union set keyed by module, each
// module's actions sorted.
func (c *Checker) AllPermissions() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sets := make(map[string]map[string]struct{})
	for _, role := range c.roles {
		for module, actions := range role.Permissions {
			if len(actions) == 0 {
				continue
			}
			if sets[module] == nil {
				sets[module] = make(map[string]struct{})
			}
			for _, action := range actions {
				sets[module][action] = struct{}{}
			}
		}
	}
	result := make(map[string][]string, len(sets))
	for module, set := range sets {
		result[module] = setToSortedSlice(set)
	}
	return result
}

// HighestRole resolves the highest-ranking assigned role; nil when no
// roles are assigned.
func (c *Checker) HighestRole() *session.Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return HighestRole(c.roles)
}

func setToSortedSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
