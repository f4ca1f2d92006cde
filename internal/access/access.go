// Package access implements the role/permission gate.
//
// A permission check is a pure lookup: resolve the actor's effective role
// for the group at hand, then ask the policy whether that role carries the
// named capability. Absent keys resolve to false (fail-closed), so an
// unknown role or a misspelled capability can never grant access.
package access

import (
	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

// Capability is a named boolean permission.
type Capability string

const (
	// Global capabilities.
	CanCreateUsers  Capability = "canCreateUsers"
	CanUpdateUsers  Capability = "canUpdateUsers"
	CanDeleteUsers  Capability = "canDeleteUsers"
	CanViewUsers    Capability = "canViewUsers"
	CanCreateGroups Capability = "canCreateGroups"
	CanUpdateGroups Capability = "canUpdateGroups"
	CanDeleteGroups Capability = "canDeleteGroups"
	CanViewGroups   Capability = "canViewGroups"

	// Group-scoped capabilities.
	CanAddExpenses       Capability = "canAddExpenses"
	CanDeleteExpenses    Capability = "canDeleteExpenses"
	CanRequestSettlement Capability = "canRequestSettlement"
	CanApproveSettlement Capability = "canApproveSettlement"
)

// Capabilities is the set of permissions granted to one role.
type Capabilities map[Capability]bool

// Allows reports whether the capability is granted. Missing keys are false.
func (c Capabilities) Allows(cap Capability) bool {
	return c[cap]
}

// EffectiveRole resolves the role used for a permission check.
//
// Resolution order for a group-scoped check: the group's admin is always
// admin; otherwise a recorded per-group membership role wins; otherwise the
// user's global role applies. With a nil group only the global role is
// considered.
func EffectiveRole(user *models.User, group *models.Group) models.Role {
	if user == nil {
		return ""
	}
	role := user.Role
	if group != nil {
		if group.AdminEmail == user.Email {
			return models.RoleAdmin
		}
		if m := group.Member(user.Email); m != nil && m.Role.Valid() {
			role = m.Role
		}
	}
	if !role.Valid() {
		return models.RoleViewer
	}
	return role
}
