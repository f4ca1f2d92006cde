package access

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

// Policy maps roles to capability sets. The mapping is data, not code, so a
// deployment can override it without a rebuild (role naming has drifted
// between product iterations).
type Policy map[models.Role]Capabilities

// CapabilitiesOf returns the capability set for a role. Unknown roles get an
// empty set, which denies everything.
func (p Policy) CapabilitiesOf(role models.Role) Capabilities {
	if caps, ok := p[role]; ok {
		return caps
	}
	return Capabilities{}
}

// Can resolves the user's effective role for the group and checks one
// capability.
func (p Policy) Can(user *models.User, group *models.Group, cap Capability) bool {
	return p.CapabilitiesOf(EffectiveRole(user, group)).Allows(cap)
}

// DefaultPolicy returns the built-in role/capability mapping:
//
//	viewer:    view only
//	treasurer: viewer + add expenses, request settlement
//	manager:   treasurer + update users/groups, approve settlements, delete expenses
//	admin:     everything
func DefaultPolicy() Policy {
	return Policy{
		models.RoleAdmin: {
			CanCreateUsers:       true,
			CanUpdateUsers:       true,
			CanDeleteUsers:       true,
			CanViewUsers:         true,
			CanCreateGroups:      true,
			CanUpdateGroups:      true,
			CanDeleteGroups:      true,
			CanViewGroups:        true,
			CanAddExpenses:       true,
			CanDeleteExpenses:    true,
			CanRequestSettlement: true,
			CanApproveSettlement: true,
		},
		models.RoleManager: {
			CanUpdateUsers:       true,
			CanViewUsers:         true,
			CanCreateGroups:      true,
			CanUpdateGroups:      true,
			CanViewGroups:        true,
			CanAddExpenses:       true,
			CanDeleteExpenses:    true,
			CanRequestSettlement: true,
			CanApproveSettlement: true,
		},
		models.RoleTreasurer: {
			CanViewUsers:         true,
			CanViewGroups:        true,
			CanAddExpenses:       true,
			CanRequestSettlement: true,
		},
		models.RoleViewer: {
			CanViewUsers:  true,
			CanViewGroups: true,
		},
	}
}

// LoadPolicy reads a JSON role->capability mapping from path and merges it
// over the default policy. Roles present in the file replace the default
// capability set for that role wholesale.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var override map[models.Role]Capabilities
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}

	policy := DefaultPolicy()
	for role, caps := range override {
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role in policy file: %q", role)
		}
		policy[role] = caps
	}
	return policy, nil
}
