package access

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

func TestEffectiveRole(t *testing.T) {
	group := &models.Group{
		ID:         "g1",
		AdminEmail: "admin@x.com",
		Members: []models.Member{
			{Email: "admin@x.com", Role: models.RoleAdmin},
			{Email: "manager@x.com", Role: models.RoleManager},
			{Email: "plain@x.com", Role: models.RoleViewer},
		},
	}

	tests := []struct {
		name  string
		user  *models.User
		group *models.Group
		want  models.Role
	}{
		{
			name:  "group admin is always admin",
			user:  &models.User{Email: "admin@x.com", Role: models.RoleViewer},
			group: group,
			want:  models.RoleAdmin,
		},
		{
			name:  "group role wins over global role",
			user:  &models.User{Email: "manager@x.com", Role: models.RoleViewer},
			group: group,
			want:  models.RoleManager,
		},
		{
			name:  "non-member falls back to global role",
			user:  &models.User{Email: "outsider@x.com", Role: models.RoleTreasurer},
			group: group,
			want:  models.RoleTreasurer,
		},
		{
			name: "nil group uses global role",
			user: &models.User{Email: "anyone@x.com", Role: models.RoleManager},
			want: models.RoleManager,
		},
		{
			name: "invalid global role defaults to viewer",
			user: &models.User{Email: "odd@x.com", Role: models.Role("superuser")},
			want: models.RoleViewer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveRole(tt.user, tt.group); got != tt.want {
				t.Errorf("EffectiveRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultPolicyHierarchy(t *testing.T) {
	policy := DefaultPolicy()

	// Capability counts must grow monotonically up the hierarchy.
	order := []models.Role{models.RoleViewer, models.RoleTreasurer, models.RoleManager, models.RoleAdmin}
	prev := -1
	for _, role := range order {
		count := 0
		for _, granted := range policy.CapabilitiesOf(role) {
			if granted {
				count++
			}
		}
		if count <= prev {
			t.Errorf("role %s has %d capabilities, not more than its predecessor (%d)", role, count, prev)
		}
		prev = count
	}

	tests := []struct {
		role models.Role
		cap  Capability
		want bool
	}{
		{models.RoleViewer, CanAddExpenses, false},
		{models.RoleViewer, CanViewGroups, true},
		{models.RoleTreasurer, CanAddExpenses, true},
		{models.RoleTreasurer, CanRequestSettlement, true},
		{models.RoleTreasurer, CanApproveSettlement, false},
		{models.RoleTreasurer, CanDeleteGroups, false},
		{models.RoleManager, CanApproveSettlement, true},
		{models.RoleManager, CanDeleteExpenses, true},
		{models.RoleManager, CanDeleteGroups, false},
		{models.RoleAdmin, CanDeleteGroups, true},
	}
	for _, tt := range tests {
		if got := policy.CapabilitiesOf(tt.role).Allows(tt.cap); got != tt.want {
			t.Errorf("%s.%s = %v, want %v", tt.role, tt.cap, got, tt.want)
		}
	}
}

func TestFailClosed(t *testing.T) {
	policy := DefaultPolicy()

	if policy.CapabilitiesOf(models.Role("ghost")).Allows(CanViewGroups) {
		t.Error("unknown role must have no capabilities")
	}
	if policy.CapabilitiesOf(models.RoleAdmin).Allows(Capability("canDoAnything")) {
		t.Error("unknown capability must resolve to false")
	}

	var empty Capabilities
	if empty.Allows(CanViewGroups) {
		t.Error("nil capability set must deny everything")
	}
}

func TestLoadPolicy(t *testing.T) {
	dir := t.TempDir()

	t.Run("override replaces one role", func(t *testing.T) {
		path := filepath.Join(dir, "policy.json")
		override := `{"treasurer": {"canViewGroups": true, "canAddExpenses": true, "canApproveSettlement": true}}`
		if err := os.WriteFile(path, []byte(override), 0644); err != nil {
			t.Fatalf("failed to write policy file: %v", err)
		}

		policy, err := LoadPolicy(path)
		if err != nil {
			t.Fatalf("LoadPolicy failed: %v", err)
		}
		if !policy.CapabilitiesOf(models.RoleTreasurer).Allows(CanApproveSettlement) {
			t.Error("override should grant treasurer approve")
		}
		if policy.CapabilitiesOf(models.RoleTreasurer).Allows(CanRequestSettlement) {
			t.Error("override replaces the role's set wholesale")
		}
		// Untouched roles keep their defaults.
		if !policy.CapabilitiesOf(models.RoleAdmin).Allows(CanDeleteGroups) {
			t.Error("admin defaults should survive an unrelated override")
		}
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad-role.json")
		if err := os.WriteFile(path, []byte(`{"superuser": {}}`), 0644); err != nil {
			t.Fatalf("failed to write policy file: %v", err)
		}
		if _, err := LoadPolicy(path); err == nil {
			t.Error("expected error for unknown role")
		}
	})

	t.Run("missing file rejected", func(t *testing.T) {
		if _, err := LoadPolicy(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
