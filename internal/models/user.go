package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a named permission level, either global (on a User) or scoped to
// one group (on a Member). Roles are ordered by privilege:
// viewer < treasurer < manager < admin.
type Role string

const (
	RoleViewer    Role = "viewer"
	RoleTreasurer Role = "treasurer"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleTreasurer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique). Used for login and as the
	// member identity inside groups.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash string `json:"-"`

	// Role is the user's global role, used as the fallback when a group does
	// not record a more specific one.
	Role Role `json:"role"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`
}

// NewUser creates a user with a fresh ID, the viewer role, and the current
// timestamp.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         RoleViewer,
		CreatedAt:    time.Now().Unix(),
	}
}
