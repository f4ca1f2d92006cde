package service

import (
	"context"
	"log/slog"

	"github.com/vaibhavdeo21/mergemoney/internal/access"
	"github.com/vaibhavdeo21/mergemoney/internal/errs"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
	"github.com/vaibhavdeo21/mergemoney/internal/storage"
)

// UserService exposes the admin-facing user management operations.
type UserService struct {
	store  storage.Store
	policy access.Policy
}

// NewUserService creates a new UserService.
func NewUserService(store storage.Store, policy access.Policy) *UserService {
	return &UserService{store: store, policy: policy}
}

// List returns all registered users. Gated on canViewUsers.
func (s *UserService) List(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if !s.policy.Can(actor, nil, access.CanViewUsers) {
		return nil, errs.Unauthorized(actor.Email, "view users")
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, errs.Collaborator("list users", err)
	}
	return users, nil
}

// SetRole changes a user's global role. Gated on canUpdateUsers; an actor
// cannot change their own role.
func (s *UserService) SetRole(ctx context.Context, actor *models.User, email string, role models.Role) error {
	if !s.policy.Can(actor, nil, access.CanUpdateUsers) {
		return errs.Unauthorized(actor.Email, "update users")
	}
	if !role.Valid() {
		return errs.Validation("unknown role: %s", role)
	}
	if email == actor.Email {
		return errs.Validation("you cannot change your own role")
	}

	if err := s.store.UpdateUserRole(ctx, email, role); err != nil {
		return err
	}

	slog.Info("User role changed", "email", email, "role", role, "actor", actor.Email)
	return nil
}

// Delete removes a user account. Gated on canDeleteUsers; an actor cannot
// delete themself.
func (s *UserService) Delete(ctx context.Context, actor *models.User, email string) error {
	if !s.policy.Can(actor, nil, access.CanDeleteUsers) {
		return errs.Unauthorized(actor.Email, "delete users")
	}
	if email == actor.Email {
		return errs.Validation("you cannot delete your own account")
	}

	if err := s.store.DeleteUser(ctx, email); err != nil {
		return err
	}

	slog.Info("User deleted", "email", email, "actor", actor.Email)
	return nil
}
