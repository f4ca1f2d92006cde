// Package service implements MergeMoney's application services. Handlers
// stay thin: every rule about groups, expenses, settlement, and permissions
// lives here or in the pure packages this one composes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vaibhavdeo21/mergemoney/internal/auth"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
	"github.com/vaibhavdeo21/mergemoney/internal/storage"
)

// AuthService handles registration and login, issuing session tokens.
type AuthService struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a new account and returns the user with a session token.
// The very first account becomes the global admin; everyone after starts as
// a viewer until an admin assigns a role.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	existing, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing users: %w", err)
	}

	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		return nil, "", err
	}

	if len(existing) == 0 {
		if err := s.store.UpdateUserRole(ctx, user.Email, models.RoleAdmin); err != nil {
			return nil, "", fmt.Errorf("failed to promote first user: %w", err)
		}
		user.Role = models.RoleAdmin
		slog.Info("First registered user promoted to admin", "email", user.Email)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}
