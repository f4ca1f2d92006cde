// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

// Store defines the interface for MergeMoney's storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Absent entities surface as *errs.NotFoundError; other failures wrap the
// driver error.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers retrieves all registered users, ordered by creation time.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUserRole changes a user's global role.
	UpdateUserRole(ctx context.Context, email string, role models.Role) error

	// DeleteUser removes a user account by email.
	DeleteUser(ctx context.Context, email string) error

	// CreateGroup persists a new group with its members.
	// The group's ID and CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, members included.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember retrieves the page of groups the member belongs to,
	// plus the total count for pagination.
	ListGroupsByMember(ctx context.Context, email string, limit, offset int) ([]*models.Group, int, error)

	// UpdateGroup replaces a group's mutable fields, membership list included.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group and cascades to its expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists a new expense with its splits.
	// The expense's ID and CreatedAt are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, splits included.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses for a group, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, expenseID string) error

	// SetExpensesSettled flips the settlement flags on every expense in a
	// group in one statement. Used by group settle and reopen.
	SetExpensesSettled(ctx context.Context, groupID string, settled bool, settledBy string, settledAt int64) error

	// Close releases any resources held by the store.
	Close() error
}
