package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vaibhavdeo21/mergemoney/internal/access"
	"github.com/vaibhavdeo21/mergemoney/internal/calculator"
	"github.com/vaibhavdeo21/mergemoney/internal/errs"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
	"github.com/vaibhavdeo21/mergemoney/internal/storage"
)

// ExpenseService manages expenses and the derived balance projection.
type ExpenseService struct {
	store  storage.Store
	groups *GroupService
	policy access.Policy
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store, groups *GroupService, policy access.Policy) *ExpenseService {
	return &ExpenseService{store: store, groups: groups, policy: policy}
}

// AddExpenseInput is the submission payload for a new expense.
type AddExpenseInput struct {
	GroupID     string         `json:"groupId"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	PayerEmail  string         `json:"payerEmail"`
	Splits      []models.Split `json:"splits"`
}

// Add validates and persists a new expense. Validation failures never reach
// storage. The returned flag reports whether the group's budget goal is now
// exceeded (the expense is still accepted; the ceiling is advisory).
func (s *ExpenseService) Add(ctx context.Context, actor *models.User, input AddExpenseInput) (*models.Expense, bool, error) {
	group, err := s.groups.Get(ctx, actor, input.GroupID)
	if err != nil {
		return nil, false, err
	}
	if !s.policy.Can(actor, group, access.CanAddExpenses) {
		return nil, false, errs.Unauthorized(actor.Email, "add expenses to this group")
	}
	if group.PaymentStatus.IsPaid {
		return nil, false, errs.Validation("group is settled; reopen it before adding expenses")
	}

	if strings.TrimSpace(input.Description) == "" {
		return nil, false, errs.Validation("description is required")
	}
	if input.Amount <= 0 {
		return nil, false, errs.Validation("amount must be positive")
	}
	if !group.IsMember(input.PayerEmail) {
		return nil, false, errs.Validation("payer %s is not a member of the group", input.PayerEmail)
	}
	if len(input.Splits) == 0 {
		return nil, false, errs.Validation("at least one split is required")
	}
	seen := make(map[string]bool, len(input.Splits))
	for _, split := range input.Splits {
		if !group.IsMember(split.Email) {
			return nil, false, errs.Validation("split member %s is not a member of the group", split.Email)
		}
		if seen[split.Email] {
			return nil, false, errs.Validation("duplicate split for %s", split.Email)
		}
		seen[split.Email] = true
		if split.Amount < 0 {
			return nil, false, errs.Validation("split amount for %s cannot be negative", split.Email)
		}
	}
	if err := calculator.ValidateSplits(input.Amount, input.Splits); err != nil {
		return nil, false, err
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		PayerEmail:  input.PayerEmail,
		Splits:      input.Splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, false, errs.Collaborator("create expense", err)
	}

	exceeded, err := s.budgetExceeded(ctx, group)
	if err != nil {
		// The expense is already saved; a failed budget check only costs the
		// advisory flag.
		slog.Warn("Budget check failed", "group_id", group.ID, "error", err)
		exceeded = false
	}
	if exceeded {
		slog.Warn("Budget goal exceeded",
			"group_id", group.ID,
			"budget_goal", group.BudgetGoal,
		)
	}

	slog.Info("Expense added",
		"expense_id", expense.ID,
		"group_id", group.ID,
		"amount", expense.Amount,
		"payer", expense.PayerEmail,
	)
	return expense, exceeded, nil
}

// ListByGroup returns all expenses of a group, newest first.
func (s *ExpenseService) ListByGroup(ctx context.Context, actor *models.User, groupID string) ([]*models.Expense, error) {
	if _, err := s.groups.Get(ctx, actor, groupID); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, errs.Collaborator("list expenses", err)
	}
	return expenses, nil
}

// Delete removes an expense. Gated on canDeleteExpenses; settled expenses
// are immutable until the group reopens.
func (s *ExpenseService) Delete(ctx context.Context, actor *models.User, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	group, err := s.groups.Get(ctx, actor, expense.GroupID)
	if err != nil {
		return err
	}
	if !s.policy.Can(actor, group, access.CanDeleteExpenses) {
		return errs.Unauthorized(actor.Email, "delete expenses in this group")
	}
	if expense.IsSettled {
		return errs.Validation("settled expenses cannot be deleted; reopen the group first")
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return errs.Collaborator("delete expense", err)
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "group_id", group.ID)
	return nil
}

// MemberBalance is one member's entry in the balance summary.
type MemberBalance struct {
	Amount float64 `json:"amount"`
	Name   string  `json:"name"`
}

// Balances returns each member's signed net balance over the group's
// unsettled expenses, keyed by email. Every member appears, zero balances
// included. Display names come from the user accounts when they exist.
func (s *ExpenseService) Balances(ctx context.Context, actor *models.User, groupID string) (map[string]MemberBalance, error) {
	group, err := s.groups.Get(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, errs.Collaborator("list expenses", err)
	}

	balances := calculator.ComputeBalances(unsettled(expenses), group.MemberEmails())

	summary := make(map[string]MemberBalance, len(balances))
	for email, amount := range balances {
		name := email
		if user, err := s.store.GetUserByEmail(ctx, email); err == nil {
			name = user.Name
		}
		summary[email] = MemberBalance{Amount: amount, Name: name}
	}
	return summary, nil
}

func (s *ExpenseService) budgetExceeded(ctx context.Context, group *models.Group) (bool, error) {
	if group.BudgetGoal <= 0 {
		return false, nil
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return false, err
	}
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total > group.BudgetGoal, nil
}

func unsettled(expenses []*models.Expense) []*models.Expense {
	var open []*models.Expense
	for _, e := range expenses {
		if !e.IsSettled {
			open = append(open, e)
		}
	}
	return open
}
