package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/vaibhavdeo21/mergemoney/internal/access"
	"github.com/vaibhavdeo21/mergemoney/internal/calculator"
	"github.com/vaibhavdeo21/mergemoney/internal/errs"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
	"github.com/vaibhavdeo21/mergemoney/internal/settlement"
	"github.com/vaibhavdeo21/mergemoney/internal/storage"
)

// SettlementService drives the settlement workflow: it loads the group
// snapshot, recomputes balances, applies one state-machine transition, and
// persists the result. It never trusts client-supplied balances.
type SettlementService struct {
	store  storage.Store
	groups *GroupService
	policy access.Policy
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(store storage.Store, groups *GroupService, policy access.Policy) *SettlementService {
	return &SettlementService{store: store, groups: groups, policy: policy}
}

// Request marks the actor as having paid their debt (none -> requested).
func (s *SettlementService) Request(ctx context.Context, actor *models.User, groupID string) (*models.Group, error) {
	group, balances, _, err := s.snapshot(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if !s.policy.Can(actor, group, access.CanRequestSettlement) {
		return nil, errs.Unauthorized(actor.Email, "request settlement")
	}

	if err := settlement.Request(group, actor.Email, balances); err != nil {
		return nil, err
	}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, errs.Collaborator("request settlement", err)
	}

	slog.Info("Settlement requested", "group_id", groupID, "member", actor.Email)
	return group, nil
}

// ApproveMember confirms a debtor's settlement request (requested ->
// confirmed). The state machine enforces the actor rule: only a creditor of
// the group or its admin may confirm, and always explicitly.
func (s *SettlementService) ApproveMember(ctx context.Context, actor *models.User, groupID, memberEmail string) (*models.Group, error) {
	group, balances, _, err := s.snapshot(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}

	if err := settlement.Approve(group, actor.Email, memberEmail, balances); err != nil {
		return nil, err
	}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, errs.Collaborator("approve settlement", err)
	}

	slog.Info("Settlement approved", "group_id", groupID, "member", memberEmail, "approver", actor.Email)
	return group, nil
}

// Confirm settles the whole group. Every debtor must already be confirmed;
// otherwise the outstanding members are named. Admin/manager only.
func (s *SettlementService) Confirm(ctx context.Context, actor *models.User, groupID string) (*models.Group, error) {
	group, balances, expenses, err := s.snapshot(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if !s.policy.Can(actor, group, access.CanApproveSettlement) {
		return nil, errs.Unauthorized(actor.Email, "settle this group")
	}

	now := time.Now().Unix()
	if err := settlement.Settle(group, expenses, actor.Email, balances, now); err != nil {
		return nil, err
	}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, errs.Collaborator("settle group", err)
	}
	if err := s.store.SetExpensesSettled(ctx, groupID, true, actor.Email, now); err != nil {
		return nil, errs.Collaborator("settle expenses", err)
	}

	slog.Info("Group settled", "group_id", groupID, "actor", actor.Email)
	return group, nil
}

// Reopen returns a settled group to active, clearing every settlement flag.
// Admin/manager only. Destructive: there is no partial reopen.
func (s *SettlementService) Reopen(ctx context.Context, actor *models.User, groupID string) (*models.Group, error) {
	group, _, expenses, err := s.snapshot(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if !s.policy.Can(actor, group, access.CanApproveSettlement) {
		return nil, errs.Unauthorized(actor.Email, "reopen this group")
	}

	if err := settlement.Reopen(group, expenses); err != nil {
		return nil, err
	}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, errs.Collaborator("reopen group", err)
	}
	if err := s.store.SetExpensesSettled(ctx, groupID, false, "", 0); err != nil {
		return nil, errs.Collaborator("reopen expenses", err)
	}

	slog.Info("Group reopened", "group_id", groupID, "actor", actor.Email)
	return group, nil
}

// snapshot loads the group and its expenses and recomputes balances over the
// unsettled subset. Settlement decisions always start from this fresh
// projection.
func (s *SettlementService) snapshot(ctx context.Context, actor *models.User, groupID string) (*models.Group, map[string]float64, []*models.Expense, error) {
	group, err := s.groups.Get(ctx, actor, groupID)
	if err != nil {
		return nil, nil, nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, errs.Collaborator("list expenses", err)
	}
	balances := calculator.ComputeBalances(unsettled(expenses), group.MemberEmails())
	return group, balances, expenses, nil
}
