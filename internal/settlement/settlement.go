// Package settlement implements the settlement state machine.
//
// Group-level states: active -> pending-approval -> settled -> (reopen) ->
// active. Per-member states: none -> requested -> confirmed, meaningful only
// while the member carries a negative balance and the group is not settled.
//
// The functions here mutate the in-memory group/expense models and leave
// persistence to the caller. Role gating for Settle and Reopen happens at
// the service layer; this package enforces the actor/balance rules that do
// not depend on the policy table.
package settlement

import (
	"sort"
	"strings"

	"github.com/vaibhavdeo21/mergemoney/internal/calculator"
	"github.com/vaibhavdeo21/mergemoney/internal/errs"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

// Request moves the actor's own settlement status from none to requested.
// Only a debtor (balance < -Epsilon) may request, only for themself, and
// only while the group is not settled. The group enters pending-approval on
// the first request.
func Request(g *models.Group, actorEmail string, balances map[string]float64) error {
	if g.PaymentStatus.IsPaid {
		return errs.Validation("group is already settled")
	}

	member := g.Member(actorEmail)
	if member == nil {
		return errs.Unauthorized(actorEmail, "request settlement in a group they do not belong to")
	}
	if balances[actorEmail] >= -calculator.Epsilon {
		return errs.Validation("nothing to settle: %s has no outstanding balance", actorEmail)
	}

	switch member.SettlementStatus {
	case models.SettlementRequested:
		return errs.Validation("settlement already requested by %s", actorEmail)
	case models.SettlementConfirmed:
		return errs.Validation("settlement already confirmed for %s", actorEmail)
	}

	member.SettlementStatus = models.SettlementRequested
	g.PaymentStatus.IsPendingApproval = true
	return nil
}

// Approve moves a debtor from requested to confirmed. The actor must either
// be owed money (balance > Epsilon) or be the group admin; acknowledgement
// is always explicit, never automatic.
func Approve(g *models.Group, actorEmail, debtorEmail string, balances map[string]float64) error {
	if g.PaymentStatus.IsPaid {
		return errs.Validation("group is already settled")
	}

	debtor := g.Member(debtorEmail)
	if debtor == nil {
		return errs.NotFound("member", debtorEmail)
	}
	if !creditorOrAdmin(g, actorEmail, balances) {
		return errs.Unauthorized(actorEmail, "approve a settlement they are not owed money for")
	}
	if debtor.SettlementStatus != models.SettlementRequested {
		return errs.Validation("member %s has not requested settlement", debtorEmail)
	}

	debtor.SettlementStatus = models.SettlementConfirmed
	return nil
}

// Settle transitions the group to settled. Every debtor must already be
// confirmed; otherwise the outstanding members are named in the error. All
// expenses are flagged settled with the actor and timestamp recorded.
//
// The caller is responsible for role-gating the actor (admin/manager only).
func Settle(g *models.Group, expenses []*models.Expense, actorEmail string, balances map[string]float64, now int64) error {
	if g.PaymentStatus.IsPaid {
		return errs.Validation("group is already settled")
	}

	if outstanding := Outstanding(g, balances); len(outstanding) > 0 {
		return errs.Validation("outstanding: %s", strings.Join(outstanding, ", "))
	}

	g.PaymentStatus.IsPaid = true
	g.PaymentStatus.IsPendingApproval = false
	for _, e := range expenses {
		e.IsSettled = true
		e.SettledBy = actorEmail
		e.SettledAt = now
	}
	return nil
}

// Reopen returns a settled group to active. All member settlement statuses
// reset to none and all expenses are unflagged. Destructive: there is no
// partial reopen.
//
// The caller is responsible for role-gating the actor (admin/manager only).
func Reopen(g *models.Group, expenses []*models.Expense) error {
	if !g.PaymentStatus.IsPaid {
		return errs.Validation("group is not settled")
	}

	g.PaymentStatus.IsPaid = false
	g.PaymentStatus.IsPendingApproval = false
	for i := range g.Members {
		g.Members[i].SettlementStatus = models.SettlementNone
	}
	for _, e := range expenses {
		e.IsSettled = false
		e.SettledBy = ""
		e.SettledAt = 0
	}
	return nil
}

// Outstanding returns the debtors whose settlement is not yet confirmed,
// sorted for stable error messages.
func Outstanding(g *models.Group, balances map[string]float64) []string {
	var outstanding []string
	for _, debtor := range calculator.Debtors(balances) {
		m := g.Member(debtor)
		if m == nil || m.SettlementStatus != models.SettlementConfirmed {
			outstanding = append(outstanding, debtor)
		}
	}
	sort.Strings(outstanding)
	return outstanding
}

func creditorOrAdmin(g *models.Group, actorEmail string, balances map[string]float64) bool {
	if actorEmail == g.AdminEmail {
		return true
	}
	return g.IsMember(actorEmail) && calculator.IsCreditor(balances, actorEmail)
}
