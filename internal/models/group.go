package models

// SettlementStatus tracks how far one debtor has progressed through the
// settlement workflow: none -> requested (debtor self-asserts payment) ->
// confirmed (a creditor or the admin acknowledges receipt).
type SettlementStatus string

const (
	SettlementNone      SettlementStatus = "none"
	SettlementRequested SettlementStatus = "requested"
	SettlementConfirmed SettlementStatus = "confirmed"
)

// Member is one user's membership in a group.
type Member struct {
	// Email identifies the member; it matches User.Email for registered users.
	Email string `json:"email"`

	// Role is the member's group-scoped role. Defaults to viewer when the
	// group never recorded one.
	Role Role `json:"role"`

	// SettlementStatus is only meaningful while the member has a negative
	// balance and the group is not settled.
	SettlementStatus SettlementStatus `json:"settlementStatus"`
}

// PaymentStatus is the group-level settlement state. Both flags false means
// the group is active; IsPendingApproval means at least one debtor has
// requested settlement; IsPaid means the group is fully settled.
type PaymentStatus struct {
	IsPaid            bool `json:"isPaid"`
	IsPendingApproval bool `json:"isPendingApproval"`
}

// Group represents a named collection of members sharing expenses.
//
// Invariant: AdminEmail always references one of Members and never changes
// after creation.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string `json:"name"`

	// Description is a short free-text summary.
	Description string `json:"description"`

	// AdminEmail is the owning member. Immutable.
	AdminEmail string `json:"adminEmail"`

	// Members is the full membership list, admin included.
	Members []Member `json:"members"`

	// BudgetGoal is an optional spending ceiling. Zero means unlimited.
	BudgetGoal float64 `json:"budgetGoal"`

	// PaymentStatus is the group-level settlement state.
	PaymentStatus PaymentStatus `json:"paymentStatus"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// Member returns a pointer to the member with the given email, or nil.
func (g *Group) Member(email string) *Member {
	for i := range g.Members {
		if g.Members[i].Email == email {
			return &g.Members[i]
		}
	}
	return nil
}

// IsMember reports whether email belongs to the group.
func (g *Group) IsMember(email string) bool {
	return g.Member(email) != nil
}

// MemberEmails returns the emails of all members, in membership order.
func (g *Group) MemberEmails() []string {
	emails := make([]string, len(g.Members))
	for i, m := range g.Members {
		emails[i] = m.Email
	}
	return emails
}

// NormalizeMembers converts a legacy bare-email member list into Member
// values with the viewer role and a clean settlement status.
func NormalizeMembers(emails []string) []Member {
	members := make([]Member, len(emails))
	for i, email := range emails {
		members[i] = Member{
			Email:            email,
			Role:             RoleViewer,
			SettlementStatus: SettlementNone,
		}
	}
	return members
}
