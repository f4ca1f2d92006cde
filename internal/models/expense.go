package models

// Split is one member's assigned share of an expense.
type Split struct {
	// Email identifies the member who owes this share.
	Email string `json:"email"`

	// Amount is the share in currency units. Shares across an expense must
	// sum to the expense amount within the submission tolerance.
	Amount float64 `json:"amount"`
}

// Expense represents one shared cost inside a group.
//
// An expense is immutable after creation except for the settlement fields
// (IsSettled, SettledBy, SettledAt), which flip when the group settles and
// reset when it reopens.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the owning group.
	GroupID string `json:"groupId"`

	// Description is the human-readable name (e.g., "Dinner", "Taxi").
	Description string `json:"description"`

	// Amount is the total cost. Always positive.
	Amount float64 `json:"amount"`

	// PayerEmail is the member who fronted the money. Must be a group member.
	PayerEmail string `json:"payerEmail"`

	// Splits assigns shares to a subset of the group's members. The payer's
	// own share may appear here; it nets out during balance aggregation.
	Splits []Split `json:"splits"`

	// IsSettled is true once the group has settled this expense.
	IsSettled bool `json:"isSettled"`

	// SettledBy is the email of the actor who settled the group, empty while
	// unsettled.
	SettledBy string `json:"settledBy,omitempty"`

	// SettledAt is the Unix timestamp of settlement, zero while unsettled.
	SettledAt int64 `json:"settledAt,omitempty"`

	// Date is the Unix timestamp the expense is recorded against.
	Date int64 `json:"date"`

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64 `json:"createdAt"`
}

// SplitTotal returns the sum of the expense's split amounts.
func (e *Expense) SplitTotal() float64 {
	var total float64
	for _, s := range e.Splits {
		total += s.Amount
	}
	return total
}
