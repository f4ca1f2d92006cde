package calculator

import "github.com/vaibhavdeo21/mergemoney/internal/models"

// ComputeBalances aggregates each member's signed net balance from a set of
// expenses. Positive means the member is owed money, negative means they owe.
//
// Algorithm:
//   - every known member starts at 0 and stays in the map even if no expense
//     touches them (the UI renders the full roster)
//   - the payer's balance rises by the expense amount (they fronted money)
//   - each split member's balance drops by their share, the payer's own
//     split included (their self-owed share nets out)
//
// Aggregation is commutative over expense order. The function is agnostic to
// settlement state: it operates on whatever expense subset it is given.
func ComputeBalances(expenses []*models.Expense, members []string) map[string]float64 {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		balances[m] = 0
	}

	for _, e := range expenses {
		balances[e.PayerEmail] += e.Amount
		for _, s := range e.Splits {
			balances[s.Email] -= s.Amount
		}
	}

	return balances
}

// Debtors returns the members whose balance is below -Epsilon.
func Debtors(balances map[string]float64) []string {
	var debtors []string
	for member, balance := range balances {
		if balance < -Epsilon {
			debtors = append(debtors, member)
		}
	}
	return debtors
}

// IsCreditor reports whether the member is owed money beyond Epsilon.
func IsCreditor(balances map[string]float64, member string) bool {
	return balances[member] > Epsilon
}
