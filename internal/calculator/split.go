// Package calculator implements the pure expense-splitting and
// balance-aggregation functions. Nothing here touches storage or the clock;
// every function is a projection over its inputs.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/vaibhavdeo21/mergemoney/internal/errs"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

// SplitPolicy selects how an expense is divided among participants.
type SplitPolicy string

const (
	SplitEqual   SplitPolicy = "EQUAL"
	SplitUnequal SplitPolicy = "UNEQUAL"
)

// SplitTolerance is the maximum allowed gap between an expense amount and
// the sum of its splits at submission time, in currency units.
const SplitTolerance = 0.5

// Epsilon is the threshold below which a balance counts as zero. Keeps
// floating-point noise out of debtor/creditor decisions.
const Epsilon = 0.01

// ComputeSplits divides amount among participants.
//
// EQUAL assigns each participant round(amount/n, 2). Remainder cents are not
// reconciled against the original amount, so the total may drift from it by
// up to n*0.01; the submission tolerance absorbs that.
//
// UNEQUAL returns the caller-supplied manual amounts unchanged for the given
// participants; validation happens at submission time via ValidateSplits,
// not here.
func ComputeSplits(amount float64, participants []string, policy SplitPolicy, manual map[string]float64) (map[string]float64, error) {
	if amount <= 0 {
		return nil, errs.Validation("amount must be positive")
	}
	if len(participants) == 0 {
		return nil, errs.Validation("must have at least one participant")
	}

	splits := make(map[string]float64, len(participants))

	switch policy {
	case SplitEqual:
		share := equalShare(amount, len(participants))
		for _, p := range participants {
			splits[p] = share
		}
	case SplitUnequal:
		for _, p := range participants {
			splits[p] = manual[p]
		}
	default:
		return nil, errs.Validation("unknown split policy: %s", policy)
	}

	return splits, nil
}

// equalShare rounds amount/n to 2 decimal places using exact decimal
// division, so 100/3 is 33.33 and not 33.333333333333336.
func equalShare(amount float64, n int) float64 {
	return decimal.NewFromFloat(amount).
		DivRound(decimal.NewFromInt(int64(n)), 2).
		InexactFloat64()
}

// ValidateSplits checks that splits sum to amount within SplitTolerance.
// Called before submission; a failing expense never reaches storage.
func ValidateSplits(amount float64, splits []models.Split) error {
	var total float64
	for _, s := range splits {
		total += s.Amount
	}
	diff := total - amount
	if diff < 0 {
		diff = -diff
	}
	if diff > SplitTolerance {
		return errs.Validation("split mismatch: splits total %.2f does not match expense amount %.2f", total, amount)
	}
	return nil
}
