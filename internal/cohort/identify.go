package cohort

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CustomerIdentifier decides whether a payer's inflow history looks
// like a customer relationship rather than incidental income. It is a
// named, swappable strategy: the default amount-similarity heuristic
// is known to misclassify subscriptions with irregular amounts.
type CustomerIdentifier interface {
	IsCustomer(amounts []decimal.Decimal) bool
}

// AmountSimilarity is the default CustomerIdentifier: a payer is a
// customer when at least MinSimilarShare of their transaction amounts
// fall within MedianTolerance of their median amount, and they have at
// least MinTransactions transactions.
type AmountSimilarity struct {
	MedianTolerance float64 // fraction of the median, e.g. 0.20
	MinSimilarShare float64 // e.g. 0.60
	MinTransactions int
}

// DefaultIdentifier returns the amount-similarity heuristic with the
// standard thresholds.
func DefaultIdentifier() AmountSimilarity {
	return AmountSimilarity{
		MedianTolerance: 0.20,
		MinSimilarShare: 0.60,
		MinTransactions: 2,
	}
}

// IsCustomer implements CustomerIdentifier.
func (a AmountSimilarity) IsCustomer(amounts []decimal.Decimal) bool {
	if len(amounts) < a.MinTransactions {
		return false
	}

	med := median(amounts)
	if !med.IsPositive() {
		return false
	}

	tolerance := med.Mul(decimal.NewFromFloat(a.MedianTolerance))
	similar := 0
	for _, amt := range amounts {
		if amt.Sub(med).Abs().LessThanOrEqual(tolerance) {
			similar++
		}
	}
	share := float64(similar) / float64(len(amounts))
	return share >= a.MinSimilarShare
}

// median returns the middle value of the amounts (mean of the two
// middles for even counts). Does not modify its argument.
func median(amounts []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(amounts))
	copy(sorted, amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
