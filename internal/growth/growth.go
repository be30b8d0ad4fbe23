// Package growth derives recurring-revenue, growth-rate and milestone
// figures from the monthly aggregates.
package growth

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// minRecurringTransactions is the floor for treating a counterparty's
// inflows as recurring. Two payments window-wide is a deliberately
// weak subscription heuristic; it overcounts repeat one-off buyers.
const minRecurringTransactions = 2

// MRR estimates monthly recurring revenue: for every counterparty with
// at least two positive non-transfer transactions in the window, take
// their contribution in the most recent calendar month they were
// active, and sum across counterparties.
func MRR(txns []model.Transaction) decimal.Decimal {
	type inflow struct {
		count    int
		byMonth  map[model.Month]decimal.Decimal
		lastSeen model.Month
	}

	inflows := make(map[string]*inflow)
	for _, txn := range txns {
		if !txn.IsRevenue() || !txn.HasDate() || txn.Counterparty == "" {
			continue
		}
		in, ok := inflows[txn.Counterparty]
		if !ok {
			in = &inflow{byMonth: make(map[model.Month]decimal.Decimal)}
			inflows[txn.Counterparty] = in
		}
		m := model.MonthOf(txn.Date().UTC())
		in.count++
		in.byMonth[m] = in.byMonth[m].Add(txn.Amount)
		if in.lastSeen.Before(m) {
			in.lastSeen = m
		}
	}

	mrr := decimal.Zero
	for _, in := range inflows {
		if in.count < minRecurringTransactions {
			continue
		}
		mrr = mrr.Add(in.byMonth[in.lastSeen])
	}
	return mrr
}

// ARR is the annualized recurring revenue.
func ARR(mrr decimal.Decimal) decimal.Decimal {
	return mrr.Mul(decimal.NewFromInt(12))
}

// MonthlyRate computes a compound monthly growth rate over the revenue
// series: (last/first)^(1/months) - 1 between the first and last
// months with nonzero revenue. Returns 0 with fewer than two nonzero
// points.
func MonthlyRate(months []model.MonthlyMetrics) float64 {
	first, last := -1, -1
	for i, m := range months {
		if m.Revenue.IsPositive() {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || last == first {
		return 0
	}

	firstRev := months[first].Revenue.InexactFloat64()
	lastRev := months[last].Revenue.InexactFloat64()
	span := float64(last - first)
	return math.Pow(lastRev/firstRev, 1/span) - 1
}

// WeeklyRate approximates weekly growth from the monthly rate as
// (1+monthly)^(1/4) - 1. Monthly buckets are the only granularity the
// ledger gives us, so this is an approximation, not a measurement.
func WeeklyRate(monthly float64) float64 {
	if monthly <= -1 {
		return -1
	}
	return math.Pow(1+monthly, 0.25) - 1
}

// Score maps growth rates onto a 1-10 score. The weekly component
// contributes up to 6 points, the monthly component up to 3, on top of
// a base score of 1, clamped at 10.
func Score(monthly, weekly float64) int {
	score := 1

	switch {
	case weekly >= 0.07:
		score += 6
	case weekly >= 0.05:
		score += 4
	case weekly >= 0.03:
		score += 2
	case weekly >= 0.01:
		score++
	}

	switch {
	case monthly >= 0.15:
		score += 3
	case monthly >= 0.10:
		score += 2
	case monthly >= 0.05:
		score++
	}

	if score > 10 {
		score = 10
	}
	return score
}
