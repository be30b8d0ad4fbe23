// Package aggregate buckets transactions into calendar months and
// computes per-month revenue, expense and burn figures.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// maxTopCategories caps the per-month top expense category list.
const maxTopCategories = 5

// Window is the contiguous run of calendar months under analysis.
type Window struct {
	Start model.Month
	End   model.Month // inclusive
}

// WindowEnding returns the window of n months ending at the month
// containing asOf.
func WindowEnding(asOf time.Time, n int) Window {
	end := model.MonthOf(asOf.UTC())
	return Window{Start: end.AddMonths(-(n - 1)), End: end}
}

// Months returns the number of months in the window.
func (w Window) Months() int {
	return w.Start.MonthsBetween(w.End) + 1
}

// Contains reports whether m falls inside the window.
func (w Window) Contains(m model.Month) bool {
	return !m.Before(w.Start) && !w.End.Before(m)
}

// Monthly partitions transactions into one MonthlyMetrics per calendar
// month of the window, zero-filled for months with no activity.
// Transactions without a resolvable date, or dated outside the window,
// are skipped. Transfers count toward TransactionCount but never
// toward revenue or expenses. Deterministic and side-effect free.
func Monthly(txns []model.Transaction, w Window) []model.MonthlyMetrics {
	n := w.Months()
	months := make([]model.MonthlyMetrics, n)
	categories := make([]map[string]decimal.Decimal, n)
	for i := range months {
		months[i] = model.MonthlyMetrics{
			Month:    w.Start.AddMonths(i),
			Revenue:  decimal.Zero,
			Expenses: decimal.Zero,
			NetBurn:  decimal.Zero,
		}
		categories[i] = make(map[string]decimal.Decimal)
	}

	for i := range txns {
		txn := txns[i]
		if !txn.HasDate() {
			continue
		}
		m := model.MonthOf(txn.Date().UTC())
		if !w.Contains(m) {
			continue
		}
		idx := w.Start.MonthsBetween(m)
		bucket := &months[idx]
		bucket.TransactionCount++

		if txn.IsTransfer() {
			continue
		}
		switch {
		case txn.Amount.IsPositive():
			bucket.Revenue = bucket.Revenue.Add(txn.Amount)
		case txn.Amount.IsNegative():
			abs := txn.Amount.Abs()
			bucket.Expenses = bucket.Expenses.Add(abs)
			if bucket.LargestExpense == nil || abs.GreaterThan(bucket.LargestExpense.Amount.Abs()) {
				bucket.LargestExpense = &txns[i]
			}
			cat := txn.Category
			if cat == "" {
				cat = "Uncategorized"
			}
			categories[idx][cat] = categories[idx][cat].Add(abs)
		}
	}

	for i := range months {
		months[i].NetBurn = months[i].Expenses.Sub(months[i].Revenue)
		months[i].TopExpenseCategories = topCategories(categories[i])
	}
	return months
}

// topCategories returns up to maxTopCategories totals sorted by amount
// descending, name ascending on ties.
func topCategories(totals map[string]decimal.Decimal) []model.CategoryTotal {
	if len(totals) == 0 {
		return nil
	}
	out := make([]model.CategoryTotal, 0, len(totals))
	for name, amount := range totals {
		out = append(out, model.CategoryTotal{Category: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > maxTopCategories {
		out = out[:maxTopCategories]
	}
	return out
}

// TrailingAverage returns the mean of the last n values of pick over
// the monthly series, or zero for an empty series.
func TrailingAverage(months []model.MonthlyMetrics, n int, pick func(model.MonthlyMetrics) decimal.Decimal) decimal.Decimal {
	if len(months) == 0 || n <= 0 {
		return decimal.Zero
	}
	start := len(months) - n
	if start < 0 {
		start = 0
	}
	sum := decimal.Zero
	for _, m := range months[start:] {
		sum = sum.Add(pick(m))
	}
	return sum.Div(decimal.NewFromInt(int64(len(months) - start)))
}
