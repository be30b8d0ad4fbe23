package growth

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// MilestoneInput carries everything milestone estimation needs.
type MilestoneInput struct {
	Monthly          []model.MonthlyMetrics
	MonthlyGrowth    float64
	CustomerCount    int
	FirstTransaction time.Time
	AsOf             time.Time
}

// revenueTargets are the monthly-revenue milestones, smallest first.
var revenueTargets = []struct {
	name   string
	amount int64
}{
	{"First dollar of revenue", 1},
	{"$1K monthly revenue", 1_000},
	{"$10K monthly revenue", 10_000},
	{"$100K monthly revenue", 100_000},
}

// customerTargets are the customer-count milestones, smallest first.
var customerTargets = []struct {
	name  string
	count int
}{
	{"First customer", 1},
	{"10 customers", 10},
	{"100 customers", 100},
}

// Milestones marks each milestone achieved or projects it forward.
// A milestone is achieved once any month in the window crossed it; a
// later dip does not undo the crossing. Achieved dates are linear
// estimates over elapsed days, not exact historical lookups, and must
// be presented as estimates.
func Milestones(in MilestoneInput) []model.Milestone {
	var (
		currentRevenue  = latestRevenue(in.Monthly)
		currentExpenses = latestExpenses(in.Monthly)
		peak            = peakRevenue(in.Monthly)
		totalRevenue    = sumRevenue(in.Monthly)
	)

	var out []model.Milestone
	for _, target := range revenueTargets {
		amount := decimal.NewFromInt(target.amount)
		ms := model.Milestone{
			Name:          target.name,
			Kind:          model.MilestoneRevenue,
			TargetRevenue: amount,
			MonthsAway:    math.Inf(1),
		}
		if peak.GreaterThanOrEqual(amount) {
			ms.Achieved = true
			ms.EstimatedDate = estimateCrossing(in, amount, totalRevenue)
		} else {
			ms.MonthsAway = monthsToRevenue(currentRevenue, amount, in.MonthlyGrowth)
		}
		out = append(out, ms)
	}

	breakEven := model.Milestone{
		Name:       "Break-even",
		Kind:       model.MilestoneBreakEven,
		MonthsAway: math.Inf(1),
	}
	if everBrokeEven(in.Monthly) {
		breakEven.Achieved = true
		breakEven.EstimatedDate = estimateCrossing(in, currentExpenses, totalRevenue)
	} else {
		breakEven.MonthsAway = monthsToRevenue(currentRevenue, currentExpenses, in.MonthlyGrowth)
	}
	out = append(out, breakEven)

	for _, target := range customerTargets {
		ms := model.Milestone{
			Name:            target.name,
			Kind:            model.MilestoneCustomers,
			TargetCustomers: target.count,
			MonthsAway:      math.Inf(1),
		}
		if in.CustomerCount >= target.count {
			ms.Achieved = true
			frac := float64(target.count) / float64(in.CustomerCount)
			ms.EstimatedDate = estimateElapsed(in, frac)
		}
		out = append(out, ms)
	}

	return out
}

// estimateCrossing places an achieved revenue milestone on the
// timeline proportionally to its share of total revenue collected.
func estimateCrossing(in MilestoneInput, target, totalRevenue decimal.Decimal) *time.Time {
	if !totalRevenue.IsPositive() {
		return nil
	}
	frac := target.Div(totalRevenue).InexactFloat64()
	return estimateElapsed(in, frac)
}

// estimateElapsed maps a fraction of the company's history onto a date.
func estimateElapsed(in MilestoneInput, frac float64) *time.Time {
	if in.FirstTransaction.IsZero() || in.AsOf.Before(in.FirstTransaction) {
		return nil
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	elapsed := in.AsOf.Sub(in.FirstTransaction)
	at := in.FirstTransaction.Add(time.Duration(frac * float64(elapsed)))
	return &at
}

// monthsToRevenue projects months until monthly revenue reaches the
// target, assuming the current run-rate grows linearly by
// current*growth each month. Unreachable without positive growth.
func monthsToRevenue(current, target decimal.Decimal, growth float64) float64 {
	gap := target.Sub(current).InexactFloat64()
	if gap <= 0 {
		return 0
	}
	delta := current.InexactFloat64() * growth
	if delta <= 0 {
		return math.Inf(1)
	}
	return gap / delta
}

func latestRevenue(months []model.MonthlyMetrics) decimal.Decimal {
	if len(months) == 0 {
		return decimal.Zero
	}
	return months[len(months)-1].Revenue
}

func latestExpenses(months []model.MonthlyMetrics) decimal.Decimal {
	if len(months) == 0 {
		return decimal.Zero
	}
	return months[len(months)-1].Expenses
}

// peakRevenue returns the highest monthly revenue in the window.
func peakRevenue(months []model.MonthlyMetrics) decimal.Decimal {
	peak := decimal.Zero
	for _, m := range months {
		if m.Revenue.GreaterThan(peak) {
			peak = m.Revenue
		}
	}
	return peak
}

// everBrokeEven reports whether any month with positive revenue
// covered that month's expenses.
func everBrokeEven(months []model.MonthlyMetrics) bool {
	for _, m := range months {
		if m.Revenue.IsPositive() && m.Revenue.GreaterThanOrEqual(m.Expenses) {
			return true
		}
	}
	return false
}

func sumRevenue(months []model.MonthlyMetrics) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range months {
		sum = sum.Add(m.Revenue)
	}
	return sum
}
