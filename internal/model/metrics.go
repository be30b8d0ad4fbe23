package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is a category's total expense for one month.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// MonthlyMetrics is the aggregate for one calendar month. One instance
// exists per month in the analysis window, zero-filled when the month
// had no activity, and is never mutated after aggregation.
type MonthlyMetrics struct {
	Month                Month
	Revenue              decimal.Decimal // sum of positive, non-transfer amounts
	Expenses             decimal.Decimal // sum of |negative|, non-transfer amounts
	NetBurn              decimal.Decimal // Expenses - Revenue
	TransactionCount     int
	LargestExpense       *Transaction    // largest-magnitude negative; nil if none
	TopExpenseCategories []CategoryTotal // at most 5, sorted descending
}

// MilestoneKind distinguishes revenue from customer-count milestones.
type MilestoneKind string

const (
	MilestoneRevenue   MilestoneKind = "revenue"
	MilestoneCustomers MilestoneKind = "customers"
	MilestoneBreakEven MilestoneKind = "break-even"
)

// Milestone is a growth milestone, either already achieved (with an
// estimated crossing date, not a historical lookup) or projected
// forward from the current run-rate.
type Milestone struct {
	Name            string
	Kind            MilestoneKind
	TargetRevenue   decimal.Decimal // monthly revenue target, zero for customer milestones
	TargetCustomers int
	Achieved        bool
	EstimatedDate   *time.Time // estimated day of crossing when achieved
	MonthsAway      float64    // projected months until crossing; +Inf if not projectable
}

// StartupMetrics is the aggregate snapshot produced by ComputeMetrics.
// Recomputed fresh on every call; the engine never persists it.
type StartupMetrics struct {
	CurrentBalance     decimal.Decimal
	AvgMonthlyBurn     decimal.Decimal // trailing 3-month net burn
	AvgMonthlyRevenue  decimal.Decimal // trailing 3-month revenue
	AvgMonthlyExpenses decimal.Decimal // trailing 3-month gross expenses
	RunwayMonths       float64         // balance / burn; +Inf when burn <= 0
	MonthlyGrowthRate  float64
	WeeklyGrowthRate   float64
	GrowthScore        int // 1..10
	MRR                decimal.Decimal
	ARR                decimal.Decimal
	// CashEfficiency is revenue / net burn, deliberately not the
	// inverse: the <0.3 cost-management rule reads it as how much of
	// the burn revenue earns back. +Inf when burn <= 0.
	CashEfficiency   float64
	FirstTransaction time.Time
	Monthly          []MonthlyMetrics
	Milestones       []Milestone
}
