package model

import "github.com/shopspring/decimal"

// RunwayCap is reported when a projection never depletes the balance.
const RunwayCap = 999

// HiringStep adds a recurring monthly cost starting at a projection month.
type HiringStep struct {
	FromMonth   int
	MonthlyCost decimal.Decimal
	Role        string
}

// PlannedExpense is a one-time expense at a specific projection month.
type PlannedExpense struct {
	Month  int
	Amount decimal.Decimal
	Label  string
}

// ScenarioConfig describes one what-if scenario. Scenarios are
// immutable configuration, not computed state; the projection loop
// never needs to know which named case it is running.
type ScenarioConfig struct {
	Name                   string
	BurnChangePct          float64
	RevenueGrowthChangePct float64
	HiringPlan             []HiringStep
	OneTimeExpenses        []PlannedExpense
}

// ScenarioOutcome is the result of projecting one scenario forward.
type ScenarioOutcome struct {
	Name            string
	RunwayMonths    float64 // fractional; RunwayCap when cash never runs out
	MonthsProjected int
	EndingBalance   decimal.Decimal
}

// BaseCaseRunway is the balance/burn runway with volatility-derived
// confidence bounds.
type BaseCaseRunway struct {
	RunwayMonths      float64 // +Inf when net burn <= 0
	OptimisticMonths  float64
	PessimisticMonths float64
	BurnVolatility    float64 // coefficient of variation of monthly net burn
	RevenueVolatility float64
}

// Priority ranks recommendations.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
)

// Recommendation is one rule-engine suggestion.
type Recommendation struct {
	Priority Priority
	Category string
	Message  string
}

// Severity ranks early warnings.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityWatch   Severity = "watch"
)

// Warning is one early-warning signal.
type Warning struct {
	Severity Severity
	Message  string
}

// RunwayPrediction is the full runway analysis output, consumed
// read-only downstream.
type RunwayPrediction struct {
	BaseCase        BaseCaseRunway
	Scenarios       []ScenarioOutcome
	Recommendations []Recommendation
	EarlyWarnings   []Warning
}
