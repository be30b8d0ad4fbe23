package runway

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// projectionCeiling bounds the forward walk so a profitable scenario
// cannot loop forever.
const projectionCeiling = 60

// Scenario names used by the default table. The recommendation rules
// look up the cost-cutting outcome by name.
const (
	ScenarioStatusQuo           = "Status Quo"
	ScenarioAggressiveHiring    = "Aggressive Hiring"
	ScenarioRevenueAcceleration = "Revenue Acceleration"
	ScenarioCostCutting         = "Cost Cutting"
	ScenarioFundraisePrep       = "Fundraise Preparation"
)

// DefaultScenarios returns the built-in what-if table. The projection
// loop is scenario-agnostic; adding a case means adding a row here or
// in the YAML config, not touching the loop.
func DefaultScenarios() []model.ScenarioConfig {
	return []model.ScenarioConfig{
		{
			Name: ScenarioStatusQuo,
		},
		{
			Name: ScenarioAggressiveHiring,
			HiringPlan: []model.HiringStep{
				{FromMonth: 2, MonthlyCost: decimal.NewFromInt(30_000), Role: "two senior engineers"},
				{FromMonth: 4, MonthlyCost: decimal.NewFromInt(30_000), Role: "two senior engineers"},
				{FromMonth: 6, MonthlyCost: decimal.NewFromInt(20_000), Role: "sales lead and designer"},
			},
		},
		{
			Name:                   ScenarioRevenueAcceleration,
			BurnChangePct:          25,
			RevenueGrowthChangePct: 50,
		},
		{
			Name:                   ScenarioCostCutting,
			BurnChangePct:          -30,
			RevenueGrowthChangePct: -10,
		},
		{
			Name:          ScenarioFundraisePrep,
			BurnChangePct: 40,
			OneTimeExpenses: []model.PlannedExpense{
				{Month: 1, Amount: decimal.NewFromInt(25_000), Label: "legal"},
				{Month: 2, Amount: decimal.NewFromInt(25_000), Label: "legal"},
				{Month: 3, Amount: decimal.NewFromInt(50_000), Label: "banker fees"},
			},
		},
	}
}

// Project walks one scenario forward month by month. The scenario's
// burn change applies to the current net burn, which already nets out
// baseline revenue, so only revenue growth beyond the baseline enters
// the loop:
//
//	outflow(m) = adjBurn + hiring(m) + oneTime(m) - baseRev*((1+g)^m - 1)
//
// The walk halts when the balance reaches zero (the final month is
// interpolated to a fraction) or at the 60-month ceiling.
func Project(m model.StartupMetrics, sc model.ScenarioConfig) model.ScenarioOutcome {
	outcome := model.ScenarioOutcome{Name: sc.Name}

	adjBurn := m.AvgMonthlyBurn.Mul(decimal.NewFromFloat(1 + sc.BurnChangePct/100))
	adjGrowth := m.MonthlyGrowthRate * (1 + sc.RevenueGrowthChangePct/100)
	baseRevenue := m.AvgMonthlyRevenue

	balance := m.CurrentBalance
	if balance.LessThanOrEqual(decimal.Zero) {
		outcome.EndingBalance = balance
		return outcome
	}

	for month := 1; month <= projectionCeiling; month++ {
		growthDelta := baseRevenue.Mul(decimal.NewFromFloat(math.Pow(1+adjGrowth, float64(month)) - 1))
		outflow := adjBurn.
			Add(hiringCost(sc.HiringPlan, month)).
			Add(oneTimeCost(sc.OneTimeExpenses, month)).
			Sub(growthDelta)

		next := balance.Sub(outflow)
		if outflow.IsPositive() && next.LessThanOrEqual(decimal.Zero) {
			fraction, _ := balance.Div(outflow).Float64()
			outcome.RunwayMonths = float64(month-1) + fraction
			outcome.MonthsProjected = month
			outcome.EndingBalance = decimal.Zero
			return outcome
		}
		balance = next
		outcome.MonthsProjected = month
	}

	// Survived the ceiling: report the capped figure rather than a
	// guess past the horizon.
	outcome.RunwayMonths = model.RunwayCap
	outcome.EndingBalance = balance
	return outcome
}

// hiringCost sums the recurring cost of every hiring step active at
// the given projection month.
func hiringCost(plan []model.HiringStep, month int) decimal.Decimal {
	total := decimal.Zero
	for _, step := range plan {
		if month >= step.FromMonth {
			total = total.Add(step.MonthlyCost)
		}
	}
	return total
}

// oneTimeCost sums one-time expenses scheduled for the given month.
func oneTimeCost(expenses []model.PlannedExpense, month int) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Month == month {
			total = total.Add(e.Amount)
		}
	}
	return total
}
