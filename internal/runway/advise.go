package runway

import (
	"fmt"
	"math"

	"github.com/finsight-dev/finsight/internal/model"
)

// Rule thresholds. All rules are evaluated independently; more than
// one can fire on the same snapshot.
const (
	criticalRunwayMonths = 6
	healthyRunwayMonths  = 12
	minCashEfficiency    = 0.3
	targetMonthlyGrowth  = 0.15
	costCuttingGainMin   = 3.0

	dangerRunwayMonths  = 3
	burnGrowthWarnLevel = 0.20
	concentrationWatch  = 0.50
)

// recommendations applies the rule table in priority order.
func recommendations(m model.StartupMetrics, base model.BaseCaseRunway, scenarios []model.ScenarioOutcome) []model.Recommendation {
	var recs []model.Recommendation
	rw := base.RunwayMonths

	switch {
	case rw < criticalRunwayMonths:
		recs = append(recs, model.Recommendation{
			Priority: model.PriorityCritical,
			Category: "fundraising",
			Message:  fmt.Sprintf("Runway is %.1f months. Start fundraising immediately or cut burn hard; closing a round typically takes 3-6 months.", rw),
		})
	case rw < healthyRunwayMonths:
		recs = append(recs, model.Recommendation{
			Priority: model.PriorityHigh,
			Category: "fundraising",
			Message:  fmt.Sprintf("Runway is %.1f months. Begin fundraise preparation now: materials, metrics and investor pipeline.", rw),
		})
	}

	if m.CashEfficiency < minCashEfficiency {
		recs = append(recs, model.Recommendation{
			Priority: model.PriorityHigh,
			Category: "cost-management",
			Message:  fmt.Sprintf("Revenue covers only %.0f%% of net burn. Review the largest expense categories for cuts.", m.CashEfficiency*100),
		})
	}

	if m.MonthlyGrowthRate < targetMonthlyGrowth {
		recs = append(recs, model.Recommendation{
			Priority: model.PriorityMedium,
			Category: "revenue-growth",
			Message:  fmt.Sprintf("Monthly revenue growth is %.1f%%, below the 15%% early-stage benchmark. Invest in acquisition or pricing.", m.MonthlyGrowthRate*100),
		})
	}

	if delta := costCuttingGain(base, scenarios); delta > costCuttingGainMin {
		recs = append(recs, model.Recommendation{
			Priority: model.PriorityMedium,
			Category: "cost-reduction",
			Message:  fmt.Sprintf("The cost-cutting scenario extends runway by %.1f months. Identify which cuts it assumes and take the easy ones.", delta),
		})
	}

	return recs
}

// costCuttingGain is the cost-cutting scenario's runway gain over the
// base case, or 0 when it cannot be measured.
func costCuttingGain(base model.BaseCaseRunway, scenarios []model.ScenarioOutcome) float64 {
	if math.IsInf(base.RunwayMonths, 1) {
		return 0
	}
	for _, sc := range scenarios {
		if sc.Name == ScenarioCostCutting {
			return sc.RunwayMonths - base.RunwayMonths
		}
	}
	return 0
}

// earlyWarnings derives the warning list from the snapshot.
func earlyWarnings(m model.StartupMetrics, base model.BaseCaseRunway) []model.Warning {
	var warnings []model.Warning
	rw := base.RunwayMonths

	switch {
	case rw < dangerRunwayMonths:
		warnings = append(warnings, model.Warning{
			Severity: model.SeverityDanger,
			Message:  fmt.Sprintf("Less than 3 months of runway remain (%.1f).", rw),
		})
	case rw < criticalRunwayMonths:
		warnings = append(warnings, model.Warning{
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("Runway is down to %.1f months.", rw),
		})
	}

	if growth, ok := burnGrowth(m.Monthly); ok && growth > burnGrowthWarnLevel {
		warnings = append(warnings, model.Warning{
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("Net burn grew %.0f%% month over month.", growth*100),
		})
	}

	// Per-customer revenue attribution is not available here, so
	// revenue volatility stands in for customer concentration.
	// TODO: derive concentration from the cohort analyzer's
	// per-customer revenue totals instead of this proxy.
	if base.RevenueVolatility > concentrationWatch {
		warnings = append(warnings, model.Warning{
			Severity: model.SeverityWatch,
			Message:  fmt.Sprintf("Revenue volatility of %.0f%% suggests heavy customer concentration.", base.RevenueVolatility*100),
		})
	}

	return warnings
}

// burnGrowth is the month-over-month relative change of net burn for
// the two most recent months. Not measurable without two months of
// positive prior burn.
func burnGrowth(months []model.MonthlyMetrics) (float64, bool) {
	if len(months) < 2 {
		return 0, false
	}
	prev := months[len(months)-2].NetBurn.InexactFloat64()
	cur := months[len(months)-1].NetBurn.InexactFloat64()
	if prev <= 0 {
		return 0, false
	}
	return (cur - prev) / prev, true
}
