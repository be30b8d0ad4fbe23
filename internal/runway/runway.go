// Package runway projects cash runway: a volatility-bounded base case,
// a table of what-if scenarios run forward month by month, and the
// recommendation and early-warning rules derived from them.
package runway

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

const (
	// minHistoryMonths is the history needed before measured
	// volatility replaces the defaults.
	minHistoryMonths = 3

	defaultBurnVolatility    = 0.20
	defaultRevenueVolatility = 0.15
)

// Predictor runs the runway analysis over a metrics snapshot.
type Predictor struct {
	scenarios []model.ScenarioConfig
}

// NewPredictor creates a Predictor. A nil or empty scenario table
// selects the built-in five scenarios.
func NewPredictor(scenarios []model.ScenarioConfig) *Predictor {
	if len(scenarios) == 0 {
		scenarios = DefaultScenarios()
	}
	return &Predictor{scenarios: scenarios}
}

// Predict computes the full runway prediction bundle.
func (p *Predictor) Predict(m model.StartupMetrics) model.RunwayPrediction {
	base := baseCase(m)

	scenarios := make([]model.ScenarioOutcome, 0, len(p.scenarios))
	for _, sc := range p.scenarios {
		scenarios = append(scenarios, Project(m, sc))
	}

	return model.RunwayPrediction{
		BaseCase:        base,
		Scenarios:       scenarios,
		Recommendations: recommendations(m, base, scenarios),
		EarlyWarnings:   earlyWarnings(m, base),
	}
}

// baseCase computes balance/burn runway and its confidence bounds.
// The pessimistic case inflates gross expenses by volatility+20% and
// deflates revenue by volatility; the optimistic case deflates gross
// expenses (floored at 50% of base) and inflates revenue by
// volatility+30%.
func baseCase(m model.StartupMetrics) model.BaseCaseRunway {
	burnVol := volatility(m.Monthly, func(mm model.MonthlyMetrics) float64 {
		return mm.NetBurn.InexactFloat64()
	}, defaultBurnVolatility)
	revVol := volatility(m.Monthly, func(mm model.MonthlyMetrics) float64 {
		return mm.Revenue.InexactFloat64()
	}, defaultRevenueVolatility)

	base := model.BaseCaseRunway{
		RunwayMonths:      m.RunwayMonths,
		BurnVolatility:    burnVol,
		RevenueVolatility: revVol,
	}

	balance := m.CurrentBalance.InexactFloat64()
	expenses := m.AvgMonthlyExpenses.InexactFloat64()
	revenue := m.AvgMonthlyRevenue.InexactFloat64()

	pessimisticNet := expenses*(1+burnVol+0.20) - revenue*(1-revVol)
	base.PessimisticMonths = boundedRunway(balance, pessimisticNet)

	optimisticFactor := 1 - burnVol
	if optimisticFactor < 0.50 {
		optimisticFactor = 0.50
	}
	optimisticNet := expenses*optimisticFactor - revenue*(1+revVol+0.30)
	base.OptimisticMonths = boundedRunway(balance, optimisticNet)

	return base
}

// boundedRunway divides balance by a net burn, capping at RunwayCap
// when the burn is non-positive or the figure runs away.
func boundedRunway(balance, netBurn float64) float64 {
	if netBurn <= 0 {
		return model.RunwayCap
	}
	months := balance / netBurn
	if months < 0 {
		return 0
	}
	if months > model.RunwayCap {
		return model.RunwayCap
	}
	return months
}

// volatility is the coefficient of variation (population stddev over
// mean) of a monthly series. Falls back to def with fewer than three
// months of history or a non-positive mean.
func volatility(months []model.MonthlyMetrics, pick func(model.MonthlyMetrics) float64, def float64) float64 {
	if len(months) < minHistoryMonths {
		return def
	}

	var sum float64
	for _, m := range months {
		sum += pick(m)
	}
	mean := sum / float64(len(months))
	if mean <= 0 {
		return def
	}

	var sq float64
	for _, m := range months {
		d := pick(m) - mean
		sq += d * d
	}
	return math.Sqrt(sq/float64(len(months))) / mean
}

// Runway computes the plain balance/burn runway: months of cash at the
// current net burn, +Inf when the company is at or past break-even,
// floored at zero for an overdrawn balance.
func Runway(balance, netBurn decimal.Decimal) float64 {
	if netBurn.LessThanOrEqual(decimal.Zero) {
		return math.Inf(1)
	}
	months, _ := balance.Div(netBurn).Float64()
	if months < 0 {
		return 0
	}
	return months
}
