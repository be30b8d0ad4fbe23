// Package metrics is the public face of the financial intelligence
// core: it wires the classifier, aggregator, growth, cohort, runway
// and unit-economics engines into four side-effect-free entry points.
package metrics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/aggregate"
	"github.com/finsight-dev/finsight/internal/classify"
	"github.com/finsight-dev/finsight/internal/cohort"
	"github.com/finsight-dev/finsight/internal/growth"
	"github.com/finsight-dev/finsight/internal/model"
	"github.com/finsight-dev/finsight/internal/runway"
	"github.com/finsight-dev/finsight/internal/uniteconomics"
)

// trailingMonths is the averaging window for burn and revenue.
const trailingMonths = 3

// Engine computes the metrics bundle over an in-memory transaction
// snapshot. It holds only immutable configuration, so one Engine may
// serve concurrent callers.
type Engine struct {
	classifier *classify.Classifier
	analyzer   *cohort.Analyzer
	predictor  *runway.Predictor
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier replaces the default keyword classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithCustomerIdentifier replaces the default amount-similarity
// customer heuristic.
func WithCustomerIdentifier(id cohort.CustomerIdentifier) Option {
	return func(e *Engine) { e.analyzer = cohort.NewAnalyzer(id) }
}

// WithScenarios replaces the default runway scenario table.
func WithScenarios(scenarios []model.ScenarioConfig) Option {
	return func(e *Engine) { e.predictor = runway.NewPredictor(scenarios) }
}

// NewEngine creates an Engine with defaults for anything not optioned.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.classifier == nil {
		e.classifier = classify.NewDefault()
	}
	if e.analyzer == nil {
		e.analyzer = cohort.NewAnalyzer(nil)
	}
	if e.predictor == nil {
		e.predictor = runway.NewPredictor(nil)
	}
	return e
}

// ComputeMetrics computes the startup metrics snapshot over the given
// window. The window is anchored at the latest dated transaction so
// the same ledger always yields the same result; an empty ledger
// anchors at the current time.
func (e *Engine) ComputeMetrics(txns []model.Transaction, balance decimal.Decimal, windowMonths int) (model.StartupMetrics, error) {
	return e.ComputeMetricsAt(txns, balance, windowMonths, anchor(txns))
}

// ComputeMetricsAt is ComputeMetrics with an explicit window anchor.
func (e *Engine) ComputeMetricsAt(txns []model.Transaction, balance decimal.Decimal, windowMonths int, asOf time.Time) (model.StartupMetrics, error) {
	if windowMonths < 1 {
		return model.StartupMetrics{}, &InvalidWindowError{Months: windowMonths}
	}

	dated := withDates(txns)
	classified := e.classifier.Apply(dated)

	window := aggregate.WindowEnding(asOf, windowMonths)
	monthly := aggregate.Monthly(classified, window)

	avgBurn := aggregate.TrailingAverage(monthly, trailingMonths, func(m model.MonthlyMetrics) decimal.Decimal { return m.NetBurn })
	avgRevenue := aggregate.TrailingAverage(monthly, trailingMonths, func(m model.MonthlyMetrics) decimal.Decimal { return m.Revenue })
	avgExpenses := aggregate.TrailingAverage(monthly, trailingMonths, func(m model.MonthlyMetrics) decimal.Decimal { return m.Expenses })

	monthlyGrowth := growth.MonthlyRate(monthly)
	weeklyGrowth := growth.WeeklyRate(monthlyGrowth)
	mrr := growth.MRR(classified)

	cohorts := e.analyzer.Analyze(classified)

	sm := model.StartupMetrics{
		CurrentBalance:     balance,
		AvgMonthlyBurn:     avgBurn,
		AvgMonthlyRevenue:  avgRevenue,
		AvgMonthlyExpenses: avgExpenses,
		RunwayMonths:       runway.Runway(balance, avgBurn),
		MonthlyGrowthRate:  monthlyGrowth,
		WeeklyGrowthRate:   weeklyGrowth,
		GrowthScore:        growth.Score(monthlyGrowth, weeklyGrowth),
		MRR:                mrr,
		ARR:                growth.ARR(mrr),
		CashEfficiency:     cashEfficiency(avgRevenue, avgBurn),
		FirstTransaction:   firstDate(dated),
		Monthly:            monthly,
	}

	sm.Milestones = growth.Milestones(growth.MilestoneInput{
		Monthly:          monthly,
		MonthlyGrowth:    monthlyGrowth,
		CustomerCount:    cohorts.TotalCustomers,
		FirstTransaction: sm.FirstTransaction,
		AsOf:             asOf,
	})

	return sm, nil
}

// AnalyzeCohorts builds the cohort retention tables. Empty input gives
// the explicit empty state, never an error.
func (e *Engine) AnalyzeCohorts(txns []model.Transaction) model.CohortMetrics {
	return e.analyzer.Analyze(withDates(txns))
}

// PredictRunway runs the runway analysis over a metrics snapshot.
func (e *Engine) PredictRunway(m model.StartupMetrics) model.RunwayPrediction {
	return e.predictor.Predict(m)
}

// ComputeUnitEconomics derives LTV/CAC and payback figures.
func (e *Engine) ComputeUnitEconomics(txns []model.Transaction, cm model.CohortMetrics) model.UnitEconomics {
	return uniteconomics.Compute(withDates(txns), cm)
}

// cashEfficiency is revenue over net burn: how much of the monthly
// cash loss the business earns back. +Inf at or past break-even.
func cashEfficiency(revenue, netBurn decimal.Decimal) float64 {
	if netBurn.LessThanOrEqual(decimal.Zero) {
		return math.Inf(1)
	}
	ratio, _ := revenue.Div(netBurn).Float64()
	return ratio
}

// withDates drops transactions with no resolvable date.
func withDates(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.HasDate() {
			out = append(out, txn)
		}
	}
	return out
}

// firstDate returns the earliest transaction date, zero for an empty
// list.
func firstDate(txns []model.Transaction) time.Time {
	var first time.Time
	for _, txn := range txns {
		d := txn.Date()
		if first.IsZero() || d.Before(first) {
			first = d
		}
	}
	return first
}

// anchor picks the latest transaction date, or now for an empty list.
func anchor(txns []model.Transaction) time.Time {
	var latest time.Time
	for _, txn := range txns {
		if d := txn.Date(); d.After(latest) {
			latest = d
		}
	}
	if latest.IsZero() {
		return time.Now().UTC()
	}
	return latest
}
