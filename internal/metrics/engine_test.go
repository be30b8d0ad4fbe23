package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ledger builds a small but realistic six-month ledger: a recurring
// customer, a growing customer, payroll, SaaS and ad spend, and an
// internal transfer that must stay out of the math.
func ledger() []model.Transaction {
	var txns []model.Transaction
	add := func(amount, cparty, desc string, kind model.TransactionKind, d time.Time) {
		txns = append(txns, model.Transaction{
			ID:           desc + d.Format("20060102"),
			Amount:       dec(amount),
			Counterparty: cparty,
			Description:  desc,
			Kind:         kind,
			PostedDate:   d,
		})
	}

	for m := 0; m < 6; m++ {
		at := date(2025, 1, 15).AddDate(0, m, 0)
		add("2000", "Acme Corp", "invoice", model.KindACH, at)
		add("-9000", "Gusto", "payroll run", model.KindACH, at)
		add("-400", "GitHub Inc", "github.com", model.KindCard, at)
		add("-600", "Google", "google ads campaign", model.KindCard, at)
	}
	for m := 2; m < 6; m++ {
		at := date(2025, 1, 20).AddDate(0, m, 0)
		add("3000", "Bolt Industries", "invoice", model.KindACH, at)
	}
	add("50000", "Own Savings", "sweep", model.KindTransfer, date(2025, 3, 1))
	return txns
}

func TestComputeMetrics_InvalidWindow(t *testing.T) {
	e := NewEngine()

	_, err := e.ComputeMetrics(nil, dec("1000"), 0)
	require.Error(t, err)

	var invalid *InvalidWindowError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, invalid.Months)

	_, err = e.ComputeMetrics(nil, dec("1000"), -3)
	require.Error(t, err)
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	e := NewEngine()
	txns := ledger()

	first, err := e.ComputeMetrics(txns, dec("250000"), 6)
	require.NoError(t, err)
	second, err := e.ComputeMetrics(txns, dec("250000"), 6)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same snapshot, same output")
}

func TestComputeMetrics_WindowShape(t *testing.T) {
	e := NewEngine()

	sm, err := e.ComputeMetrics(ledger(), dec("250000"), 6)
	require.NoError(t, err)

	require.Len(t, sm.Monthly, 6)
	assert.Equal(t, "2025-01", sm.Monthly[0].Month.Key())
	assert.Equal(t, "2025-06", sm.Monthly[5].Month.Key(), "window anchors at the latest transaction")
}

func TestComputeMetrics_BurnAndRunway(t *testing.T) {
	e := NewEngine()

	sm, err := e.ComputeMetrics(ledger(), dec("250000"), 6)
	require.NoError(t, err)

	// Last three months: revenue 5000, expenses 10000 each.
	assert.True(t, sm.AvgMonthlyRevenue.Equal(dec("5000")))
	assert.True(t, sm.AvgMonthlyExpenses.Equal(dec("10000")))
	assert.True(t, sm.AvgMonthlyBurn.Equal(dec("5000")))
	assert.InDelta(t, 50.0, sm.RunwayMonths, 1e-9)
	assert.InDelta(t, 1.0, sm.CashEfficiency, 1e-9)
}

func TestComputeMetrics_TransferExcluded(t *testing.T) {
	e := NewEngine()

	sm, err := e.ComputeMetrics(ledger(), dec("250000"), 6)
	require.NoError(t, err)

	march := sm.Monthly[2]
	assert.True(t, march.Revenue.Equal(dec("5000")), "the $50k sweep is not revenue")
}

func TestComputeMetrics_MRR(t *testing.T) {
	e := NewEngine()

	sm, err := e.ComputeMetrics(ledger(), dec("250000"), 6)
	require.NoError(t, err)

	// Both customers are recurring; their June contributions sum.
	assert.True(t, sm.MRR.Equal(dec("5000")))
	assert.True(t, sm.ARR.Equal(dec("60000")))
}

func TestComputeMetrics_ClassifierFillsCategories(t *testing.T) {
	e := NewEngine()

	sm, err := e.ComputeMetrics(ledger(), dec("250000"), 6)
	require.NoError(t, err)

	top := sm.Monthly[0].TopExpenseCategories
	require.NotEmpty(t, top)
	assert.Equal(t, "Payroll & Benefits", top[0].Category)
}

func TestComputeMetrics_DatelessExcluded(t *testing.T) {
	e := NewEngine()
	txns := append(ledger(), model.Transaction{
		ID:     "ghost",
		Amount: dec("99999"),
		Kind:   model.KindACH,
	})

	withGhost, err := e.ComputeMetrics(txns, dec("250000"), 6)
	require.NoError(t, err)
	without, err := e.ComputeMetrics(ledger(), dec("250000"), 6)
	require.NoError(t, err)

	assert.Equal(t, without, withGhost, "dateless transactions are silently excluded")
}

func TestComputeMetrics_EmptyLedger(t *testing.T) {
	e := NewEngine()

	sm, err := e.ComputeMetrics(nil, dec("100000"), 3)
	require.NoError(t, err)

	assert.Len(t, sm.Monthly, 3)
	assert.True(t, sm.AvgMonthlyBurn.IsZero())
	assert.True(t, math.IsInf(sm.RunwayMonths, 1), "no burn means infinite runway")
	assert.True(t, sm.MRR.IsZero())
}

func TestAnalyzeCohorts_EmptyInput(t *testing.T) {
	e := NewEngine()

	cm := e.AnalyzeCohorts(nil)
	require.NotNil(t, cm.Cohorts)
	assert.Empty(t, cm.Cohorts)
}

func TestPredictRunway_EndToEnd(t *testing.T) {
	e := NewEngine()

	sm, err := e.ComputeMetrics(ledger(), dec("250000"), 6)
	require.NoError(t, err)

	pred := e.PredictRunway(sm)
	assert.Len(t, pred.Scenarios, 5)
	assert.Greater(t, pred.BaseCase.RunwayMonths, 0.0)
}

func TestComputeUnitEconomics_EndToEnd(t *testing.T) {
	e := NewEngine()
	txns := ledger()

	cm := e.AnalyzeCohorts(txns)
	require.NotEmpty(t, cm.Cohorts)

	ue := e.ComputeUnitEconomics(txns, cm)
	assert.True(t, ue.CustomerAcquisitionCost.IsPositive(), "ad spend / customers")
	assert.True(t, ue.LifetimeValue.Equal(cm.LifetimeValue))
	require.NotEmpty(t, ue.ChannelMetrics)
	assert.Equal(t, "Google Ads", ue.ChannelMetrics[0].Channel)
}

func TestComputeMetricsAt_ExplicitAnchor(t *testing.T) {
	e := NewEngine()

	sm, err := e.ComputeMetricsAt(ledger(), dec("250000"), 3, date(2025, 4, 30))
	require.NoError(t, err)

	require.Len(t, sm.Monthly, 3)
	assert.Equal(t, "2025-02", sm.Monthly[0].Month.Key())
	assert.Equal(t, "2025-04", sm.Monthly[2].Month.Key())
}
