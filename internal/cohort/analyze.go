// Package cohort groups customers by acquisition month and builds
// per-cohort retention and revenue-retention tables.
package cohort

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// Analyzer builds cohort metrics from a transaction snapshot. The
// customer-identification strategy is injected so the amount-similarity
// default can be swapped without touching the cohort math.
type Analyzer struct {
	identifier CustomerIdentifier
}

// NewAnalyzer creates an Analyzer. A nil identifier selects the
// default amount-similarity heuristic.
func NewAnalyzer(identifier CustomerIdentifier) *Analyzer {
	if identifier == nil {
		identifier = DefaultIdentifier()
	}
	return &Analyzer{identifier: identifier}
}

// payer is one normalized counterparty identity's inflow history.
type payer struct {
	identity string
	amounts  []decimal.Decimal
	months   []model.Month // parallel to amounts
	first    model.Month
	last     model.Month
}

// Analyze builds the cohort metrics for a transaction snapshot. Empty
// or customer-free input yields the explicit empty state rather than
// an error.
func (a *Analyzer) Analyze(txns []model.Transaction) model.CohortMetrics {
	empty := model.CohortMetrics{
		Cohorts:       []model.CustomerCohort{},
		TotalRevenue:  decimal.Zero,
		LifetimeValue: decimal.Zero,
	}

	payers := collectPayers(txns)

	// Keep only identities the strategy accepts as customers. The rest
	// are one-time payers: real money, but not a customer relationship.
	var customers []*payer
	lastMonth := model.Month{}
	for _, p := range payers {
		if !a.identifier.IsCustomer(p.amounts) {
			continue
		}
		customers = append(customers, p)
		if lastMonth.Before(p.last) {
			lastMonth = p.last
		}
	}
	if len(customers) == 0 {
		return empty
	}

	byCohort := make(map[model.Month][]*payer)
	for _, p := range customers {
		byCohort[p.first] = append(byCohort[p.first], p)
	}

	cohortMonths := make([]model.Month, 0, len(byCohort))
	for m := range byCohort {
		cohortMonths = append(cohortMonths, m)
	}
	sort.Slice(cohortMonths, func(i, j int) bool { return cohortMonths[i].Before(cohortMonths[j]) })

	metrics := model.CohortMetrics{
		Cohorts:      make([]model.CustomerCohort, 0, len(cohortMonths)),
		TotalRevenue: decimal.Zero,
	}

	type cohortObs struct {
		cohort        model.CustomerCohort
		month0Revenue decimal.Decimal
	}
	var observations []cohortObs

	for _, cm := range cohortMonths {
		members := byCohort[cm]
		observed := cm.MonthsBetween(lastMonth) + 1
		if observed > model.RetentionMonths {
			observed = model.RetentionMonths
		}

		c := model.CustomerCohort{
			CohortMonth:       cm,
			CustomersAcquired: len(members),
			ObservedMonths:    observed,
		}

		var (
			totalRevenue = decimal.Zero
			totalTxns    int
			monthRevenue [model.RetentionMonths]decimal.Decimal
			monthActive  [model.RetentionMonths]int
		)
		for _, p := range members {
			totalTxns += len(p.amounts)
			active := make(map[int]bool)
			for i, m := range p.months {
				totalRevenue = totalRevenue.Add(p.amounts[i])
				offset := cm.MonthsBetween(m)
				if offset >= 0 && offset < model.RetentionMonths {
					monthRevenue[offset] = monthRevenue[offset].Add(p.amounts[i])
					active[offset] = true
				}
			}
			for offset := range active {
				monthActive[offset]++
			}
		}

		c.TotalRevenue = totalRevenue
		c.AverageOrderValue = decimal.Zero
		if totalTxns > 0 {
			c.AverageOrderValue = totalRevenue.Div(decimal.NewFromInt(int64(totalTxns)))
		}

		// Offset 0 is 1.0 by construction: every member transacted in
		// their own acquisition month.
		c.RetentionByMonth[0] = 1.0
		c.RevenueRetentionByMonth[0] = 1.0
		for m := 1; m < observed; m++ {
			c.RetentionByMonth[m] = float64(monthActive[m]) / float64(len(members))
			if monthRevenue[0].IsPositive() {
				ratio, _ := monthRevenue[m].Div(monthRevenue[0]).Float64()
				c.RevenueRetentionByMonth[m] = ratio
			}
		}

		metrics.Cohorts = append(metrics.Cohorts, c)
		metrics.TotalCustomers += len(members)
		metrics.TotalRevenue = metrics.TotalRevenue.Add(totalRevenue)
		observations = append(observations, cohortObs{cohort: c, month0Revenue: monthRevenue[0]})
	}

	// NRR: revenue-weighted month-11 revenue retention across cohorts
	// old enough to have a full 12-month view.
	var nrrWeighted, nrrWeight float64
	for _, obs := range observations {
		if obs.cohort.ObservedMonths < model.RetentionMonths {
			continue
		}
		w := obs.month0Revenue.InexactFloat64()
		if w <= 0 {
			continue
		}
		nrrWeighted += w * obs.cohort.RevenueRetentionByMonth[model.RetentionMonths-1]
		nrrWeight += w
	}
	if nrrWeight > 0 {
		metrics.NetRevenueRetention = nrrWeighted / nrrWeight
	}

	// Churn: mean month-over-month retention loss across every observed
	// cohort offset with a nonzero prior month.
	var churnSum float64
	var churnN int
	for _, c := range metrics.Cohorts {
		for m := 1; m < c.ObservedMonths; m++ {
			prev := c.RetentionByMonth[m-1]
			if prev <= 0 {
				continue
			}
			churnSum += (prev - c.RetentionByMonth[m]) / prev
			churnN++
		}
	}
	if churnN > 0 {
		metrics.ChurnRate = churnSum / float64(churnN)
	}

	metrics.LifetimeValue = decimal.Zero
	if metrics.TotalCustomers > 0 {
		metrics.LifetimeValue = metrics.TotalRevenue.Div(decimal.NewFromInt(int64(metrics.TotalCustomers)))
	}
	return metrics
}

// collectPayers groups positive non-transfer transactions by
// normalized counterparty identity, sorted by identity for
// reproducible iteration.
func collectPayers(txns []model.Transaction) []*payer {
	byIdentity := make(map[string]*payer)
	for _, txn := range txns {
		if !txn.IsRevenue() || !txn.HasDate() {
			continue
		}
		identity := Normalize(txn.Counterparty)
		if identity == "" {
			continue
		}
		p, ok := byIdentity[identity]
		m := model.MonthOf(txn.Date().UTC())
		if !ok {
			p = &payer{identity: identity, first: m, last: m}
			byIdentity[identity] = p
		}
		p.amounts = append(p.amounts, txn.Amount)
		p.months = append(p.months, m)
		if m.Before(p.first) {
			p.first = m
		}
		if p.last.Before(m) {
			p.last = m
		}
	}

	out := make([]*payer, 0, len(byIdentity))
	for _, p := range byIdentity {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].identity < out[j].identity })
	return out
}
