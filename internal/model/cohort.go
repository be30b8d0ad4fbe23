package model

import "github.com/shopspring/decimal"

// RetentionMonths is the width of the cohort retention matrices.
const RetentionMonths = 12

// CustomerCohort groups the customers acquired in one calendar month.
// RetentionByMonth[0] is 1.0 by construction for any non-empty cohort.
type CustomerCohort struct {
	CohortMonth             Month
	CustomersAcquired       int
	TotalRevenue            decimal.Decimal
	AverageOrderValue       decimal.Decimal
	RetentionByMonth        [RetentionMonths]float64
	RevenueRetentionByMonth [RetentionMonths]float64
	ObservedMonths          int // offsets 0..ObservedMonths-1 fall inside the data window
}

// CohortMetrics is the cohort analysis output. The zero-state for
// empty input has Cohorts as an empty, non-nil slice and all figures
// at zero.
type CohortMetrics struct {
	Cohorts             []CustomerCohort
	TotalCustomers      int
	TotalRevenue        decimal.Decimal
	NetRevenueRetention float64 // month-11 revenue retention, revenue-weighted
	ChurnRate           float64
	LifetimeValue       decimal.Decimal // total revenue / total customers
}
