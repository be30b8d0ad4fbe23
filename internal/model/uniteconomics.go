package model

import "github.com/shopspring/decimal"

// DataQuality grades how much the unit-economics figures can be trusted.
type DataQuality string

const (
	QualityHigh   DataQuality = "high"
	QualityMedium DataQuality = "medium"
	QualityLow    DataQuality = "low"
)

// ChannelSpend is marketing spend attributed to one acquisition channel.
type ChannelSpend struct {
	Channel          string
	TotalSpend       decimal.Decimal
	PaidSpend        decimal.Decimal
	OrganicSpend     decimal.Decimal
	TransactionCount int
}

// UnitEconomics is the LTV/CAC and payback analysis output.
type UnitEconomics struct {
	LifetimeValue           decimal.Decimal
	CustomerAcquisitionCost decimal.Decimal
	LTVToCACRatio           float64
	PaybackPeriodMonths     float64
	ChannelMetrics          []ChannelSpend
	DataQuality             DataQuality
}
