// Package uniteconomics estimates LTV/CAC, per-channel marketing
// spend and payback periods from the transaction ledger and the
// cohort tables.
package uniteconomics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// channelKeywords maps an acquisition channel to the substrings that
// identify its spend in transaction text.
var channelKeywords = map[string][]string{
	"Google Ads": {"google ads", "adwords", "google adwords"},
	"Facebook":   {"facebook", "meta ads", "fb ads", "instagram"},
	"LinkedIn":   {"linkedin"},
	"Twitter":    {"twitter ads", "x ads"},
	"Email":      {"mailchimp", "sendgrid", "convertkit", "klaviyo"},
	"Content":    {"content marketing", "copywriting", "freelance writer"},
	"SEO":        {"seo", "ahrefs", "semrush", "moz"},
	"Events":     {"conference", "sponsorship", "booth", "event"},
}

// paidKeywords split spend into paid vs organic acquisition.
var paidKeywords = []string{"ads", "ppc", "sponsored", "adwords", "cpc", "promoted", "paid"}

// Thresholds for the data-quality grade.
const (
	highQualityCustomers   = 50
	highQualityCohorts     = 3
	mediumQualityCustomers = 20
	reliableCustomerCount  = 10
	reliableSpendDollars   = 1_000
)

// estimatedCACMultiple stands in for channel-attributed per-cohort
// CAC, which the ledger cannot provide: assume acquiring a customer
// costs about two average orders.
const estimatedCACMultiple = 2

// Compute derives the unit-economics bundle from the raw transactions
// and the cohort metrics.
func Compute(txns []model.Transaction, cm model.CohortMetrics) model.UnitEconomics {
	channels := channelSpend(txns)

	totalSpend := decimal.Zero
	for _, ch := range channels {
		totalSpend = totalSpend.Add(ch.TotalSpend)
	}

	ue := model.UnitEconomics{
		LifetimeValue:           cm.LifetimeValue,
		CustomerAcquisitionCost: decimal.Zero,
		ChannelMetrics:          channels,
	}

	if cm.TotalCustomers > 0 {
		ue.CustomerAcquisitionCost = totalSpend.Div(decimal.NewFromInt(int64(cm.TotalCustomers)))
	}
	if ue.CustomerAcquisitionCost.IsPositive() {
		ue.LTVToCACRatio, _ = ue.LifetimeValue.Div(ue.CustomerAcquisitionCost).Float64()
	}

	ue.PaybackPeriodMonths = paybackPeriod(cm)
	ue.DataQuality = dataQuality(cm, totalSpend)
	return ue
}

// channelSpend scans expense transactions for marketing keywords and
// attributes spend per channel, split paid versus organic.
func channelSpend(txns []model.Transaction) []model.ChannelSpend {
	byChannel := make(map[string]*model.ChannelSpend)

	for _, txn := range txns {
		if !txn.IsExpense() {
			continue
		}
		text := strings.ToLower(txn.Description + " " + txn.Counterparty)
		channel, ok := matchChannel(text)
		if !ok {
			continue
		}

		ch, seen := byChannel[channel]
		if !seen {
			ch = &model.ChannelSpend{
				Channel:      channel,
				TotalSpend:   decimal.Zero,
				PaidSpend:    decimal.Zero,
				OrganicSpend: decimal.Zero,
			}
			byChannel[channel] = ch
		}

		amount := txn.Amount.Abs()
		ch.TotalSpend = ch.TotalSpend.Add(amount)
		ch.TransactionCount++
		if isPaid(text) {
			ch.PaidSpend = ch.PaidSpend.Add(amount)
		} else {
			ch.OrganicSpend = ch.OrganicSpend.Add(amount)
		}
	}

	out := make([]model.ChannelSpend, 0, len(byChannel))
	for _, ch := range byChannel {
		out = append(out, *ch)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalSpend.Equal(out[j].TotalSpend) {
			return out[i].TotalSpend.GreaterThan(out[j].TotalSpend)
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// matchChannel returns the first channel (in deterministic name
// order) whose keywords appear in the text.
func matchChannel(text string) (string, bool) {
	names := make([]string, 0, len(channelKeywords))
	for name := range channelKeywords {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, kw := range channelKeywords[name] {
			if strings.Contains(text, kw) {
				return name, true
			}
		}
	}
	return "", false
}

func isPaid(text string) bool {
	for _, kw := range paidKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// paybackPeriod walks each cohort's cumulative per-customer revenue
// until it recovers an estimated CAC of 2x the average order value,
// then weights by customer count. Cohorts that never recover within
// the 12-month matrix are excluded; 0 when none do.
func paybackPeriod(cm model.CohortMetrics) float64 {
	var weightedMonths, weight float64

	for _, c := range cm.Cohorts {
		if c.CustomersAcquired == 0 || !c.AverageOrderValue.IsPositive() {
			continue
		}
		estimatedCAC := c.AverageOrderValue.Mul(decimal.NewFromInt(estimatedCACMultiple)).InexactFloat64()

		// A retained customer contributes roughly one average order per
		// month, scaled by that month's revenue retention.
		perCustomerMonth0 := c.AverageOrderValue.InexactFloat64()
		cumulative := 0.0
		months := -1.0
		for m := 0; m < c.ObservedMonths; m++ {
			cumulative += perCustomerMonth0 * c.RevenueRetentionByMonth[m]
			if cumulative >= estimatedCAC {
				months = float64(m + 1)
				break
			}
		}
		if months < 0 {
			continue
		}
		weightedMonths += months * float64(c.CustomersAcquired)
		weight += float64(c.CustomersAcquired)
	}

	if weight == 0 {
		return 0
	}
	return weightedMonths / weight
}

// dataQuality grades confidence in the figures: high needs a real
// customer base, cohort depth and meaningful spend; medium needs a
// partial picture with at least 20 customers; anything else is low.
func dataQuality(cm model.CohortMetrics, totalSpend decimal.Decimal) model.DataQuality {
	reliableSpend := totalSpend.GreaterThan(decimal.NewFromInt(reliableSpendDollars))
	reliableCustomers := cm.TotalCustomers >= reliableCustomerCount

	if cm.TotalCustomers >= highQualityCustomers &&
		len(cm.Cohorts) >= highQualityCohorts &&
		reliableSpend && reliableCustomers {
		return model.QualityHigh
	}
	if cm.TotalCustomers >= mediumQualityCustomers &&
		(len(cm.Cohorts) >= highQualityCohorts || reliableSpend) {
		return model.QualityMedium
	}
	return model.QualityLow
}
