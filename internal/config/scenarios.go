package config

import (
	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// ScenarioConfigs converts the YAML scenario overrides to model form.
// Returns nil when the config defines none, letting callers fall back
// to the built-in scenario table.
func (c *Config) ScenarioConfigs() []model.ScenarioConfig {
	if len(c.Scenarios) == 0 {
		return nil
	}
	out := make([]model.ScenarioConfig, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		out = append(out, s.Model())
	}
	return out
}

// Model converts one YAML scenario to its model form.
func (s Scenario) Model() model.ScenarioConfig {
	sc := model.ScenarioConfig{
		Name:                   s.Name,
		BurnChangePct:          s.BurnChangePct,
		RevenueGrowthChangePct: s.RevenueGrowthChangePct,
	}
	for _, h := range s.HiringPlan {
		sc.HiringPlan = append(sc.HiringPlan, model.HiringStep{
			FromMonth:   h.FromMonth,
			MonthlyCost: decimal.NewFromFloat(h.MonthlyCost),
			Role:        h.Role,
		})
	}
	for _, o := range s.OneTimeExpenses {
		sc.OneTimeExpenses = append(sc.OneTimeExpenses, model.PlannedExpense{
			Month:  o.Month,
			Amount: decimal.NewFromFloat(o.Amount),
			Label:  o.Label,
		})
	}
	return sc
}
