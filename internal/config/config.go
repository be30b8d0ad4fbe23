package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level finsight.yaml configuration: the expense
// category keyword table plus optional runway scenario overrides.
type Config struct {
	Categories        map[string]CategoryRule `yaml:"categories"`
	DefaultCategory   string                  `yaml:"default_category"`
	MinimumMatchScore float64                 `yaml:"minimum_match_score"`
	Scenarios         []Scenario              `yaml:"scenarios,omitempty"`
}

// CategoryRule holds the keyword list and tie-break priority for one
// expense category.
type CategoryRule struct {
	Keywords []string `yaml:"keywords"`
	Priority int      `yaml:"priority"`
}

// Scenario is the YAML form of a runway what-if scenario. Monetary
// amounts are plain floats here and converted to decimals at the
// model boundary.
type Scenario struct {
	Name                   string        `yaml:"name"`
	BurnChangePct          float64       `yaml:"burn_change_pct"`
	RevenueGrowthChangePct float64       `yaml:"revenue_growth_change_pct"`
	HiringPlan             []HiringStep  `yaml:"hiring_plan,omitempty"`
	OneTimeExpenses        []OneTimeCost `yaml:"one_time_expenses,omitempty"`
}

// HiringStep is a recurring monthly cost added from a projection month.
type HiringStep struct {
	FromMonth   int     `yaml:"from_month"`
	MonthlyCost float64 `yaml:"monthly_cost"`
	Role        string  `yaml:"role,omitempty"`
}

// OneTimeCost is a single expense at a projection month.
type OneTimeCost struct {
	Month  int     `yaml:"month"`
	Amount float64 `yaml:"amount"`
	Label  string  `yaml:"label,omitempty"`
}

// Load reads a finsight.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = FallbackCategory
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// FallbackCategory is used when no category clears the match threshold
// or when the config cannot be loaded at all.
const FallbackCategory = "Other"

// Default returns the built-in category keyword table.
func Default() *Config {
	return &Config{
		DefaultCategory:   FallbackCategory,
		MinimumMatchScore: 0.1,
		Categories: map[string]CategoryRule{
			"Payroll & Benefits": {
				Keywords: []string{"payroll", "gusto", "rippling", "deel", "salary", "benefits", "401k", "health insurance"},
				Priority: 10,
			},
			"Software & SaaS": {
				Keywords: []string{"github", "aws", "google cloud", "slack", "notion", "figma", "datadog", "openai"},
				Priority: 8,
			},
			"Marketing & Advertising": {
				Keywords: []string{"google ads", "adwords", "facebook", "linkedin", "twitter ads", "mailchimp", "hubspot", "marketing"},
				Priority: 8,
			},
			"Rent & Facilities": {
				Keywords: []string{"rent", "lease", "wework", "office", "utilities", "electric", "internet"},
				Priority: 6,
			},
			"Professional Services": {
				Keywords: []string{"legal", "law", "llp", "accounting", "cpa", "consulting", "advisory"},
				Priority: 6,
			},
			"Travel & Entertainment": {
				Keywords: []string{"airlines", "united", "delta", "uber", "lyft", "hotel", "airbnb", "restaurant"},
				Priority: 4,
			},
			"Equipment & Hardware": {
				Keywords: []string{"apple", "dell", "lenovo", "best buy", "hardware", "equipment"},
				Priority: 4,
			},
			"Insurance": {
				Keywords: []string{"insurance", "policy", "premium"},
				Priority: 4,
			},
			"Taxes & Fees": {
				Keywords: []string{"irs", "tax", "franchise", "filing fee", "bank fee", "service charge"},
				Priority: 4,
			},
		},
	}
}
