package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finsight.yaml")

	cfg := Default()
	cfg.Scenarios = []Scenario{
		{
			Name:          "Pilot Program",
			BurnChangePct: 10,
			HiringPlan:    []HiringStep{{FromMonth: 2, MonthlyCost: 12000, Role: "support engineer"}},
		},
	}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultCategory, loaded.DefaultCategory)
	assert.Equal(t, cfg.MinimumMatchScore, loaded.MinimumMatchScore)
	assert.Len(t, loaded.Categories, len(cfg.Categories))
	require.Len(t, loaded.Scenarios, 1)
	assert.Equal(t, "Pilot Program", loaded.Scenarios[0].Name)
	assert.Equal(t, 12000.0, loaded.Scenarios[0].HiringPlan[0].MonthlyCost)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_DefaultCategoryFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("minimum_match_score: 0.2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FallbackCategory, cfg.DefaultCategory)
}

func TestDefault_SingleKeywordClearsThreshold(t *testing.T) {
	cfg := Default()
	for name, rule := range cfg.Categories {
		require.NotEmpty(t, rule.Keywords, name)
		score := 1.0 / float64(len(rule.Keywords))
		assert.GreaterOrEqual(t, score, cfg.MinimumMatchScore,
			"%s: one keyword hit must clear the minimum score", name)
	}
}

func TestScenarioConfigs_Conversion(t *testing.T) {
	cfg := &Config{
		Scenarios: []Scenario{
			{
				Name:                   "Custom",
				BurnChangePct:          -15,
				RevenueGrowthChangePct: 5,
				OneTimeExpenses:        []OneTimeCost{{Month: 3, Amount: 40000, Label: "audit"}},
			},
		},
	}

	scenarios := cfg.ScenarioConfigs()
	require.Len(t, scenarios, 1)
	sc := scenarios[0]
	assert.Equal(t, "Custom", sc.Name)
	assert.Equal(t, -15.0, sc.BurnChangePct)
	require.Len(t, sc.OneTimeExpenses, 1)
	assert.True(t, sc.OneTimeExpenses[0].Amount.Equal(decimal.NewFromInt(40000)))
	assert.Equal(t, 3, sc.OneTimeExpenses[0].Month)
}

func TestScenarioConfigs_EmptyMeansNil(t *testing.T) {
	assert.Nil(t, Default().ScenarioConfigs())
}
