// Package classify infers expense categories for raw bank
// transactions by keyword scoring against a configured category table.
package classify

import (
	"sort"
	"strings"

	"github.com/finsight-dev/finsight/internal/config"
	"github.com/finsight-dev/finsight/internal/model"
)

// category is one loaded scoring rule.
type category struct {
	name     string
	keywords []string // lowercased
	priority int
}

// Classifier assigns expense categories by keyword match score. It is
// immutable after construction, so a single instance is safe to share
// across concurrent analysis runs.
type Classifier struct {
	categories      []category
	defaultCategory string
	minimumScore    float64
}

// New builds a Classifier from a category config.
func New(cfg *config.Config) *Classifier {
	c := &Classifier{
		defaultCategory: cfg.DefaultCategory,
		minimumScore:    cfg.MinimumMatchScore,
	}
	if c.defaultCategory == "" {
		c.defaultCategory = config.FallbackCategory
	}

	for name, rule := range cfg.Categories {
		if len(rule.Keywords) == 0 {
			continue
		}
		kws := make([]string, len(rule.Keywords))
		for i, kw := range rule.Keywords {
			kws[i] = strings.ToLower(kw)
		}
		c.categories = append(c.categories, category{
			name:     name,
			keywords: kws,
			priority: rule.Priority,
		})
	}

	// Stable order so scoring ties resolve the same way every run.
	sort.Slice(c.categories, func(i, j int) bool {
		if c.categories[i].priority != c.categories[j].priority {
			return c.categories[i].priority > c.categories[j].priority
		}
		return c.categories[i].name < c.categories[j].name
	})

	return c
}

// NewDefault builds a Classifier from the built-in category table.
func NewDefault() *Classifier {
	return New(config.Default())
}

// NewFallback builds a Classifier with no categories at all; every
// expense lands in the fallback category. Used when the config file
// cannot be loaded, since a bad config must not abort the pipeline.
func NewFallback() *Classifier {
	return New(&config.Config{DefaultCategory: config.FallbackCategory})
}

// Categorize returns the best-matching category for an expense
// transaction, or the default category when nothing clears the
// minimum match score.
func (c *Classifier) Categorize(txn model.Transaction) string {
	text := strings.ToLower(txn.Description + " " + txn.Counterparty)

	best := c.defaultCategory
	bestScore := 0.0
	for _, cat := range c.categories {
		matched := 0
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		score := float64(matched) / float64(len(cat.keywords))
		// Strictly-greater keeps the earlier (higher-priority) category
		// on equal scores.
		if score >= c.minimumScore && score > bestScore {
			best = cat.name
			bestScore = score
		}
	}
	return best
}

// Apply returns a copy of the transaction list with Category filled in
// for every expense transaction that does not already carry one.
// Transfers and inflows pass through untouched.
func (c *Classifier) Apply(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	copy(out, txns)
	for i := range out {
		if !out[i].IsExpense() || out[i].Category != "" {
			continue
		}
		out[i].Category = c.Categorize(out[i])
	}
	return out
}
