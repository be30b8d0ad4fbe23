// Package commands wires the analysis engine to the finsight CLI.
package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/buildinfo"
	"github.com/finsight-dev/finsight/internal/classify"
	"github.com/finsight-dev/finsight/internal/config"
	"github.com/finsight-dev/finsight/internal/importer"
	"github.com/finsight-dev/finsight/internal/metrics"
	"github.com/finsight-dev/finsight/internal/model"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "finsight",
		Short:   "Financial intelligence for startup bank ledgers",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newCohortsCommand())
	rootCmd.AddCommand(newRunwayCommand())

	return rootCmd
}

// ledgerFlags are the input flags shared by every subcommand.
type ledgerFlags struct {
	ledgerPath string
	format     string
	configPath string
	balance    float64
	window     int
}

func (f *ledgerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ledgerPath, "ledger", "", "bank ledger CSV (required)")
	_ = cmd.MarkFlagRequired("ledger")
	cmd.Flags().StringVar(&f.format, "format", "generic", "ledger format (generic, mercury)")
	cmd.Flags().StringVar(&f.configPath, "config", "", "category/scenario config YAML")
	cmd.Flags().Float64Var(&f.balance, "balance", 0, "current cash balance")
	cmd.Flags().IntVar(&f.window, "window", 12, "analysis window in months")
}

// load parses the ledger and builds an engine from the config file.
// A broken or missing config degrades to the built-in defaults; the
// analysis must not die because a keyword file has a typo.
func (f *ledgerFlags) load(log *logrus.Logger) ([]model.Transaction, *metrics.Engine, error) {
	txns, err := importer.DefaultRegistry().ParseFile(f.ledgerPath, f.format)
	if err != nil {
		return nil, nil, err
	}
	log.WithFields(logrus.Fields{
		"ledger":       f.ledgerPath,
		"format":       f.format,
		"transactions": len(txns),
	}).Info("parsed ledger")

	var opts []metrics.Option
	if f.configPath != "" {
		cfg, err := config.Load(f.configPath)
		if err != nil {
			log.WithError(err).Warn("config load failed, using default classifier")
			opts = append(opts, metrics.WithClassifier(classify.NewFallback()))
		} else {
			opts = append(opts, metrics.WithClassifier(classify.New(cfg)))
			if scenarios := cfg.ScenarioConfigs(); scenarios != nil {
				opts = append(opts, metrics.WithScenarios(scenarios))
			}
		}
	}
	return txns, metrics.NewEngine(opts...), nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}
