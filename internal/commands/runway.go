package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/model"
)

func newRunwayCommand() *cobra.Command {
	var flags ledgerFlags

	cmd := &cobra.Command{
		Use:   "runway",
		Short: "Project cash runway under the what-if scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			txns, engine, err := flags.load(log)
			if err != nil {
				return err
			}

			sm, err := engine.ComputeMetrics(txns, decimal.NewFromFloat(flags.balance), flags.window)
			if err != nil {
				return err
			}

			printPrediction(cmd, engine.PredictRunway(sm))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func printPrediction(cmd *cobra.Command, p model.RunwayPrediction) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Base case\t%s\n", monthsLabel(p.BaseCase.RunwayMonths))
	fmt.Fprintf(w, "Optimistic\t%s\n", monthsLabel(p.BaseCase.OptimisticMonths))
	fmt.Fprintf(w, "Pessimistic\t%s\n", monthsLabel(p.BaseCase.PessimisticMonths))
	fmt.Fprintf(w, "Burn volatility\t%.0f%%\n", p.BaseCase.BurnVolatility*100)
	fmt.Fprintf(w, "Revenue volatility\t%.0f%%\n", p.BaseCase.RevenueVolatility*100)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SCENARIO\tRUNWAY\tENDING BALANCE")
	for _, sc := range p.Scenarios {
		fmt.Fprintf(w, "%s\t%s\t%s\n", sc.Name, monthsLabel(sc.RunwayMonths), money(sc.EndingBalance))
	}

	if len(p.Recommendations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "PRIORITY\tRECOMMENDATION")
		for _, rec := range p.Recommendations {
			fmt.Fprintf(w, "%s\t[%s] %s\n", rec.Priority, rec.Category, rec.Message)
		}
	}

	if len(p.EarlyWarnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "SEVERITY\tWARNING")
		for _, warn := range p.EarlyWarnings {
			fmt.Fprintf(w, "%s\t%s\n", warn.Severity, warn.Message)
		}
	}
}
