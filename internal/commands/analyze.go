package commands

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/model"
)

func newAnalyzeCommand() *cobra.Command {
	var flags ledgerFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the monthly metrics snapshot for a bank ledger",
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

			cohorts := engine.AnalyzeCohorts(txns)
			ue := engine.ComputeUnitEconomics(txns, cohorts)
			printMetrics(cmd, sm, ue)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func printMetrics(cmd *cobra.Command, sm model.StartupMetrics, ue model.UnitEconomics) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "MONTH\tREVENUE\tEXPENSES\tNET BURN\tTXNS\tTOP CATEGORY")
	for _, m := range sm.Monthly {
		top := "-"
		if len(m.TopExpenseCategories) > 0 {
			top = m.TopExpenseCategories[0].Category
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			m.Month.Key(), money(m.Revenue), money(m.Expenses), money(m.NetBurn), m.TransactionCount, top)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "MRR\t%s\n", money(sm.MRR))
	fmt.Fprintf(w, "ARR\t%s\n", money(sm.ARR))
	fmt.Fprintf(w, "Monthly growth\t%.1f%%\n", sm.MonthlyGrowthRate*100)
	fmt.Fprintf(w, "Growth score\t%d/10\n", sm.GrowthScore)
	fmt.Fprintf(w, "Avg burn (3mo)\t%s\n", money(sm.AvgMonthlyBurn))
	fmt.Fprintf(w, "Runway\t%s\n", monthsLabel(sm.RunwayMonths))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "LTV\t%s\n", money(ue.LifetimeValue))
	fmt.Fprintf(w, "CAC\t%s\n", money(ue.CustomerAcquisitionCost))
	fmt.Fprintf(w, "LTV:CAC\t%.1f\n", ue.LTVToCACRatio)
	fmt.Fprintf(w, "Payback\t%.1f months\n", ue.PaybackPeriodMonths)
	fmt.Fprintf(w, "Data quality\t%s\n", ue.DataQuality)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "MILESTONE\tSTATUS")
	for _, ms := range sm.Milestones {
		fmt.Fprintf(w, "%s\t%s\n", ms.Name, milestoneLabel(ms))
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func monthsLabel(months float64) string {
	if math.IsInf(months, 1) {
		return "infinite (cash-flow positive)"
	}
	return fmt.Sprintf("%.1f months", months)
}

// milestoneLabel renders a milestone status; crossing dates are linear
// estimates, so they are labeled as such.
func milestoneLabel(ms model.Milestone) string {
	if ms.Achieved {
		if ms.EstimatedDate != nil {
			return fmt.Sprintf("achieved (est. %s)", ms.EstimatedDate.Format("2006-01-02"))
		}
		return "achieved"
	}
	if math.IsInf(ms.MonthsAway, 1) {
		return "not projectable at current growth"
	}
	return fmt.Sprintf("~%.0f months away", ms.MonthsAway)
}
