package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/model"
)

func newCohortsCommand() *cobra.Command {
	var flags ledgerFlags

	cmd := &cobra.Command{
		Use:   "cohorts",
		Short: "Print the customer cohort retention tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			txns, engine, err := flags.load(log)
			if err != nil {
				return err
			}

			cm := engine.AnalyzeCohorts(txns)
			printCohorts(cmd, cm)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func printCohorts(cmd *cobra.Command, cm model.CohortMetrics) {
	if len(cm.Cohorts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No customer-qualifying transactions found.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprint(w, "COHORT\tCUSTOMERS\tREVENUE\tAOV")
	for m := 0; m < model.RetentionMonths; m++ {
		fmt.Fprintf(w, "\tM%d", m)
	}
	fmt.Fprintln(w)

	for _, c := range cm.Cohorts {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s",
			c.CohortMonth.Key(), c.CustomersAcquired, money(c.TotalRevenue), money(c.AverageOrderValue))
		for m := 0; m < model.RetentionMonths; m++ {
			if m >= c.ObservedMonths {
				fmt.Fprint(w, "\t-")
				continue
			}
			fmt.Fprintf(w, "\t%.0f%%", c.RetentionByMonth[m]*100)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Customers\t%d\n", cm.TotalCustomers)
	fmt.Fprintf(w, "Revenue\t%s\n", money(cm.TotalRevenue))
	fmt.Fprintf(w, "Net revenue retention\t%.0f%%\n", cm.NetRevenueRetention*100)
	fmt.Fprintf(w, "Churn rate\t%.1f%%\n", cm.ChurnRate*100)
	fmt.Fprintf(w, "Lifetime value\t%s\n", money(cm.LifetimeValue))
}
