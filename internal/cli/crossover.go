package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/captaininvest/immosim/internal/output"
)

// NewCrossoverCommand creates the crossover command.
func NewCrossoverCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "crossover <scenario-file>",
		Short: "Show when the property and the financial alternative swap the lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfiguration(args[0])
			if err != nil {
				return err
			}
			report, err := rootOpts.engine().RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, sc := range report.Scenarios {
				x := sc.Crossover
				if x == nil {
					fmt.Fprintf(out, "%s: no crossover\n", sc.Name)
					continue
				}
				leader := "financial alternative"
				if x.PropertyLeadsAfter {
					leader = "property"
				}
				fmt.Fprintf(out, "%s: %s takes the lead in year %d, month %d (period %d) at %s\n",
					sc.Name, leader, x.HoldingYear, x.Month, x.Period, output.FormatCurrency(x.Amount))
			}
			return nil
		},
	}
}
