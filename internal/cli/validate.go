package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario-file>",
		Short: "Check a scenario file without projecting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfiguration(args[0])
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "✗ Validation failed")
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ %d scenario(s) valid\n", len(cfg.Scenarios))
			for _, sc := range cfg.Scenarios {
				fmt.Fprintf(out, "  - %s (%s, %s, %s)\n", sc.Name, sc.Variant, sc.Parameters.RentalType, sc.Parameters.LegalStructure)
			}
			return nil
		},
	}
}
