package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/captaininvest/immosim/internal/config"
)

// NewExampleCommand creates the example command.
func NewExampleCommand(rootOpts *RootOptions) *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if write != "" {
				if err := config.SaveConfiguration(cfg, write); err != nil {
					return err
				}
				rootOpts.log("example").Sugar().Infow("example written", "path", write)
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", write)
				return nil
			}
			b, err := config.MarshalConfiguration(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}

	cmd.Flags().StringVarP(&write, "write", "w", "", "write the example to this file")
	return cmd
}
