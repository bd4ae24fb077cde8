package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/captaininvest/immosim/internal/domain"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "run <scenario-file>",
		Short: "Project every scenario of a file and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfiguration(args[0])
			if err != nil {
				return err
			}
			if variant != "" {
				v, err := domain.ParseVariant(variant)
				if err != nil {
					return err
				}
				for i := range cfg.Scenarios {
					cfg.Scenarios[i].Variant = v
				}
			}

			log := rootOpts.log("run")
			report, err := rootOpts.engine().RunScenarios(cmd.Context(), cfg)
			if err != nil {
				log.Error("projection failed", zap.String("file", args[0]), zap.Error(err))
				return err
			}
			for _, sc := range report.Scenarios {
				log.Info("scenario projected",
					zap.String("scenario", sc.Name),
					zap.String("run_id", sc.Result.RunID),
					zap.Int("periods", sc.Result.Summary.Periods),
				)
			}
			return rootOpts.emit(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "override the variant of every scenario (monthly|annual)")
	return cmd
}
