package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/captaininvest/immosim/internal/calculation"
	"github.com/captaininvest/immosim/internal/domain"
	"github.com/captaininvest/immosim/internal/output"
)

// NewSetCommand creates the set command. It replays field updates through a
// calculation session the way an interactive form would: every accepted
// update triggers a full recomputation and rejected ones keep the last result.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	var scenarioName string

	cmd := &cobra.Command{
		Use:   "set <scenario-file> field=value...",
		Short: "Apply parameter updates to a scenario and recompute after each one",
		Long: `Apply parameter updates to one scenario of a file, recomputing after each
accepted update. Fields use their file names, for example:

  immosim set scenarios.yaml monthly_rent=900 loan_rate=3.2 rental_type=furnished

Fields: ` + strings.Join(domain.FieldNames(), ", "),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfiguration(args[0])
			if err != nil {
				return err
			}
			sc, err := pickScenario(cfg, scenarioName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			log := rootOpts.log("set").With(zap.String("scenario", sc.Name))
			session := calculation.NewSession(rootOpts.engine(), sc.Parameters, sc.Variant)
			if _, err := session.Recompute(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rejected := 0
			for _, kv := range args[1:] {
				field, raw, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("expected field=value, got %q", kv)
				}
				res, err := session.Update(ctx, strings.TrimSpace(field), strings.TrimSpace(raw))
				if err != nil {
					rejected++
					log.Warn("update rejected", zap.String("field", field), zap.Error(err))
					fmt.Fprintf(out, "✗ %s: %v\n", kv, err)
					continue
				}
				s := res.Summary
				fmt.Fprintf(out, "✓ %s: property %s, alternative %s\n", kv,
					output.FormatCurrency(s.TotalGain), output.FormatCurrency(s.FinalAlternativeBalance))
			}
			fmt.Fprintln(out)

			result := session.Result()
			crossover, err := calculation.FindCrossover(result)
			if err != nil {
				return err
			}
			scenarios := []domain.ScenarioResult{{
				Name:       sc.Name,
				Parameters: session.Parameters(),
				Result:     result,
				Crossover:  crossover,
			}}
			report := &domain.Report{
				GeneratedAt: time.Now(),
				Scenarios:   scenarios,
				Analysis:    calculation.AnalyzeScenarios(scenarios),
				Assumptions: calculation.ModelAssumptions(),
			}
			if err := rootOpts.emit(out, report); err != nil {
				return err
			}
			if rejected > 0 {
				return fmt.Errorf("%d update(s) rejected", rejected)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "scenario to update (default: the first one)")
	return cmd
}

func pickScenario(cfg *domain.Configuration, name string) (*domain.Scenario, error) {
	if name == "" {
		return &cfg.Scenarios[0], nil
	}
	for i := range cfg.Scenarios {
		if cfg.Scenarios[i].Name == name {
			return &cfg.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %q not found", name)
}
