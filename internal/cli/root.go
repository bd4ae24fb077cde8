// Package cli implements the immosim command line.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/captaininvest/immosim/internal/calculation"
	"github.com/captaininvest/immosim/internal/logging"
	"github.com/captaininvest/immosim/internal/output"
)

// Settings are the command line settings shared by every command. They come
// from flags, IMMOSIM_* environment variables and an optional settings file,
// in that order of precedence.
type Settings struct {
	Log    logging.Config `mapstructure:"log"`
	Format string         `mapstructure:"format"`
	Output string         `mapstructure:"output"` // directory; empty writes to stdout
}

// RootOptions holds global state for all commands.
type RootOptions struct {
	SettingsFile string
	Settings     Settings
	Logger       *zap.Logger

	v *viper.Viper
}

// NewRootCommand creates the root command for the immosim CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "immosim",
		Short: "Real estate vs financial investment simulator",
		Long: `immosim projects a rental property purchase period by period (loan,
rent, charges, taxes, resale value) and compares it with investing the same
cash flows in a financial product.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Logger != nil {
				_ = opts.Logger.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.SettingsFile, "settings", "", "optional settings file (yaml, json or toml)")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("log-format", "console", "log format (console|json)")
	pf.String("log-file", "", "write logs to this file instead of stderr")
	pf.StringP("format", "f", "console", "report format ("+strings.Join(output.AvailableFormatterNames(), "|")+")")
	pf.StringP("output", "o", "", "write the report to a timestamped file in this directory")

	for key, flag := range map[string]string{
		"log.level":       "log-level",
		"log.format":      "log-format",
		"log.output_file": "log-file",
		"format":          "format",
		"output":          "output",
	} {
		_ = opts.v.BindPFlag(key, pf.Lookup(flag))
	}
	opts.v.SetEnvPrefix("IMMOSIM")
	opts.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	opts.v.AutomaticEnv()

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewExampleCommand(opts))
	cmd.AddCommand(NewCrossoverCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))

	return cmd
}

// load resolves the settings and builds the logger.
func (o *RootOptions) load() error {
	if o.SettingsFile != "" {
		o.v.SetConfigFile(o.SettingsFile)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read settings %s: %w", o.SettingsFile, err)
		}
	}
	if err := o.v.Unmarshal(&o.Settings); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	if output.GetFormatterByName(o.Settings.Format) == nil && output.NormalizeFormatName(o.Settings.Format) != "all" {
		return fmt.Errorf("%w: %q (available: %s)", output.ErrUnsupportedFormat, o.Settings.Format, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if o.Logger == nil {
		logger, err := logging.New(o.Settings.Log)
		if err != nil {
			return err
		}
		o.Logger = logger
	}
	return nil
}

// engine returns a calculation engine logging through the CLI logger.
func (o *RootOptions) engine() *calculation.CalculationEngine {
	e := calculation.NewCalculationEngine()
	if o.Logger != nil {
		e.SetLogger(o.Logger.Sugar())
	}
	return e
}

func (o *RootOptions) log(op string) *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger.With(zap.String("op", op))
}
