package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/captaininvest/immosim/internal/config"
	"github.com/captaininvest/immosim/internal/domain"
	"github.com/captaininvest/immosim/internal/output"
)

// loadConfiguration reads and validates a scenario file.
func (o *RootOptions) loadConfiguration(path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	o.log("load").Sugar().Debugw("scenario file loaded", "file", path, "scenarios", len(cfg.Scenarios))
	return cfg, nil
}

// emit renders report to w, or to files when an output directory is set.
// "all" requires an output directory since it produces several documents.
func (o *RootOptions) emit(w io.Writer, report *domain.Report) error {
	if o.Settings.Output == "" {
		if output.NormalizeFormatName(o.Settings.Format) == "all" {
			return errors.New(`format "all" needs --output`)
		}
		return output.Render(w, report, o.Settings.Format)
	}
	paths, err := output.GenerateReport(report, o.Settings.Format, o.Settings.Output)
	if err != nil {
		return err
	}
	for _, p := range paths {
		o.log("emit").Sugar().Infow("report written", "path", p)
		fmt.Fprintf(w, "wrote %s\n", p)
	}
	return nil
}
