package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/captaininvest/immosim/internal/domain"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported report format")

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// Render formats report and writes it to w.
func Render(w io.Writer, report *domain.Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupported(format)
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes the report to a timestamped file in dir and returns
// its path. "all" writes every registered format.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, f := range builtInFormatters {
			p, err := WriteFormatted(f, report, dir)
			if err != nil {
				return paths, err
			}
			paths = append(paths, p)
		}
		return paths, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	p, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{p}, nil
}
