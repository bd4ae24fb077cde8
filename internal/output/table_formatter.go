package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/captaininvest/immosim/internal/domain"
)

// TableFormatter renders a year-by-year breakdown of every scenario,
// sampled at the last period of each holding year.
type TableFormatter struct{}

func (t TableFormatter) Name() string      { return "table" }
func (t TableFormatter) Extension() string { return "txt" }

func (t TableFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range reportAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	for i, sc := range report.Scenarios {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		for _, line := range ScenarioAssumptions(sc) {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
		if sc.Result == nil || len(sc.Result.Rows) == 0 {
			fmt.Fprintln(&buf, "  no projection rows")
			continue
		}
		fmt.Fprintln(&buf)

		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Year\tRent\tDebt service\tInterest\tRemaining\tTax\tCash flow\tValue\tCG tax\tNet disposal\tAlternative\t")
		for _, row := range sc.Result.YearEndRows() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				row.HoldingYear,
				FormatCurrency(row.Rent),
				FormatCurrency(row.DebtService),
				FormatCurrency(row.Interest),
				FormatCurrency(row.RemainingPrincipal),
				FormatCurrency(row.Tax),
				FormatCurrency(row.CashFlow),
				FormatCurrency(row.PropertyValue),
				FormatCurrency(row.CapitalGainsTax),
				FormatCurrency(row.NetDisposalValue),
				FormatCurrency(row.AlternativeBalance),
			)
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
		if sc.Result.Variant == domain.VariantMonthly {
			fmt.Fprintln(&buf, "  (monthly figures of the last month of each year)")
		}
	}
	return buf.Bytes(), nil
}
