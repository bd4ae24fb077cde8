package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/captaininvest/immosim/internal/domain"
)

// ConsoleFormatter prints the summary tiles of every scenario and the recommendation.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "REAL ESTATE VS FINANCIAL INVESTMENT")
	fmt.Fprintln(&buf, "===================================")

	for _, sc := range report.Scenarios {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s (%s)\n", sc.Name, variantOf(sc))
		fmt.Fprintln(&buf, strings.Repeat("-", len(sc.Name)+len(variantOf(sc))+3))
		if sc.Result == nil {
			fmt.Fprintln(&buf, "  no result")
			continue
		}
		s := sc.Result.Summary
		fmt.Fprintf(&buf, "  Acquisition cost:     %s\n", FormatCurrency(s.AcquisitionCost))
		fmt.Fprintf(&buf, "  Financed:             %s over %d %ss\n", FormatCurrency(s.FinancedAmount), s.Periods, variantOf(sc).PeriodLabel())
		fmt.Fprintf(&buf, "  Debt service/period:  %s\n", FormatCurrency(s.DebtService))
		fmt.Fprintf(&buf, "  Gross yield:          %s\n", FormatPercentage(s.GrossYield))
		fmt.Fprintf(&buf, "  Net yield:            %s\n", FormatPercentage(s.NetYield))
		fmt.Fprintf(&buf, "  Total cash flow:      %s\n", FormatCurrency(s.TotalCashFlow))
		fmt.Fprintf(&buf, "  Total tax:            %s\n", FormatCurrency(s.TotalTax))
		fmt.Fprintf(&buf, "  Final property value: %s\n", FormatCurrency(s.FinalPropertyValue))
		fmt.Fprintf(&buf, "  Net disposal value:   %s\n", FormatCurrency(s.FinalDisposalValue))
		fmt.Fprintf(&buf, "  Property total gain:  %s\n", FormatCurrency(s.TotalGain))
		fmt.Fprintf(&buf, "  Alternative balance:  %s (invested %s)\n", FormatCurrency(s.FinalAlternativeBalance), FormatCurrency(s.TotalInvested))
		if x := sc.Crossover; x != nil {
			fmt.Fprintf(&buf, "  Crossover:            year %d, month %d at %s\n", x.HoldingYear, x.Month, FormatCurrency(x.Amount))
		}
	}

	if a := report.Analysis; a != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "RECOMMENDATION")
		for _, r := range a.Recommendations {
			fmt.Fprintf(&buf, "  %s: %s wins by %s (%s)\n", r.ScenarioName, strategyLabel(r.Best), FormatCurrency(r.Margin), FormatRebate(r.MarginPct))
		}
		for _, k := range a.KeyConsiderations {
			fmt.Fprintf(&buf, "  • %s\n", k)
		}
	}
	return buf.Bytes(), nil
}

func variantOf(sc domain.ScenarioResult) domain.Variant {
	if sc.Result == nil {
		return domain.VariantMonthly
	}
	return sc.Result.Variant
}

func strategyLabel(s domain.Strategy) string {
	if s == domain.StrategyProperty {
		return "property"
	}
	return "financial alternative"
}
