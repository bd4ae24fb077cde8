package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/captaininvest/immosim/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

var summaryHeader = []string{
	"Scenario", "Variant", "Periods", "AcquisitionCost", "FinancedAmount", "DebtService",
	"GrossYield", "NetYield", "TotalCashFlow", "TotalTax", "FinalPropertyValue",
	"FinalDisposalValue", "TotalGain", "FinalAlternativeBalance", "TotalInvested", "Best",
}

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(summaryHeader); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(report) {
		if sc.Result == nil {
			continue
		}
		s := sc.Result.Summary
		best := domain.StrategyProperty
		if s.PropertyAdvantage().IsNegative() {
			best = domain.StrategyAlternative
		}
		row := []string{
			sc.Name,
			string(sc.Result.Variant),
			strconv.Itoa(s.Periods),
			s.AcquisitionCost.StringFixed(0),
			s.FinancedAmount.StringFixed(0),
			s.DebtService.StringFixed(0),
			s.GrossYield.StringFixed(2),
			s.NetYield.StringFixed(2),
			s.TotalCashFlow.StringFixed(0),
			s.TotalTax.StringFixed(0),
			s.FinalPropertyValue.StringFixed(0),
			s.FinalDisposalValue.StringFixed(0),
			s.TotalGain.StringFixed(0),
			s.FinalAlternativeBalance.StringFixed(0),
			s.TotalInvested.StringFixed(0),
			string(best),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
