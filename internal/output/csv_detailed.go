package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/captaininvest/immosim/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVDetailedExporter writes every projection row of every scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

var detailedHeader = []string{
	"Scenario", "Period", "HoldingYear",
	"Rent", "Charges", "PropertyTax",
	"DebtService", "Interest", "PrincipalRepaid", "RemainingPrincipal",
	"Depreciation", "CumulativeDepreciation", "TaxableBase", "Tax", "CashFlow",
	"PropertyValue", "CapitalGain", "AdjustedCapitalGain", "IncomeTaxRebatePct", "SocialLevyRebatePct",
	"CapitalGainsIncomeTax", "CapitalGainsSocialLevy", "CapitalGainsTax", "NetDisposalValue",
	"AlternativeContribution", "AlternativeGrossGain", "AlternativeTax", "AlternativeNetGain", "AlternativeBalance",
}

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(detailedHeader); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(report) {
		if sc.Result == nil {
			continue
		}
		for _, r := range sc.Result.Rows {
			row := []string{sc.Name, strconv.Itoa(r.Period), strconv.Itoa(r.HoldingYear)}
			row = appendFixed(row, 0, r.Rent, r.Charges, r.PropertyTax,
				r.DebtService, r.Interest, r.PrincipalRepaid, r.RemainingPrincipal,
				r.Depreciation, r.CumulativeDepreciation, r.TaxableBase, r.Tax, r.CashFlow,
				r.PropertyValue, r.CapitalGain, r.AdjustedCapitalGain)
			row = appendFixed(row, 1, r.IncomeTaxRebatePct, r.SocialLevyRebatePct)
			row = appendFixed(row, 0, r.CapitalGainsIncomeTax, r.CapitalGainsSocialLevy, r.CapitalGainsTax, r.NetDisposalValue,
				r.AlternativeContribution, r.AlternativeGrossGain, r.AlternativeTax, r.AlternativeNetGain, r.AlternativeBalance)
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func appendFixed(row []string, places int32, values ...decimal.Decimal) []string {
	for _, v := range values {
		row = append(row, v.StringFixed(places))
	}
	return row
}
