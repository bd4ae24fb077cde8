package output

import (
	"fmt"

	"github.com/captaininvest/immosim/internal/calculation"
	"github.com/captaininvest/immosim/internal/domain"
)

// DefaultAssumptions lists the modelling rules rendered when a report carries none.
var DefaultAssumptions = calculation.ModelAssumptions()

func reportAssumptions(report *domain.Report) []string {
	if len(report.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return report.Assumptions
}

// ScenarioAssumptions describes the inputs of one scenario, one line each.
func ScenarioAssumptions(sc domain.ScenarioResult) []string {
	p := sc.Parameters
	variant := domain.VariantMonthly
	if sc.Result != nil {
		variant = sc.Result.Variant
	}
	return []string{
		fmt.Sprintf("Purchase: %s + %s notary fees, %s %s",
			FormatCurrency(p.PurchasePrice), FormatPercentage(p.NotaryFeeRate), FormatCurrency(p.FurnitureCost), extraCostLabel(variant)),
		fmt.Sprintf("Loan: %d years at %s, insurance %s, down payment %s",
			p.LoanTermYears, FormatPercentage(p.LoanRate), FormatPercentage(p.InsuranceRate), FormatCurrency(p.DownPayment)),
		fmt.Sprintf("Rent: %s/month, %s rental, charges %s of rent, property tax %s/year",
			FormatCurrency(p.MonthlyRent), p.RentalType, FormatPercentage(p.ChargesRate), FormatCurrency(p.PropertyTax)),
		fmt.Sprintf("Ownership: %s, marginal tax rate %s", p.LegalStructure, FormatPercentage(p.MarginalTaxRate)),
		fmt.Sprintf("Growth: rent %s, charges %s, value %s per year",
			FormatPercentage(p.RentGrowthRate), FormatPercentage(p.ChargesGrowthRate), FormatPercentage(p.ValueGrowthRate)),
		fmt.Sprintf("Alternative: %s per year, taxed under %s", FormatPercentage(p.AlternativeReturnRate), p.AlternativeTaxRegime),
	}
}

func extraCostLabel(v domain.Variant) string {
	if v == domain.VariantAnnual {
		return "renovation (financed)"
	}
	return "furniture"
}
