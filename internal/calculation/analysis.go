package calculation

import (
	"fmt"
	"sort"

	"github.com/captaininvest/immosim/internal/domain"
	money "github.com/captaininvest/immosim/pkg/decimal"
	"github.com/shopspring/decimal"
)

// AnalyzeScenarios recommends a strategy per scenario and ranks the scenarios
// by final property wealth and by final alternative balance.
func AnalyzeScenarios(scenarios []domain.ScenarioResult) *domain.ScenarioAnalysis {
	if len(scenarios) == 0 {
		return nil
	}
	analysis := &domain.ScenarioAnalysis{}

	type ranked struct {
		name        string
		property    decimal.Decimal
		alternative decimal.Decimal
	}
	ranks := make([]ranked, 0, len(scenarios))

	for _, sc := range scenarios {
		if sc.Result == nil {
			continue
		}
		s := sc.Result.Summary
		rec := domain.Recommendation{
			ScenarioName: sc.Name,
			PropertyGain: s.TotalGain,
			Alternative:  s.FinalAlternativeBalance,
			Margin:       s.PropertyAdvantage().Abs(),
			MarginPct:    decimal.Zero,
		}
		rec.Best = domain.StrategyProperty
		loser := s.FinalAlternativeBalance
		if s.PropertyAdvantage().IsNegative() {
			rec.Best = domain.StrategyAlternative
			loser = s.TotalGain
		}
		if !loser.IsZero() {
			rec.MarginPct = money.Tenths(rec.Margin.Div(loser.Abs()).Mul(decimal.NewFromInt(100)))
		}
		analysis.Recommendations = append(analysis.Recommendations, rec)
		ranks = append(ranks, ranked{sc.Name, s.TotalGain, s.FinalAlternativeBalance})
		analysis.KeyConsiderations = append(analysis.KeyConsiderations, considerations(sc)...)
	}
	if len(ranks) == 0 {
		return analysis
	}

	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].property.GreaterThan(ranks[j].property) })
	analysis.BestPropertyScenario = ranks[0].name
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].alternative.GreaterThan(ranks[j].alternative) })
	analysis.BestAlternativeScenario = ranks[0].name
	return analysis
}

func considerations(sc domain.ScenarioResult) []string {
	var out []string
	s := sc.Result.Summary
	if s.TotalCashFlow.IsNegative() {
		out = append(out, fmt.Sprintf("%s: the property needs %s of personal effort over the projection", sc.Name, s.TotalCashFlow.Neg().StringFixed(0)))
	}
	if s.FinancedAmount.IsZero() {
		out = append(out, fmt.Sprintf("%s: bought without a loan, no leverage on the property side", sc.Name))
	}
	if sc.Crossover != nil {
		leader := "the financial alternative"
		if sc.Crossover.PropertyLeadsAfter {
			leader = "the property"
		}
		out = append(out, fmt.Sprintf("%s: %s takes the lead in year %d", sc.Name, leader, sc.Crossover.HoldingYear))
	}
	return out
}

// ModelAssumptions lists the fixed rules every projection applies.
func ModelAssumptions() []string {
	pct := func(d decimal.Decimal) string { return d.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%" }
	return []string{
		fmt.Sprintf("Social levies: %s on rental income (bare) and capital gains", pct(SocialLevyRate)),
		fmt.Sprintf("Corporate tax (SCI at IS): %s of the real-regime result", pct(CorporateTaxRate)),
		fmt.Sprintf("Micro regime: %s taxable under %s/year bare, %s taxable under %s/year furnished",
			pct(BareMicroTaxableShare), BareMicroThreshold, pct(FurnishedMicroShare), FurnishedMicroThreshold),
		fmt.Sprintf("Capital gains: %s income tax, rebates from year 6 for personal ownership", pct(CapitalGainsIncomeTaxRate)),
		fmt.Sprintf("Financial gains: flat tax %s or marginal rate plus social levies", pct(FinancialFlatTaxRate)),
		"Furnished depreciation: building over 20 years, furniture over 5 years (monthly projection)",
		"Rent, property tax and value escalate with compounded annual rates",
	}
}
