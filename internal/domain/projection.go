package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionRow holds every derived quantity of one period. Money fields are
// rounded to whole euros and rebate percentages to one decimal when the row is
// emitted; rows are never modified afterwards.
type ProjectionRow struct {
	Period      int `json:"period"`
	HoldingYear int `json:"holding_year"`

	// Operation
	Rent        decimal.Decimal `json:"rent"`
	Charges     decimal.Decimal `json:"charges"`
	PropertyTax decimal.Decimal `json:"property_tax"`

	// Loan
	DebtService        decimal.Decimal `json:"debt_service"` // annuity + insurance
	Interest           decimal.Decimal `json:"interest"`
	PrincipalRepaid    decimal.Decimal `json:"principal_repaid"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`

	// Rental income tax
	Depreciation           decimal.Decimal `json:"depreciation"`
	CumulativeDepreciation decimal.Decimal `json:"cumulative_depreciation"`
	TaxableBase            decimal.Decimal `json:"taxable_base"`
	Tax                    decimal.Decimal `json:"tax"`
	CashFlow               decimal.Decimal `json:"cash_flow"`

	// Hypothetical sale at the end of the period
	PropertyValue          decimal.Decimal `json:"property_value"`
	CapitalGain            decimal.Decimal `json:"capital_gain"`
	AdjustedCapitalGain    decimal.Decimal `json:"adjusted_capital_gain"`
	IncomeTaxRebatePct     decimal.Decimal `json:"income_tax_rebate_pct"`
	SocialLevyRebatePct    decimal.Decimal `json:"social_levy_rebate_pct"`
	CapitalGainsIncomeTax  decimal.Decimal `json:"capital_gains_income_tax"`
	CapitalGainsSocialLevy decimal.Decimal `json:"capital_gains_social_levy"`
	CapitalGainsTax        decimal.Decimal `json:"capital_gains_tax"`
	NetDisposalValue       decimal.Decimal `json:"net_disposal_value"`

	// Financial alternative
	AlternativeBalance      decimal.Decimal `json:"alternative_balance"`
	AlternativeContribution decimal.Decimal `json:"alternative_contribution"`
	AlternativeGrossGain    decimal.Decimal `json:"alternative_gross_gain"`
	AlternativeTax          decimal.Decimal `json:"alternative_tax"`
	AlternativeNetGain      decimal.Decimal `json:"alternative_net_gain"`
}

// Summary aggregates a projection. Totals are sums of the rounded row values.
type Summary struct {
	AcquisitionCost decimal.Decimal `json:"acquisition_cost"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	FinancedAmount  decimal.Decimal `json:"financed_amount"`
	DebtService     decimal.Decimal `json:"debt_service"`
	SeedCapital     decimal.Decimal `json:"seed_capital"`
	Periods         int             `json:"periods"`

	TotalCashFlow decimal.Decimal `json:"total_cash_flow"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	GrossYield    decimal.Decimal `json:"gross_yield"` // percent, 2 decimals
	NetYield      decimal.Decimal `json:"net_yield"`   // percent, 2 decimals

	FinalPropertyValue decimal.Decimal `json:"final_property_value"`
	FinalDisposalValue decimal.Decimal `json:"final_disposal_value"`
	TotalGain          decimal.Decimal `json:"total_gain"` // total cash flow + final disposal value

	FinalAlternativeBalance decimal.Decimal `json:"final_alternative_balance"`
	TotalInvested           decimal.Decimal `json:"total_invested"`
}

// PropertyAdvantage is how much the property path leads the financial
// alternative at the horizon. Negative when the alternative wins.
func (s Summary) PropertyAdvantage() decimal.Decimal {
	return s.TotalGain.Sub(s.FinalAlternativeBalance)
}

// SimulationResult is the complete output of one projection run.
type SimulationResult struct {
	RunID   string          `json:"run_id"`
	Variant Variant         `json:"variant"`
	Rows    []ProjectionRow `json:"rows"`
	Summary Summary         `json:"summary"`
}

// FinalRow returns the last emitted row, if any.
func (r *SimulationResult) FinalRow() (ProjectionRow, bool) {
	if r == nil || len(r.Rows) == 0 {
		return ProjectionRow{}, false
	}
	return r.Rows[len(r.Rows)-1], true
}

// YearEndRows samples the projection once per holding year.
func (r *SimulationResult) YearEndRows() []ProjectionRow {
	if r == nil {
		return nil
	}
	ppy := r.Variant.PeriodsPerYear()
	out := make([]ProjectionRow, 0, len(r.Rows)/ppy+1)
	for _, row := range r.Rows {
		if row.Period%ppy == 0 {
			out = append(out, row)
		}
	}
	return out
}

// Crossover describes the first period in which the lead between the
// property's net disposal value and the alternative balance changes side.
type Crossover struct {
	Period      int `json:"period"`
	HoldingYear int `json:"holding_year"`
	Month       int `json:"month"` // 1..12 within the holding year

	// Fraction (0..1) of the period at which the two curves meet
	Fraction decimal.Decimal `json:"fraction_of_period"`
	Amount   decimal.Decimal `json:"amount"`

	// PropertyLeadsAfter is true when the property overtakes the alternative
	PropertyLeadsAfter bool `json:"property_leads_after"`
}

// ScenarioResult pairs a named parameter set with its projection.
type ScenarioResult struct {
	Name       string            `json:"name"`
	Parameters ParameterSet      `json:"parameters"`
	Result     *SimulationResult `json:"result"`
	Crossover  *Crossover        `json:"crossover,omitempty"`
}

// Strategy names one of the two compared paths.
type Strategy string

const (
	StrategyProperty    Strategy = "property"
	StrategyAlternative Strategy = "financial"
)

// Recommendation states which path wins for one scenario and by how much.
type Recommendation struct {
	ScenarioName string          `json:"scenario_name"`
	Best         Strategy        `json:"best"`
	PropertyGain decimal.Decimal `json:"property_gain"`
	Alternative  decimal.Decimal `json:"alternative"`
	Margin       decimal.Decimal `json:"margin"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
}

// ScenarioAnalysis ranks several scenarios against each other.
type ScenarioAnalysis struct {
	BestPropertyScenario    string           `json:"best_property_scenario"`
	BestAlternativeScenario string           `json:"best_alternative_scenario"`
	Recommendations         []Recommendation `json:"recommendations"`
	KeyConsiderations       []string         `json:"key_considerations"`
}

// Report is what the output layer renders.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Scenarios   []ScenarioResult  `json:"scenarios"`
	Analysis    *ScenarioAnalysis `json:"analysis,omitempty"`
	Assumptions []string          `json:"assumptions"`
}
