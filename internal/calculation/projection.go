package calculation

import (
	"fmt"

	"github.com/captaininvest/immosim/internal/domain"
	money "github.com/captaininvest/immosim/pkg/decimal"
	"github.com/shopspring/decimal"
)

// variantPolicy captures everything that differs between the monthly and the
// annual projection.
type variantPolicy struct {
	variant        domain.Variant
	periodsPerYear int

	// financeRenovation adds the furniture/renovation cost to the loan.
	financeRenovation bool
	// furnitureDepreciation deducts the furniture cost over 5 years.
	furnitureDepreciation bool
	// contributeFirst invests the period's shortfall before growth.
	contributeFirst bool
}

func policyFor(v domain.Variant) (variantPolicy, error) {
	switch v {
	case domain.VariantMonthly, "":
		return variantPolicy{
			variant:               domain.VariantMonthly,
			periodsPerYear:        12,
			furnitureDepreciation: true,
		}, nil
	case domain.VariantAnnual:
		return variantPolicy{
			variant:           domain.VariantAnnual,
			periodsPerYear:    1,
			financeRenovation: true,
			contributeFirst:   true,
		}, nil
	}
	return variantPolicy{}, fmt.Errorf("%w: unknown variant %q", domain.ErrInvalidParameter, v)
}

// periodCount is the number of rows: the loan term capped at 30 years for the
// monthly variant, a fixed 30 years for the annual one.
func (vp variantPolicy) periodCount(termYears int) int {
	if vp.variant == domain.VariantAnnual {
		return domain.AnnualHorizon
	}
	n := termYears * vp.periodsPerYear
	if n > domain.MaxMonthlyPeriods {
		n = domain.MaxMonthlyPeriods
	}
	if n < 0 {
		return 0
	}
	return n
}

// financedAmount is the borrowed capital, clamped at zero.
func (vp variantPolicy) financedAmount(p domain.ParameterSet) decimal.Decimal {
	need := p.AcquisitionCost()
	if vp.financeRenovation {
		need = need.Add(p.FurnitureCost)
	}
	return money.NonNegative(need.Sub(p.DownPayment))
}

// seedCapital is the opening balance of the alternative. The annual variant
// also counts what the buyer spends up front in the first year.
func (vp variantPolicy) seedCapital(p domain.ParameterSet) decimal.Decimal {
	if vp.variant != domain.VariantAnnual {
		return p.DownPayment
	}
	firstYearCharges := p.MonthlyRent.Mul(decimal.NewFromInt(12)).Mul(money.Percent(p.ChargesRate))
	return p.DownPayment.Add(p.FurnitureCost).Add(p.PropertyTax).Add(firstYearCharges)
}

// PeriodState is the position carried from one period to the next.
type PeriodState struct {
	Property               PropertyState
	RemainingPrincipal     decimal.Decimal
	CumulativeDepreciation decimal.Decimal
	AlternativeBalance     decimal.Decimal
}

// plan is the precomputed, read-only context of one projection.
type plan struct {
	params       domain.ParameterSet
	policy       variantPolicy
	periods      int
	regime       TaxRegime
	loan         Loan
	property     PropertyProjector
	depreciation Depreciation
	rentalTax    *RentalTaxCalculator
	alternative  AlternativeProjector
	seed         decimal.Decimal
}

func newPlan(p domain.ParameterSet, v domain.Variant) (*plan, error) {
	policy, err := policyFor(v)
	if err != nil {
		return nil, err
	}
	regime, err := ResolveTaxRegime(p.LegalStructure, p.RentalType)
	if err != nil {
		return nil, err
	}
	ppy := policy.periodsPerYear
	return &plan{
		params:       p,
		policy:       policy,
		periods:      policy.periodCount(p.LoanTermYears),
		regime:       regime,
		loan:         NewLoan(policy.financedAmount(p), p.LoanRate, p.InsuranceRate, p.LoanTermYears*ppy, ppy),
		property:     NewPropertyProjector(p, ppy),
		depreciation: NewDepreciation(p, ppy, policy.furnitureDepreciation),
		rentalTax:    NewRentalTaxCalculator(p.MarginalTaxRate),
		alternative:  NewAlternativeProjector(p, ppy, policy.contributeFirst),
		seed:         policy.seedCapital(p),
	}, nil
}

func (pl *plan) initialState() PeriodState {
	return PeriodState{
		Property:               pl.property.Initial(pl.params, pl.policy.periodsPerYear),
		RemainingPrincipal:     pl.loan.Principal,
		CumulativeDepreciation: decimal.Zero,
		AlternativeBalance:     pl.seed,
	}
}

// holdingYear is the 1-based year a period falls in.
func (pl *plan) holdingYear(period int) int {
	ppy := pl.policy.periodsPerYear
	return (period + ppy - 1) / ppy
}

// step is the pure per-period transition. prev is not modified.
func (pl *plan) step(prev PeriodState, period int) (domain.ProjectionRow, PeriodState, error) {
	year := pl.holdingYear(period)
	prop := pl.property.Advance(prev.Property, period)

	loan := pl.loan.Step(prev.RemainingPrincipal, period)
	debtService := decimal.Zero
	if pl.loan.Active(period) {
		debtService = pl.loan.PeriodPayment()
	}

	depreciation := pl.depreciation.For(period)
	cumulative := money.Carry(prev.CumulativeDepreciation.Add(depreciation))

	tax, err := pl.rentalTax.Calculate(pl.regime, RentalIncome{
		GrossRent:      prop.Rent,
		NetRent:        prop.NetRent(),
		Interest:       loan.Interest,
		Depreciation:   depreciation,
		PeriodsPerYear: pl.policy.periodsPerYear,
	})
	if err != nil {
		return domain.ProjectionRow{}, prev, err
	}

	cashFlow := prop.NetRent().Sub(debtService).Sub(tax.Total)
	alt := pl.alternative.Step(prev.AlternativeBalance, cashFlow.Neg())

	gains := CalculateCapitalGains(prop.Value, pl.params.PurchasePrice, cumulative, year, pl.params.LegalStructure)
	disposal := prop.Value.Sub(loan.Remaining).Sub(gains.Total)

	row := domain.ProjectionRow{
		Period:                  period,
		HoldingYear:             year,
		Rent:                    money.Units(prop.Rent),
		Charges:                 money.Units(prop.Charges),
		PropertyTax:             money.Units(prop.PropertyTax),
		DebtService:             money.Units(debtService),
		Interest:                money.Units(loan.Interest),
		PrincipalRepaid:         money.Units(loan.PrincipalRepaid),
		RemainingPrincipal:      money.Units(loan.Remaining),
		Depreciation:            money.Units(depreciation),
		CumulativeDepreciation:  money.Units(cumulative),
		TaxableBase:             money.Units(tax.TaxableBase),
		Tax:                     money.Units(tax.Total),
		CashFlow:                money.Units(cashFlow),
		PropertyValue:           money.Units(prop.Value),
		CapitalGain:             money.Units(gains.GrossGain),
		AdjustedCapitalGain:     money.Units(gains.AdjustedGain),
		IncomeTaxRebatePct:      money.Tenths(gains.IncomeTaxRebatePct),
		SocialLevyRebatePct:     money.Tenths(gains.SocialLevyRebatePct),
		CapitalGainsIncomeTax:   money.Units(gains.IncomeTax),
		CapitalGainsSocialLevy:  money.Units(gains.SocialLevy),
		CapitalGainsTax:         money.Units(gains.Total),
		NetDisposalValue:        money.Units(disposal),
		AlternativeBalance:      money.Units(alt.Balance),
		AlternativeContribution: money.Units(alt.Contribution),
		AlternativeGrossGain:    money.Units(alt.GrossGain),
		AlternativeTax:          money.Units(alt.Tax),
		AlternativeNetGain:      money.Units(alt.NetGain),
	}

	next := PeriodState{
		Property:               prop,
		RemainingPrincipal:     loan.Remaining,
		CumulativeDepreciation: cumulative,
		AlternativeBalance:     alt.Balance,
	}
	return row, next, nil
}

// project runs the period loop and returns the emitted rows.
func (pl *plan) project() ([]domain.ProjectionRow, error) {
	rows := make([]domain.ProjectionRow, 0, pl.periods)
	state := pl.initialState()
	for period := 1; period <= pl.periods; period++ {
		row, next, err := pl.step(state, period)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", period, err)
		}
		rows = append(rows, row)
		state = next
	}
	return rows, nil
}

// summarize reduces the emitted rows. Totals add up the rounded row values so
// they match what a reader of the table would compute.
func (pl *plan) summarize(rows []domain.ProjectionRow) domain.Summary {
	p := pl.params
	s := domain.Summary{
		AcquisitionCost:         money.Units(p.AcquisitionCost()),
		DownPayment:             p.DownPayment,
		FinancedAmount:          money.Units(pl.loan.Principal),
		DebtService:             money.Units(pl.loan.PeriodPayment()),
		SeedCapital:             money.Units(pl.seed),
		Periods:                 len(rows),
		TotalCashFlow:           decimal.Zero,
		TotalTax:                decimal.Zero,
		GrossYield:              decimal.Zero,
		NetYield:                decimal.Zero,
		FinalPropertyValue:      decimal.Zero,
		FinalDisposalValue:      decimal.Zero,
		FinalAlternativeBalance: decimal.Zero,
	}
	for _, r := range rows {
		s.TotalCashFlow = s.TotalCashFlow.Add(r.CashFlow)
		s.TotalTax = s.TotalTax.Add(r.Tax)
	}

	if p.PurchasePrice.IsPositive() {
		annualRent := p.MonthlyRent.Mul(decimal.NewFromInt(12))
		annualCharges := annualRent.Mul(money.Percent(p.ChargesRate)).Add(p.PropertyTax)
		hundred := decimal.NewFromInt(100)
		s.GrossYield = money.RoundHalfUp(annualRent.Div(p.PurchasePrice).Mul(hundred), 2)
		s.NetYield = money.RoundHalfUp(annualRent.Sub(annualCharges).Div(p.PurchasePrice).Mul(hundred), 2)
	}

	if len(rows) > 0 {
		last := rows[len(rows)-1]
		s.FinalPropertyValue = last.PropertyValue
		s.FinalDisposalValue = last.NetDisposalValue
		s.FinalAlternativeBalance = last.AlternativeBalance
	}
	s.TotalGain = s.TotalCashFlow.Add(s.FinalDisposalValue)

	loanPeriods := decimal.NewFromInt(int64(pl.loan.Periods))
	s.TotalInvested = money.Units(pl.seed.Add(pl.loan.PeriodPayment().Mul(loanPeriods)))
	return s
}
