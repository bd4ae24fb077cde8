package calculation

import (
	"github.com/captaininvest/immosim/internal/domain"
	money "github.com/captaininvest/immosim/pkg/decimal"
	"github.com/shopspring/decimal"
)

// AlternativeProjector compounds the financial alternative: the capital that
// would have been invested instead of buying, plus every period's property
// cash-flow shortfall.
type AlternativeProjector struct {
	Rate    decimal.Decimal // per-period compounded return
	TaxRate decimal.Decimal // share of each period's gain paid in tax

	// ContributeFirst adds the contribution before the period's return is
	// applied, so the gain is earned on it too.
	ContributeFirst bool
}

// AlternativeStep is the movement of the alternative balance in one period.
type AlternativeStep struct {
	Contribution decimal.Decimal
	GrossGain    decimal.Decimal
	Tax          decimal.Decimal
	NetGain      decimal.Decimal
	Balance      decimal.Decimal
}

// NewAlternativeProjector converts the annual return of p to the period rate
// and resolves the tax regime on gains.
func NewAlternativeProjector(p domain.ParameterSet, periodsPerYear int, contributeFirst bool) AlternativeProjector {
	return AlternativeProjector{
		Rate:            money.PeriodicRate(p.AlternativeReturnRate, periodsPerYear),
		TaxRate:         AlternativeTaxRate(p.AlternativeTaxRegime, p.MarginalTaxRate),
		ContributeFirst: contributeFirst,
	}
}

// AlternativeTaxRate is 30% under the flat tax, or the marginal rate plus
// social levies.
func AlternativeTaxRate(regime domain.FinancialTaxRegime, marginalRatePct decimal.Decimal) decimal.Decimal {
	if regime == domain.FinancialMarginal {
		return money.Percent(marginalRatePct).Add(SocialLevyRate)
	}
	return FinancialFlatTaxRate
}

// Step applies one period of return, tax and contribution to balance.
// Gains are taxed as they accrue, losses are credited symmetrically.
func (ap AlternativeProjector) Step(balance, contribution decimal.Decimal) AlternativeStep {
	invested := balance
	if ap.ContributeFirst {
		invested = balance.Add(contribution)
	}
	gross := invested.Mul(ap.Rate)
	tax := gross.Mul(ap.TaxRate)
	net := gross.Sub(tax)
	return AlternativeStep{
		Contribution: contribution,
		GrossGain:    gross,
		Tax:          tax,
		NetGain:      net,
		Balance:      money.Carry(balance.Add(net).Add(contribution)),
	}
}
