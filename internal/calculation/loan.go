package calculation

import (
	money "github.com/captaininvest/immosim/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Loan is a fixed-rate amortizing loan with flat insurance.
type Loan struct {
	Principal decimal.Decimal // financed amount, never negative
	Rate      decimal.Decimal // per-period interest rate
	Periods   int             // number of scheduled payments
	Payment   decimal.Decimal // annuity: interest + principal
	Insurance decimal.Decimal // per-period premium on the original principal
}

// LoanStep is one period of the amortization schedule.
type LoanStep struct {
	Interest        decimal.Decimal
	PrincipalRepaid decimal.Decimal
	Remaining       decimal.Decimal
}

// NewLoan builds the amortization plan for a principal borrowed at annualRatePct
// over periods payments, with periodsPerYear payments a year. Rates are split
// evenly across the year (3.5% annual is 0.035/12 monthly).
//
// A non-positive principal yields a zero loan. A zero rate amortizes linearly
// and a zero term has no payment at all.
func NewLoan(principal, annualRatePct, insuranceRatePct decimal.Decimal, periods, periodsPerYear int) Loan {
	if !principal.IsPositive() {
		return Loan{Principal: decimal.Zero, Rate: decimal.Zero, Periods: periods, Payment: decimal.Zero, Insurance: decimal.Zero}
	}
	rate := money.SimpleRate(annualRatePct, periodsPerYear)
	if periods <= 0 {
		return Loan{Principal: principal, Rate: rate, Periods: 0, Payment: decimal.Zero, Insurance: decimal.Zero}
	}
	return Loan{
		Principal: principal,
		Rate:      rate,
		Periods:   periods,
		Payment:   AnnuityPayment(principal, rate, periods),
		Insurance: principal.Mul(money.SimpleRate(insuranceRatePct, periodsPerYear)),
	}
}

// AnnuityPayment returns the fixed payment P·r·(1+r)^n / ((1+r)^n − 1).
func AnnuityPayment(principal, rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return principal.Div(n)
	}
	factor := decimal.NewFromInt(1).Add(rate).Pow(n)
	return principal.Mul(rate).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
}

// PeriodPayment is the total debt service of one period: annuity plus insurance.
func (l Loan) PeriodPayment() decimal.Decimal {
	return l.Payment.Add(l.Insurance)
}

// Active reports whether the loan is still serviced in the given 1-based period.
func (l Loan) Active(period int) bool {
	return l.Principal.IsPositive() && period <= l.Periods
}

// Step splits the payment of one period into interest and principal given the
// principal outstanding at the start of the period. Once the balance is zero
// nothing more is charged.
func (l Loan) Step(remaining decimal.Decimal, period int) LoanStep {
	if !l.Active(period) || !remaining.IsPositive() {
		return LoanStep{Interest: decimal.Zero, PrincipalRepaid: decimal.Zero, Remaining: money.NonNegative(remaining)}
	}
	interest := remaining.Mul(l.Rate)
	repaid := l.Payment.Sub(interest)
	return LoanStep{
		Interest:        interest,
		PrincipalRepaid: repaid,
		Remaining:       money.Carry(money.NonNegative(remaining.Sub(repaid))),
	}
}
