package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

// CarryPlaces is the scale kept on amounts threaded from one period to the next.
const CarryPlaces int32 = 12

var (
	one     = decimal.NewFromInt(1)
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// Percent converts a whole-number percentage (3.5 meaning 3.5%) to a ratio.
func Percent(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// RoundHalfUp rounds to the given number of places with ties going toward
// positive infinity (-2.5 -> -2, 2.5 -> 3).
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	if places == 0 {
		return d.Add(half).Floor()
	}
	scale := decimal.New(1, places)
	return d.Mul(scale).Add(half).Floor().Div(scale)
}

// Units rounds a monetary amount to whole euros for display rows.
func Units(d decimal.Decimal) decimal.Decimal { return RoundHalfUp(d, 0) }

// Tenths rounds a percentage to one decimal place.
func Tenths(d decimal.Decimal) decimal.Decimal { return RoundHalfUp(d, 1) }

// Carry trims an amount to CarryPlaces before it is handed to the next period.
func Carry(d decimal.Decimal) decimal.Decimal { return d.Round(CarryPlaces) }

// NonNegative floors a value at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// PeriodicRate converts an annual percentage into the equivalent compounded
// rate for one of periodsPerYear sub-periods: (1 + a/100)^(1/n) - 1.
// Fractional roots go through float64; the annual case stays exact.
func PeriodicRate(annualPct decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if periodsPerYear <= 1 {
		return Percent(annualPct)
	}
	base := one.Add(Percent(annualPct)).InexactFloat64()
	return decimal.NewFromFloat(math.Pow(base, 1/float64(periodsPerYear)) - 1)
}

// SimpleRate splits an annual percentage evenly across periodsPerYear periods.
func SimpleRate(annualPct decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if periodsPerYear <= 1 {
		return Percent(annualPct)
	}
	return Percent(annualPct).Div(decimal.NewFromInt(int64(periodsPerYear)))
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
