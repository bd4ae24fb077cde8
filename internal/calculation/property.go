package calculation

import (
	"github.com/captaininvest/immosim/internal/domain"
	money "github.com/captaininvest/immosim/pkg/decimal"
	"github.com/shopspring/decimal"
)

// PropertyProjector escalates value, rent, charges and property tax with
// independent annual rates compounded once per period.
type PropertyProjector struct {
	rentGrowth  decimal.Decimal
	taxGrowth   decimal.Decimal
	valueGrowth decimal.Decimal
	chargesRate decimal.Decimal // ratio of rent
}

// PropertyState is the operating position of the property within one period.
type PropertyState struct {
	Value       decimal.Decimal
	Rent        decimal.Decimal
	Charges     decimal.Decimal
	PropertyTax decimal.Decimal
}

// NewPropertyProjector converts the annual escalation rates of p into
// per-period factors. Property tax follows the charges growth rate.
func NewPropertyProjector(p domain.ParameterSet, periodsPerYear int) PropertyProjector {
	return PropertyProjector{
		rentGrowth:  money.PeriodicRate(p.RentGrowthRate, periodsPerYear),
		taxGrowth:   money.PeriodicRate(p.ChargesGrowthRate, periodsPerYear),
		valueGrowth: money.PeriodicRate(p.ValueGrowthRate, periodsPerYear),
		chargesRate: money.Percent(p.ChargesRate),
	}
}

// Initial returns the unescalated position before period 1.
func (pp PropertyProjector) Initial(p domain.ParameterSet, periodsPerYear int) PropertyState {
	ppy := decimal.NewFromInt(int64(periodsPerYear))
	rent := p.MonthlyRent.Mul(decimal.NewFromInt(12)).Div(ppy)
	return PropertyState{
		Value:       p.PurchasePrice,
		Rent:        rent,
		Charges:     rent.Mul(pp.chargesRate),
		PropertyTax: p.PropertyTax.Div(ppy),
	}
}

// Advance moves the position into the given period. Rent and property tax
// keep their input values in period 1 and escalate from period 2; charges are
// always a share of the current rent; value escalates from period 1.
func (pp PropertyProjector) Advance(prev PropertyState, period int) PropertyState {
	next := prev
	if period > 1 {
		next.Rent = money.Carry(prev.Rent.Mul(decimal.NewFromInt(1).Add(pp.rentGrowth)))
		next.Charges = money.Carry(next.Rent.Mul(pp.chargesRate))
		next.PropertyTax = money.Carry(prev.PropertyTax.Mul(decimal.NewFromInt(1).Add(pp.taxGrowth)))
	}
	next.Value = money.Carry(prev.Value.Mul(decimal.NewFromInt(1).Add(pp.valueGrowth)))
	return next
}

// NetRent is rent minus charges and property tax.
func (s PropertyState) NetRent() decimal.Decimal {
	return s.Rent.Sub(s.Charges).Sub(s.PropertyTax)
}

// Depreciation is the deductible allowance of one period for a furnished
// rental: the building over 20 years and, when modelled, the furniture over
// its first 5 years.
type Depreciation struct {
	Building         decimal.Decimal
	Furniture        decimal.Decimal
	FurniturePeriods int
}

// NewDepreciation returns a zero schedule for bare rentals.
func NewDepreciation(p domain.ParameterSet, periodsPerYear int, furnitureModelled bool) Depreciation {
	if !p.IsFurnished() {
		return Depreciation{Building: decimal.Zero, Furniture: decimal.Zero}
	}
	d := Depreciation{
		Building:  p.PurchasePrice.Div(decimal.NewFromInt(int64(20 * periodsPerYear))),
		Furniture: decimal.Zero,
	}
	if furnitureModelled {
		d.FurniturePeriods = 5 * periodsPerYear
		d.Furniture = p.FurnitureCost.Div(decimal.NewFromInt(int64(d.FurniturePeriods)))
	}
	return d
}

// For returns the allowance claimed in the given period.
func (d Depreciation) For(period int) decimal.Decimal {
	if period <= d.FurniturePeriods {
		return d.Building.Add(d.Furniture)
	}
	return d.Building
}
