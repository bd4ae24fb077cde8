package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParameterSet_AcquisitionCost(t *testing.T) {
	p := DefaultParameterSet()
	assert.True(t, p.AcquisitionCost().Equal(decimal.NewFromInt(214000)), "got %s", p.AcquisitionCost())
}

func TestParameterSet_SetField(t *testing.T) {
	testCases := []struct {
		desc    string
		field   string
		raw     string
		wantErr bool
		check   func(t *testing.T, p ParameterSet)
	}{
		{
			desc:  "decimal amount",
			field: "monthly_rent",
			raw:   "950.5",
			check: func(t *testing.T, p ParameterSet) {
				assert.Equal(t, "950.5", p.MonthlyRent.String())
			},
		},
		{
			desc:  "whole loan term",
			field: "loan_term_years",
			raw:   "25",
			check: func(t *testing.T, p ParameterSet) {
				assert.Equal(t, 25, p.LoanTermYears)
			},
		},
		{
			desc:  "french alias for rental type",
			field: "rental_type",
			raw:   "meuble",
			check: func(t *testing.T, p ParameterSet) {
				assert.Equal(t, RentalFurnished, p.RentalType)
			},
		},
		{
			desc:  "zero is accepted",
			field: "down_payment",
			raw:   "0",
			check: func(t *testing.T, p ParameterSet) {
				assert.True(t, p.DownPayment.IsZero())
			},
		},
		{desc: "non numeric", field: "monthly_rent", raw: "abc", wantErr: true},
		{desc: "negative", field: "purchase_price", raw: "-1", wantErr: true},
		{desc: "fractional term", field: "loan_term_years", raw: "12.5", wantErr: true},
		{desc: "term above the cap", field: "loan_term_years", raw: "51", wantErr: true},
		{desc: "term overflowing an int", field: "loan_term_years", raw: "800000000000000000", wantErr: true},
		{desc: "term beyond int64", field: "loan_term_years", raw: "100000000000000000000", wantErr: true},
		{desc: "unknown field", field: "garage", raw: "1", wantErr: true},
		{desc: "unknown structure", field: "legal_structure", raw: "trust", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			p := DefaultParameterSet()
			before := p
			err := p.SetField(tc.field, tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidParameter))
				assert.Equal(t, before, p, "rejected update must leave the parameters untouched")
				return
			}
			require.NoError(t, err)
			tc.check(t, p)
		})
	}
}

func TestParameterSet_Validate(t *testing.T) {
	p := DefaultParameterSet()
	require.NoError(t, p.Validate())

	p.DownPayment = decimal.NewFromInt(500000)
	assert.NoError(t, p.Validate(), "down payment above acquisition cost is a boundary case, not an error")

	p.ChargesRate = decimal.NewFromInt(-3)
	err := p.Validate()
	require.Error(t, err)
	var perr *ParameterError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "charges_rate", perr.Field)

	q := DefaultParameterSet()
	q.RentalType = "lease"
	assert.ErrorIs(t, q.Validate(), ErrInvalidParameter)

	long := DefaultParameterSet()
	long.LoanTermYears = MaxLoanTermYears
	require.NoError(t, long.Validate())
	long.LoanTermYears = MaxLoanTermYears + 1
	require.True(t, errors.As(long.Validate(), &perr))
	assert.Equal(t, "loan_term_years", perr.Field)
}

func TestParameterSet_ValidateNamesFirstFieldInOrder(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := DefaultParameterSet()
		p.ValueGrowthRate = decimal.NewFromInt(-1)
		p.ChargesRate = decimal.NewFromInt(-1)
		p.PurchasePrice = decimal.NewFromInt(-1)

		var perr *ParameterError
		require.True(t, errors.As(p.Validate(), &perr))
		assert.Equal(t, "charges_rate", perr.Field)
	}
}

func TestParameterSet_YAMLAliases(t *testing.T) {
	doc := `
purchase_price: 300000
notary_fee_rate: 7.5
loan_term_years: 25
rental_type: meuble
legal_structure: sciIS
alternative_tax_regime: bareme
`
	var p ParameterSet
	require.NoError(t, yaml.Unmarshal([]byte(doc), &p))
	assert.Equal(t, "300000", p.PurchasePrice.String())
	assert.Equal(t, "7.5", p.NotaryFeeRate.String())
	assert.Equal(t, 25, p.LoanTermYears)
	assert.Equal(t, RentalFurnished, p.RentalType)
	assert.Equal(t, StructureSCICorporateTax, p.LegalStructure)
	assert.Equal(t, FinancialMarginal, p.AlternativeTaxRegime)
}

func TestFieldNames(t *testing.T) {
	names := FieldNames()
	assert.Len(t, names, 18)
	assert.Contains(t, names, "loan_term_years")
	assert.Contains(t, names, "alternative_tax_regime")
	assert.IsIncreasing(t, names)
}

func TestVariant(t *testing.T) {
	v, err := ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, VariantMonthly, v)

	v, err = ParseVariant("Annuel")
	require.NoError(t, err)
	assert.Equal(t, VariantAnnual, v)
	assert.Equal(t, 1, v.PeriodsPerYear())
	assert.Equal(t, 12, VariantMonthly.PeriodsPerYear())

	_, err = ParseVariant("weekly")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSimulationResult_YearEndRows(t *testing.T) {
	r := &SimulationResult{Variant: VariantMonthly}
	for i := 1; i <= 30; i++ {
		r.Rows = append(r.Rows, ProjectionRow{Period: i})
	}
	rows := r.YearEndRows()
	require.Len(t, rows, 2)
	assert.Equal(t, 12, rows[0].Period)
	assert.Equal(t, 24, rows[1].Period)

	last, ok := r.FinalRow()
	require.True(t, ok)
	assert.Equal(t, 30, last.Period)

	var empty *SimulationResult
	_, ok = empty.FinalRow()
	assert.False(t, ok)
}
