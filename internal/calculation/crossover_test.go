package calculation

import (
	"testing"

	"github.com/captaininvest/immosim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRow(period, year int, disposal, alternative int64) domain.ProjectionRow {
	return domain.ProjectionRow{
		Period:             period,
		HoldingYear:        year,
		NetDisposalValue:   decimal.NewFromInt(disposal),
		AlternativeBalance: decimal.NewFromInt(alternative),
	}
}

func TestFindCrossover_Interpolation(t *testing.T) {
	// diff goes from -50 to +50 inside period 2: t = 0.5
	res := &domain.SimulationResult{Variant: domain.VariantMonthly, Rows: []domain.ProjectionRow{
		makeRow(1, 1, 100, 150),
		makeRow(2, 1, 200, 150),
	}}

	c, err := FindCrossover(res)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Period)
	assert.Equal(t, 2, c.Month)
	assert.True(t, c.Fraction.Equal(decimal.NewFromFloat(0.5)), "got %s", c.Fraction)
	assert.True(t, c.Amount.Equal(decimal.NewFromInt(150)), "got %s", c.Amount)
	assert.True(t, c.PropertyLeadsAfter)
}

func TestFindCrossover_ExactTie(t *testing.T) {
	res := &domain.SimulationResult{Variant: domain.VariantAnnual, Rows: []domain.ProjectionRow{
		makeRow(1, 1, 300, 200),
		makeRow(2, 2, 250, 250),
		makeRow(3, 3, 240, 260),
	}}

	c, err := FindCrossover(res)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Period)
	assert.Equal(t, 2, c.HoldingYear)
	assert.Equal(t, 12, c.Month)
	assert.True(t, c.Fraction.Equal(decimal.NewFromInt(1)))
	assert.False(t, c.PropertyLeadsAfter)
}

func TestFindCrossover_AnnualMonthFromFraction(t *testing.T) {
	// diff -30 -> +10: t = 0.75, month 9
	res := &domain.SimulationResult{Variant: domain.VariantAnnual, Rows: []domain.ProjectionRow{
		makeRow(1, 1, 70, 100),
		makeRow(2, 2, 120, 110),
	}}
	c, err := FindCrossover(res)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 9, c.Month)
	assert.Equal(t, 2, c.HoldingYear)
}

func TestFindCrossover_TouchWithoutChangeOfSide(t *testing.T) {
	testCases := []struct {
		desc       string
		rows       []domain.ProjectionRow
		wantPeriod int
	}{
		{
			desc: "tie then same side again",
			rows: []domain.ProjectionRow{
				makeRow(1, 1, 100, 150),
				makeRow(2, 1, 150, 150),
				makeRow(3, 1, 180, 200),
			},
		},
		{
			desc: "several ties then same side again",
			rows: []domain.ProjectionRow{
				makeRow(1, 1, 200, 150),
				makeRow(2, 1, 150, 150),
				makeRow(3, 1, 160, 160),
				makeRow(4, 1, 180, 170),
			},
		},
		{
			desc: "tie on the last row",
			rows: []domain.ProjectionRow{
				makeRow(1, 1, 100, 150),
				makeRow(2, 1, 150, 150),
			},
		},
		{
			desc: "ties then other side",
			rows: []domain.ProjectionRow{
				makeRow(1, 1, 100, 150),
				makeRow(2, 1, 150, 150),
				makeRow(3, 1, 160, 160),
				makeRow(4, 1, 190, 170),
			},
			wantPeriod: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			c, err := FindCrossover(&domain.SimulationResult{Variant: domain.VariantMonthly, Rows: tc.rows})
			require.NoError(t, err)
			if tc.wantPeriod == 0 {
				assert.Nil(t, c)
				return
			}
			require.NotNil(t, c)
			assert.Equal(t, tc.wantPeriod, c.Period)
			assert.True(t, c.PropertyLeadsAfter)
		})
	}
}

func TestFindCrossover_None(t *testing.T) {
	res := &domain.SimulationResult{Variant: domain.VariantMonthly, Rows: []domain.ProjectionRow{
		makeRow(1, 1, 100, 150),
		makeRow(2, 1, 120, 170),
		makeRow(3, 1, 130, 200),
	}}
	c, err := FindCrossover(res)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = FindCrossover(&domain.SimulationResult{Variant: domain.VariantMonthly})
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = FindCrossover(nil)
	assert.Error(t, err)
}
