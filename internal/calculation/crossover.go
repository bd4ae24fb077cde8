package calculation

import (
	"errors"

	"github.com/captaininvest/immosim/internal/domain"
	money "github.com/captaininvest/immosim/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FindCrossover finds the first period where the lead between the property's
// net disposal value and the alternative balance changes side, interpolating
// linearly inside that period. A tie at the very first period is ignored as
// trivial, and so is a tie after which the same side keeps the lead. If the
// curves never cross, it returns nil, nil.
func FindCrossover(result *domain.SimulationResult) (*domain.Crossover, error) {
	if result == nil {
		return nil, errors.New("no simulation result")
	}
	rows := result.Rows
	if len(rows) < 2 {
		return nil, nil
	}
	ppy := result.Variant.PeriodsPerYear()
	one := decimal.NewFromInt(1)

	diff := func(r domain.ProjectionRow) decimal.Decimal {
		return r.NetDisposalValue.Sub(r.AlternativeBalance)
	}

	for i := 1; i < len(rows); i++ {
		prevDiff := diff(rows[i-1])
		currDiff := diff(rows[i])

		if currDiff.IsZero() {
			if prevDiff.IsZero() {
				continue
			}
			// a touch only counts when the lead actually moves to the other side
			if !changesSide(rows[i+1:], diff, prevDiff) {
				continue
			}
			return crossoverAt(rows[i], one, rows[i].NetDisposalValue, prevDiff.IsNegative(), ppy), nil
		}

		if prevDiff.Mul(currDiff).IsNegative() {
			// diff(t) = prevDiff + t*(currDiff - prevDiff), solve diff(t) = 0
			t := money.Min(money.Max(prevDiff.Neg().Div(currDiff.Sub(prevDiff)), decimal.Zero), one)
			prevValue := rows[i-1].NetDisposalValue
			amount := prevValue.Add(rows[i].NetDisposalValue.Sub(prevValue).Mul(t))
			return crossoverAt(rows[i], t, amount.Round(2), currDiff.IsPositive(), ppy), nil
		}
	}
	return nil, nil
}

// changesSide reports whether the first non-zero difference in rows has the
// opposite sign of before.
func changesSide(rows []domain.ProjectionRow, diff func(domain.ProjectionRow) decimal.Decimal, before decimal.Decimal) bool {
	for _, r := range rows {
		if d := diff(r); !d.IsZero() {
			return d.Sign() != before.Sign()
		}
	}
	return false
}

func crossoverAt(row domain.ProjectionRow, t, amount decimal.Decimal, propertyLeads bool, ppy int) *domain.Crossover {
	month := ((row.Period - 1) % 12) + 1
	if ppy == 1 {
		// compute month from fraction (1..12)
		month = int(t.InexactFloat64() * 12)
		if month < 1 {
			month = 1
		}
		if month > 12 {
			month = 12
		}
	}
	return &domain.Crossover{
		Period:             row.Period,
		HoldingYear:        row.HoldingYear,
		Month:              month,
		Fraction:           t.Round(4),
		Amount:             amount,
		PropertyLeadsAfter: propertyLeads,
	}
}
