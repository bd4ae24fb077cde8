package calculation

import (
	"fmt"

	"github.com/captaininvest/immosim/internal/domain"
	money "github.com/captaininvest/immosim/pkg/decimal"
	"github.com/shopspring/decimal"
)

// French tax rules applied by the engine. These are fixed business rules.
var (
	SocialLevyRate            = decimal.NewFromFloat(0.172)
	CorporateTaxRate          = decimal.NewFromFloat(0.15)
	CapitalGainsIncomeTaxRate = decimal.NewFromFloat(0.19)
	FinancialFlatTaxRate      = decimal.NewFromFloat(0.30)

	// Micro regimes: annual thresholds and the share of income that stays taxable.
	BareMicroThreshold      = decimal.NewFromInt(15000)
	BareMicroTaxableShare   = decimal.NewFromFloat(0.7)
	FurnishedMicroThreshold = decimal.NewFromInt(72600)
	FurnishedMicroShare     = decimal.NewFromFloat(0.5)
)

// TaxRegime identifies one (legal structure, rental type) combination.
type TaxRegime int

const (
	RegimePersonalBare TaxRegime = iota + 1
	RegimePersonalFurnished
	RegimeSCIIncomeTaxBare
	RegimeSCIIncomeTaxFurnished
	RegimeSCICorporateTaxBare
	RegimeSCICorporateTaxFurnished
)

var regimeNames = map[TaxRegime]string{
	RegimePersonalBare:             "personal/bare",
	RegimePersonalFurnished:        "personal/furnished",
	RegimeSCIIncomeTaxBare:         "sci_ir/bare",
	RegimeSCIIncomeTaxFurnished:    "sci_ir/furnished",
	RegimeSCICorporateTaxBare:      "sci_is/bare",
	RegimeSCICorporateTaxFurnished: "sci_is/furnished",
}

func (r TaxRegime) String() string {
	if name, ok := regimeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("regime(%d)", int(r))
}

// ResolveTaxRegime maps a structure and rental type to its regime.
func ResolveTaxRegime(structure domain.LegalStructure, rental domain.RentalType) (TaxRegime, error) {
	furnished := rental == domain.RentalFurnished
	if rental != domain.RentalBare && !furnished {
		return 0, fmt.Errorf("%w: unknown rental type %q", domain.ErrInvalidParameter, rental)
	}
	switch structure {
	case domain.StructurePersonal:
		if furnished {
			return RegimePersonalFurnished, nil
		}
		return RegimePersonalBare, nil
	case domain.StructureSCIIncomeTax:
		if furnished {
			return RegimeSCIIncomeTaxFurnished, nil
		}
		return RegimeSCIIncomeTaxBare, nil
	case domain.StructureSCICorporateTax:
		if furnished {
			return RegimeSCICorporateTaxFurnished, nil
		}
		return RegimeSCICorporateTaxBare, nil
	}
	return 0, fmt.Errorf("%w: unknown legal structure %q", domain.ErrInvalidParameter, structure)
}

// RentalIncome is what the tax engine needs to know about one period.
type RentalIncome struct {
	GrossRent      decimal.Decimal
	NetRent        decimal.Decimal // rent - charges - property tax
	Interest       decimal.Decimal
	Depreciation   decimal.Decimal
	PeriodsPerYear int
}

// RentalTax is the tax assessed on one period of rental income.
type RentalTax struct {
	TaxableBase decimal.Decimal
	IncomeTax   decimal.Decimal
	SocialLevy  decimal.Decimal
	Total       decimal.Decimal
}

// RentalTaxCalculator applies the rental income regimes at a marginal rate.
type RentalTaxCalculator struct {
	MarginalRate decimal.Decimal // ratio, 0.30 for 30%
}

// NewRentalTaxCalculator creates a calculator for a whole-number marginal rate.
func NewRentalTaxCalculator(marginalRatePct decimal.Decimal) *RentalTaxCalculator {
	return &RentalTaxCalculator{MarginalRate: money.Percent(marginalRatePct)}
}

// Calculate computes the taxable base and tax owed for one period. Micro
// thresholds are compared against the annualized period figure. Each tax
// component floors at zero.
func (tc *RentalTaxCalculator) Calculate(regime TaxRegime, in RentalIncome) (RentalTax, error) {
	ppy := decimal.NewFromInt(int64(in.PeriodsPerYear))
	var base decimal.Decimal
	withLevy := false

	switch regime {
	case RegimePersonalBare:
		if in.NetRent.Mul(ppy).LessThanOrEqual(BareMicroThreshold) {
			base = in.NetRent.Mul(BareMicroTaxableShare)
		} else {
			base = in.NetRent.Sub(in.Interest)
		}
		withLevy = true
	case RegimePersonalFurnished:
		if in.GrossRent.Mul(ppy).LessThanOrEqual(FurnishedMicroThreshold) {
			base = in.GrossRent.Mul(FurnishedMicroShare)
		} else {
			base = in.NetRent.Sub(in.Interest).Sub(in.Depreciation)
		}
	case RegimeSCIIncomeTaxBare:
		base = in.NetRent.Sub(in.Interest)
		withLevy = true
	case RegimeSCIIncomeTaxFurnished:
		base = in.NetRent.Sub(in.Interest).Sub(in.Depreciation)
	case RegimeSCICorporateTaxBare, RegimeSCICorporateTaxFurnished:
		base = in.NetRent.Sub(in.Interest).Sub(in.Depreciation)
		corporate := money.NonNegative(base.Mul(CorporateTaxRate))
		return RentalTax{TaxableBase: base, IncomeTax: corporate, SocialLevy: decimal.Zero, Total: corporate}, nil
	default:
		return RentalTax{}, fmt.Errorf("no tax formula for %s", regime)
	}

	out := RentalTax{
		TaxableBase: base,
		IncomeTax:   money.NonNegative(base.Mul(tc.MarginalRate)),
		SocialLevy:  decimal.Zero,
	}
	if withLevy {
		out.SocialLevy = money.NonNegative(base.Mul(SocialLevyRate))
	}
	out.Total = out.IncomeTax.Add(out.SocialLevy)
	return out, nil
}

// CapitalGains is the tax position of a hypothetical sale at the end of a period.
type CapitalGains struct {
	GrossGain           decimal.Decimal
	AdjustedGain        decimal.Decimal // gross gain + depreciation claimed
	IncomeTaxRebatePct  decimal.Decimal
	SocialLevyRebatePct decimal.Decimal
	IncomeTax           decimal.Decimal
	SocialLevy          decimal.Decimal
	Total               decimal.Decimal
}

// IncomeTaxRebatePct is the holding-period rebate on the income-tax track:
// 6% a year from year 6, capped at 100%.
func IncomeTaxRebatePct(holdingYear int) decimal.Decimal {
	if holdingYear <= 5 {
		return decimal.Zero
	}
	return money.Min(decimal.NewFromInt(int64((holdingYear-5)*6)), decimal.NewFromInt(100))
}

// SocialLevyRebatePct is the holding-period rebate on the social-levy track:
// 1.65% a year for years 6 to 22, then 9% a year on top of 30%, capped at 100%.
func SocialLevyRebatePct(holdingYear int) decimal.Decimal {
	switch {
	case holdingYear <= 5:
		return decimal.Zero
	case holdingYear <= 22:
		return decimal.NewFromInt(int64(holdingYear - 5)).Mul(decimal.NewFromFloat(1.65))
	default:
		return money.Min(decimal.NewFromInt(int64(30+(holdingYear-22)*9)), decimal.NewFromInt(100))
	}
}

// CalculateCapitalGains taxes the gain of a sale at value after holdingYear
// years. Holding-period rebates only apply to personal ownership; companies
// are taxed on the full adjusted gain.
func CalculateCapitalGains(value, purchasePrice, cumulativeDepreciation decimal.Decimal, holdingYear int, structure domain.LegalStructure) CapitalGains {
	gross := value.Sub(purchasePrice)
	adjusted := gross.Add(cumulativeDepreciation)

	cg := CapitalGains{
		GrossGain:           gross,
		AdjustedGain:        adjusted,
		IncomeTaxRebatePct:  decimal.Zero,
		SocialLevyRebatePct: decimal.Zero,
	}
	if structure == domain.StructurePersonal {
		cg.IncomeTaxRebatePct = IncomeTaxRebatePct(holdingYear)
		cg.SocialLevyRebatePct = SocialLevyRebatePct(holdingYear)
	}

	hundred := decimal.NewFromInt(100)
	taxable := func(rebatePct decimal.Decimal) decimal.Decimal {
		return money.NonNegative(adjusted.Mul(hundred.Sub(rebatePct)).Div(hundred))
	}
	cg.IncomeTax = taxable(cg.IncomeTaxRebatePct).Mul(CapitalGainsIncomeTaxRate)
	cg.SocialLevy = taxable(cg.SocialLevyRebatePct).Mul(SocialLevyRate)
	cg.Total = cg.IncomeTax.Add(cg.SocialLevy)
	return cg
}
