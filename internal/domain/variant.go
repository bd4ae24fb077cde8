package domain

// Variant selects the granularity of a projection.
type Variant string

const (
	// VariantMonthly projects month by month over the loan term, capped at 360 periods.
	VariantMonthly Variant = "monthly"
	// VariantAnnual projects year by year over a fixed 30-year horizon.
	VariantAnnual Variant = "annual"
)

// MaxMonthlyPeriods caps the monthly projection at 30 years.
const MaxMonthlyPeriods = 360

// AnnualHorizon is the fixed number of periods of the annual projection.
const AnnualHorizon = 30

var variantAliases = map[string]Variant{
	"monthly": VariantMonthly,
	"mensuel": VariantMonthly,
	"a":       VariantMonthly,
	"annual":  VariantAnnual,
	"annuel":  VariantAnnual,
	"yearly":  VariantAnnual,
	"b":       VariantAnnual,
}

// ParseVariant resolves a variant name; the empty string selects the monthly variant.
func ParseVariant(s string) (Variant, error) {
	if aliasKey(s) == "" {
		return VariantMonthly, nil
	}
	if v, ok := variantAliases[aliasKey(s)]; ok {
		return v, nil
	}
	return "", invalid("variant", s, "must be monthly or annual")
}

func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// PeriodsPerYear is 12 for the monthly variant and 1 for the annual one.
func (v Variant) PeriodsPerYear() int {
	if v == VariantAnnual {
		return 1
	}
	return 12
}

// PeriodLabel names one period for display.
func (v Variant) PeriodLabel() string {
	if v == VariantAnnual {
		return "year"
	}
	return "month"
}
