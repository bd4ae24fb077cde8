package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// RentalType selects how the property is let.
type RentalType string

const (
	RentalBare      RentalType = "bare"
	RentalFurnished RentalType = "furnished"
)

// LegalStructure selects who owns the property and how its income is taxed.
type LegalStructure string

const (
	StructurePersonal        LegalStructure = "personal"
	StructureSCIIncomeTax    LegalStructure = "sci_ir"
	StructureSCICorporateTax LegalStructure = "sci_is"
)

// FinancialTaxRegime selects how gains on the financial alternative are taxed.
type FinancialTaxRegime string

const (
	FinancialFlatTax  FinancialTaxRegime = "flat_tax"
	FinancialMarginal FinancialTaxRegime = "marginal"
)

var rentalTypeAliases = map[string]RentalType{
	"bare":      RentalBare,
	"nu":        RentalBare,
	"furnished": RentalFurnished,
	"meuble":    RentalFurnished,
	"meublé":    RentalFurnished,
}

var legalStructureAliases = map[string]LegalStructure{
	"personal":  StructurePersonal,
	"nompropre": StructurePersonal,
	"sci_ir":    StructureSCIIncomeTax,
	"sciir":     StructureSCIIncomeTax,
	"sci_is":    StructureSCICorporateTax,
	"sciis":     StructureSCICorporateTax,
}

var financialTaxAliases = map[string]FinancialTaxRegime{
	"flat_tax": FinancialFlatTax,
	"flattax":  FinancialFlatTax,
	"pfu":      FinancialFlatTax,
	"marginal": FinancialMarginal,
	"bareme":   FinancialMarginal,
	"barème":   FinancialMarginal,
}

func aliasKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ParseRentalType accepts canonical names and the French labels of the original form.
func ParseRentalType(s string) (RentalType, error) {
	if v, ok := rentalTypeAliases[aliasKey(s)]; ok {
		return v, nil
	}
	return "", invalid("rental_type", s, "must be bare or furnished")
}

// ParseLegalStructure accepts canonical names and the French labels of the original form.
func ParseLegalStructure(s string) (LegalStructure, error) {
	if v, ok := legalStructureAliases[aliasKey(s)]; ok {
		return v, nil
	}
	return "", invalid("legal_structure", s, "must be personal, sci_ir or sci_is")
}

// ParseFinancialTaxRegime accepts canonical names and the French labels of the original form.
func ParseFinancialTaxRegime(s string) (FinancialTaxRegime, error) {
	if v, ok := financialTaxAliases[aliasKey(s)]; ok {
		return v, nil
	}
	return "", invalid("alternative_tax_regime", s, "must be flat_tax or marginal")
}

func (r *RentalType) UnmarshalText(b []byte) error {
	v, err := ParseRentalType(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (l *LegalStructure) UnmarshalText(b []byte) error {
	v, err := ParseLegalStructure(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func (f *FinancialTaxRegime) UnmarshalText(b []byte) error {
	v, err := ParseFinancialTaxRegime(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MaxLoanTermYears bounds the loan term accepted from any input.
const MaxLoanTermYears = 50

// ParameterSet is the full input of one simulation run. Percentages are whole
// numbers (3.5 means 3.5%). A ParameterSet is never modified by the engine.
type ParameterSet struct {
	// Acquisition
	PurchasePrice decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	NotaryFeeRate decimal.Decimal `yaml:"notary_fee_rate" json:"notary_fee_rate"`
	FurnitureCost decimal.Decimal `yaml:"furniture_cost" json:"furniture_cost"` // furniture (monthly) or renovation (annual)
	DownPayment   decimal.Decimal `yaml:"down_payment" json:"down_payment"`

	// Financing
	LoanRate      decimal.Decimal `yaml:"loan_rate" json:"loan_rate"`
	InsuranceRate decimal.Decimal `yaml:"insurance_rate" json:"insurance_rate"`
	LoanTermYears int             `yaml:"loan_term_years" json:"loan_term_years"`

	// Operation
	MonthlyRent    decimal.Decimal `yaml:"monthly_rent" json:"monthly_rent"`
	ChargesRate    decimal.Decimal `yaml:"charges_rate" json:"charges_rate"` // % of rent
	PropertyTax    decimal.Decimal `yaml:"property_tax" json:"property_tax"` // annual
	RentalType     RentalType      `yaml:"rental_type" json:"rental_type"`
	LegalStructure LegalStructure  `yaml:"legal_structure" json:"legal_structure"`

	MarginalTaxRate decimal.Decimal `yaml:"marginal_tax_rate" json:"marginal_tax_rate"`

	// Annual escalation
	RentGrowthRate    decimal.Decimal `yaml:"rent_growth_rate" json:"rent_growth_rate"`
	ChargesGrowthRate decimal.Decimal `yaml:"charges_growth_rate" json:"charges_growth_rate"`
	ValueGrowthRate   decimal.Decimal `yaml:"value_growth_rate" json:"value_growth_rate"`

	// Financial alternative
	AlternativeReturnRate decimal.Decimal    `yaml:"alternative_return_rate" json:"alternative_return_rate"`
	AlternativeTaxRegime  FinancialTaxRegime `yaml:"alternative_tax_regime" json:"alternative_tax_regime"`
}

// DefaultParameterSet returns the values the simulator form opens with.
func DefaultParameterSet() ParameterSet {
	return ParameterSet{
		PurchasePrice:         decimal.NewFromInt(200000),
		NotaryFeeRate:         decimal.NewFromInt(7),
		FurnitureCost:         decimal.NewFromInt(5000),
		DownPayment:           decimal.NewFromInt(40000),
		LoanRate:              decimal.NewFromFloat(3.5),
		InsuranceRate:         decimal.NewFromFloat(0.36),
		LoanTermYears:         20,
		MonthlyRent:           decimal.NewFromInt(800),
		ChargesRate:           decimal.NewFromInt(10),
		PropertyTax:           decimal.NewFromInt(1200),
		RentalType:            RentalBare,
		LegalStructure:        StructurePersonal,
		MarginalTaxRate:       decimal.NewFromInt(30),
		RentGrowthRate:        decimal.NewFromInt(2),
		ChargesGrowthRate:     decimal.NewFromFloat(2.5),
		ValueGrowthRate:       decimal.NewFromInt(2),
		AlternativeReturnRate: decimal.NewFromInt(7),
		AlternativeTaxRegime:  FinancialFlatTax,
	}
}

// AcquisitionCost is the purchase price plus notary fees.
func (p ParameterSet) AcquisitionCost() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(1).Add(p.NotaryFeeRate.Div(decimal.NewFromInt(100))))
}

// IsFurnished reports whether the rental is furnished.
func (p ParameterSet) IsFurnished() bool { return p.RentalType == RentalFurnished }

// numericFields maps the YAML key of every numeric field to its storage.
func (p *ParameterSet) numericFields() map[string]*decimal.Decimal {
	return map[string]*decimal.Decimal{
		"purchase_price":          &p.PurchasePrice,
		"notary_fee_rate":         &p.NotaryFeeRate,
		"furniture_cost":          &p.FurnitureCost,
		"down_payment":            &p.DownPayment,
		"loan_rate":               &p.LoanRate,
		"insurance_rate":          &p.InsuranceRate,
		"monthly_rent":            &p.MonthlyRent,
		"charges_rate":            &p.ChargesRate,
		"property_tax":            &p.PropertyTax,
		"marginal_tax_rate":       &p.MarginalTaxRate,
		"rent_growth_rate":        &p.RentGrowthRate,
		"charges_growth_rate":     &p.ChargesGrowthRate,
		"value_growth_rate":       &p.ValueGrowthRate,
		"alternative_return_rate": &p.AlternativeReturnRate,
	}
}

// FieldNames lists every key accepted by SetField.
func FieldNames() []string {
	var p ParameterSet
	names := []string{"loan_term_years", "rental_type", "legal_structure", "alternative_tax_regime"}
	for name := range p.numericFields() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetField applies one interactive update. Non-numeric or negative input is
// rejected with ErrInvalidParameter and the current value is left untouched.
func (p *ParameterSet) SetField(name, raw string) error {
	key := aliasKey(name)
	switch key {
	case "rental_type":
		v, err := ParseRentalType(raw)
		if err != nil {
			return err
		}
		p.RentalType = v
		return nil
	case "legal_structure":
		v, err := ParseLegalStructure(raw)
		if err != nil {
			return err
		}
		p.LegalStructure = v
		return nil
	case "alternative_tax_regime":
		v, err := ParseFinancialTaxRegime(raw)
		if err != nil {
			return err
		}
		p.AlternativeTaxRegime = v
		return nil
	}

	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return invalid(key, raw, "not a number")
	}
	if d.IsNegative() {
		return invalid(key, raw, "must not be negative")
	}

	if key == "loan_term_years" {
		if !d.Equal(d.Truncate(0)) {
			return invalid(key, raw, "must be a whole number of years")
		}
		if d.GreaterThan(decimal.NewFromInt(MaxLoanTermYears)) {
			return invalid(key, raw, fmt.Sprintf("must be at most %d years", MaxLoanTermYears))
		}
		p.LoanTermYears = int(d.IntPart())
		return nil
	}

	field, ok := p.numericFields()[key]
	if !ok {
		return invalid(key, raw, "unknown field")
	}
	*field = d
	return nil
}

// Validate checks the invariants the engine relies on: every amount and rate
// is non-negative and every enumeration holds a known value. A down payment
// larger than the acquisition cost is allowed.
func (p *ParameterSet) Validate() error {
	fields := p.numericFields()
	for _, name := range FieldNames() {
		if v, ok := fields[name]; ok && v.IsNegative() {
			return invalid(name, v.String(), "must not be negative")
		}
	}
	if p.LoanTermYears < 0 {
		return invalid("loan_term_years", fmt.Sprint(p.LoanTermYears), "must not be negative")
	}
	if p.LoanTermYears > MaxLoanTermYears {
		return invalid("loan_term_years", fmt.Sprint(p.LoanTermYears), fmt.Sprintf("must be at most %d years", MaxLoanTermYears))
	}
	if _, err := ParseRentalType(string(p.RentalType)); err != nil {
		return err
	}
	if _, err := ParseLegalStructure(string(p.LegalStructure)); err != nil {
		return err
	}
	if _, err := ParseFinancialTaxRegime(string(p.AlternativeTaxRegime)); err != nil {
		return err
	}
	return nil
}
