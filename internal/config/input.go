package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/captaininvest/immosim/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario file. JSON is accepted too since it is valid YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario document. Unknown keys are rejected
// so a typo in a field name does not silently fall back to its default.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Validate(); err != nil {
		return err
	}
	for i := range config.Scenarios {
		if err := ip.validateScenario(&config.Scenarios[i]); err != nil {
			return fmt.Errorf("scenario %q: %w", config.Scenarios[i].Name, err)
		}
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// validateScenario catches percentages that cannot be meant literally.
func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	p := scenario.Parameters
	ratios := []struct {
		name  string
		value decimal.Decimal
	}{
		{"notary_fee_rate", p.NotaryFeeRate},
		{"charges_rate", p.ChargesRate},
		{"marginal_tax_rate", p.MarginalTaxRate},
		{"loan_rate", p.LoanRate},
		{"insurance_rate", p.InsuranceRate},
	}
	for _, r := range ratios {
		if r.value.GreaterThan(hundred) {
			return &domain.ParameterError{Field: r.name, Value: r.value.String(), Reason: "percentage above 100"}
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration: the default
// parameter set projected both ways, and a furnished flat held through an SCI.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	bare := domain.DefaultParameterSet()

	furnished := domain.DefaultParameterSet()
	furnished.RentalType = domain.RentalFurnished
	furnished.LegalStructure = domain.StructureSCIIncomeTax
	furnished.MonthlyRent = decimal.NewFromInt(950)

	renovation := domain.DefaultParameterSet()
	renovation.PurchasePrice = decimal.NewFromInt(300000)
	renovation.NotaryFeeRate = decimal.NewFromFloat(7.5)
	renovation.FurnitureCost = decimal.NewFromInt(15000)
	renovation.DownPayment = decimal.NewFromInt(60000)
	renovation.MonthlyRent = decimal.NewFromInt(1250)
	renovation.LoanTermYears = 25

	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "Bare rental, personal ownership", Variant: domain.VariantMonthly, Parameters: bare},
			{Name: "Furnished rental, SCI at income tax", Variant: domain.VariantMonthly, Parameters: furnished},
			{Name: "Renovation project, 30-year view", Variant: domain.VariantAnnual, Parameters: renovation},
		},
	}
}

// SaveConfiguration writes config as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := MarshalConfiguration(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// MarshalConfiguration renders config as a scenario file.
func MarshalConfiguration(config *domain.Configuration) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
