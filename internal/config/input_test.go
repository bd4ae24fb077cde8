package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/captaininvest/immosim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(filepath.Join("testdata", "scenarios.yaml"))
	require.NoError(t, err)
	require.Len(t, config.Scenarios, 2)

	lyon := config.Scenarios[0]
	assert.Equal(t, "T2 Lyon meublé", lyon.Name)
	assert.Equal(t, domain.VariantMonthly, lyon.Variant)
	assert.Equal(t, domain.RentalFurnished, lyon.Parameters.RentalType)
	assert.Equal(t, domain.StructurePersonal, lyon.Parameters.LegalStructure)
	assert.Equal(t, 25, lyon.Parameters.LoanTermYears)
	assert.True(t, lyon.Parameters.PurchasePrice.Equal(decimal.NewFromInt(180000)))
	// fields left out keep their defaults
	assert.True(t, lyon.Parameters.DownPayment.Equal(decimal.NewFromInt(40000)))
	assert.True(t, lyon.Parameters.LoanRate.Equal(decimal.NewFromFloat(3.5)))

	renovation := config.Scenarios[1]
	assert.Equal(t, domain.VariantAnnual, renovation.Variant)
	assert.Equal(t, domain.StructureSCICorporateTax, renovation.Parameters.LegalStructure)
	assert.Equal(t, domain.FinancialMarginal, renovation.Parameters.AlternativeTaxRegime)
	assert.True(t, renovation.Parameters.NotaryFeeRate.Equal(decimal.NewFromFloat(7.5)))
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		desc       string
		doc        string
		contains   string
		invalidArg bool
	}{
		{
			desc:     "tabs are not valid YAML",
			doc:      "scenarios:\n\t- name: x\n",
			contains: "failed to parse YAML",
		},
		{
			desc:     "unknown parameter",
			doc:      "scenarios:\n  - name: x\n    parameters:\n      garage: 1\n",
			contains: "failed to parse YAML",
		},
		{
			desc:     "not a number",
			doc:      "scenarios:\n  - name: x\n    parameters:\n      monthly_rent: lots\n",
			contains: "failed to parse YAML",
		},
		{
			desc:     "unknown rental type",
			doc:      "scenarios:\n  - name: x\n    parameters:\n      rental_type: seasonal\n",
			contains: "rental_type",
		},
		{
			desc:       "no scenarios",
			doc:        "scenarios: []\n",
			contains:   "configuration validation failed",
			invalidArg: true,
		},
		{
			desc:       "negative amount",
			doc:        "scenarios:\n  - name: x\n    parameters:\n      property_tax: -10\n",
			contains:   "property_tax",
			invalidArg: true,
		},
		{
			desc:       "duplicate names",
			doc:        "scenarios:\n  - name: x\n  - name: x\n",
			contains:   "duplicate",
			invalidArg: true,
		},
		{
			desc:       "percentage out of range",
			doc:        "scenarios:\n  - name: x\n    parameters:\n      marginal_tax_rate: 145\n",
			contains:   "marginal_tax_rate",
			invalidArg: true,
		},
		{
			desc:       "loan term out of range",
			doc:        "scenarios:\n  - name: x\n    parameters:\n      loan_term_years: 80\n",
			contains:   "loan_term_years",
			invalidArg: true,
		},
	}

	parser := NewInputParser()
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			config, err := parser.Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), tc.contains)
			if tc.invalidArg {
				assert.True(t, errors.Is(err, domain.ErrInvalidParameter), "expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.Len(t, config.Scenarios, 3)
	assert.NoError(t, parser.ValidateConfiguration(config))
	assert.Equal(t, domain.VariantAnnual, config.Scenarios[2].Variant)
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := parser.CreateExampleConfiguration()

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, SaveConfiguration(original, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "purchase_price")
	assert.Contains(t, string(data), "variant: annual")

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Scenarios, len(original.Scenarios))
	for i := range original.Scenarios {
		assert.Equal(t, original.Scenarios[i].Name, loaded.Scenarios[i].Name)
		assert.True(t, original.Scenarios[i].Parameters.PurchasePrice.Equal(loaded.Scenarios[i].Parameters.PurchasePrice))
		assert.Equal(t, original.Scenarios[i].Parameters.RentalType, loaded.Scenarios[i].Parameters.RentalType)
	}
}
