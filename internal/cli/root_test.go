package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captaininvest/immosim/internal/config"
	"github.com/captaininvest/immosim/internal/output"
)

var scenarioFile = filepath.Join("..", "config", "testdata", "scenarios.yaml")

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "immosim", cmd.Use)
	assert.Contains(t, cmd.Long, "financial product")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "validate", "example", "crossover", "set"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCases := map[string]string{
		"log-level":  "warn",
		"log-format": "console",
		"log-file":   "",
		"format":     "console",
		"output":     "",
		"settings":   "",
	}
	for name, def := range testCases {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, def, f.DefValue, name)
	}
	assert.Equal(t, "f", cmd.PersistentFlags().Lookup("format").Shorthand)
}

func TestRun_CSV(t *testing.T) {
	out, err := execute(t, "run", scenarioFile, "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Variant,Periods"))
	assert.True(t, strings.HasPrefix(lines[1], "Immeuble à rénover,annual,30,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "T2 Lyon meublé,monthly,300,"), lines[2])
}

func TestRun_VariantOverride(t *testing.T) {
	out, err := execute(t, "run", scenarioFile, "--format", "csv", "--variant", "annual")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, ",annual,30,"))

	_, err = execute(t, "run", scenarioFile, "--variant", "weekly")
	assert.Error(t, err)
}

func TestRun_FormatFromEnvironment(t *testing.T) {
	t.Setenv("IMMOSIM_FORMAT", "json")
	out, err := execute(t, "run", scenarioFile)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded["scenarios"], 2)
}

func TestRun_SettingsFile(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "immosim.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("format: table\nlog:\n  level: error\n"), 0644))

	out, err := execute(t, "run", scenarioFile, "--settings", settings)
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO 1: T2 Lyon meublé")

	_, err = execute(t, "run", scenarioFile, "--settings", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRun_OutputDirectory(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", scenarioFile, "--format", "html", "--output", dir)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "wrote "), out)

	path := strings.TrimSpace(strings.TrimPrefix(out, "wrote "))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "T2 Lyon meublé")

	out, err = execute(t, "run", scenarioFile, "--format", "all", "--output", dir)
	require.NoError(t, err)
	assert.Equal(t, len(output.AvailableFormatterNames()), strings.Count(out, "wrote "))
}

func TestRun_Errors(t *testing.T) {
	_, err := execute(t, "run", scenarioFile, "--format", "pdf")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	_, err = execute(t, "run", scenarioFile, "--format", "all")
	assert.Error(t, err)

	_, err = execute(t, "run", "does-not-exist.yaml")
	assert.Error(t, err)

	_, err = execute(t, "run")
	assert.Error(t, err)

	_, err = execute(t, "run", scenarioFile, "--log-level", "loud")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", scenarioFile)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 2 scenario(s) valid")
	assert.Contains(t, out, "T2 Lyon meublé (monthly, furnished, personal)")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scenarios:\n  - name: x\n    parameters:\n      montly_rent: 900\n"), 0644))
	out, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, out, "✗ Validation failed")
}

func TestExample(t *testing.T) {
	out, err := execute(t, "example")
	require.NoError(t, err)

	cfg, err := config.NewInputParser().Parse([]byte(out))
	require.NoError(t, err)
	assert.Len(t, cfg.Scenarios, 3)

	path := filepath.Join(t.TempDir(), "example.yaml")
	out, err = execute(t, "example", "--write", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)
	_, err = config.NewInputParser().LoadFromFile(path)
	assert.NoError(t, err)
}

func TestCrossover(t *testing.T) {
	out, err := execute(t, "crossover", scenarioFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "T2 Lyon meublé: "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Immeuble à rénover: "), lines[1])
}

func TestSet(t *testing.T) {
	out, err := execute(t, "set", scenarioFile, "monthly_rent=950", "loan_rate=abc", "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 update(s) rejected")
	assert.Contains(t, out, "✓ monthly_rent=950")
	assert.Contains(t, out, "✗ loan_rate=abc")
	assert.Contains(t, out, "Scenario,Variant,Periods")
	assert.Contains(t, out, "T2 Lyon meublé,monthly,300,")

	out, err = execute(t, "set", scenarioFile, "--scenario", "Immeuble à rénover", "rental_type=furnished", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Immeuble à rénover,annual,30,")

	_, err = execute(t, "set", scenarioFile, "--scenario", "nope", "monthly_rent=900")
	assert.Error(t, err)

	_, err = execute(t, "set", scenarioFile, "monthly_rent")
	assert.Error(t, err)
}
