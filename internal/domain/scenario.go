package domain

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Scenario is one named simulation request.
type Scenario struct {
	Name       string       `yaml:"name" json:"name"`
	Variant    Variant      `yaml:"variant" json:"variant"`
	Parameters ParameterSet `yaml:"parameters" json:"parameters"`
}

// UnmarshalYAML starts every scenario from the default parameter set so a
// file only needs to list the fields it changes. Unknown keys are rejected.
func (s *Scenario) UnmarshalYAML(value *yaml.Node) error {
	type plain Scenario
	decoded := plain{Variant: VariantMonthly, Parameters: DefaultParameterSet()}
	raw, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&decoded); err != nil {
		return err
	}
	*s = Scenario(decoded)
	return nil
}

// Configuration is the content of a scenario file.
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Validate checks every scenario and requires unique, non-empty names.
func (c *Configuration) Validate() error {
	if len(c.Scenarios) == 0 {
		return invalid("scenarios", "", "at least one scenario is required")
	}
	seen := make(map[string]bool, len(c.Scenarios))
	for i := range c.Scenarios {
		sc := &c.Scenarios[i]
		if sc.Name == "" {
			return invalid(fmt.Sprintf("scenarios[%d].name", i), "", "must not be empty")
		}
		if seen[sc.Name] {
			return invalid(fmt.Sprintf("scenarios[%d].name", i), sc.Name, "duplicate scenario name")
		}
		seen[sc.Name] = true
		if _, err := ParseVariant(string(sc.Variant)); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		if err := sc.Parameters.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	return nil
}
