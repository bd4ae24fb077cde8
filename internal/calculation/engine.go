package calculation

import (
	"context"
	"fmt"

	"github.com/captaininvest/immosim/internal/domain"
)

// CalculationEngine runs property-versus-investment projections.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Simulate projects one parameter set. It is a pure function of its inputs
// apart from the run id. Invalid enumerations fail with ErrInvalidParameter;
// any unexpected failure inside the loop is recovered and reported as
// ErrComputationFailure with a nil result.
func (ce *CalculationEngine) Simulate(ctx context.Context, params domain.ParameterSet, variant domain.Variant) (*domain.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	pl, err := newPlan(params, variant)
	if err != nil {
		return nil, err
	}

	runID := runIDFunc()
	log := withFields(ce.Logger, "run_id", runID, "variant", string(pl.policy.variant))
	log.Debugf("simulating %d periods, financed %s, regime %s", pl.periods, pl.loan.Principal.StringFixed(2), pl.regime)

	var result *domain.SimulationResult
	err = guard(func() error {
		rows, err := pl.project()
		if err != nil {
			return err
		}
		result = &domain.SimulationResult{
			RunID:   runID,
			Variant: pl.policy.variant,
			Rows:    rows,
			Summary: pl.summarize(rows),
		}
		return nil
	})
	if err != nil {
		log.Errorf("simulation failed: %v", err)
		return nil, err
	}
	log.Debugf("simulation done: total gain %s, alternative %s", result.Summary.TotalGain, result.Summary.FinalAlternativeBalance)
	return result, nil
}

// guard runs fn and converts both its error and any panic into ErrComputationFailure.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrComputationFailure, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrComputationFailure, err)
	}
	return nil
}

// RunScenario simulates one named scenario and locates its crossover.
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	result, err := ce.Simulate(ctx, scenario.Parameters, scenario.Variant)
	if err != nil {
		return nil, err
	}
	crossover, err := FindCrossover(result)
	if err != nil {
		return nil, err
	}
	return &domain.ScenarioResult{
		Name:       scenario.Name,
		Parameters: scenario.Parameters,
		Result:     result,
		Crossover:  crossover,
	}, nil
}

// RunScenarios runs all scenarios one after the other and returns the report.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.Report, error) {
	report := &domain.Report{
		GeneratedAt: nowFunc(),
		Scenarios:   make([]domain.ScenarioResult, 0, len(config.Scenarios)),
		Assumptions: ModelAssumptions(),
	}
	for i := range config.Scenarios {
		sc := &config.Scenarios[i]
		res, err := ce.RunScenario(ctx, sc)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		report.Scenarios = append(report.Scenarios, *res)
	}
	report.Analysis = AnalyzeScenarios(report.Scenarios)
	return report, nil
}
