package calculation

import (
	"context"
	"errors"

	"github.com/captaininvest/immosim/internal/domain"
)

// Session is the interactive boundary around the engine: it owns the current
// parameters and the last valid result. Not safe for concurrent use.
type Session struct {
	engine  *CalculationEngine
	variant domain.Variant
	params  domain.ParameterSet
	last    *domain.SimulationResult
	lastErr error
}

// NewSession starts a session from params. Nothing is computed until Recompute.
func NewSession(engine *CalculationEngine, params domain.ParameterSet, variant domain.Variant) *Session {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &Session{engine: engine, variant: variant, params: params}
}

// Parameters returns a copy of the current parameters.
func (s *Session) Parameters() domain.ParameterSet { return s.params }

// Result returns the last valid result, or nil before the first success.
func (s *Session) Result() *domain.SimulationResult { return s.last }

// LastError is the error of the most recent Recompute, nil on success.
func (s *Session) LastError() error { return s.lastErr }

// Set applies one field update. Invalid input is rejected with
// ErrInvalidParameter and the previous value is kept.
func (s *Session) Set(field, raw string) error {
	next := s.params
	if err := next.SetField(field, raw); err != nil {
		s.engine.Logger.Warnf("rejected %s=%q: %v", field, raw, err)
		return err
	}
	s.params = next
	return nil
}

// Recompute projects the current parameters from scratch. On failure the
// previous result stays available through Result.
func (s *Session) Recompute(ctx context.Context) (*domain.SimulationResult, error) {
	res, err := s.engine.Simulate(ctx, s.params, s.variant)
	s.lastErr = err
	if err != nil {
		if errors.Is(err, domain.ErrComputationFailure) {
			s.engine.Logger.Errorf("no result available, keeping previous: %v", err)
		}
		return s.last, err
	}
	s.last = res
	return res, nil
}

// Update sets a field and recomputes when the value was accepted.
func (s *Session) Update(ctx context.Context, field, raw string) (*domain.SimulationResult, error) {
	if err := s.Set(field, raw); err != nil {
		return s.last, err
	}
	return s.Recompute(ctx)
}
