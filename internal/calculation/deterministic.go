package calculation

import (
	"time"

	"github.com/google/uuid"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// runIDFunc tags each simulation run for log correlation.
var runIDFunc = func() string { return uuid.Must(uuid.NewV7()).String() }

// SetRunIDFunc overrides the run id provider (use only in tests).
func SetRunIDFunc(f func() string) { runIDFunc = f }
