package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidParameter indicates a parameter value outside its valid range.
	ErrInvalidParameter = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidGrid indicates an output grid the strategy cannot sample.
	ErrInvalidGrid = errors.New("dynamo: invalid time grid")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrTooManySteps indicates the adaptive driver exhausted its step budget.
	ErrTooManySteps = errors.New("dynamo: step budget exhausted before horizon")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// ParameterError reports a single rejected model input.
type ParameterError struct {
	Name     string
	Value    float64
	Min, Max float64
	Reason   string
}

func (e *ParameterError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %s=%g: outside [%g, %g]", e.Name, e.Value, e.Min, e.Max)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
