package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/sirsim/internal/dynamo"
)

// FixedStep advances one step of the wrapped integrator per grid interval.
type FixedStep struct {
	name          string
	integrator    dynamo.Integrator
	validateState bool
}

func NewFixedStep(name string, integrator dynamo.Integrator) *FixedStep {
	return &FixedStep{name: name, integrator: integrator, validateState: true}
}

func (f *FixedStep) Name() string { return f.name }

func (f *FixedStep) Integrate(sys dynamo.System, x0 dynamo.State, grid dynamo.Grid) (*dynamo.Result, error) {
	if err := f.validateGrid(grid); err != nil {
		return nil, err
	}
	if len(x0) != sys.StateDim() {
		return nil, fmt.Errorf("%w: initial state has %d components, system %d", dynamo.ErrDimensionMismatch, len(x0), sys.StateDim())
	}

	counter := &countingSystem{System: sys}
	result := newResult(grid)

	x := x0.Clone()
	result.States = append(result.States, x.Clone())

	for i := 1; i < grid.Len(); i++ {
		t := grid.At(i - 1)
		x = f.integrator.Step(counter, x, t, grid.At(i)-t)

		if f.validateState && !x.IsValid() {
			return nil, &dynamo.SimulationError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState}
		}

		result.States = append(result.States, x.Clone())
		result.StepsTaken++
	}

	result.Evaluations = counter.n
	return result, nil
}

func (f *FixedStep) validateGrid(grid dynamo.Grid) error {
	if grid.Empty() {
		return fmt.Errorf("%w: empty grid", dynamo.ErrInvalidGrid)
	}
	if grid.Start() != 0 {
		return fmt.Errorf("%w: fixed-step grid must start at 0, got %g", dynamo.ErrInvalidGrid, grid.Start())
	}
	if grid.Len() == 1 {
		return nil
	}
	dt, ok := grid.Uniform()
	if !ok || dt <= 0 || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: fixed-step grid must be uniformly spaced", dynamo.ErrInvalidGrid)
	}
	return nil
}
