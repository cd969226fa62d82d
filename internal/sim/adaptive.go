package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/sirsim/internal/dynamo"
)

type AdaptiveConfig struct {
	Rtol      float64
	Atol      float64
	Horizon   float64
	FirstStep float64
	MinDt     float64
	MaxDt     float64
	MaxSteps  int
}

func DefaultAdaptiveConfig() AdaptiveConfig {
	return AdaptiveConfig{
		Rtol:      1e-6,
		Atol:      1e-9,
		Horizon:   200,
		FirstStep: 0.1,
		MinDt:     1e-10,
		MaxDt:     10,
		MaxSteps:  100000,
	}
}

// Adaptive steps an embedded pair from t=0 to the horizon and samples the
// grid through the scheme's dense output. The internal step sequence depends
// only on the system, the initial state and max(horizon, last grid instant).
type Adaptive struct {
	integrator dynamo.AdaptiveIntegrator
	cfg        AdaptiveConfig
}

func NewAdaptive(integrator dynamo.AdaptiveIntegrator, cfg AdaptiveConfig) *Adaptive {
	return &Adaptive{integrator: integrator, cfg: cfg}
}

func (a *Adaptive) Name() string { return "rk45" }

func (a *Adaptive) Config() AdaptiveConfig { return a.cfg }

func (a *Adaptive) Integrate(sys dynamo.System, x0 dynamo.State, grid dynamo.Grid) (*dynamo.Result, error) {
	if err := a.validateConfig(); err != nil {
		return nil, err
	}
	if grid.Empty() {
		return nil, fmt.Errorf("%w: empty grid", dynamo.ErrInvalidGrid)
	}
	if grid.Start() < 0 {
		return nil, fmt.Errorf("%w: grid starts before t=0 (%g)", dynamo.ErrInvalidGrid, grid.Start())
	}
	if len(x0) != sys.StateDim() {
		return nil, fmt.Errorf("%w: initial state has %d components, system %d", dynamo.ErrDimensionMismatch, len(x0), sys.StateDim())
	}

	counter := &countingSystem{System: sys}
	result := newResult(grid)
	end := math.Max(a.cfg.Horizon, grid.End())

	x := x0.Clone()
	t := 0.0
	dt := math.Min(a.cfg.FirstStep, end)
	next := 0

	// Samples at the initial instant are the initial condition itself.
	for next < grid.Len() && grid.At(next) <= t {
		result.States = append(result.States, x.Clone())
		next++
	}

	for next < grid.Len() {
		if result.StepsTaken+result.Rejected >= a.cfg.MaxSteps {
			return nil, &dynamo.SimulationError{Step: result.StepsTaken, Time: t, Wrapped: dynamo.ErrTooManySteps}
		}
		if dt < a.cfg.MinDt {
			return nil, &dynamo.SimulationError{Step: result.StepsTaken, Time: t, Wrapped: dynamo.ErrStepTooSmall}
		}
		if t+dt > end {
			dt = end - t
		}

		stage, dtNew, err := a.integrator.StepAdaptive(counter, x, t, dt, a.cfg.Rtol, a.cfg.Atol)
		if err != nil {
			return nil, &dynamo.SimulationError{Step: result.StepsTaken, Time: t, Wrapped: err}
		}
		if stage.ErrNorm > 1 {
			result.Rejected++
			dt = math.Min(dtNew, dt)
			continue
		}

		tNew := t + dt
		if end-tNew <= 1e-12*math.Max(1, end) {
			tNew = end
		}
		for next < grid.Len() && grid.At(next) <= tNew {
			if grid.At(next) == tNew {
				result.States = append(result.States, stage.X.Clone())
			} else {
				result.States = append(result.States, stage.Dense.At(grid.At(next)))
			}
			next++
		}

		x, t = stage.X, tNew
		result.StepsTaken++
		dt = math.Min(dtNew, a.cfg.MaxDt)
	}

	result.Evaluations = counter.n
	return result, nil
}

func (a *Adaptive) validateConfig() error {
	switch {
	case a.cfg.Rtol <= 0 || a.cfg.Atol <= 0:
		return fmt.Errorf("tolerances must be positive, got rtol=%g atol=%g", a.cfg.Rtol, a.cfg.Atol)
	case a.cfg.Horizon <= 0:
		return fmt.Errorf("horizon must be positive, got %f", a.cfg.Horizon)
	case a.cfg.FirstStep <= 0 || a.cfg.MaxDt <= 0:
		return fmt.Errorf("step sizes must be positive, got first=%g max=%g", a.cfg.FirstStep, a.cfg.MaxDt)
	case a.cfg.MaxSteps <= 0:
		return fmt.Errorf("step budget must be positive, got %d", a.cfg.MaxSteps)
	}
	return nil
}
