package epidemic

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/integrators"
	"github.com/san-kum/sirsim/internal/sim"
)

type strategyCase struct {
	name     string
	strategy sim.Strategy
	grid     dynamo.Grid
	tol      float64
}

func strategies() []strategyCase {
	return []strategyCase{
		{"euler", sim.NewFixedStep("euler", integrators.NewEuler()), dynamo.UnitGrid(200), 1e-9},
		{"rk4", sim.NewFixedStep("rk4", integrators.NewRK4()), dynamo.UnitGrid(200), 1e-9},
		{"rk45", sim.NewAdaptive(integrators.NewRK45(), sim.DefaultAdaptiveConfig()), dynamo.Linspace(0, 200, 500), 1e-6},
	}
}

var scenarios = []Parameters{
	{Beta: 0.25, I0: 10, S0: 90},
	{Beta: 1, I0: 1, S0: 99},
	{Beta: 1, I0: 0.01, S0: 99.99},
	{Beta: 0.5, I0: 50, S0: 50},
	{Beta: 0, I0: 10, S0: 90},
	{Beta: 0.8, I0: 100, S0: 0},
	{Beta: 0.3, I0: 0, S0: 100},
	{Beta: 0.4, I0: 5, S0: 60},
}

func TestModelDerivativeConserves(t *testing.T) {
	m := NewModel(0.7)
	dx := m.Derive(dynamo.State{40, 30, 30}, 0)
	if math.Abs(dx.Sum()) > 1e-12 {
		t.Errorf("derivatives sum to %g", dx.Sum())
	}
	if dx[S] != -0.7*40*30/100 {
		t.Errorf("dS = %g", dx[S])
	}
	if math.Abs(dx[R]-3) > 1e-12 {
		t.Errorf("dR = %g, want 3", dx[R])
	}
}

func TestModelParams(t *testing.T) {
	m := NewModel(0.25)
	if got := m.GetParams()["gamma"]; got != Gamma {
		t.Errorf("gamma = %g", got)
	}
	if err := m.SetParam("beta", 0.6); err != nil || m.Beta != 0.6 {
		t.Errorf("SetParam(beta) = %v, beta %g", err, m.Beta)
	}
	if err := m.SetParam("beta", 1.1); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("SetParam(beta=1.1) error = %v", err)
	}
	if err := m.SetParam("gamma", 0.2); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("SetParam(gamma) error = %v", err)
	}
}

func TestIntegrateConservation(t *testing.T) {
	for _, sc := range strategies() {
		for _, p := range scenarios {
			c, err := Integrate(sc.strategy, sc.grid, p)
			if err != nil {
				t.Fatalf("%s %v: %v", sc.name, p, err)
			}
			if c.Len() != sc.grid.Len() {
				t.Fatalf("%s: %d samples, want %d", sc.name, c.Len(), sc.grid.Len())
			}
			for k := 0; k < c.Len(); k++ {
				s, i, r := c.At(k)
				if math.Abs(s+i+r-Population) > sc.tol {
					t.Errorf("%s %v: S+I+R = %g at t=%g", sc.name, p, s+i+r, c.Times[k])
					break
				}
				if s < -sc.tol || i < -sc.tol || r < -sc.tol {
					t.Errorf("%s %v: negative compartment (%g, %g, %g) at t=%g", sc.name, p, s, i, r, c.Times[k])
					break
				}
			}
		}
	}
}

func TestIntegrateInitialCondition(t *testing.T) {
	for _, sc := range strategies() {
		p := Parameters{Beta: 0.35, I0: 7, S0: 80}
		c, err := Integrate(sc.strategy, sc.grid, p)
		if err != nil {
			t.Fatal(err)
		}
		s, i, r := c.At(0)
		if s != 80 || i != 7 || r != 100-80-7 {
			t.Errorf("%s: initial (%g, %g, %g)", sc.name, s, i, r)
		}
	}
}

func TestIntegrateDiseaseFree(t *testing.T) {
	for _, sc := range strategies() {
		c, err := Integrate(sc.strategy, sc.grid, Parameters{Beta: 0, I0: 25, S0: 60})
		if err != nil {
			t.Fatal(err)
		}
		for k := 1; k < c.Len(); k++ {
			if c.I[k] > c.I[k-1]+1e-9 {
				t.Errorf("%s: I increased at t=%g", sc.name, c.Times[k])
				break
			}
			if c.S[k] != 60 {
				t.Errorf("%s: S changed to %g without transmission", sc.name, c.S[k])
				break
			}
		}
	}
}

func TestIntegrateDefaultScenario(t *testing.T) {
	for _, sc := range strategies() {
		c, err := Integrate(sc.strategy, sc.grid, DefaultParameters())
		if err != nil {
			t.Fatal(err)
		}
		last := c.Len() - 1

		peak, peakAt := 0.0, 0
		for k, v := range c.I {
			if v > peak {
				peak, peakAt = v, k
			}
		}
		if peak <= 10 || peakAt == 0 || peakAt == last {
			t.Errorf("%s: infected should rise then fall, peak %g at sample %d", sc.name, peak, peakAt)
		}
		if c.I[last] > 0.01 {
			t.Errorf("%s: I(200) = %g, epidemic should burn out", sc.name, c.I[last])
		}
		for k := 1; k <= last; k++ {
			if c.S[k] > c.S[k-1]+1e-6 {
				t.Errorf("%s: S increased at t=%g", sc.name, c.Times[k])
				break
			}
			if c.R[k] < c.R[k-1]-1e-6 {
				t.Errorf("%s: R decreased at t=%g", sc.name, c.Times[k])
				break
			}
		}
		if math.Abs(c.R[last]-(Population-c.S[last])) > 0.01 {
			t.Errorf("%s: R(200) = %g, S(200) = %g", sc.name, c.R[last], c.S[last])
		}
		if c.Strategy != sc.name || c.Steps == 0 || c.Evaluations == 0 {
			t.Errorf("%s: stats %q steps=%d evals=%d", sc.name, c.Strategy, c.Steps, c.Evaluations)
		}
	}
}

func TestIntegrateRejectsInvalidParameters(t *testing.T) {
	sc := strategies()[2]
	_, err := Integrate(sc.strategy, sc.grid, Parameters{Beta: 0.2, I0: 60, S0: 60})
	var pe *dynamo.ParameterError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParameterError, got %v", err)
	}

	_, err = Integrate(sc.strategy, sc.grid, Parameters{Beta: -0.1, I0: 1, S0: 1})
	if !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("negative beta error = %v", err)
	}
}

func TestIntegrateWrapsStrategyErrors(t *testing.T) {
	fixed := sim.NewFixedStep("euler", integrators.NewEuler())
	grid, err := dynamo.NewGrid([]float64{0, 1, 3})
	if err != nil {
		t.Fatal(err)
	}
	_, err = Integrate(fixed, grid, DefaultParameters())
	if !errors.Is(err, dynamo.ErrInvalidGrid) {
		t.Errorf("error = %v, want ErrInvalidGrid", err)
	}
}
