package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/integrators"
	"github.com/san-kum/sirsim/internal/sim"
)

func trajectory() *epidemic.Compartments {
	return &epidemic.Compartments{
		Params: epidemic.DefaultParameters(),
		Times:  []float64{0, 1, 2, 3},
		S:      []float64{90, 80, 70, 69},
		I:      []float64{10, 15, 12, 8},
		R:      []float64{0, 5, 18, 23},
		Steps:  3,
	}
}

func TestPeakInfected(t *testing.T) {
	m := NewPeakInfected()
	m.Observe(dynamo.State{90, 10, 0}, 0)
	m.Observe(dynamo.State{80, 15, 5}, 1)
	m.Observe(dynamo.State{80, 15, 5}, 2)
	m.Observe(dynamo.State{70, 12, 18}, 3)

	if m.Value() != 15 {
		t.Errorf("expected peak 15, got %f", m.Value())
	}
	if m.Day() != 1 {
		t.Errorf("expected first peak day 1, got %f", m.Day())
	}

	m.Reset()
	m.Observe(dynamo.State{100, 0, 0}, 7)
	if m.Value() != 0 || m.Day() != 7 {
		t.Errorf("after reset: peak %f day %f", m.Value(), m.Day())
	}
}

func TestEvaluate(t *testing.T) {
	v := Evaluate(trajectory(), Defaults()...)

	want := map[string]float64{
		"peak_infected":      15,
		"peak_day":           1,
		"final_recovered":    23,
		"final_susceptible":  69,
		"conservation_drift": 0,
	}
	for name, w := range want {
		if got, ok := v[name]; !ok || got != w {
			t.Errorf("%s = %v, want %v", name, got, w)
		}
	}
}

func TestEvaluateResetsBetweenRuns(t *testing.T) {
	drift := NewConservationDrift()
	bad := trajectory()
	bad.R = []float64{0, 5, 18, 25}

	if got := Evaluate(bad, drift)["conservation_drift"]; got != 2 {
		t.Errorf("drift = %f, want 2", got)
	}
	if got := Evaluate(trajectory(), drift)["conservation_drift"]; got != 0 {
		t.Errorf("drift after re-evaluate = %f, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(trajectory())
	if s.PeakInfected != 15 || s.PeakDay != 1 || s.FinalRecovered != 23 || s.FinalSusceptible != 69 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.ReproductionNumber-2.5) > 1e-12 {
		t.Errorf("R0 = %f", s.ReproductionNumber)
	}
	if s.Steps != 3 {
		t.Errorf("steps = %d", s.Steps)
	}
	if len(s.Lines()) != 7 {
		t.Errorf("expected 7 summary rows, got %d", len(s.Lines()))
	}

	empty := Summarize(&epidemic.Compartments{Params: epidemic.DefaultParameters()})
	if empty.PeakInfected != 0 || empty.ReproductionNumber == 0 {
		t.Errorf("empty summary %+v", empty)
	}
}

func TestCompareSharedInstants(t *testing.T) {
	a := trajectory()
	b := &epidemic.Compartments{
		Times: []float64{0, 0.5, 1, 3, 4},
		S:     []float64{90, 0, 81, 69, 0},
		I:     []float64{10, 0, 15, 7.5, 0},
		R:     []float64{0, 0, 4, 23.5, 0},
	}

	d := Compare(a, b)
	if d.Shared != 3 {
		t.Fatalf("shared = %d, want 3", d.Shared)
	}
	if d.S != 1 || d.I != 0.5 || d.R != 1 {
		t.Errorf("deviation %+v", d)
	}
	if d.Max() != 1 {
		t.Errorf("max = %f", d.Max())
	}
}

func TestAdaptiveGridIndependence(t *testing.T) {
	strategy := sim.NewAdaptive(integrators.NewRK45(), sim.DefaultAdaptiveConfig())
	p := epidemic.Parameters{Beta: 0.6, I0: 2, S0: 95}

	coarse, err := epidemic.Integrate(strategy, dynamo.UnitGrid(200), p)
	if err != nil {
		t.Fatal(err)
	}
	fine, err := epidemic.Integrate(strategy, dynamo.Linspace(0, 200, 401), p)
	if err != nil {
		t.Fatal(err)
	}

	d := Compare(coarse, fine)
	if d.Shared != 201 {
		t.Fatalf("shared = %d, want 201", d.Shared)
	}
	if d.Max() > 1e-6 {
		t.Errorf("coarse and fine grids disagree by %g", d.Max())
	}
}
