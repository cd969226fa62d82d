package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/sirsim/internal/dynamo"
)

func TestEulerSingleStep(t *testing.T) {
	integ := NewEuler()
	x := integ.Step(&exponentialDecay{}, dynamo.State{2.0}, 0, 0.5)

	if x[0] != 1.0 {
		t.Errorf("expected 1.0 after one step, got %v", x[0])
	}
}

func TestEulerConvergesFirstOrder(t *testing.T) {
	integ := NewEuler()
	dyn := &exponentialDecay{}

	run := func(dt float64) float64 {
		x := dynamo.State{1.0}
		steps := int(math.Round(1.0 / dt))
		for i := 0; i < steps; i++ {
			x = integ.Step(dyn, x, float64(i)*dt, dt)
		}
		return math.Abs(x[0] - math.Exp(-1))
	}

	coarse, fine := run(0.01), run(0.005)
	ratio := coarse / fine
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("expected error ratio ~2 when halving dt, got %.3f", ratio)
	}
}

func TestEulerDoesNotMutateInput(t *testing.T) {
	integ := NewEuler()
	x0 := dynamo.State{1.0, 0.0}
	integ.Step(&harmonicOscillator{}, x0, 0, 0.1)
	if x0[0] != 1.0 || x0[1] != 0.0 {
		t.Errorf("input state mutated: %v", x0)
	}
}
