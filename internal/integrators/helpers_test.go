package integrators

import "github.com/san-kum/sirsim/internal/dynamo"

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

// exponentialDecay is dx/dt = -x, solved by x0*exp(-t).
type exponentialDecay struct{}

func (e *exponentialDecay) StateDim() int { return 1 }

func (e *exponentialDecay) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{-x[0]}
}
