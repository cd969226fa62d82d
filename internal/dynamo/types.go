package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total of all components.
func (s State) Sum() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Stage holds the result of one attempted adaptive step: the proposed state,
// the scaled error norm (<= 1 means accept) and whatever the scheme needs to
// interpolate inside the step.
type Stage struct {
	X       State
	ErrNorm float64
	Dense   DenseOutput
}

// DenseOutput evaluates the solution inside an accepted step.
type DenseOutput interface {
	At(t float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, rtol, atol float64) (Stage, float64, error)
}

// Configurable systems expose named scalar parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Result is a trajectory sampled on a Grid.
type Result struct {
	Times       []float64
	States      []State
	StepsTaken  int
	Rejected    int
	Evaluations int
}

// Component extracts one state index across all samples.
func (r *Result) Component(i int) []float64 {
	out := make([]float64, len(r.States))
	for k, s := range r.States {
		out[k] = s[i]
	}
	return out
}
