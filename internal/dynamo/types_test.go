package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_SumAndNorm(t *testing.T) {
	s := State{3, 4, 0}
	if s.Sum() != 7 {
		t.Errorf("Sum() = %v, want 7", s.Sum())
	}
	if math.Abs(s.Norm()-5) > 1e-12 {
		t.Errorf("Norm() = %v, want 5", s.Norm())
	}

	diff := State{4, 5, 6}.Sub(State{1, 2, 3})
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	src := State{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestResult_Component(t *testing.T) {
	r := &Result{States: []State{{1, 2}, {3, 4}, {5, 6}}}
	got := r.Component(1)
	want := []float64{2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Component(1) = %v, want %v", got, want)
		}
	}
}

func TestParameterError(t *testing.T) {
	var err error = &ParameterError{Name: "beta", Value: 1.5, Min: 0, Max: 1}

	if !errors.Is(err, ErrInvalidParameter) {
		t.Error("ParameterError should unwrap to ErrInvalidParameter")
	}
	want := "invalid parameter beta=1.5: outside [0, 1]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = &ParameterError{Name: "I0+S0", Value: 120, Reason: "exceeds population 100"}
	want = "invalid parameter I0+S0=120: exceeds population 100"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 150, Time: 1.5, Wrapped: ErrStepTooSmall}
	want := "step 150 (t=1.5000): dynamo: adaptive timestep below minimum"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrStepTooSmall) {
		t.Error("SimulationError should unwrap to its cause")
	}
}
