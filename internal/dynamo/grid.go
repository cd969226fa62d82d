package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is an ordered, immutable sequence of sample instants.
type Grid struct {
	t []float64
}

// UnitGrid returns days 0, 1, ..., n.
func UnitGrid(n int) Grid {
	t := make([]float64, n+1)
	for i := range t {
		t[i] = float64(i)
	}
	return Grid{t: t}
}

// Linspace returns n evenly spaced instants over [lo, hi], both included.
func Linspace(lo, hi float64, n int) Grid {
	switch {
	case n <= 0:
		return Grid{}
	case n == 1:
		return Grid{t: []float64{lo}}
	}
	return Grid{t: floats.Span(make([]float64, n), lo, hi)}
}

// NewGrid copies times into a Grid after checking they are finite and
// strictly increasing.
func NewGrid(times []float64) (Grid, error) {
	for i, v := range times {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Grid{}, fmt.Errorf("%w: non-finite time at index %d", ErrInvalidGrid, i)
		}
		if i > 0 && v <= times[i-1] {
			return Grid{}, fmt.Errorf("%w: times not strictly increasing at index %d", ErrInvalidGrid, i)
		}
	}
	t := make([]float64, len(times))
	copy(t, times)
	return Grid{t: t}, nil
}

func (g Grid) Len() int         { return len(g.t) }
func (g Grid) At(i int) float64 { return g.t[i] }
func (g Grid) Start() float64   { return g.t[0] }
func (g Grid) End() float64     { return g.t[len(g.t)-1] }
func (g Grid) Empty() bool      { return len(g.t) == 0 }

// Times returns a copy of the sample instants.
func (g Grid) Times() []float64 {
	t := make([]float64, len(g.t))
	copy(t, g.t)
	return t
}

// Uniform reports whether consecutive instants share one spacing, and returns it.
func (g Grid) Uniform() (float64, bool) {
	if len(g.t) < 2 {
		return 0, false
	}
	dt := g.t[1] - g.t[0]
	tol := 1e-9 * math.Max(1, math.Abs(g.End()))
	for i := 2; i < len(g.t); i++ {
		if math.Abs(g.t[i]-g.t[i-1]-dt) > tol {
			return 0, false
		}
	}
	return dt, true
}
