package sim

import "github.com/san-kum/sirsim/internal/dynamo"

// Strategy solves an initial value problem on an output grid.
type Strategy interface {
	Name() string
	Integrate(sys dynamo.System, x0 dynamo.State, grid dynamo.Grid) (*dynamo.Result, error)
}

// countingSystem tallies derivative evaluations for solver statistics.
type countingSystem struct {
	dynamo.System
	n int
}

func (c *countingSystem) Derive(x dynamo.State, t float64) dynamo.State {
	c.n++
	return c.System.Derive(x, t)
}

func newResult(grid dynamo.Grid) *dynamo.Result {
	return &dynamo.Result{
		Times:  grid.Times(),
		States: make([]dynamo.State, 0, grid.Len()),
	}
}
