// Package optim searches the SIR inputs for the trajectory that best matches
// an objective.
package optim

import (
	"fmt"
	"math"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/metrics"
	"github.com/san-kum/sirsim/internal/sim"
)

// Objective scores a trajectory. Lower is better.
type Objective func(c *epidemic.Compartments) float64

// TargetMetric scores the distance between one metric and a target value.
func TargetMetric(m metrics.Metric, target float64) Objective {
	return func(c *epidemic.Compartments) float64 {
		v := metrics.Evaluate(c, m)[m.Name()]
		return math.Abs(v - target)
	}
}

type GridSearch struct {
	params []epidemic.ParamID
	ranges [][]float64
}

func NewGridSearch(params []epidemic.ParamID, ranges [][]float64) *GridSearch {
	return &GridSearch{params: params, ranges: ranges}
}

// Result is the best point found and how many candidates were integrated.
type Result struct {
	Params    epidemic.Parameters
	Score     float64
	Evaluated int
}

// Search tries every combination of the ranges on top of base. Candidates
// are normalized before integration, so combinations that collapse onto the
// same normalized inputs are scored more than once.
func (g *GridSearch) Search(strategy sim.Strategy, grid dynamo.Grid, base epidemic.Parameters, objective Objective) (*Result, error) {
	if len(g.params) != len(g.ranges) {
		return nil, fmt.Errorf("%w: %d parameters but %d ranges", dynamo.ErrInvalidParameter, len(g.params), len(g.ranges))
	}
	for i, r := range g.ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("%w: empty range for %s", dynamo.ErrInvalidParameter, g.params[i])
		}
	}

	best := &Result{Score: math.Inf(1)}
	if err := g.searchRecursive(0, base, strategy, grid, objective, best); err != nil {
		return nil, err
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	depth int,
	current epidemic.Parameters,
	strategy sim.Strategy,
	grid dynamo.Grid,
	objective Objective,
	best *Result,
) error {
	if depth == len(g.params) {
		p := current.Normalize()
		c, err := epidemic.Integrate(strategy, grid, p)
		if err != nil {
			return err
		}
		best.Evaluated++

		if score := objective(c); score < best.Score {
			best.Score = score
			best.Params = p
		}
		return nil
	}

	id := g.params[depth]
	for _, val := range g.ranges[depth] {
		if err := g.searchRecursive(depth+1, current.With(id, val), strategy, grid, objective, best); err != nil {
			return err
		}
	}
	return nil
}

// Span returns n evenly spaced values covering [from, to].
func Span(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{from}
	}
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	out[n-1] = to
	return out
}
