package epidemic

import (
	"fmt"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/sim"
)

// Compartments is one computed trajectory. It is never modified after
// Integrate returns; every recomputation produces a new value.
type Compartments struct {
	Params   Parameters
	Strategy string
	Times    []float64
	S, I, R  []float64

	Steps       int
	Rejected    int
	Evaluations int
}

func (c *Compartments) Len() int { return len(c.Times) }

// At returns (S, I, R) at sample k.
func (c *Compartments) At(k int) (s, i, r float64) {
	return c.S[k], c.I[k], c.R[k]
}

// Integrate solves the SIR system for p on grid with the given strategy.
// Parameters are validated, not normalized.
func Integrate(strategy sim.Strategy, grid dynamo.Grid, p Parameters) (*Compartments, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	res, err := strategy.Integrate(NewModel(p.Beta), p.InitialState(), grid)
	if err != nil {
		return nil, fmt.Errorf("integrate %s: %w", strategy.Name(), err)
	}

	return &Compartments{
		Params:      p,
		Strategy:    strategy.Name(),
		Times:       res.Times,
		S:           res.Component(S),
		I:           res.Component(I),
		R:           res.Component(R),
		Steps:       res.StepsTaken,
		Rejected:    res.Rejected,
		Evaluations: res.Evaluations,
	}, nil
}
