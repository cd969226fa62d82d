// Package experiment turns a config.Config into runnable strategies, grids
// and interactive sessions.
package experiment

import (
	"fmt"
	"log"

	"github.com/san-kum/sirsim/internal/config"
	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/metrics"
	"github.com/san-kum/sirsim/internal/session"
	"github.com/san-kum/sirsim/internal/sim"
)

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	strategy sim.Strategy
	grid     dynamo.Grid
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	r := NewRegistry()
	strategy, err := r.GetStrategy(cfg.Integrator, cfg)
	if err != nil {
		return nil, err
	}
	grid, err := r.Grid(cfg.Integrator, cfg)
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, registry: r, strategy: strategy, grid: grid}, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Strategy() sim.Strategy { return e.strategy }

func (e *Experiment) Grid() dynamo.Grid { return e.grid }

// Params returns the configured parameters after normalization.
func (e *Experiment) Params() epidemic.Parameters {
	return e.cfg.Params.Normalize()
}

// Run computes one trajectory for the configured parameters.
func (e *Experiment) Run() (*epidemic.Compartments, error) {
	return epidemic.Integrate(e.strategy, e.grid, e.Params())
}

// NewSession starts an interactive session that renders into display.
func (e *Experiment) NewSession(display session.Display, logger *log.Logger) (*session.Session, error) {
	return session.New(e.strategy, e.grid, display,
		session.WithParameters(e.cfg.Params),
		session.WithLogger(logger),
	)
}

// Comparison pits the unit-step Euler scheme against the adaptive solver on
// the daily grid.
type Comparison struct {
	Fixed     *epidemic.Compartments
	Adaptive  *epidemic.Compartments
	Deviation metrics.Deviation
}

func (e *Experiment) Compare() (*Comparison, error) {
	cfg := e.cfg.Clone()
	cfg.Samples = 0

	results := make([]*epidemic.Compartments, 0, 2)
	for _, name := range []string{"euler", "rk45"} {
		strategy, err := e.registry.GetStrategy(name, cfg)
		if err != nil {
			return nil, err
		}
		grid, err := e.registry.Grid("euler", cfg)
		if err != nil {
			return nil, err
		}
		c, err := epidemic.Integrate(strategy, grid, e.Params())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		results = append(results, c)
	}

	return &Comparison{
		Fixed:     results[0],
		Adaptive:  results[1],
		Deviation: metrics.Compare(results[0], results[1]),
	}, nil
}
