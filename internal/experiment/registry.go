package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/sirsim/internal/config"
	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/integrators"
	"github.com/san-kum/sirsim/internal/sim"
)

// AdaptiveSamples is the default output grid size for adaptive strategies.
const AdaptiveSamples = 500

type strategyEntry struct {
	adaptive bool
	build    func(cfg *config.Config) sim.Strategy
}

type Registry struct {
	strategies map[string]strategyEntry
}

func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]strategyEntry)}

	r.strategies["euler"] = strategyEntry{build: func(*config.Config) sim.Strategy {
		return sim.NewFixedStep("euler", integrators.NewEuler())
	}}
	r.strategies["rk4"] = strategyEntry{build: func(*config.Config) sim.Strategy {
		return sim.NewFixedStep("rk4", integrators.NewRK4())
	}}
	r.strategies["rk45"] = strategyEntry{adaptive: true, build: func(cfg *config.Config) sim.Strategy {
		ac := sim.DefaultAdaptiveConfig()
		ac.Rtol = cfg.Tolerance.Rtol
		ac.Atol = cfg.Tolerance.Atol
		ac.Horizon = cfg.Horizon
		return sim.NewAdaptive(integrators.NewRK45(), ac)
	}}

	return r
}

func (r *Registry) GetStrategy(name string, cfg *config.Config) (sim.Strategy, error) {
	e, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return e.build(cfg), nil
}

// Grid builds the output grid for the named strategy. With Samples unset a
// fixed-step strategy gets one sample per day and an adaptive one gets
// AdaptiveSamples points across the horizon.
func (r *Registry) Grid(name string, cfg *config.Config) (dynamo.Grid, error) {
	e, ok := r.strategies[name]
	if !ok {
		return dynamo.Grid{}, fmt.Errorf("unknown integrator: %s", name)
	}
	if cfg.Samples > 0 {
		return dynamo.Linspace(0, cfg.Horizon, cfg.Samples), nil
	}
	if e.adaptive {
		return dynamo.Linspace(0, cfg.Horizon, AdaptiveSamples), nil
	}
	if days := math.Round(cfg.Horizon); days == cfg.Horizon {
		return dynamo.UnitGrid(int(days)), nil
	}
	return dynamo.Linspace(0, cfg.Horizon, int(math.Ceil(cfg.Horizon))+1), nil
}

func (r *Registry) IsAdaptive(name string) bool {
	return r.strategies[name].adaptive
}

func (r *Registry) ListStrategies() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
