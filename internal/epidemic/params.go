package epidemic

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/sirsim/internal/dynamo"
)

// sumTolerance absorbs rounding in I0 + S0 after normalization.
const sumTolerance = 1e-9

// ParamID names one of the three adjustable inputs.
type ParamID int

const (
	Beta ParamID = iota
	Infected0
	Susceptible0
)

// ParamIDs lists the inputs in slider order.
var ParamIDs = []ParamID{Beta, Infected0, Susceptible0}

func (id ParamID) String() string {
	switch id {
	case Beta:
		return "beta"
	case Infected0:
		return "i0"
	case Susceptible0:
		return "s0"
	default:
		return fmt.Sprintf("ParamID(%d)", int(id))
	}
}

// Label is the human readable slider caption.
func (id ParamID) Label() string {
	switch id {
	case Beta:
		return "Transmission rate β"
	case Infected0:
		return "Initial percentage of infected people"
	case Susceptible0:
		return "Initial percentage of susceptible people"
	default:
		return id.String()
	}
}

// Range returns the closed interval the input is clamped to.
func (id ParamID) Range() (min, max float64) {
	if id == Beta {
		return 0, 1
	}
	return 0, Population
}

// ParseParamID accepts the short names used on the command line and in config.
func ParseParamID(name string) (ParamID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "beta", "b":
		return Beta, nil
	case "i0", "infected":
		return Infected0, nil
	case "s0", "susceptible":
		return Susceptible0, nil
	}
	return 0, fmt.Errorf("%w: unknown parameter %q", dynamo.ErrInvalidParameter, name)
}

type Parameters struct {
	Beta float64 `yaml:"beta" toml:"beta" json:"beta"`
	I0   float64 `yaml:"i0" toml:"i0" json:"i0"`
	S0   float64 `yaml:"s0" toml:"s0" json:"s0"`
}

func DefaultParameters() Parameters {
	return Parameters{Beta: 0.25, I0: 10, S0: 90}
}

// R0Init is the initially recovered share, N - S0 - I0.
func (p Parameters) R0Init() float64 {
	return Population - p.S0 - p.I0
}

// ReproductionNumber is the basic reproduction number β/γ.
func (p Parameters) ReproductionNumber() float64 {
	return p.Beta / Gamma
}

func (p Parameters) InitialState() dynamo.State {
	return dynamo.State{p.S0, p.I0, p.R0Init()}
}

func (p Parameters) Get(id ParamID) float64 {
	switch id {
	case Beta:
		return p.Beta
	case Infected0:
		return p.I0
	case Susceptible0:
		return p.S0
	}
	return math.NaN()
}

// With returns p with one input replaced by raw, unnormalized.
func (p Parameters) With(id ParamID, raw float64) Parameters {
	switch id {
	case Beta:
		p.Beta = raw
	case Infected0:
		p.I0 = raw
	case Susceptible0:
		p.S0 = raw
	}
	return p
}

// Apply replaces one input and normalizes the result.
func (p Parameters) Apply(id ParamID, raw float64) Parameters {
	return p.With(id, raw).Normalize()
}

// Normalize enforces I0 + S0 <= N. Excess is taken from I0 first; once I0 is
// exhausted S0 absorbs the remainder. β is never touched by the sum check.
// Each value is clamped to its range only after the sum check.
func (p Parameters) Normalize() Parameters {
	if total := p.I0 + p.S0; total > Population {
		excess := total - Population
		if p.I0 >= excess {
			p.I0 -= excess
		} else {
			p.S0 = p.S0 - excess + p.I0
			p.I0 = 0
		}
	}
	p.Beta = clamp(p.Beta, Beta)
	p.I0 = clamp(p.I0, Infected0)
	p.S0 = clamp(p.S0, Susceptible0)
	return p
}

// Validate reports the first input outside its range, or a sum above N.
func (p Parameters) Validate() error {
	for _, id := range ParamIDs {
		v := p.Get(id)
		min, max := id.Range()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &dynamo.ParameterError{Name: id.String(), Value: v, Min: min, Max: max, Reason: "not a finite number"}
		}
		if !inRange(v, min, max) {
			return &dynamo.ParameterError{Name: id.String(), Value: v, Min: min, Max: max}
		}
	}
	if sum := p.I0 + p.S0; sum > Population+sumTolerance {
		return &dynamo.ParameterError{
			Name:   "i0+s0",
			Value:  sum,
			Min:    0,
			Max:    Population,
			Reason: fmt.Sprintf("exceeds population %g", Population),
		}
	}
	return nil
}

func (p Parameters) String() string {
	return fmt.Sprintf("β=%.2f I0=%.1f%% S0=%.1f%% R0=%.1f%%", p.Beta, p.I0, p.S0, p.R0Init())
}

func clamp(v float64, id ParamID) float64 {
	min, max := id.Range()
	return math.Max(min, math.Min(max, v))
}

func inRange(v, min, max float64) bool {
	return v >= min && v <= max
}
