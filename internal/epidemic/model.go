package epidemic

import (
	"fmt"

	"github.com/san-kum/sirsim/internal/dynamo"
)

const (
	// Population is the fixed total N, in percent.
	Population = 100.0
	// Gamma is the fixed recovery rate per day.
	Gamma = 0.1
)

// State indices.
const (
	S = iota
	I
	R
)

type Model struct {
	Beta float64
}

var _ dynamo.Configurable = (*Model)(nil)

func NewModel(beta float64) *Model {
	return &Model{Beta: beta}
}

func (m *Model) StateDim() int { return 3 }

func (m *Model) Derive(x dynamo.State, t float64) dynamo.State {
	infection := m.Beta * x[S] * x[I] / Population
	recovery := Gamma * x[I]
	return dynamo.State{-infection, infection - recovery, recovery}
}

func (m *Model) GetParams() map[string]float64 {
	return map[string]float64{
		"beta":       m.Beta,
		"gamma":      Gamma,
		"population": Population,
	}
}

func (m *Model) SetParam(name string, value float64) error {
	switch name {
	case "beta":
		min, max := Beta.Range()
		if !inRange(value, min, max) {
			return &dynamo.ParameterError{Name: name, Value: value, Min: min, Max: max}
		}
		m.Beta = value
		return nil
	case "gamma", "population":
		return &dynamo.ParameterError{Name: name, Value: value, Reason: "fixed by the model"}
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrInvalidParameter, name)
	}
}
