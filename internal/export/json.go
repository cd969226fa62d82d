package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/metrics"
)

type Data struct {
	Integrator string              `json:"integrator"`
	Params     epidemic.Parameters `json:"params"`
	Samples    int                 `json:"samples"`
	Times      []float64           `json:"times"`
	S          []float64           `json:"S"`
	I          []float64           `json:"I"`
	R          []float64           `json:"R"`
	Metrics    metrics.Summary     `json:"metrics"`
}

func NewData(c *epidemic.Compartments) Data {
	return Data{
		Integrator: c.Strategy,
		Params:     c.Params,
		Samples:    c.Len(),
		Times:      c.Times,
		S:          c.S,
		I:          c.I,
		R:          c.R,
		Metrics:    metrics.Summarize(c),
	}
}

// WriteJSON writes c and its metrics summary as indented JSON.
func WriteJSON(w io.Writer, c *epidemic.Compartments) error {
	if c == nil || c.Len() == 0 {
		return fmt.Errorf("no data to export")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewData(c))
}
