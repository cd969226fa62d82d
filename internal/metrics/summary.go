package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/sirsim/internal/epidemic"
)

// Summary is the metrics panel for one trajectory.
type Summary struct {
	PeakInfected       float64 `json:"peak_infected"`
	PeakDay            float64 `json:"peak_day"`
	FinalRecovered     float64 `json:"final_recovered"`
	FinalSusceptible   float64 `json:"final_susceptible"`
	ReproductionNumber float64 `json:"r0"`
	ConservationDrift  float64 `json:"conservation_drift"`
	Steps              int     `json:"steps"`
	Rejected           int     `json:"rejected"`
	Evaluations        int     `json:"evaluations"`
}

func Summarize(c *epidemic.Compartments) Summary {
	if c.Len() == 0 {
		return Summary{ReproductionNumber: c.Params.ReproductionNumber()}
	}
	v := Evaluate(c, Defaults()...)
	return Summary{
		PeakInfected:       v["peak_infected"],
		PeakDay:            v["peak_day"],
		FinalRecovered:     v["final_recovered"],
		FinalSusceptible:   v["final_susceptible"],
		ReproductionNumber: c.Params.ReproductionNumber(),
		ConservationDrift:  v["conservation_drift"],
		Steps:              c.Steps,
		Rejected:           c.Rejected,
		Evaluations:        c.Evaluations,
	}
}

// Lines renders the summary as label/value rows.
func (s Summary) Lines() [][2]string {
	return [][2]string{
		{"peak infected", fmt.Sprintf("%.2f%%", s.PeakInfected)},
		{"peak day", fmt.Sprintf("%.1f", s.PeakDay)},
		{"final recovered", fmt.Sprintf("%.2f%%", s.FinalRecovered)},
		{"final susceptible", fmt.Sprintf("%.2f%%", s.FinalSusceptible)},
		{"R0 (β/γ)", fmt.Sprintf("%.2f", s.ReproductionNumber)},
		{"drift", fmt.Sprintf("%.1e", s.ConservationDrift)},
		{"steps", fmt.Sprintf("%d (%d rejected, %d evals)", s.Steps, s.Rejected, s.Evaluations)},
	}
}

// Deviation is the largest per-compartment difference between two
// trajectories at the time instants they share.
type Deviation struct {
	Shared  int
	S, I, R float64
}

func (d Deviation) Max() float64 {
	return math.Max(d.S, math.Max(d.I, d.R))
}

// Compare matches samples of a and b whose times agree within 1e-9.
func Compare(a, b *epidemic.Compartments) Deviation {
	var as, ai, ar, bs, bi, br []float64
	j := 0
	for k, t := range a.Times {
		for j < b.Len() && b.Times[j] < t-1e-9 {
			j++
		}
		if j == b.Len() {
			break
		}
		if math.Abs(b.Times[j]-t) <= 1e-9 {
			as, ai, ar = append(as, a.S[k]), append(ai, a.I[k]), append(ar, a.R[k])
			bs, bi, br = append(bs, b.S[j]), append(bi, b.I[j]), append(br, b.R[j])
		}
	}
	if len(as) == 0 {
		return Deviation{}
	}
	inf := math.Inf(1)
	return Deviation{
		Shared: len(as),
		S:      floats.Distance(as, bs, inf),
		I:      floats.Distance(ai, bi, inf),
		R:      floats.Distance(ar, br, inf),
	}
}
