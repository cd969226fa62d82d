// Package metrics reduces a computed SIR trajectory to scalar summaries.
package metrics

import (
	"math"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/epidemic"
)

// Metric accumulates one scalar over the samples of a trajectory.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

type PeakInfected struct {
	name    string
	peak    float64
	day     float64
	samples int
}

func NewPeakInfected() *PeakInfected {
	return &PeakInfected{name: "peak_infected"}
}

func (p *PeakInfected) Name() string { return p.name }

func (p *PeakInfected) Observe(x dynamo.State, t float64) {
	if p.samples == 0 || x[epidemic.I] > p.peak {
		p.peak = x[epidemic.I]
		p.day = t
	}
	p.samples++
}

func (p *PeakInfected) Value() float64 { return p.peak }

// Day is the time at which the peak was first reached.
func (p *PeakInfected) Day() float64 { return p.day }

func (p *PeakInfected) Reset() {
	p.peak = 0
	p.day = 0
	p.samples = 0
}

// PeakDay exposes the day of the infection peak as its own metric.
type PeakDay struct {
	*PeakInfected
}

func NewPeakDay() *PeakDay {
	return &PeakDay{PeakInfected: &PeakInfected{name: "peak_day"}}
}

func (p *PeakDay) Value() float64 { return p.day }

// Final records the last observed value of one compartment.
type Final struct {
	name  string
	index int
	last  float64
}

func NewFinalSize() *Final {
	return &Final{name: "final_recovered", index: epidemic.R}
}

func NewFinalSusceptible() *Final {
	return &Final{name: "final_susceptible", index: epidemic.S}
}

func (f *Final) Name() string { return f.name }

func (f *Final) Observe(x dynamo.State, t float64) { f.last = x[f.index] }

func (f *Final) Value() float64 { return f.last }

func (f *Final) Reset() { f.last = 0 }

// ConservationDrift is the largest |S+I+R-N| seen.
type ConservationDrift struct {
	name     string
	maxDrift float64
}

func NewConservationDrift() *ConservationDrift {
	return &ConservationDrift{name: "conservation_drift"}
}

func (c *ConservationDrift) Name() string { return c.name }

func (c *ConservationDrift) Observe(x dynamo.State, t float64) {
	c.maxDrift = math.Max(c.maxDrift, math.Abs(x.Sum()-epidemic.Population))
}

func (c *ConservationDrift) Value() float64 { return c.maxDrift }

func (c *ConservationDrift) Reset() { c.maxDrift = 0 }

// Defaults returns the metrics shown alongside every trajectory.
func Defaults() []Metric {
	return []Metric{
		NewPeakInfected(),
		NewPeakDay(),
		NewFinalSize(),
		NewFinalSusceptible(),
		NewConservationDrift(),
	}
}

// Evaluate resets each metric, feeds it every sample of c and returns the
// values keyed by metric name.
func Evaluate(c *epidemic.Compartments, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	x := make(dynamo.State, 3)
	for k := 0; k < c.Len(); k++ {
		x[epidemic.S], x[epidemic.I], x[epidemic.R] = c.At(k)
		for _, m := range ms {
			m.Observe(x, c.Times[k])
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
