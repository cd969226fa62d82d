package analysis

import (
	"fmt"
	"sort"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/metrics"
	"github.com/san-kum/sirsim/internal/sim"
)

// SweepPoint holds the metrics of one trajectory of a sweep.
type SweepPoint struct {
	Param  float64
	Params epidemic.Parameters // after normalization
	Values map[string]float64
}

// Sweep integrates base with id set to each of steps evenly spaced values in
// [from, to]. Every point goes through the normalization rule, so sweeping
// I0 past 100 - S0 shrinks S0 the same way the slider does.
func Sweep(
	strategy sim.Strategy,
	grid dynamo.Grid,
	base epidemic.Parameters,
	id epidemic.ParamID,
	from, to float64,
	steps int,
) ([]SweepPoint, error) {
	if steps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps, got %d", dynamo.ErrInvalidParameter, steps)
	}
	if to < from {
		from, to = to, from
	}
	step := (to - from) / float64(steps-1)

	results := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		v := from + float64(i)*step
		p := base.Apply(id, v)

		c, err := epidemic.Integrate(strategy, grid, p)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", id, v, err)
		}
		values := metrics.Evaluate(c, metrics.Defaults()...)
		values["r0"] = p.ReproductionNumber()

		results = append(results, SweepPoint{Param: v, Params: p, Values: values})
	}
	return results, nil
}

// Column returns one metric across the sweep.
func Column(points []SweepPoint, name string) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Values[name]
	}
	return out
}

// MetricNames lists the metric keys present in every point, sorted.
func MetricNames(points []SweepPoint) []string {
	if len(points) == 0 {
		return nil
	}
	var names []string
	for name := range points[0].Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SweepToASCII plots the named percentage metrics against the swept value.
func SweepToASCII(points []SweepPoint, id epidemic.ParamID, names []string, width, height int) string {
	if len(points) == 0 || len(names) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	data := make([][]float64, len(names))
	for i, name := range names {
		data[i] = Column(points, name)
	}
	colors := []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow}
	if len(names) < len(colors) {
		colors = colors[:len(names)]
	}

	caption := fmt.Sprintf("%s %g..%g", id.Label(), points[0].Param, points[len(points)-1].Param)
	return asciigraph.PlotMany(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(epidemic.Population),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
	)
}
