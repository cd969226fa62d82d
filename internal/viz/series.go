package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sirsim/internal/session"
)

const (
	TimeAxisLabel       = "Time [day]"
	PercentageAxisLabel = "Percentage of the population"
)

var seriesColors = []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green}

// PlotSeries draws the curves on a fixed [0, 100] y axis. The caption names
// both axes and the time span of xs.
func PlotSeries(xs []float64, series []session.Series, width, height int) string {
	if len(series) == 0 || len(xs) == 0 {
		return ""
	}
	data := make([][]float64, len(series))
	legends := make([]string, len(series))
	colors := make([]asciigraph.AnsiColor, len(series))
	for i, s := range series {
		data[i] = s.Values
		legends[i] = s.Name
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	caption := fmt.Sprintf("%s %g..%g  (y: %s)", TimeAxisLabel, xs[0], xs[len(xs)-1], PercentageAxisLabel)
	return asciigraph.PlotMany(data,
		asciigraph.Width(max(width, 10)),
		asciigraph.Height(max(height, 5)),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}
