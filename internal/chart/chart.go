// Package chart renders the time-series view to a PNG image.
package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/sirsim/internal/session"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 640
)

var palette = []drawing.Color{chart.ColorBlue, chart.ColorRed, chart.ColorGreen}

// PNG is a session.SeriesDisplay that writes one image per call.
type PNG struct {
	w      io.Writer
	Width  int
	Height int
	Title  string
}

func NewPNG(w io.Writer, title string) *PNG {
	return &PNG{w: w, Width: DefaultWidth, Height: DefaultHeight, Title: title}
}

func (p *PNG) DisplaySeries(xs []float64, series []session.Series) error {
	if len(xs) < 2 {
		return errors.New("chart: need at least two samples")
	}

	cs := make([]chart.Series, 0, len(series))
	for i, s := range series {
		if len(s.Values) != len(xs) {
			return fmt.Errorf("chart: series %q has %d values for %d samples", s.Name, len(s.Values), len(xs))
		}
		cs = append(cs, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style:   chart.Style{StrokeColor: palette[i%len(palette)], StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Title:  p.Title,
		Width:  p.Width,
		Height: p.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Time [day]",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
			Ticks: generateTicks(xs[len(xs)-1], tickInterval(xs[len(xs)-1])),
		},
		YAxis: chart.YAxis{
			Name:  "Percentage of the population",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: cs,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, p.w); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}
	return nil
}

func generateTicks(xMax, interval float64) []chart.Tick {
	var ticks []chart.Tick
	for value := 0.0; value <= xMax+1e-9; value += interval {
		ticks = append(ticks, chart.Tick{Value: value, Label: fmt.Sprintf("%.0f", value)})
	}
	return ticks
}

// tickInterval picks a round spacing giving at most ten intervals.
func tickInterval(xMax float64) float64 {
	for _, iv := range []float64{1, 2, 5, 10, 20, 25, 50, 100} {
		if xMax/iv <= 10 {
			return iv
		}
	}
	return xMax / 10
}
