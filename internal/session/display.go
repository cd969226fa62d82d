package session

import (
	"fmt"

	"github.com/san-kum/sirsim/internal/epidemic"
)

// Display receives every freshly computed trajectory.
type Display interface {
	Show(c *epidemic.Compartments) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(c *epidemic.Compartments) error

func (f DisplayFunc) Show(c *epidemic.Compartments) error { return f(c) }

// Series is one named curve of a time-series plot.
type Series struct {
	Name   string
	Values []float64
}

// SeriesDisplay draws named curves against a shared x axis.
type SeriesDisplay interface {
	DisplaySeries(xs []float64, series []Series) error
}

type Point3 struct {
	X, Y, Z float64
}

type MarkerStyle int

const (
	MarkerStart MarkerStyle = iota
	MarkerEnd
)

func (m MarkerStyle) Color() string {
	if m == MarkerStart {
		return "red"
	}
	return "green"
}

type Marker struct {
	Point Point3
	Style MarkerStyle
	Label string
}

// CurveDisplay draws a parametric curve in 3D with labelled markers.
type CurveDisplay interface {
	DisplayCurve3D(points []Point3, markers []Marker) error
}

// Curve names used by the time-series view.
const (
	SusceptibleName = "Susceptible"
	InfectedName    = "Infected"
	RecoveredName   = "Recovered (or removed)"
)

// SeriesView shows S, I and R against time.
type SeriesView struct {
	Target SeriesDisplay
}

func (v SeriesView) Show(c *epidemic.Compartments) error {
	return v.Target.DisplaySeries(c.Times, []Series{
		{Name: SusceptibleName, Values: c.S},
		{Name: InfectedName, Values: c.I},
		{Name: RecoveredName, Values: c.R},
	})
}

// PhaseView shows the trajectory as a curve through (S, I, R) space with
// markers on the first and last samples.
type PhaseView struct {
	Target CurveDisplay
}

func (v PhaseView) Show(c *epidemic.Compartments) error {
	points := make([]Point3, c.Len())
	for k := range points {
		s, i, r := c.At(k)
		points[k] = Point3{X: s, Y: i, Z: r}
	}
	var markers []Marker
	if n := len(points); n > 0 {
		markers = []Marker{
			{Point: points[0], Style: MarkerStart, Label: DayLabel(c.Times[0])},
			{Point: points[n-1], Style: MarkerEnd, Label: DayLabel(c.Times[n-1])},
		}
	}
	return v.Target.DisplayCurve3D(points, markers)
}

// DayLabel formats a marker caption such as "t = 200 [day]".
func DayLabel(t float64) string {
	return fmt.Sprintf("t = %g [day]", t)
}
