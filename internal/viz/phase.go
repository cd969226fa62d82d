package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/session"
)

// toBox maps a percentage triple onto the [-1, 1] cube with I pointing up.
func toBox(p session.Point3) Vec3 {
	half := epidemic.Population / 2
	return Vec3{
		X: (p.X - half) / half,
		Y: (p.Y - half) / half,
		Z: (p.Z - half) / half,
	}
}

// RenderPhase draws the (S, I, R) curve, the axes of the [0, 100] box and
// the markers, followed by a legend line per marker.
func RenderPhase(points []session.Point3, markers []session.Marker, cam *Camera, width, height int) string {
	st := newStyles(CurrentTheme)
	c := PhaseCanvas(points, markers, cam, width, height)
	var legend []string
	for _, m := range markers {
		legend = append(legend, markerStyle(st, m.Style).Render("● "+m.Label))
	}
	return c.String() + strings.Join(legend, "   ")
}

// PhaseCanvas draws the phase portrait onto a fresh canvas of width x height
// cells.
func PhaseCanvas(points []session.Point3, markers []session.Marker, cam *Camera, width, height int) *Canvas {
	st := newStyles(CurrentTheme)
	c := NewCanvas(max(width, 4), max(height, 2))
	cw, ch := c.PixelSize()

	Render3D(c, AxesWireframe(), cam)
	axisEnds := []struct {
		p Vec3
		r rune
	}{{Vec3{1, -1, -1}, 'S'}, {Vec3{-1, 1, -1}, 'I'}, {Vec3{-1, -1, 1}, 'R'}}
	for _, a := range axisEnds {
		if x, y, _, ok := cam.Project(a.p, cw, ch); ok {
			c.Mark(x, y, a.r, st.subtle)
		}
	}

	curve := make([]Vec3, len(points))
	for i, p := range points {
		curve[i] = toBox(p)
	}
	w := NewWireframe()
	w.Polyline(curve)
	Render3D(c, w, cam)

	for _, m := range markers {
		if x, y, _, ok := cam.Project(toBox(m.Point), cw, ch); ok {
			c.Mark(x, y, '●', markerStyle(st, m.Style))
		}
	}
	return c
}

func markerStyle(st styles, m session.MarkerStyle) lipgloss.Style {
	if m == session.MarkerStart {
		return st.start
	}
	return st.end
}
