package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/session"
	"github.com/san-kum/sirsim/internal/viz"
)

const (
	background = "#0a0a0a"
	foreground = "#00cccc"
	muted      = "#888888"
)

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG converts a braille canvas to SVG, one circle per set dot.
// Marked cells become a larger circle, or a text label for letters.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	writeHeader(&sb, width, height)
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", foreground))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
					}
				}
			}
		}
	}
	sb.WriteString("</g>\n")

	for _, g := range canvas.Glyphs() {
		color := g.Color
		if color == "" {
			color = muted
		}
		cx := (float64(g.Col) + 0.5) * scale * 2
		cy := (float64(g.Row) + 0.5) * scale * 4
		if g.Rune == '●' {
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, scale*1.5, color))
			continue
		}
		sb.WriteString(fmt.Sprintf("<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"%.1f\" text-anchor=\"middle\">%s</text>\n",
			cx, cy+scale, color, scale*3, html.EscapeString(string(g.Rune))))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws each series as a polyline over [xs[0], xs[n-1]] x
// [0, Population].
func SeriesToSVG(xs []float64, series []session.Series, colors []string, width, height int) string {
	if len(xs) < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[len(xs)-1]
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}

	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height))

	for i, s := range series {
		if len(s.Values) != len(xs) {
			continue
		}
		color := muted
		if i < len(colors) {
			color = colors[i]
		}
		sb.WriteString(fmt.Sprintf("<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", color))
		for k, v := range s.Values {
			x := (xs[k] - minX) / rangeX * float64(width)
			y := float64(height) - v/epidemic.Population*float64(height)
			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"><title>")
		sb.WriteString(html.EscapeString(s.Name))
		sb.WriteString("</title></path>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// SVG is a rendering collaborator that writes a single SVG document per
// trajectory. It serves both the series and the phase view.
type SVG struct {
	w      io.Writer
	Width  int // cells for the phase view, pixels for the series view
	Height int
	Scale  float64
	Camera *viz.Camera
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{w: w, Width: 80, Height: 40, Scale: 4, Camera: viz.NewCamera()}
}

func (s *SVG) DisplaySeries(xs []float64, series []session.Series) error {
	if len(xs) < 2 {
		return fmt.Errorf("svg: need at least 2 samples, got %d", len(xs))
	}
	t := viz.CurrentTheme
	colors := []string{string(t.Susceptible), string(t.Infected), string(t.Recovered)}
	w := int(float64(s.Width) * s.Scale * 2)
	h := int(float64(s.Height) * s.Scale * 4)
	_, err := io.WriteString(s.w, SeriesToSVG(xs, series, colors, w, h))
	return err
}

func (s *SVG) DisplayCurve3D(points []session.Point3, markers []session.Marker) error {
	canvas := viz.PhaseCanvas(points, markers, s.Camera, s.Width, s.Height)
	_, err := io.WriteString(s.w, CanvasToSVG(canvas, s.Scale))
	return err
}
