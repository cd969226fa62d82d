package viz

import (
	"math"
	"sort"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects the phase box onto the canvas.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera looks at the unit box from slightly above and to the side.
func NewCamera() *Camera {
	return &Camera{Distance: 5, Near: 0.1, RotX: -0.45, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Reset() { *c = *NewCamera() }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to sub-pixel screen coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	pScale := math.Min(float64(sw), float64(sh)) / 5.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe         { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()            { w.Edges = w.Edges[:0] }

// Polyline joins consecutive points.
func (w *Wireframe) Polyline(ps []Vec3) {
	for i := 1; i < len(ps); i++ {
		w.AddEdge(ps[i-1], ps[i])
	}
	if len(ps) == 1 {
		w.AddPoint(ps[0])
	}
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// AxesWireframe draws the three axes of the [-1, 1] box from its origin corner.
func AxesWireframe() *Wireframe {
	w, o := NewWireframe(), Vec3{-1, -1, -1}
	w.AddEdge(o, Vec3{1, -1, -1})
	w.AddEdge(o, Vec3{-1, 1, -1})
	w.AddEdge(o, Vec3{-1, -1, 1})
	return w
}
