package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// mark replaces a whole cell with a styled glyph.
type mark struct {
	r     rune
	style lipgloss.Style
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	marks         map[[2]int]mark
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		marks:  make(map[[2]int]mark),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Mark draws r in the cell holding sub-pixel (x, y), on top of any dots.
func (c *Canvas) Mark(x, y int, r rune, style lipgloss.Style) {
	col, row, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.marks[[2]int{row, col}] = mark{r: r, style: style}
}

// Glyph is a cell replaced by Mark.
type Glyph struct {
	Col, Row int
	Rune     rune
	Color    string
}

// Glyphs lists the marked cells in row-major order.
func (c *Canvas) Glyphs() []Glyph {
	out := make([]Glyph, 0, len(c.marks))
	for i := range c.Grid {
		for j := range c.Grid[i] {
			m, ok := c.marks[[2]int{i, j}]
			if !ok {
				continue
			}
			g := Glyph{Col: j, Row: i, Rune: m.r}
			if col, ok := m.style.GetForeground().(lipgloss.Color); ok {
				g.Color = string(col)
			}
			out = append(out, g)
		}
	}
	return out
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	clear(c.marks)
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if m, ok := c.marks[[2]int{i, j}]; ok {
				b.WriteString(m.style.Render(string(m.r)))
				continue
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) cell(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return col, row, true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
