package viz

import (
	"math"
	"strings"

	"github.com/san-kum/dialsim/internal/geom"
)

const blank = 0x2800

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Width x Height grid of braille cells, addressed in dots:
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the dot at (x, y). Dots off the canvas are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine uses Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
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

// DrawCircle outlines a circle with the midpoint algorithm. A radius
// below one dot marks just the center.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillCircle sets every dot within r of the center.
func (c *Canvas) FillCircle(cx, cy, r int) {
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r2 {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// DrawPolygon outlines a closed polygon given in dot coordinates.
func (c *Canvas) DrawPolygon(pts [][2]int) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		c.DrawLine(a[0], a[1], b[0], b[1])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Projection maps world pixels onto canvas dots with one uniform scale,
// centering the world on the canvas. Braille dots are close enough to
// square that no aspect correction is applied.
type Projection struct {
	Scale      float64
	OffX, OffY float64
}

// Fit returns the projection that shows all of w on c.
func Fit(w geom.World, c *Canvas) Projection {
	dw, dh := float64(c.Width*2), float64(c.Height*4)
	if w.Width <= 0 || w.Height <= 0 {
		return Projection{Scale: 1}
	}
	s := math.Min(dw/w.Width, dh/w.Height)
	return Projection{
		Scale: s,
		OffX:  (dw - w.Width*s) / 2,
		OffY:  (dh - w.Height*s) / 2,
	}
}

// Dot maps a world point to the nearest dot.
func (p Projection) Dot(v geom.Vec2) (int, int) {
	return int(math.Round(v.X*p.Scale + p.OffX)), int(math.Round(v.Y*p.Scale + p.OffY))
}

// Length maps a world distance to dots.
func (p Projection) Length(d float64) int { return int(math.Round(d * p.Scale)) }

// Cell maps a terminal cell, relative to the canvas origin, back to the
// world point under the middle of that cell.
func (p Projection) Cell(col, row int) geom.Vec2 {
	if p.Scale == 0 {
		return geom.Vec2{}
	}
	x := float64(col*2) + 1
	y := float64(row*4) + 2
	return geom.Vec2{X: (x - p.OffX) / p.Scale, Y: (y - p.OffY) / p.Scale}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
