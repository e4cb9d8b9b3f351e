package viz

import "github.com/san-kum/dialsim/internal/scene"

// DrawFrame renders the round wall, links and discs of f onto c.
func DrawFrame(c *Canvas, p Projection, f scene.Frame) {
	c.Clear()

	cx, cy := p.Dot(f.World.Center)
	c.DrawCircle(cx, cy, p.Length(f.World.Radius))

	for _, l := range f.Links {
		if l.A < 0 || l.B < 0 || l.A >= len(f.Discs) || l.B >= len(f.Discs) {
			continue
		}
		x0, y0 := p.Dot(f.Discs[l.A].Pos)
		x1, y1 := p.Dot(f.Discs[l.B].Pos)
		c.DrawLine(x0, y0, x1, y1)
	}

	for _, d := range f.Discs {
		if len(d.Corners) > 0 {
			pts := make([][2]int, len(d.Corners))
			for i, v := range d.Corners {
				pts[i][0], pts[i][1] = p.Dot(v)
			}
			c.DrawPolygon(pts)
			continue
		}
		x, y := p.Dot(d.Pos)
		r := p.Length(d.Radius)
		if d.Held || d.Pinned {
			c.FillCircle(x, y, r)
		} else {
			c.DrawCircle(x, y, r)
		}
	}
}
