package geom

import "math"

// Margin keeps the boundary circle inset from the viewport edge.
const Margin = 10.0

// World is the circular boundary of a round screen.
type World struct {
	Width, Height float64
	Center        Vec2
	Radius        float64
}

func NewWorld(width, height float64) World {
	r := math.Min(width, height)/2 - Margin
	if r < 0 {
		r = 0
	}
	return World{
		Width:  width,
		Height: height,
		Center: Vec2{width / 2, height / 2},
		Radius: r,
	}
}

// Contains reports whether p lies inside a circle of the given radius
// fitted inside the boundary.
func (w World) Contains(p Vec2, radius float64) bool {
	return p.Dist(w.Center)+radius <= w.Radius
}

// Clamp projects p back inside the boundary so that a disc of the given
// radius centred on p touches the wall from inside. It returns the
// clamped position, the outward unit normal at the contact and whether a
// correction was made. A point exactly at the centre is never clamped.
func (w World) Clamp(p Vec2, radius float64) (Vec2, Vec2, bool) {
	limit := w.Radius - radius
	if limit < 0 {
		limit = 0
	}
	d := p.Sub(w.Center)
	dist := d.Length()
	if dist <= limit || dist == 0 {
		return p, Vec2{}, false
	}
	n := d.Scale(1 / dist)
	return w.Center.Add(n.Scale(limit)), n, true
}

// Overshoot is how far a disc at p extends past the boundary, or zero.
func (w World) Overshoot(p Vec2, radius float64) float64 {
	o := p.Dist(w.Center) + radius - w.Radius
	if o < 0 {
		return 0
	}
	return o
}
