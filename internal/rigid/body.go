// Package rigid implements the free-body engine: circles and boxes that
// fall, spin, bounce off the round wall and can be thrown by hand.
package rigid

import "github.com/san-kum/dialsim/internal/geom"

type ShapeKind int

const (
	Circle ShapeKind = iota
	Box
)

func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Box:
		return "box"
	default:
		return "unknown"
	}
}

const DefaultRestitution = 0.7

// Body is a circle of radius Radius or a square of half-extent Radius.
// Hit tests and the wall treat both as a circle of that radius.
type Body struct {
	Shape       ShapeKind
	Pos         geom.Vec2
	Vel         geom.Vec2
	Angle       float64
	Spin        float64
	Radius      float64
	Restitution float64
	Mass        float64
	Color       string
	Dragging    bool
}

func newBody(shape ShapeKind, pos geom.Vec2, radius float64) Body {
	return Body{
		Shape:       shape,
		Pos:         pos,
		Radius:      radius,
		Restitution: DefaultRestitution,
		Mass:        radius * radius,
	}
}

// Corners returns the four box corners in world space, rotated by Angle.
// Circles return nil.
func (b Body) Corners() []geom.Vec2 {
	if b.Shape != Box {
		return nil
	}
	local := [4]geom.Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	rot := geom.Rotation(b.Angle)
	out := make([]geom.Vec2, 0, 4)
	for _, c := range local {
		out = append(out, b.Pos.Add(rot.Apply(c.Scale(b.Radius))))
	}
	return out
}
