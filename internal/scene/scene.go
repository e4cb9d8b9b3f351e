package scene

import (
	"errors"

	"github.com/san-kum/dialsim/internal/geom"
)

var (
	ErrUnknownScene = errors.New("scene: unknown scene")
	ErrNotReady     = errors.New("scene: viewport size not known yet")
)

type Scene interface {
	Name() string
	// Step advances one fixed slice.
	Step()
	// SetGravity takes a raw tilt direction; scaling is engine specific.
	SetGravity(x, y float64)
	// Press starts a gesture at p and reports whether it grabbed anything.
	Press(p geom.Vec2) bool
	Move(p geom.Vec2)
	Release(p geom.Vec2)
	// Impulse shakes the scene by a displacement of v over one slice.
	Impulse(v geom.Vec2)
	Frame() Frame
}

// Disc is one renderable entity. Vel is in px/s.
type Disc struct {
	Shape   string
	Pos     geom.Vec2
	Vel     geom.Vec2
	Radius  float64
	Mass    float64
	Angle   float64
	Color   string
	Pinned  bool
	Held    bool
	Solid   bool
	Corners []geom.Vec2
}

// Link joins Discs[A] and Discs[B]. Rest is zero for purely visual links.
type Link struct {
	A, B int
	Rest float64
}

type Frame struct {
	Scene   string
	Step    int
	World   geom.World
	Gravity geom.Vec2
	Discs   []Disc
	Links   []Link
}

// Time is the simulated time covered by the frame's steps.
func (f Frame) Time() float64 {
	return float64(f.Step) * sliceSeconds
}
