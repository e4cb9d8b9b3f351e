package rigid

import (
	"math"
	"math/rand"
	"slices"

	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/integrators"
)

const (
	GravityScale = 700.0
	MaxBodies    = 12
	// MaxSpin bounds the random initial angular velocity, rad/s.
	MaxSpin = 1.5
)

var Palette = []string{"#ff6b6b", "#feca57", "#48dbfb", "#1dd1a1", "#ff9ff3", "#54a0ff"}

type Config struct {
	Count       int
	Radius      float64
	Restitution float64
	Seed        int64
}

type Engine struct {
	world   geom.World
	gravity geom.Vec2
	dt      float64
	bodies  []Body
}

// New lays Count bodies (clamped to 1..MaxBodies) out on a grid above the
// centre, alternating circle and box, each with a palette colour and a
// small random spin.
func New(world geom.World, cfg Config) *Engine {
	n := min(max(cfg.Count, 1), MaxBodies)
	r := cfg.Radius
	if r <= 0 {
		r = world.Radius / 8
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	spacing := 2.5 * r
	left := world.Center.X - float64(cols-1)*spacing/2
	top := world.Center.Y - world.Radius*0.4

	e := NewEmpty(world)
	for i := 0; i < n; i++ {
		shape := Circle
		if i%2 == 1 {
			shape = Box
		}
		pos := geom.Vec2{
			X: left + float64(i%cols)*spacing,
			Y: top + float64(i/cols)*spacing,
		}
		id := e.Add(shape, pos, r)
		b := &e.bodies[id]
		b.Color = Palette[i%len(Palette)]
		b.Spin = (rng.Float64()*2 - 1) * MaxSpin
		if cfg.Restitution > 0 {
			b.Restitution = min(cfg.Restitution, 1)
		}
	}
	return e
}

func NewEmpty(world geom.World) *Engine {
	e := &Engine{world: world, dt: integrators.Slice}
	e.SetGravity(0, 1)
	return e
}

// Add appends a body at rest and returns its index.
func (e *Engine) Add(shape ShapeKind, pos geom.Vec2, radius float64) int {
	e.bodies = append(e.bodies, newBody(shape, pos, radius))
	return len(e.bodies) - 1
}

func (e *Engine) SetGravity(x, y float64) {
	e.gravity = geom.Vec2{X: x, Y: y}.Scale(GravityScale)
}

func (e *Engine) Gravity() geom.Vec2 { return e.gravity }
func (e *Engine) World() geom.World  { return e.world }
func (e *Engine) Len() int           { return len(e.bodies) }
func (e *Engine) Body(i int) Body    { return e.bodies[i] }
func (e *Engine) Bodies() []Body     { return slices.Clone(e.bodies) }
func (e *Engine) valid(i int) bool   { return i >= 0 && i < len(e.bodies) }

func (e *Engine) Step() {
	for i := range e.bodies {
		b := &e.bodies[i]
		if !b.Dragging {
			b.Pos, b.Vel = integrators.Euler(b.Pos, b.Vel, e.gravity, e.dt)
		}
		b.Angle = integrators.Rotate(b.Angle, b.Spin, e.dt)
	}
	for i := range e.bodies {
		e.bounce(&e.bodies[i])
	}
}

// bounce keeps the body's bounding circle inside the wall. An outgoing
// velocity is mirrored about the wall normal and scaled by restitution.
func (e *Engine) bounce(b *Body) {
	pos, n, ok := e.world.Clamp(b.Pos, b.Radius)
	if !ok {
		return
	}
	b.Pos = pos
	if b.Vel.Dot(n) > 0 {
		b.Vel = b.Vel.Reflect(n).Scale(b.Restitution)
	}
}

// HitTest returns the last-added body whose centre lies within its
// radius of q.
func (e *Engine) HitTest(q geom.Vec2) (int, bool) {
	for i := len(e.bodies) - 1; i >= 0; i-- {
		b := e.bodies[i]
		if b.Pos.Sub(q).LengthSq() <= b.Radius*b.Radius {
			return i, true
		}
	}
	return -1, false
}

func (e *Engine) StartDrag(i int) {
	if !e.valid(i) {
		return
	}
	e.bodies[i].Dragging = true
	e.bodies[i].Vel = geom.Vec2{}
}

// UpdateDrag moves a held body to pos. Bodies not being dragged ignore it.
func (e *Engine) UpdateDrag(i int, pos geom.Vec2) {
	if !e.valid(i) || !e.bodies[i].Dragging {
		return
	}
	e.bodies[i].Pos = pos
}

// EndDrag releases a held body with the given throw velocity.
func (e *Engine) EndDrag(i int, vel geom.Vec2) {
	if !e.valid(i) || !e.bodies[i].Dragging {
		return
	}
	e.bodies[i].Dragging = false
	e.bodies[i].Vel = vel
}

// KineticEnergy sums ½mv² over all bodies.
func (e *Engine) KineticEnergy() float64 {
	total := 0.0
	for _, b := range e.bodies {
		total += 0.5 * b.Mass * b.Vel.LengthSq()
	}
	return total
}

// Kick adds v to the velocity of every body not held by a pointer.
func (e *Engine) Kick(v geom.Vec2) {
	for i := range e.bodies {
		if !e.bodies[i].Dragging {
			e.bodies[i].Vel = e.bodies[i].Vel.Add(v)
		}
	}
}
