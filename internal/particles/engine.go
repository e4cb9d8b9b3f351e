// Package particles implements the overlap engine behind the liquid
// scene: Euler-integrated discs under gravity, kept apart by moving
// overlapping pairs away from each other.
package particles

import (
	"slices"

	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/integrators"
)

const (
	GravityScale  = 600.0
	Iterations    = 2
	MaxRows       = 6
	MaxColumns    = 8
	DefaultRadius = 8.0
)

type Particle struct {
	Pos    geom.Vec2
	Vel    geom.Vec2
	Radius float64
}

type Config struct {
	Rows    int
	Columns int
	Radius  float64
	// SyncVelocity replaces each particle's velocity with its net
	// displacement over the step, so contact corrections bleed off speed.
	SyncVelocity bool
}

type Engine struct {
	world     geom.World
	gravity   geom.Vec2
	dt        float64
	sync      bool
	particles []Particle
	scratch   []geom.Vec2
}

// New places a Rows x Columns block of touching particles centred
// horizontally in the lower half of the world. Counts are clamped to
// 1..MaxRows and 1..MaxColumns.
func New(world geom.World, cfg Config) *Engine {
	rows := min(max(cfg.Rows, 1), MaxRows)
	cols := min(max(cfg.Columns, 1), MaxColumns)
	r := cfg.Radius
	if r <= 0 {
		r = DefaultRadius
	}

	e := NewEmpty(world)
	e.sync = cfg.SyncVelocity

	spacing := 2 * r
	left := world.Center.X - float64(cols-1)*spacing/2
	bottom := world.Center.Y + world.Radius*0.5
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			e.Add(geom.Vec2{
				X: left + float64(col)*spacing,
				Y: bottom - float64(row)*spacing,
			}, r)
		}
	}
	return e
}

// NewEmpty returns an engine with no particles and downward gravity.
func NewEmpty(world geom.World) *Engine {
	e := &Engine{world: world, dt: integrators.Slice}
	e.SetGravity(0, 1)
	return e
}

// Add appends a particle at rest and returns its index.
func (e *Engine) Add(pos geom.Vec2, radius float64) int {
	e.particles = append(e.particles, Particle{Pos: pos, Radius: radius})
	return len(e.particles) - 1
}

func (e *Engine) SetGravity(x, y float64) {
	e.gravity = geom.Vec2{X: x, Y: y}.Scale(GravityScale)
}

func (e *Engine) Gravity() geom.Vec2             { return e.gravity }
func (e *Engine) World() geom.World              { return e.world }
func (e *Engine) Len() int                       { return len(e.particles) }
func (e *Engine) Particle(i int) Particle        { return e.particles[i] }
func (e *Engine) Particles() []Particle          { return slices.Clone(e.particles) }
func (e *Engine) SetVelocity(i int, v geom.Vec2) { e.particles[i].Vel = v }

func (e *Engine) Step() {
	if e.sync {
		e.scratch = e.scratch[:0]
		for _, p := range e.particles {
			e.scratch = append(e.scratch, p.Pos)
		}
	}

	for i := range e.particles {
		p := &e.particles[i]
		p.Pos, p.Vel = integrators.Euler(p.Pos, p.Vel, e.gravity, e.dt)
	}

	for k := 0; k < Iterations; k++ {
		e.contain()
		e.resolve()
	}
	// pushes in the last pass can shove a wall particle outward
	e.contain()

	if e.sync {
		for i := range e.particles {
			e.particles[i].Vel = e.particles[i].Pos.Sub(e.scratch[i]).Scale(1 / e.dt)
		}
	}
}

// contain clamps positions inside the boundary. Velocity is untouched.
func (e *Engine) contain() {
	for i := range e.particles {
		p := &e.particles[i]
		if pos, _, ok := e.world.Clamp(p.Pos, p.Radius); ok {
			p.Pos = pos
		}
	}
}

// resolve pushes each overlapping pair apart by half the penetration
// each. Pairs with coincident centres have no separating direction and
// are left alone.
func (e *Engine) resolve() {
	for i := 0; i < len(e.particles); i++ {
		for j := i + 1; j < len(e.particles); j++ {
			a, b := &e.particles[i], &e.particles[j]
			delta := b.Pos.Sub(a.Pos)
			dist := delta.Length()
			reach := a.Radius + b.Radius
			if dist >= reach || dist == 0 {
				continue
			}
			push := delta.Scale((reach - dist) / dist * 0.5)
			a.Pos = a.Pos.Sub(push)
			b.Pos = b.Pos.Add(push)
		}
	}
}

// Push adds an outward velocity of the given speed to every particle
// within radius of q, fading linearly to zero at the edge.
func (e *Engine) Push(q geom.Vec2, radius, speed float64) int {
	n := 0
	for i := range e.particles {
		p := &e.particles[i]
		d := p.Pos.Sub(q)
		dist := d.Length()
		if dist >= radius || dist == 0 {
			continue
		}
		p.Vel = p.Vel.Add(d.Scale(speed * (1 - dist/radius) / dist))
		n++
	}
	return n
}

// Kick adds v to every particle's velocity.
func (e *Engine) Kick(v geom.Vec2) {
	for i := range e.particles {
		e.particles[i].Vel = e.particles[i].Vel.Add(v)
	}
}
