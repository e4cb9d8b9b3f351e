package integrators

import (
	"time"

	"github.com/san-kum/dialsim/internal/geom"
)

// Slice is the fixed time advanced by one engine step.
const Slice = 1.0 / 60.0

// SliceDuration is Slice as a wall-clock duration, truncated to whole
// nanoseconds.
const SliceDuration = time.Second / 60

// Verlet advances a position-only state. Velocity is implicit in
// pos-prev, so position corrections made after the step carry over into
// the next one without a separate velocity pass.
func Verlet(pos, prev, acc geom.Vec2, dt float64) (next, newPrev geom.Vec2) {
	vel := pos.Sub(prev)
	next = pos.Add(vel).Add(acc.Scale(dt * dt))
	return next, pos
}

// VerletVelocity recovers the implied per-slice displacement.
func VerletVelocity(pos, prev geom.Vec2) geom.Vec2 {
	return pos.Sub(prev)
}
