package integrators

import "github.com/san-kum/dialsim/internal/geom"

// Euler updates velocity first and moves with the new velocity
// (semi-implicit), which keeps resting contacts from creeping.
func Euler(pos, vel, acc geom.Vec2, dt float64) (geom.Vec2, geom.Vec2) {
	vel = vel.Add(acc.Scale(dt))
	return pos.Add(vel.Scale(dt)), vel
}

// Rotate integrates an angle by a constant angular velocity.
func Rotate(angle, omega, dt float64) float64 {
	return angle + omega*dt
}
