// Package geom provides the 2D vector type and the circular world boundary
// shared by every simulation engine.
//
//   - [Vec2]: value-typed 2D vector
//   - [World]: round viewport derived from the screen size
//
// All engines build their [World] with [NewWorld] so the boundary is the
// same circle in every scene.
package geom
