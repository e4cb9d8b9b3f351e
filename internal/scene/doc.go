// Package scene puts the three engines behind one [Scene] interface so a
// driver can tick, tilt and poke any of them the same way.
//
//   - ragdoll, chain: [verlet.Engine]
//   - liquid: [particles.Engine]
//   - bodies: [rigid.Engine]
//
// A [Host] creates its scene lazily, on the first tick that carries a
// usable viewport size. [Frame] is the read-only snapshot renderers and
// metrics consume after each step.
package scene
