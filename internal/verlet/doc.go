// Package verlet implements the point-mass constraint engine behind the
// ragdoll and chain scenes.
//
// Points live in an arena owned by the [Engine]; a [Stick] refers to its
// two endpoints by index, so one point can belong to any number of
// sticks. Sticks are relaxed one after another (Gauss-Seidel), which
// means later sticks in a pass see the corrections made by earlier ones.
//
// Each [Engine.Step] advances exactly one fixed slice:
//
//  1. Verlet-integrate every free point under gravity.
//  2. Three times: relax every stick, then push every free point back
//     inside the round boundary with a damped bounce.
//
// Engines are not safe for concurrent use.
package verlet
