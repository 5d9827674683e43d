// Package physics provides the ball dynamics used by the simulation.
//
// A [Body] is a circle moving with constant velocity inside a circular
// [Arena]. Each frame advances a body by exactly one velocity step; no
// timestep scaling is applied, so motion is tied to the frame rate.
//
//   - [Body.Move]: Euler step followed by reflection off the arena wall
//   - [Resolve]: pairwise elastic collision with overlap separation
//   - [Arena.Reflect]: wall reflection for a single body
//
// # Collision model
//
// Mass is modelled as radius squared. The impulse is
//
//	j = 2 * rv / (ra² + rb²)
//
// where rv is the relative normal velocity. After the impulse the first
// body of the pair is clamped to twice the maximum speed and the second to
// the maximum speed. Pair order therefore matters.
package physics
