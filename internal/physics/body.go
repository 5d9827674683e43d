package physics

import (
	"fmt"
	"image/color"
)

// Body is a single ball. Color is carried for rendering only.
type Body struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  color.RGBA
}

func NewBody(pos, vel Vec2, radius float64, c color.RGBA) (Body, error) {
	if radius <= 0 {
		return Body{}, fmt.Errorf("%w: got %g", ErrInvalidRadius, radius)
	}
	return Body{Pos: pos, Vel: vel, Radius: radius, Color: c}, nil
}

// Move advances the body by one velocity step and reflects it off the arena
// wall if it ended up outside. It reports whether the wall was hit.
func (b *Body) Move(a Arena) bool {
	b.Pos = b.Pos.Add(b.Vel)
	return a.Reflect(b)
}

func (b Body) Speed() float64 { return b.Vel.Len() }

// Mass uses radius squared, matching the collision model.
func (b Body) Mass() float64 { return b.Radius * b.Radius }

// KineticEnergy is 0.5 * m * |v|^2 with m = radius squared.
func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass() * b.Vel.Dot(b.Vel)
}

func (b Body) String() string {
	return fmt.Sprintf("body{pos=(%.2f, %.2f) vel=(%.2f, %.2f) r=%.1f}", b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Radius)
}
