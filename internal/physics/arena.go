package physics

import (
	"fmt"
	"math"
)

// MinDistance is the smallest center distance used when building a normal.
const MinDistance = 1e-9

// Arena is the circular region that contains every body.
type Arena struct {
	Center Vec2
	Radius float64
}

// NewArena derives the arena from display dimensions: centered, with a
// radius of a third of the shorter side. Integer division is used so that
// 800x600 yields center (400, 300) and radius 200.
func NewArena(width, height int) (Arena, error) {
	r := min(width, height) / 3
	if r <= 0 {
		return Arena{}, fmt.Errorf("%w: display %dx%d", ErrInvalidRadius, width, height)
	}
	return Arena{
		Center: V(float64(width/2), float64(height/2)),
		Radius: float64(r),
	}, nil
}

// Contains reports whether a circle at pos with radius r lies fully inside.
func (a Arena) Contains(pos Vec2, r float64) bool {
	return pos.Dist(a.Center)+r <= a.Radius
}

// Penetration is how far a circle at pos with radius r sticks out of the
// arena. Non-positive values mean the circle is inside.
func (a Arena) Penetration(pos Vec2, r float64) float64 {
	return pos.Dist(a.Center) + r - a.Radius
}

// Normal is the outward unit normal at pos. A position at the center has no
// direction, so the +X axis is used.
func (a Arena) Normal(pos Vec2) Vec2 {
	d := pos.Sub(a.Center)
	if d.Len() < MinDistance {
		return V(1, 0)
	}
	angle := d.Angle()
	return V(math.Cos(angle), math.Sin(angle))
}

// Reflect bounces b off the wall when it penetrates the boundary. The
// velocity is mirrored across the outward normal and the body is pushed
// back along the normal by the penetration depth. It reports whether a
// bounce happened.
func (a Arena) Reflect(b *Body) bool {
	overlap := a.Penetration(b.Pos, b.Radius)
	if overlap <= 0 {
		return false
	}
	n := a.Normal(b.Pos)
	dot := b.Vel.Dot(n)
	b.Vel = b.Vel.Sub(n.Scale(2 * dot))
	b.Pos = b.Pos.Sub(n.Scale(overlap))
	return true
}
