package physics

// DefaultMaxSpeed is the speed above which colliding bodies are clamped.
const DefaultMaxSpeed = 8.0

// Contact describes the outcome of checking one pair of bodies.
type Contact struct {
	Touching bool    // circles overlapped
	Resolved bool    // velocities were exchanged (bodies were approaching)
	Overlap  float64 // penetration depth before separation
	Normal   Vec2    // unit vector from b towards a
}

// Resolve checks a against b and, when they overlap, applies the elastic
// impulse and separates them. Both bodies are updated in place.
//
// The impulse only applies while the bodies approach each other. After the
// impulse a is clamped to twice maxSpeed and b to maxSpeed. Separation
// happens regardless, splitting the overlap evenly.
func Resolve(a, b *Body, maxSpeed float64) Contact {
	d := a.Pos.Sub(b.Pos)
	dist := d.Len()
	if dist >= a.Radius+b.Radius {
		return Contact{}
	}

	var n Vec2
	if dist < MinDistance {
		dist = MinDistance
		n = V(1, 0)
	} else {
		n = d.Scale(1 / dist)
	}

	c := Contact{Touching: true, Normal: n}

	rv := a.Vel.Sub(b.Vel).Dot(n)
	if rv < 0 {
		impulse := 2 * rv / (a.Radius*a.Radius + b.Radius*b.Radius)
		a.Vel = a.Vel.Sub(n.Scale(impulse * a.Radius))
		b.Vel = b.Vel.Add(n.Scale(impulse * b.Radius))

		if sa := a.Vel.Len(); sa > maxSpeed {
			a.Vel = a.Vel.Scale(maxSpeed * 2 / sa)
		}
		if sb := b.Vel.Len(); sb > maxSpeed {
			b.Vel = b.Vel.Scale(maxSpeed / sb)
		}
		c.Resolved = true
	}

	c.Overlap = a.Radius + b.Radius - dist
	half := n.Scale(c.Overlap / 2)
	a.Pos = a.Pos.Add(half)
	b.Pos = b.Pos.Sub(half)
	return c
}
