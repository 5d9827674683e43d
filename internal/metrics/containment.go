package metrics

import (
	"math"

	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/world"
)

// Containment is the fraction of ticks in which every body was inside the
// arena (within tolerance) and had a finite state.
type Containment struct {
	name       string
	arena      physics.Arena
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(arena physics.Arena, tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		arena:     arena,
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) OnStep(_ int, bodies []physics.Body, _ world.StepStats) {
	c.samples++
	for _, b := range bodies {
		if !b.Pos.IsValid() || !b.Vel.IsValid() || c.arena.Penetration(b.Pos, b.Radius) > c.tolerance {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// MaxSpeed is the largest body speed seen during the run.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{name: "max_speed"} }

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) OnStep(_ int, bodies []physics.Body, _ world.StepStats) {
	for _, b := range bodies {
		m.max = math.Max(m.max, b.Speed())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }
