package world

import (
	"image/color"
	"math"

	"golang.org/x/exp/rand"

	"github.com/san-kum/ballsim/internal/physics"
)

const (
	DefaultRadius        = 10.0
	DefaultVelocityRange = 3.0
	colorMin             = 100
	colorMax             = 255
)

// Spawner generates fresh bodies inside an arena. All randomness comes from
// the injected source so a fixed seed reproduces the same population.
type Spawner struct {
	rng           *rand.Rand
	Radius        float64
	VelocityRange float64
	// Color, when set, is used for every body instead of a random one.
	Color *color.RGBA
}

func NewSpawner(src rand.Source) *Spawner {
	return &Spawner{
		rng:           rand.New(src),
		Radius:        DefaultRadius,
		VelocityRange: DefaultVelocityRange,
	}
}

// NewSeededSpawner is a convenience wrapper around NewSpawner.
func NewSeededSpawner(seed uint64) *Spawner {
	return NewSpawner(rand.NewSource(seed))
}

// Spawn places a body at a uniform random angle and a uniform random radial
// distance in [0, arena.Radius-Radius) from the center, with each velocity
// component uniform in [-VelocityRange, VelocityRange].
func (s *Spawner) Spawn(a physics.Arena) physics.Body {
	angle := s.rng.Float64() * 2 * math.Pi
	dist := s.rng.Float64() * (a.Radius - s.Radius)
	pos := a.Center.Add(physics.FromAngle(angle, dist))

	vel := physics.V(s.uniform(-s.VelocityRange, s.VelocityRange), s.uniform(-s.VelocityRange, s.VelocityRange))

	c := s.randomColor()
	if s.Color != nil {
		c = *s.Color
	}

	return physics.Body{Pos: pos, Vel: vel, Radius: s.Radius, Color: c}
}

func (s *Spawner) SpawnN(a physics.Arena, n int) []physics.Body {
	bodies := make([]physics.Body, n)
	for i := range bodies {
		bodies[i] = s.Spawn(a)
	}
	return bodies
}

func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// randomColor draws each channel from [100, 255] so bodies stay visible on
// a black background.
func (s *Spawner) randomColor() color.RGBA {
	ch := func() uint8 { return uint8(colorMin + s.rng.Intn(colorMax-colorMin+1)) }
	return color.RGBA{R: ch(), G: ch(), B: ch(), A: 255}
}
