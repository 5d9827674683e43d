package physics_test

import (
	"image/color"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/physics"
)

const tol = 1e-9

var _ = Describe("Arena", func() {
	It("derives center and radius from display size", func() {
		a, err := physics.NewArena(800, 600)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Center).To(Equal(physics.V(400, 300)))
		Expect(a.Radius).To(Equal(200.0))
	})

	It("rejects displays too small to hold an arena", func() {
		_, err := physics.NewArena(2, 600)
		Expect(err).To(MatchError(physics.ErrInvalidRadius))
	})

	It("uses +X as the normal at the exact center", func() {
		a := physics.Arena{Center: physics.V(10, 10), Radius: 5}
		Expect(a.Normal(physics.V(10, 10))).To(Equal(physics.V(1, 0)))
	})

	It("leaves bodies inside the wall untouched", func() {
		a := physics.Arena{Radius: 100}
		b := physics.Body{Pos: physics.V(10, 0), Vel: physics.V(3, 4), Radius: 10}
		Expect(a.Reflect(&b)).To(BeFalse())
		Expect(b.Vel).To(Equal(physics.V(3, 4)))
	})
})

var _ = Describe("Body", func() {
	var arena physics.Arena

	BeforeEach(func() {
		arena = physics.Arena{Center: physics.V(0, 0), Radius: 200}
	})

	It("rejects non-positive radius", func() {
		_, err := physics.NewBody(physics.V(0, 0), physics.V(0, 0), 0, color.RGBA{})
		Expect(err).To(MatchError(physics.ErrInvalidRadius))
	})

	It("integrates position by one velocity step", func() {
		b := physics.Body{Pos: physics.V(1, 2), Vel: physics.V(0.5, -1), Radius: 10}
		Expect(b.Move(arena)).To(BeFalse())
		Expect(b.Pos).To(Equal(physics.V(1.5, 1)))
	})

	It("bounces back from the wall with unchanged speed", func() {
		b := physics.Body{Pos: physics.V(0, 0), Vel: physics.V(5, 0), Radius: 10}

		bounced := false
		for i := 0; i < 100 && !bounced; i++ {
			before := b.Pos.Dist(arena.Center) + b.Radius + b.Speed()
			bounced = b.Move(arena)
			if bounced {
				Expect(before).To(BeNumerically(">", arena.Radius))
			}
		}

		Expect(bounced).To(BeTrue())
		Expect(b.Vel.X).To(BeNumerically("~", -5, tol))
		Expect(b.Vel.Y).To(BeNumerically("~", 0, tol))
		Expect(b.Speed()).To(BeNumerically("~", 5, tol))
		Expect(b.Pos.X).To(BeNumerically("~", 190, tol))
	})

	It("reflects on the 39th frame from the center", func() {
		b := physics.Body{Pos: physics.V(0, 0), Vel: physics.V(5, 0), Radius: 10}
		for i := 0; i < 38; i++ {
			Expect(b.Move(arena)).To(BeFalse())
		}
		Expect(b.Move(arena)).To(BeTrue())
	})

	It("reflects across the radial normal off-axis", func() {
		b := physics.Body{Pos: physics.V(0, 185), Vel: physics.V(3, 10), Radius: 10}
		Expect(b.Move(arena)).To(BeTrue())

		n := b.Pos.Unit()
		Expect(b.Vel.Dot(n)).To(BeNumerically("<", 0))
		Expect(b.Speed()).To(BeNumerically("~", math.Hypot(3, 10), tol))
		Expect(b.Pos.Len() + b.Radius).To(BeNumerically("~", arena.Radius, 1e-6))
	})

	It("stays inside the arena after every move", func() {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 500; i++ {
			r := 5 + rng.Float64()*10
			d := rng.Float64() * (arena.Radius - r)
			pos := physics.FromAngle(rng.Float64()*2*math.Pi, d)
			vel := physics.FromAngle(rng.Float64()*2*math.Pi, rng.Float64()*16)
			b := physics.Body{Pos: pos, Vel: vel, Radius: r}
			speed := b.Speed()

			for step := 0; step < 50; step++ {
				b.Move(arena)
				Expect(b.Pos.Dist(arena.Center)+b.Radius).To(BeNumerically("<=", arena.Radius+1e-6))
			}
			Expect(b.Speed()).To(BeNumerically("~", speed, 1e-6))
		}
	})

	It("reports kinetic energy with radius squared as mass", func() {
		b := physics.Body{Vel: physics.V(3, 4), Radius: 2}
		Expect(b.Mass()).To(Equal(4.0))
		Expect(b.KineticEnergy()).To(BeNumerically("~", 50, tol))
	})
})
