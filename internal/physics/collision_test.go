package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/physics"
)

var _ = Describe("Resolve", func() {
	It("ignores bodies that do not overlap", func() {
		a := physics.Body{Pos: physics.V(0, 0), Vel: physics.V(1, 0), Radius: 10}
		b := physics.Body{Pos: physics.V(20, 0), Vel: physics.V(-1, 0), Radius: 10}

		c := physics.Resolve(&a, &b, physics.DefaultMaxSpeed)

		Expect(c.Touching).To(BeFalse())
		Expect(a.Vel).To(Equal(physics.V(1, 0)))
		Expect(b.Pos).To(Equal(physics.V(20, 0)))
	})

	It("matches the hand-computed head-on collision", func() {
		a := physics.Body{Pos: physics.V(100, 100), Vel: physics.V(1, 0), Radius: 10}
		b := physics.Body{Pos: physics.V(105, 100), Vel: physics.V(-1, 0), Radius: 10}

		c := physics.Resolve(&a, &b, physics.DefaultMaxSpeed)

		// n = (-1, 0), rv = -2, impulse = 2*-2/200 = -0.02
		Expect(c.Touching).To(BeTrue())
		Expect(c.Resolved).To(BeTrue())
		Expect(c.Overlap).To(BeNumerically("~", 15, tol))
		Expect(a.Vel.X).To(BeNumerically("~", 0.8, tol))
		Expect(b.Vel.X).To(BeNumerically("~", -0.8, tol))
		Expect(a.Vel.Y).To(BeZero())
		Expect(b.Vel.Y).To(BeZero())
		Expect(a.Pos.X).To(BeNumerically("~", 92.5, tol))
		Expect(b.Pos.X).To(BeNumerically("~", 112.5, tol))
		Expect(a.Pos.Dist(b.Pos)).To(BeNumerically("~", 20, tol))
	})

	It("separates receding bodies without touching velocities", func() {
		a := physics.Body{Pos: physics.V(0, 0), Vel: physics.V(-1, 0), Radius: 10}
		b := physics.Body{Pos: physics.V(15, 0), Vel: physics.V(1, 0), Radius: 10}

		c := physics.Resolve(&a, &b, physics.DefaultMaxSpeed)

		Expect(c.Touching).To(BeTrue())
		Expect(c.Resolved).To(BeFalse())
		Expect(a.Vel).To(Equal(physics.V(-1, 0)))
		Expect(b.Vel).To(Equal(physics.V(1, 0)))
		Expect(a.Pos.Dist(b.Pos)).To(BeNumerically("~", 20, tol))
	})

	It("clamps the first body to twice the max speed and the second to max", func() {
		a := physics.Body{Pos: physics.V(0, 0), Vel: physics.V(50, 0), Radius: 10}
		b := physics.Body{Pos: physics.V(15, 0), Vel: physics.V(-50, 0), Radius: 10}

		physics.Resolve(&a, &b, physics.DefaultMaxSpeed)

		// impulse = -1, leaving (40, 0) and (-40, 0) before the clamp
		Expect(a.Vel.X).To(BeNumerically("~", 2*physics.DefaultMaxSpeed, tol))
		Expect(b.Vel.X).To(BeNumerically("~", -physics.DefaultMaxSpeed, tol))
		Expect(a.Speed()).To(BeNumerically("~", 16, tol))
		Expect(b.Speed()).To(BeNumerically("~", 8, tol))
	})

	It("keeps speeds under the asymmetric caps for arbitrary approaches", func() {
		for i := 0; i < 360; i += 15 {
			angle := float64(i) * math.Pi / 180
			a := physics.Body{Pos: physics.V(0, 0), Vel: physics.FromAngle(angle, 30), Radius: 8}
			b := physics.Body{Pos: physics.V(10, 3), Vel: physics.FromAngle(angle+math.Pi, 25), Radius: 12}

			c := physics.Resolve(&a, &b, physics.DefaultMaxSpeed)
			if !c.Resolved {
				continue
			}
			Expect(a.Speed()).To(BeNumerically("<=", 2*physics.DefaultMaxSpeed+tol))
			Expect(b.Speed()).To(BeNumerically("<=", physics.DefaultMaxSpeed+tol))
			Expect(a.Pos.Dist(b.Pos)).To(BeNumerically("~", 20, 1e-9))
		}
	})

	It("survives coincident centers", func() {
		a := physics.Body{Pos: physics.V(5, 5), Vel: physics.V(1, 0), Radius: 10}
		b := physics.Body{Pos: physics.V(5, 5), Vel: physics.V(0, 1), Radius: 10}

		c := physics.Resolve(&a, &b, physics.DefaultMaxSpeed)

		Expect(c.Touching).To(BeTrue())
		Expect(c.Normal).To(Equal(physics.V(1, 0)))
		Expect(a.Pos.IsValid()).To(BeTrue())
		Expect(b.Vel.IsValid()).To(BeTrue())
		Expect(a.Pos.Dist(b.Pos)).To(BeNumerically("~", 20, 1e-6))
	})
})
