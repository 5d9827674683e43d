package world_test

import (
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/world"
)

var _ = Describe("World", func() {
	var (
		arena physics.Arena
		w     *world.World
	)

	BeforeEach(func() {
		var err error
		arena, err = physics.NewArena(800, 600)
		Expect(err).NotTo(HaveOccurred())
		w, err = world.New(arena, world.NewSeededSpawner(42), physics.DefaultMaxSpeed)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("New", func() {
		It("rejects bodies that cannot fit the arena", func() {
			sp := world.NewSeededSpawner(1)
			sp.Radius = 250
			_, err := world.New(arena, sp, 8)
			Expect(err).To(MatchError(world.ErrArenaTooSmall))
		})

		It("falls back to the default max speed", func() {
			w, err := world.New(arena, world.NewSeededSpawner(1), 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.MaxSpeed()).To(Equal(physics.DefaultMaxSpeed))
		})
	})

	Describe("SetPopulation", func() {
		DescribeTable("yields exactly n bodies strictly inside the arena",
			func(n int) {
				Expect(w.SetPopulation(n)).To(Succeed())
				Expect(w.Len()).To(Equal(n))
				for _, b := range w.Bodies() {
					Expect(b.Pos.Dist(arena.Center) + b.Radius).To(BeNumerically("<", arena.Radius))
				}
			},
			Entry("one", 1),
			Entry("default", 5),
			Entry("crowd", 200),
		)

		It("allows an empty world", func() {
			Expect(w.SetPopulation(0)).To(Succeed())
			Expect(w.Len()).To(BeZero())
			Expect(w.Step()).To(Equal(world.StepStats{}))
		})

		It("rejects negative counts", func() {
			Expect(w.SetPopulation(-1)).To(MatchError(world.ErrInvalidPopulation))
		})

		It("replaces the population wholesale", func() {
			Expect(w.SetPopulation(3)).To(Succeed())
			first := append([]physics.Body(nil), w.Bodies()...)
			Expect(w.SetPopulation(3)).To(Succeed())
			Expect(w.Bodies()).NotTo(Equal(first))
		})
	})

	Describe("Step", func() {
		It("moves every body before resolving pairs in i<j order", func() {
			bodies := []physics.Body{
				{Pos: physics.V(400, 300), Vel: physics.V(1, 0), Radius: 10},
				{Pos: physics.V(412, 300), Vel: physics.V(-1, 0), Radius: 10},
				{Pos: physics.V(406, 310), Vel: physics.V(0, -1), Radius: 10},
			}
			Expect(w.Place(bodies...)).To(Succeed())

			want := append([]physics.Body(nil), bodies...)
			for i := range want {
				want[i].Move(arena)
			}
			physics.Resolve(&want[0], &want[1], physics.DefaultMaxSpeed)
			physics.Resolve(&want[0], &want[2], physics.DefaultMaxSpeed)
			physics.Resolve(&want[1], &want[2], physics.DefaultMaxSpeed)

			st := w.Step()

			Expect(w.Bodies()).To(Equal(want))
			Expect(st.Contacts).To(BeNumerically(">=", 2))
		})

		It("keeps bodies inside the arena over many ticks", func() {
			Expect(w.SetPopulation(30)).To(Succeed())
			for i := 0; i < 600; i++ {
				w.Step()
			}
			for _, b := range w.Bodies() {
				Expect(b.Pos.IsValid()).To(BeTrue())
				Expect(b.Speed()).To(BeNumerically("<=", 2*physics.DefaultMaxSpeed+1e-9))
			}
		})

		It("counts wall hits", func() {
			Expect(w.Place(physics.Body{Pos: physics.V(585, 300), Vel: physics.V(10, 0), Radius: 10})).To(Succeed())
			Expect(w.Step().WallHits).To(Equal(1))
		})
	})

	It("rejects placed bodies with no radius", func() {
		Expect(w.Place(physics.Body{Color: color.RGBA{A: 255}})).To(MatchError(physics.ErrInvalidRadius))
	})

	It("sums kinetic energy", func() {
		Expect(w.Place(
			physics.Body{Pos: physics.V(400, 300), Vel: physics.V(1, 0), Radius: 2},
			physics.Body{Pos: physics.V(300, 300), Vel: physics.V(0, 2), Radius: 1},
		)).To(Succeed())
		Expect(w.KineticEnergy()).To(BeNumerically("~", 0.5*4*1+0.5*1*4, 1e-12))
	})
})

var _ = Describe("Spawner", func() {
	arena := physics.Arena{Center: physics.V(0, 0), Radius: 200}

	It("is deterministic for a fixed seed", func() {
		a := world.NewSeededSpawner(9).SpawnN(arena, 10)
		b := world.NewSeededSpawner(9).SpawnN(arena, 10)
		Expect(a).To(Equal(b))
	})

	It("draws velocities and colors from the configured ranges", func() {
		sp := world.NewSeededSpawner(3)
		for _, b := range sp.SpawnN(arena, 500) {
			Expect(b.Radius).To(Equal(world.DefaultRadius))
			Expect(b.Vel.X).To(BeNumerically(">=", -3))
			Expect(b.Vel.X).To(BeNumerically("<=", 3))
			Expect(b.Vel.Y).To(BeNumerically(">=", -3))
			Expect(b.Vel.Y).To(BeNumerically("<=", 3))
			for _, ch := range []uint8{b.Color.R, b.Color.G, b.Color.B} {
				Expect(ch).To(BeNumerically(">=", 100))
			}
			Expect(b.Color.A).To(Equal(uint8(255)))
		}
	})

	It("uses a supplied color", func() {
		sp := world.NewSeededSpawner(3)
		sp.Color = &color.RGBA{R: 1, G: 2, B: 3, A: 255}
		Expect(sp.Spawn(arena).Color).To(Equal(*sp.Color))
	})
})
