package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/world"
)

type frameRecorder struct {
	frames []int
	sizes  []int
}

func (r *frameRecorder) OnStep(frame int, bodies []physics.Body, _ world.StepStats) {
	r.frames = append(r.frames, frame)
	r.sizes = append(r.sizes, len(bodies))
}

func newWorld() *world.World {
	arena, err := physics.NewArena(800, 600)
	Expect(err).NotTo(HaveOccurred())
	w, err := world.New(arena, world.NewSeededSpawner(5), physics.DefaultMaxSpeed)
	Expect(err).NotTo(HaveOccurred())
	return w
}

var _ = Describe("Loop", func() {
	var (
		w  *world.World
		fe *sim.Headless
	)

	BeforeEach(func() {
		w = newWorld()
	})

	It("runs the requested number of frames and closes the frontend", func() {
		fe = sim.NewHeadless(10)
		loop := sim.New(w, fe, 5, nil)

		Expect(loop.Run(context.Background())).To(Succeed())

		Expect(loop.State()).To(Equal(sim.Stopped))
		Expect(loop.Frame()).To(Equal(10))
		Expect(fe.Presented).To(Equal(10))
		Expect(fe.Drawn).To(Equal(5))
		Expect(fe.Closed).To(BeTrue())
	})

	It("populates the world before the first frame", func() {
		fe = sim.NewHeadless(1)
		loop := sim.New(w, fe, 7, nil)
		Expect(loop.Run(context.Background())).To(Succeed())
		Expect(w.Len()).To(Equal(7))
	})

	It("notifies observers after each tick", func() {
		fe = sim.NewHeadless(3)
		loop := sim.New(w, fe, 4, nil)
		rec := &frameRecorder{}
		loop.AddObserver(rec)

		Expect(loop.Run(context.Background())).To(Succeed())
		Expect(rec.frames).To(Equal([]int{1, 2, 3}))
		Expect(rec.sizes).To(Equal([]int{4, 4, 4}))
	})

	Describe("input dispatch", func() {
		It("grows the population on increase", func() {
			fe = sim.NewHeadless(3)
			fe.Script(1, sim.Event{Kind: sim.EventIncrease})
			loop := sim.New(w, fe, 5, nil)

			Expect(loop.Run(context.Background())).To(Succeed())
			Expect(loop.Count()).To(Equal(6))
			Expect(w.Len()).To(Equal(6))
		})

		It("never decreases below one body", func() {
			fe = sim.NewHeadless(2)
			fe.Script(0,
				sim.Event{Kind: sim.EventDecrease},
				sim.Event{Kind: sim.EventDecrease},
				sim.Event{Kind: sim.EventDecrease},
			)
			loop := sim.New(w, fe, 2, nil)

			Expect(loop.Run(context.Background())).To(Succeed())
			Expect(loop.Count()).To(Equal(sim.MinPopulation))
			Expect(w.Len()).To(Equal(1))
		})

		It("regenerates at the same count on reset", func() {
			loop := sim.New(w, sim.NewHeadless(0), 3, nil)
			Expect(w.SetPopulation(3)).To(Succeed())
			before := append([]physics.Body(nil), w.Bodies()...)

			loop.Dispatch(sim.Event{Kind: sim.EventReset})

			Expect(loop.Count()).To(Equal(3))
			Expect(w.Len()).To(Equal(3))
			Expect(w.Bodies()).NotTo(Equal(before))
		})

		It("stops on quit without stepping that frame", func() {
			fe = sim.NewHeadless(0)
			fe.Script(4, sim.Event{Kind: sim.EventQuit}, sim.Event{Kind: sim.EventIncrease})
			loop := sim.New(w, fe, 5, nil)

			Expect(loop.Run(context.Background())).To(Succeed())
			Expect(loop.Frame()).To(Equal(4))
			Expect(loop.Count()).To(Equal(5))
		})

		It("freezes the world while paused", func() {
			fe = sim.NewHeadless(6)
			fe.Script(1, sim.Event{Kind: sim.EventPause})
			fe.Script(4, sim.Event{Kind: sim.EventPause})
			loop := sim.New(w, fe, 3, nil)

			Expect(loop.Run(context.Background())).To(Succeed())
			Expect(loop.Frame()).To(Equal(3))
			Expect(loop.Paused()).To(BeFalse())
			Expect(fe.Presented).To(Equal(6))
		})
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fe = sim.NewHeadless(0)
		loop := sim.New(w, fe, 2, nil)

		err := loop.Run(ctx)

		Expect(err).To(MatchError(context.Canceled))
		Expect(loop.State()).To(Equal(sim.Stopped))
		Expect(fe.Closed).To(BeTrue())
	})

	It("clamps an initial count below one", func() {
		loop := sim.New(w, sim.NewHeadless(1), 0, nil)
		Expect(loop.Count()).To(Equal(1))
	})
})

var _ = Describe("EventKind", func() {
	It("has readable names", func() {
		Expect(sim.EventDecrease.String()).To(Equal("decrease"))
		Expect(sim.EventKind(99).String()).To(Equal("unknown"))
		Expect(sim.Running.String()).To(Equal("running"))
	})
})
