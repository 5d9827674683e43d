package sim_test

import (
	"context"
	"errors"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/world"
)

type energyObserver struct{ last float64 }

func (o *energyObserver) OnStep(_ int, bodies []physics.Body, _ world.StepStats) {
	o.last = 0
	for _, b := range bodies {
		o.last += b.KineticEnergy()
	}
}

func headlessRun(ctx context.Context, seed int64) (map[string]float64, error) {
	arena, err := physics.NewArena(800, 600)
	if err != nil {
		return nil, err
	}
	w, err := world.New(arena, world.NewSeededSpawner(uint64(seed)), physics.DefaultMaxSpeed)
	if err != nil {
		return nil, err
	}
	obs := &energyObserver{}
	loop := sim.New(w, sim.NewHeadless(30), 5, nil)
	loop.AddObserver(obs)
	if err := loop.Run(ctx); err != nil {
		return nil, err
	}
	return map[string]float64{"energy": obs.last, "frames": float64(loop.Frame())}, nil
}

var _ = Describe("Ensemble", func() {
	It("runs every seed and keeps seed order", func() {
		results, err := sim.NewEnsemble(6, 100, 3).Run(context.Background(), headlessRun)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(6))
		for i, r := range results {
			Expect(r.Seed).To(Equal(int64(100 + i)))
			Expect(r.Metrics["frames"]).To(Equal(30.0))
		}
	})

	It("is reproducible across worker counts", func() {
		serial, err := sim.NewEnsemble(4, 7, 1).Run(context.Background(), headlessRun)
		Expect(err).NotTo(HaveOccurred())
		parallel, err := sim.NewEnsemble(4, 7, 4).Run(context.Background(), headlessRun)
		Expect(err).NotTo(HaveOccurred())
		Expect(parallel).To(Equal(serial))
	})

	It("stops on the first error", func() {
		boom := errors.New("boom")
		var calls atomic.Int32
		_, err := sim.NewEnsemble(50, 0, 1).Run(context.Background(), func(ctx context.Context, seed int64) (map[string]float64, error) {
			calls.Add(1)
			if seed == 2 {
				return nil, boom
			}
			return map[string]float64{}, ctx.Err()
		})
		Expect(err).To(MatchError(boom))
		Expect(calls.Load()).To(BeNumerically("<", 50))
	})

	It("summarizes metrics", func() {
		agg := sim.Summarize([]sim.EnsembleResult{
			{Seed: 1, Metrics: map[string]float64{"x": 1}},
			{Seed: 2, Metrics: map[string]float64{"x": 3}},
			{Seed: 3, Metrics: map[string]float64{"x": 5, "y": 2}},
		})
		Expect(agg["x"]).To(Equal(sim.Aggregate{Mean: 3, Min: 1, Max: 5}))
		Expect(agg["y"]).To(Equal(sim.Aggregate{Mean: 2, Min: 2, Max: 2}))
	})
})
