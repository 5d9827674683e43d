package sim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/sim"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

var _ = Describe("Limiter", func() {
	var clock *fakeClock

	BeforeEach(func() {
		clock = &fakeClock{now: time.Unix(1000, 0)}
	})

	It("does not sleep on the first frame", func() {
		l := sim.NewLimiterWithClock(60, clock)
		l.Wait()
		Expect(clock.sleeps).To(BeEmpty())
	})

	It("sleeps for the rest of the interval", func() {
		l := sim.NewLimiterWithClock(50, clock)
		l.Wait()
		clock.now = clock.now.Add(5 * time.Millisecond)
		l.Wait()

		Expect(l.Interval()).To(Equal(20 * time.Millisecond))
		Expect(clock.sleeps).To(Equal([]time.Duration{15 * time.Millisecond}))
	})

	It("does not sleep when the frame overran", func() {
		l := sim.NewLimiterWithClock(50, clock)
		l.Wait()
		clock.now = clock.now.Add(30 * time.Millisecond)
		l.Wait()
		Expect(clock.sleeps).To(BeEmpty())
	})

	It("measures from the previous frame boundary", func() {
		l := sim.NewLimiterWithClock(50, clock)
		for i := 0; i < 3; i++ {
			clock.now = clock.now.Add(8 * time.Millisecond)
			l.Wait()
		}
		Expect(clock.sleeps).To(Equal([]time.Duration{12 * time.Millisecond, 12 * time.Millisecond}))
	})

	It("is disabled for non-positive fps", func() {
		l := sim.NewLimiterWithClock(0, clock)
		l.Wait()
		l.Wait()
		Expect(l.Interval()).To(BeZero())
		Expect(clock.sleeps).To(BeEmpty())
	})
})
