package sim

import "time"

// Clock abstracts time for the frame limiter.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Limiter caps the frame rate. Wait blocks until one frame interval has
// passed since the previous call returned.
type Limiter struct {
	interval time.Duration
	clock    Clock
	last     time.Time
}

// NewLimiter returns a limiter for fps frames per second. fps <= 0 disables
// limiting.
func NewLimiter(fps int) *Limiter {
	return NewLimiterWithClock(fps, realClock{})
}

func NewLimiterWithClock(fps int, c Clock) *Limiter {
	l := &Limiter{clock: c}
	if fps > 0 {
		l.interval = time.Second / time.Duration(fps)
	}
	return l
}

func (l *Limiter) Interval() time.Duration { return l.interval }

func (l *Limiter) Wait() {
	if l.interval == 0 {
		return
	}
	now := l.clock.Now()
	if !l.last.IsZero() {
		if elapsed := now.Sub(l.last); elapsed < l.interval {
			l.clock.Sleep(l.interval - elapsed)
			now = l.clock.Now()
		}
	}
	l.last = now
}
