package sim

import "github.com/san-kum/ballsim/internal/physics"

// Headless is a Frontend that draws nothing. It emits a quit event once the
// configured number of frames has been polled and can replay scripted input.
type Headless struct {
	frames  int
	polls   int
	script  map[int][]Event
	limiter *Limiter
	pending int

	// Drawn is the number of bodies drawn in the last presented frame.
	Drawn     int
	Presented int
	Closed    bool
}

// NewHeadless quits after frames polls. frames <= 0 runs until cancelled.
func NewHeadless(frames int) *Headless {
	return &Headless{
		frames:  frames,
		script:  make(map[int][]Event),
		limiter: NewLimiter(0),
	}
}

// WithLimiter paces the headless run like a real display would.
func (h *Headless) WithLimiter(l *Limiter) *Headless {
	h.limiter = l
	return h
}

// Script queues events to be returned by the poll with the given index.
func (h *Headless) Script(poll int, evs ...Event) {
	h.script[poll] = append(h.script[poll], evs...)
}

func (h *Headless) Clear()                  { h.pending = 0 }
func (h *Headless) DrawArena(physics.Arena) {}
func (h *Headless) DrawBody(physics.Body)   { h.pending++ }
func (h *Headless) WaitFrame()              { h.limiter.Wait() }

func (h *Headless) Present() {
	h.Drawn = h.pending
	h.Presented++
}

func (h *Headless) PollEvents() []Event {
	evs := h.script[h.polls]
	if h.frames > 0 && h.polls >= h.frames {
		evs = append(evs, Event{Kind: EventQuit})
	}
	h.polls++
	return evs
}

func (h *Headless) Close() error {
	h.Closed = true
	return nil
}
