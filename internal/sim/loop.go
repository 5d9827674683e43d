package sim

import (
	"context"
	"errors"

	"github.com/san-kum/ballsim/internal/logging"
	"github.com/san-kum/ballsim/internal/world"
)

// MinPopulation is the floor applied when the body count is decreased.
const MinPopulation = 1

// Loop drives the world and a frontend one frame at a time until a quit
// event arrives or the context is cancelled.
type Loop struct {
	world     *world.World
	frontend  Frontend
	log       *logging.Logger
	observers []Observer

	state  State
	count  int
	frame  int
	paused bool
}

func New(w *world.World, fe Frontend, count int, log *logging.Logger) *Loop {
	if log == nil {
		log = logging.Discard()
	}
	if count < MinPopulation {
		count = MinPopulation
	}
	return &Loop{
		world:     w,
		frontend:  fe,
		log:       log,
		observers: make([]Observer, 0),
		count:     count,
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) State() State        { return l.state }
func (l *Loop) Count() int          { return l.count }
func (l *Loop) Frame() int          { return l.frame }
func (l *Loop) Paused() bool        { return l.paused }
func (l *Loop) World() *world.World { return l.world }

// Run populates the world and iterates until the loop stops. The frontend
// is closed on the way out.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.repopulate(); err != nil {
		return errors.Join(err, l.frontend.Close())
	}
	l.log.Info("simulation started", "bodies", l.count)

	var ctxErr error
	for l.state == Running {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			l.stop("context done")
			continue
		default:
		}
		l.Tick()
	}

	l.log.Info("simulation stopped", "frames", l.frame, "bodies", l.count)
	if err := l.frontend.Close(); err != nil {
		return err
	}
	return ctxErr
}

// Tick runs a single frame: clear, draw the arena, dispatch input, step the
// world, draw the bodies, present and wait for the frame boundary.
func (l *Loop) Tick() {
	fe := l.frontend
	fe.Clear()
	fe.DrawArena(l.world.Arena())

	for _, ev := range fe.PollEvents() {
		l.Dispatch(ev)
		if l.state == Stopped {
			return
		}
	}

	if !l.paused {
		stats := l.world.Step()
		l.frame++
		for _, o := range l.observers {
			o.OnStep(l.frame, l.world.Bodies(), stats)
		}
	}

	for _, b := range l.world.Bodies() {
		fe.DrawBody(b)
	}
	fe.Present()
	fe.WaitFrame()
}

// Dispatch applies one input event.
func (l *Loop) Dispatch(ev Event) {
	switch ev.Kind {
	case EventQuit:
		l.stop("quit requested")
	case EventReset:
		l.setCount(l.count)
	case EventIncrease:
		l.setCount(l.count + 1)
	case EventDecrease:
		l.setCount(max(MinPopulation, l.count-1))
	case EventPause:
		l.paused = !l.paused
		l.log.Debug("pause toggled", "paused", l.paused)
	default:
		l.log.Warn("ignoring unknown event", "kind", int(ev.Kind))
	}
}

func (l *Loop) setCount(n int) {
	l.count = n
	if err := l.repopulate(); err != nil {
		l.log.Error("repopulate failed", "count", n, "error", err)
		return
	}
	l.log.Info("population reset", "bodies", n)
}

func (l *Loop) repopulate() error {
	return l.world.SetPopulation(l.count)
}

func (l *Loop) stop(reason string) {
	l.state = Stopped
	l.log.Debug("stopping", "reason", reason)
}
