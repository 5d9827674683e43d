package sim

import (
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/world"
)

type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

type EventKind int

const (
	EventQuit EventKind = iota
	EventReset
	EventIncrease
	EventDecrease
	EventPause
)

var eventNames = [...]string{"quit", "reset", "increase", "decrease", "pause"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

type Event struct {
	Kind EventKind
}

// Frontend is the rendering and input collaborator driven by the loop.
// PollEvents must not block. WaitFrame is the only call allowed to block,
// and only until the next frame boundary.
type Frontend interface {
	Clear()
	DrawArena(a physics.Arena)
	PollEvents() []Event
	DrawBody(b physics.Body)
	Present()
	WaitFrame()
	Close() error
}

// Observer is notified after every simulation tick.
type Observer interface {
	OnStep(frame int, bodies []physics.Body, stats world.StepStats)
}
