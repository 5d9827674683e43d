package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
)

func toVector2(v physics.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

// keyBindings are checked in order, so a batch lists events in this order.
var keyBindings = []struct {
	key  int32
	kind sim.EventKind
}{
	{rl.KeyR, sim.EventReset},
	{rl.KeyUp, sim.EventIncrease},
	{rl.KeyDown, sim.EventDecrease},
	{rl.KeySpace, sim.EventPause},
	{rl.KeyQ, sim.EventQuit},
}

// pollKeys turns the keys pressed this frame into events. A close request
// is reported last so the other keys of the frame are still applied.
func pollKeys(pressed func(key int32) bool, closeRequested bool) []sim.Event {
	var evs []sim.Event
	for _, b := range keyBindings {
		if pressed(b.key) {
			evs = append(evs, sim.Event{Kind: b.kind})
		}
	}
	if closeRequested {
		evs = append(evs, sim.Event{Kind: sim.EventQuit})
	}
	return evs
}
