package viz

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/world"
)

const (
	eventBuffer   = 16
	energyHistory = 120
)

// Terminal is a sim.Frontend that renders through a bubbletea program.
// The loop runs on its own goroutine; every call here happens on that
// goroutine, and frames reach the program only through Send.
type Terminal struct {
	events  chan sim.Event
	limiter *sim.Limiter
	send    func(tea.Msg)
	quit    func()

	arena   physics.Arena
	bodies  []physics.Body
	energy  []float64
	stats   world.StepStats
	frame   int
	stepped bool
}

func NewTerminal(fps int) *Terminal {
	return &Terminal{
		events:  make(chan sim.Event, eventBuffer),
		limiter: sim.NewLimiter(fps),
		send:    func(tea.Msg) {},
		quit:    func() {},
	}
}

// Model returns the view that feeds key presses back into t.
func (t *Terminal) Model(theme Theme) Model {
	return NewModel(t.events, theme)
}

// Attach connects t to the program running its model. Call before the loop
// starts.
func (t *Terminal) Attach(p *tea.Program) {
	t.send = p.Send
	t.quit = p.Quit
}

// OnStep records the tick for the next presented frame.
func (t *Terminal) OnStep(frame int, bodies []physics.Body, stats world.StepStats) {
	t.frame = frame
	t.stats = stats
	t.stepped = true

	e := 0.0
	for _, b := range bodies {
		e += b.KineticEnergy()
	}
	t.energy = append(t.energy, e)
	if len(t.energy) > energyHistory {
		t.energy = t.energy[len(t.energy)-energyHistory:]
	}
}

func (t *Terminal) Clear()                    { t.bodies = t.bodies[:0] }
func (t *Terminal) DrawArena(a physics.Arena) { t.arena = a }
func (t *Terminal) DrawBody(b physics.Body)   { t.bodies = append(t.bodies, b) }
func (t *Terminal) WaitFrame()                { t.limiter.Wait() }

func (t *Terminal) PollEvents() []sim.Event {
	var evs []sim.Event
	for {
		select {
		case ev := <-t.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

// Present hands a copy of the frame to the program.
func (t *Terminal) Present() {
	msg := FrameMsg{
		Arena:    t.arena,
		Bodies:   append([]physics.Body(nil), t.bodies...),
		Frame:    t.frame,
		Paused:   !t.stepped,
		Energy:   append([]float64(nil), t.energy...),
		Contacts: t.stats.Contacts,
		WallHits: t.stats.WallHits,
	}
	t.stepped = false
	t.send(msg)
}

func (t *Terminal) Close() error {
	t.quit()
	return nil
}
