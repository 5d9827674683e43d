package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
)

const (
	canvasWidth  = 60
	canvasHeight = 30
)

// FrameMsg carries one presented frame from the loop to the view.
type FrameMsg struct {
	Arena    physics.Arena
	Bodies   []physics.Body
	Frame    int
	Paused   bool
	Energy   []float64
	Contacts int
	WallHits int
}

type styles struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	paused lipgloss.Style
	help   lipgloss.Style
	stats  lipgloss.Style
	canvas lipgloss.Style
}

func newStyles(t Theme) styles {
	stats := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(44)
	return styles{
		header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		paused: lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		stats:  stats,
		canvas: lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 2),
	}
}

// Model is the bubbletea view of a running loop. Key presses are forwarded
// to the loop as events; frames come back as FrameMsg.
type Model struct {
	events   chan<- sim.Event
	theme    Theme
	styles   styles
	canvas   *Canvas
	last     FrameMsg
	hasFrame bool
	showHelp bool
}

func NewModel(events chan<- sim.Event, theme Theme) Model {
	return Model{
		events: events,
		theme:  theme,
		styles: newStyles(theme),
		canvas: NewCanvas(canvasWidth, canvasHeight),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// keyEvents maps terminal keys to loop events.
var keyEvents = map[string]sim.EventKind{
	"q":      sim.EventQuit,
	"ctrl+c": sim.EventQuit,
	"esc":    sim.EventQuit,
	"r":      sim.EventReset,
	"up":     sim.EventIncrease,
	"k":      sim.EventIncrease,
	"down":   sim.EventDecrease,
	"j":      sim.EventDecrease,
	" ":      sim.EventPause,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if kind, ok := keyEvents[key]; ok {
			m.forward(sim.Event{Kind: kind})
			return m, nil
		}
		switch key {
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		}
	case FrameMsg:
		m.last = msg
		m.hasFrame = true
	}
	return m, nil
}

// forward never blocks the UI; events beyond the buffer are dropped.
func (m Model) forward(ev sim.Event) {
	select {
	case m.events <- ev:
	default:
	}
}

func (m Model) View() string {
	if !m.hasFrame {
		return "starting...\n"
	}
	m.draw()

	f := m.last
	var s strings.Builder
	s.WriteString(m.styles.header.Render("BALLSIM") + "\n")
	if f.Paused {
		s.WriteString(m.styles.paused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString("RUNNING\n\n")
	}

	if len(f.Energy) > 1 {
		chart := asciigraph.Plot(f.Energy, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	energy := 0.0
	if len(f.Energy) > 0 {
		energy = f.Energy[len(f.Energy)-1]
	}
	rows := [][2]string{
		{"Balls", fmt.Sprintf("%d", len(f.Bodies))},
		{"Frame", fmt.Sprintf("%d", f.Frame)},
		{"Energy", fmt.Sprintf("%.2f", energy)},
		{"Contacts", fmt.Sprintf("%d", f.Contacts)},
		{"Wall hits", fmt.Sprintf("%d", f.WallHits)},
		{"Theme", m.theme.Name},
	}
	for _, r := range rows {
		s.WriteString(m.styles.label.Render(r[0]) + m.styles.value.Render(r[1]) + "\n")
	}

	if m.showHelp {
		s.WriteString(m.styles.help.Render("─────────────────────\nR        reset\nUp/K     add a ball\nDown/J   remove a ball\nSpace    pause\nT        theme\nQ        quit"))
	} else {
		s.WriteString(m.styles.help.Render("─────────────────────\nR:Reset ↑↓:Balls SP:Pause\nT:Theme ?:Help Q:Quit"))
	}

	canvasView := m.styles.canvas.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.stats.Render(s.String()))
}

// draw projects the arena onto the canvas so that it fills the shorter side.
func (m Model) draw() {
	c := m.canvas
	c.Clear()

	a := m.last.Arena
	if a.Radius <= 0 {
		return
	}
	cx, cy := c.PixelWidth()/2, c.PixelHeight()/2
	scale := float64(min(cx, cy)-1) / a.Radius

	project := func(p physics.Vec2) (int, int) {
		return cx + int((p.X-a.Center.X)*scale), cy + int((p.Y-a.Center.Y)*scale)
	}

	c.DrawCircle(cx, cy, int(a.Radius*scale))
	for _, b := range m.last.Bodies {
		x, y := project(b.Pos)
		c.FillCircle(x, y, max(1, int(b.Radius*scale)))
	}
}
