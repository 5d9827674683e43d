package gui

import (
	"errors"
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
)

var ErrWindowUnavailable = errors.New("gui: window could not be created")

var (
	ColBg    = rl.Black
	ColArena = rl.White
	ColHUD   = rl.NewColor(140, 140, 140, 255)
)

const arenaStroke = 2

// Options describe the window to open.
type Options struct {
	Title  string
	Width  int
	Height int
	FPS    int

	// HUD draws the body count and frame rate in the top-left corner.
	HUD bool
}

// Window is a sim.Frontend backed by a raylib window. All calls must come
// from the goroutine that opened it.
type Window struct {
	opts    Options
	drawing bool
	bodies  int
	closed  bool
}

// Open creates the window. raylib's own frame cap paces EndDrawing, so
// WaitFrame does nothing.
func Open(opts Options) (*Window, error) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if !rl.IsWindowReady() {
		return nil, ErrWindowUnavailable
	}
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
	return &Window{opts: opts}, nil
}

func (w *Window) Clear() {
	rl.BeginDrawing()
	w.drawing = true
	w.bodies = 0
	rl.ClearBackground(ColBg)
}

func (w *Window) DrawArena(a physics.Arena) {
	r := float32(a.Radius)
	rl.DrawRing(toVector2(a.Center), r-arenaStroke, r, 0, 360, 128, ColArena)
}

func (w *Window) DrawBody(b physics.Body) {
	rl.DrawCircleV(toVector2(b.Pos), float32(b.Radius), opaque(b.Color))
	w.bodies++
}

func (w *Window) PollEvents() []sim.Event {
	return pollKeys(rl.IsKeyPressed, rl.WindowShouldClose())
}

func (w *Window) Present() {
	if w.opts.HUD {
		drawHUD(w.bodies, int(rl.GetFPS()))
	}
	rl.EndDrawing()
	w.drawing = false
}

func (w *Window) WaitFrame() {}

func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	if w.drawing {
		rl.EndDrawing()
		w.drawing = false
	}
	rl.CloseWindow()
	w.closed = true
	return nil
}

func drawHUD(bodies, fps int) {
	rl.DrawText(fmt.Sprintf("%d balls", bodies), 12, 12, 16, ColHUD)
	rl.DrawText(fmt.Sprintf("%d FPS", fps), 12, 32, 16, ColHUD)
	rl.DrawText("R reset  UP/DOWN balls  SPACE pause", 12, 52, 12, ColHUD)
}

func opaque(c color.RGBA) color.RGBA {
	if c.A == 0 {
		c.A = 255
	}
	return c
}
