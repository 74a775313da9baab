package graphics

import (
	"card-toss/internal/config"
	"card-toss/internal/picking"
	"card-toss/internal/scene"
	"card-toss/internal/sim"
	"card-toss/internal/terminal"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Open creates the window and GL context. Call Close when the loop returns.
func Open(w config.Window) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	width, height := int32(w.Width), int32(w.Height)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, w.Title)
	rl.SetExitKey(rl.KeyNull) // close via window button; backtick opens the console
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(int32(w.TargetFPS))
	}
}

// Close destroys the window.
func Close() {
	rl.CloseWindow()
}

// Host feeds raylib input into the simulation loop: left click picks, right
// drag orbits, the wheel zooms and backtick toggles the console.
type Host struct {
	orbit   *scene.Orbit
	console *terminal.Terminal
}

// NewHost returns a host. Either argument may be nil.
func NewHost(orbit *scene.Orbit, console *terminal.Terminal) *Host {
	return &Host{orbit: orbit, console: console}
}

func (h *Host) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// PollInput reads this frame's input. Clicks carry cam so they are resolved
// against the view the user clicked on.
func (h *Host) PollInput(cam scene.Camera, sink sim.ClickSink) {
	if h.console != nil {
		h.console.Update()
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		p := rl.GetMousePosition()
		sink.Enqueue(picking.Click{
			X:      p.X,
			Y:      p.Y,
			Width:  rl.GetScreenWidth(),
			Height: rl.GetScreenHeight(),
			Camera: cam,
		})
	}
	if h.orbit == nil {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		h.orbit.Rotate(d.X, d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		h.orbit.Zoom(wheel)
	}
}
