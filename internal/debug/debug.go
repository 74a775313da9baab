package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// HUD draws the top-right overlay: frames per second and how many cards are held.
type HUD struct {
	ShowFPS  bool
	ShowHeld bool
	// HeldCount reports the number of held cards; nil hides the line.
	HeldCount func() int

	frameCount   uint32
	lastFPSText  string
	lastHeld     int
	lastHeldText string
}

// New returns a HUD with both lines hidden.
func New(heldCount func() int) *HUD {
	return &HUD{HeldCount: heldCount, lastHeld: -1}
}

func (h *HUD) SetShowFPS(show bool)  { h.ShowFPS = show }
func (h *HUD) SetShowHeld(show bool) { h.ShowHeld = show }

// Shown reports which lines are enabled.
func (h *HUD) Shown() (fps, held bool) { return h.ShowFPS, h.ShowHeld }

// Draw renders the enabled lines. Call between BeginDrawing and EndDrawing,
// after the 3D pass.
func (h *HUD) Draw() {
	h.frameCount++
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if h.ShowFPS {
		if h.lastFPSText == "" || h.frameCount%updateInterval == 0 {
			h.lastFPSText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(h.lastFPSText, screenW, y, rl.Green)
		y += lineHeight
	}

	if h.ShowHeld && h.HeldCount != nil {
		if n := h.HeldCount(); n != h.lastHeld {
			h.lastHeld = n
			h.lastHeldText = fmt.Sprintf("Held: %d", n)
		}
		drawRight(h.lastHeldText, screenW, y, rl.Yellow)
	}
}

func drawRight(text string, screenW, y int32, c rl.Color) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, c)
}
