package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Turn interval slider bounds, in milliseconds.
const (
	minIntervalMS = 10
	maxIntervalMS = 1000
)

// ControlState is what the control strip displays.
type ControlState struct {
	Running  bool
	Interval time.Duration
}

// Actions reports what the user asked for this frame.
type Actions struct {
	Toggle   bool          // start or stop the runner
	Next     bool          // advance one turn while stopped
	Reset    bool          // rebuild the world
	Interval time.Duration // non-zero when the speed changed
}

// Controls renders the Start/Stop, Next turn and Reset buttons with a speed
// slider, and maps keyboard shortcuts onto the same actions.
type Controls struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControls creates a control strip at the given position.
func NewControls(x, y, width int32) *Controls {
	return &Controls{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Height returns the strip's height in pixels.
func (c *Controls) Height() int32 { return 110 }

// Draw renders the strip and returns the actions triggered by clicks or keys.
// Call it between BeginDrawing and EndDrawing.
func (c *Controls) Draw(state ControlState) Actions {
	var act Actions
	r := c.renderer
	pad := float32(r.Theme.Padding)
	x, y := float32(c.x), float32(c.y)

	r.DrawPanel(c.x, c.y, c.width, c.Height())

	label := "Start"
	if state.Running {
		label = "Stop"
	}
	if gui.Button(rl.Rectangle{X: x + pad, Y: y + pad, Width: 90, Height: 30}, label) {
		act.Toggle = true
	}
	if !state.Running {
		if gui.Button(rl.Rectangle{X: x + pad + 100, Y: y + pad, Width: 90, Height: 30}, "Next turn") {
			act.Next = true
		}
	}
	if gui.Button(rl.Rectangle{X: x + pad + 200, Y: y + pad, Width: 90, Height: 30}, "Reset") {
		act.Reset = true
	}

	// Speed slider: turn interval in milliseconds.
	ms := float32(state.Interval.Milliseconds())
	sliderY := y + pad + 45
	rl.DrawText("Turn interval", int32(x+pad), int32(sliderY), r.Theme.FontSize, r.Theme.LabelColor)
	newMS := gui.SliderBar(
		rl.Rectangle{X: x + pad, Y: sliderY + 16, Width: float32(c.width) - 2*pad - 70, Height: 20},
		"", "",
		ms, minIntervalMS, maxIntervalMS,
	)
	rl.DrawText(fmt.Sprintf("%.0f ms", newMS), int32(x+float32(c.width)-pad-60), int32(sliderY+18), r.Theme.FontSize, r.Theme.ValueColor)
	if int(newMS) != int(ms) {
		act.Interval = time.Duration(newMS) * time.Millisecond
	}

	c.handleKeys(state, &act)
	return act
}

// handleKeys maps keyboard shortcuts onto actions.
func (c *Controls) handleKeys(state ControlState, act *Actions) {
	if rl.IsKeyPressed(rl.KeySpace) {
		act.Toggle = true
	}
	if rl.IsKeyPressed(rl.KeyN) && !state.Running {
		act.Next = true
	}
	if rl.IsKeyPressed(rl.KeyR) {
		act.Reset = true
	}

	// Halve or double the interval with < and > (comma and period).
	interval := state.Interval
	if act.Interval != 0 {
		interval = act.Interval
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		act.Interval = min(interval*2, maxIntervalMS*time.Millisecond)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		act.Interval = max(interval/2, minIntervalMS*time.Millisecond)
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
}
