package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/camera"
)

// HandleCameraInput pans the grid view with the arrow keys or a right-button
// drag and zooms with the wheel or +/-. Home resets the view.
func HandleCameraInput(cam *camera.Camera) {
	const panSpeed = 8 // pixels per frame

	if rl.IsKeyDown(rl.KeyRight) {
		cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Pan(0, -panSpeed)
	}

	mouse := rl.GetMousePosition()
	view := rl.Rectangle{X: cam.ViewX, Y: cam.ViewY, Width: cam.ViewW, Height: cam.ViewH}
	if rl.CheckCollisionPointRec(mouse, view) {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.ZoomBy(1 + wheel*0.1)
		}
		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			d := rl.GetMouseDelta()
			cam.Pan(-d.X, -d.Y)
		}
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}

// HoveredTile returns the grid tile under the mouse cursor.
func HoveredTile(cam *camera.Camera) (x, y int, ok bool) {
	m := rl.GetMousePosition()
	return cam.ScreenToTile(m.X, m.Y)
}
