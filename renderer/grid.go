package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/camera"
)

// GridRenderer draws a render-code map through a camera.
type GridRenderer struct {
	Palette  Palette
	ShowGrid bool
}

// NewGridRenderer creates a renderer for a world with the given plant cap.
func NewGridRenderer(maxSupply float64) *GridRenderer {
	return &GridRenderer{Palette: DefaultPalette(maxSupply)}
}

// Draw renders codes, indexed [x][y], into the camera viewport. Tiles past
// the grid edge wrap around.
func (r *GridRenderer) Draw(codes [][]int, cam *camera.Camera) {
	if len(codes) == 0 || len(codes[0]) == 0 {
		return
	}
	w, h := len(codes), len(codes[0])
	cell := cam.CellSize()

	rl.BeginScissorMode(int32(cam.ViewX), int32(cam.ViewY), int32(cam.ViewW), int32(cam.ViewH))
	defer rl.EndScissorMode()

	c0, nc, r0, nr := cam.Visible()
	for col := c0; col < c0+nc; col++ {
		x := ((col % w) + w) % w
		for row := r0; row < r0+nr; row++ {
			y := ((row % h) + h) % h
			sx, sy := cam.CellToScreen(col, row)
			rect := rl.Rectangle{X: sx, Y: sy, Width: cell, Height: cell}
			rl.DrawRectangleRec(rect, r.Palette.Color(codes[x][y]))
			if r.ShowGrid && cell >= 6 {
				rl.DrawRectangleLinesEx(rect, 1, rl.Color{R: 0, G: 0, B: 0, A: 60})
			}
		}
	}
}

// Highlight outlines tile (x, y).
func (r *GridRenderer) Highlight(cam *camera.Camera, x, y int) {
	sx, sy := cam.TileToScreen(x, y)
	cell := cam.CellSize()
	rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: cell, Height: cell}, 2, rl.White)
}
