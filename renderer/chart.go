package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/telemetry"
)

var (
	chartBg     = rl.Color{R: 20, G: 25, B: 30, A: 240}
	chartBorder = rl.Color{R: 60, G: 70, B: 80, A: 255}
)

// Series is one line of a LineChart.
type Series struct {
	Label  string
	Values []float64
	Color  rl.Color
}

// DrawLineChart plots series against a shared y axis starting at zero.
func DrawLineChart(bounds rl.Rectangle, title string, series []Series) {
	drawFrame(bounds, title)

	var top float64
	n := 0
	for _, s := range series {
		n = max(n, len(s.Values))
		for _, v := range s.Values {
			top = max(top, v)
		}
	}
	if n < 2 || top <= 0 {
		return
	}

	plot := inset(bounds)
	dx := plot.Width / float32(n-1)
	for _, s := range series {
		for i := 1; i < len(s.Values); i++ {
			a := rl.Vector2{X: plot.X + dx*float32(i-1), Y: plot.Y + plot.Height*float32(1-s.Values[i-1]/top)}
			b := rl.Vector2{X: plot.X + dx*float32(i), Y: plot.Y + plot.Height*float32(1-s.Values[i]/top)}
			rl.DrawLineV(a, b, s.Color)
		}
	}

	// Legend
	lx := int32(bounds.X + bounds.Width - 90)
	ly := int32(bounds.Y + 4)
	for _, s := range series {
		rl.DrawRectangle(lx, ly+3, 8, 8, s.Color)
		rl.DrawText(s.Label, lx+12, ly, 12, rl.LightGray)
		ly += 14
	}
	rl.DrawText(fmt.Sprintf("%.0f", top), int32(bounds.X+4), int32(plot.Y), 10, rl.Gray)
}

// DrawHistogram draws h as bars, scaled to its tallest bin.
func DrawHistogram(bounds rl.Rectangle, title string, h telemetry.Histogram, color rl.Color) {
	drawFrame(bounds, title)
	if h.Bins() == 0 || h.Max() == 0 {
		return
	}

	plot := inset(bounds)
	bw := plot.Width / float32(h.Bins())
	top := h.Max()
	for i, c := range h.Counts {
		bh := plot.Height * float32(c/top)
		rl.DrawRectangleRec(rl.Rectangle{
			X:      plot.X + bw*float32(i),
			Y:      plot.Y + plot.Height - bh,
			Width:  max(bw-1, 1),
			Height: bh,
		}, color)
	}

	labelY := int32(bounds.Y + bounds.Height - 12)
	rl.DrawText(fmt.Sprintf("%.1f", h.Lo), int32(plot.X), labelY, 10, rl.Gray)
	hi := fmt.Sprintf("%.1f", h.Hi)
	rl.DrawText(hi, int32(plot.X+plot.Width)-rl.MeasureText(hi, 10), labelY, 10, rl.Gray)
}

func drawFrame(bounds rl.Rectangle, title string) {
	rl.DrawRectangleRec(bounds, chartBg)
	rl.DrawRectangleLinesEx(bounds, 1, chartBorder)
	rl.DrawText(title, int32(bounds.X+6), int32(bounds.Y+4), 12, rl.White)
}

// inset returns the plotting area inside a chart frame.
func inset(bounds rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{
		X:      bounds.X + 8,
		Y:      bounds.Y + 20,
		Width:  bounds.Width - 16,
		Height: bounds.Height - 34,
	}
}
