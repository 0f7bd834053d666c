package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/genome"
	"github.com/pthm-cable/meadow/renderer"
	"github.com/pthm-cable/meadow/telemetry"
	"github.com/pthm-cable/meadow/world"
)

// HUD renders the turn counter and population summary.
type HUD struct {
	renderer *Renderer
	palette  renderer.Palette

	hoverX, hoverY int
	hovering       bool
}

// NewHUD creates a new HUD renderer.
func NewHUD(p renderer.Palette) *HUD {
	return &HUD{renderer: NewRenderer(), palette: p}
}

// SetHover selects the tile described on the HUD's last line.
func (h *HUD) SetHover(x, y int, ok bool) {
	h.hoverX, h.hoverY, h.hovering = x, y, ok
}

// Draw renders the HUD in a panel at (x, y).
func (h *HUD) Draw(x, y, width int32, snap game.Snapshot, running bool) int32 {
	r := h.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*8 + pad*2
	r.DrawPanel(x, y, width, height)

	cy := y + pad
	rl.DrawText("Meadow", x+pad, cy, 20, rl.White)
	cy += 26

	status := "Stopped"
	if running {
		status = "Running"
	}
	if snap.Extinct {
		status += " | extinction"
	}
	cy = r.DrawLabelValue(x+pad, cy, "Turn", fmt.Sprintf("%d  (%s)", snap.Turn, status))

	total := float64(max(snap.Prey+snap.Predators, 1))
	inner := width - pad*2
	cy = r.DrawBar(x+pad, cy, "Prey", float64(snap.Prey), total, h.palette.Species[components.SpeciesPrey], inner)
	cy = r.DrawBar(x+pad, cy, "Predators", float64(snap.Predators), total, h.palette.Species[components.SpeciesPredator], inner)
	cy = r.DrawLabelValue(x+pad, cy, "Grass", fmt.Sprintf("%d", snap.Grass))
	cy = r.DrawLabelValue(x+pad, cy, "Perf", fmt.Sprintf("%.0f turns/s  %.0f fps", snap.Perf.TurnsPerSecond, snap.Perf.FPS))
	if h.hovering && h.hoverX < len(snap.Map) && h.hoverY < len(snap.Map[h.hoverX]) {
		r.DrawLabelValue(x+pad, cy, "Tile", fmt.Sprintf("(%d, %d) %s", h.hoverX, h.hoverY, describeCode(snap.Map[h.hoverX][h.hoverY])))
	}

	return y + height
}

// StatsPanel shows the population graph, energy histograms and one gene's
// histogram per species.
type StatsPanel struct {
	renderer *Renderer
	palette  renderer.Palette
	gene     int32
}

// NewStatsPanel creates a statistics panel.
func NewStatsPanel(p renderer.Palette) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), palette: p}
}

// Draw renders the panel inside bounds.
func (s *StatsPanel) Draw(bounds rl.Rectangle, snap game.Snapshot) {
	prey := s.palette.Species[components.SpeciesPrey]
	pred := s.palette.Species[components.SpeciesPredator]
	grass := s.palette.Grass

	gap := float32(6)
	rowH := (bounds.Height - 3*gap - 24) / 3
	halfW := (bounds.Width - gap) / 2
	x, y := bounds.X, bounds.Y

	preyN, predN, grassN := telemetry.SeriesOf(snap.History)
	renderer.DrawLineChart(rl.Rectangle{X: x, Y: y, Width: bounds.Width, Height: rowH}, "Population", []renderer.Series{
		{Label: "prey", Values: preyN, Color: prey},
		{Label: "predators", Values: predN, Color: pred},
		{Label: "grass", Values: grassN, Color: grass},
	})
	y += rowH + gap

	renderer.DrawHistogram(rl.Rectangle{X: x, Y: y, Width: halfW, Height: rowH}, "Prey energy", snap.Energy[components.SpeciesPrey], prey)
	renderer.DrawHistogram(rl.Rectangle{X: x + halfW + gap, Y: y, Width: halfW, Height: rowH}, "Predator energy", snap.Energy[components.SpeciesPredator], pred)
	y += rowH + gap

	s.gene = gui.ComboBox(rl.Rectangle{X: x, Y: y, Width: bounds.Width, Height: 20}, strings.Join(genome.Names(), ";"), s.gene)
	s.gene = min(max(s.gene, 0), int32(genome.NumGenes)-1)
	y += 24

	g := genome.Gene(s.gene)
	renderer.DrawHistogram(rl.Rectangle{X: x, Y: y, Width: halfW, Height: rowH}, "Prey "+g.String(), snap.Genes[components.SpeciesPrey][g], prey)
	renderer.DrawHistogram(rl.Rectangle{X: x + halfW + gap, Y: y, Width: halfW, Height: rowH}, "Predator "+g.String(), snap.Genes[components.SpeciesPredator][g], pred)
}

// describeCode names the occupant of a tile from its render code.
func describeCode(code int) string {
	if code >= 0 && code < world.VegetationCodeOffset {
		return components.Species(code).String()
	}
	return fmt.Sprintf("%d plants", code-world.VegetationCodeOffset)
}
