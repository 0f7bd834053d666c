// Package renderer draws the simulation grid and its statistics with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/world"
)

// Palette maps render codes to colors. Vegetation blends from Soil at zero
// plants to Grass at MaxSupply.
type Palette struct {
	Species   [components.NumSpecies]rl.Color
	Soil      rl.Color
	Grass     rl.Color
	MaxSupply float64
}

// DefaultPalette returns the standard palette for a given plant cap.
func DefaultPalette(maxSupply float64) Palette {
	return Palette{
		Species: [components.NumSpecies]rl.Color{
			components.SpeciesPrey:     {R: 240, G: 220, B: 90, A: 255},
			components.SpeciesPredator: {R: 220, G: 60, B: 50, A: 255},
		},
		Soil:      rl.Color{R: 70, G: 50, B: 35, A: 255},
		Grass:     rl.Color{R: 40, G: 170, B: 60, A: 255},
		MaxSupply: maxSupply,
	}
}

// Color returns the color for a render code.
func (p Palette) Color(code int) rl.Color {
	if code >= 0 && code < world.VegetationCodeOffset {
		return p.Species[code]
	}
	plants := float64(code - world.VegetationCodeOffset)
	t := float32(0)
	if p.MaxSupply > 0 {
		t = float32(min(max(plants/p.MaxSupply, 0), 1))
	}
	return lerpColor(p.Soil, p.Grass, t)
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t)
	}
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
