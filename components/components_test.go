package components

import (
	"errors"
	"testing"

	"github.com/pthm-cable/meadow/genome"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		v, n, want int
	}{
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 0},
		{-1, 10, 9},
		{-11, 10, 9},
		{25, 10, 5},
	}
	for _, tt := range tests {
		if got := Wrap(tt.v, tt.n); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestDirectionStepWrapsAtEdges(t *testing.T) {
	tests := []struct {
		name         string
		d            Direction
		x, y         int
		wantX, wantY int
	}{
		{"up from top", DirUp, 3, 0, 3, 4},
		{"down from bottom", DirDown, 3, 4, 3, 0},
		{"left from left edge", DirLeft, 0, 2, 4, 2},
		{"right from right edge", DirRight, 4, 2, 0, 2},
		{"stay", DirStay, 2, 2, 2, 2},
		{"interior right", DirRight, 1, 1, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.d.Step(tt.x, tt.y, 5, 5)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Step = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestOpposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%s: opposite is not an involution", d)
		}
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%s: opposite delta (%d,%d) does not negate (%d,%d)", d, ox, oy, dx, dy)
		}
	}
}

func TestNewOrganismRejectsUnknownSpecies(t *testing.T) {
	_, err := NewOrganism(1, Species(9), genome.Genome{}, 0)
	if !errors.Is(err, ErrInvalidSpecies) {
		t.Fatalf("expected ErrInvalidSpecies, got %v", err)
	}
}

func TestNewOrganismDerivesConsumption(t *testing.T) {
	g := genome.New([genome.NumGenes]float64{2, 1.5, 150, 1, 1})
	org, err := NewOrganism(7, SpeciesPredator, g, 3)
	if err != nil {
		t.Fatalf("NewOrganism: %v", err)
	}
	if org.Consumption != 3 {
		t.Errorf("Consumption = %v, want 3", org.Consumption)
	}
	if org.Species.String() != "predator" {
		t.Errorf("Species.String() = %q", org.Species.String())
	}
}
