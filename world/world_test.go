package world

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/genome"
)

// testConfig returns a square, empty, barren world config.
func testConfig(t *testing.T, width int) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.World.Width = width
	cfg.World.Height = 0
	cfg.Population.Predators = 0
	cfg.Population.Prey = 0
	cfg.Vegetation.InitialSupply = 0
	cfg.Vegetation.RegenerationRatio = 0
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return cfg
}

// testGenome builds a genome with neutral behaviour ratios.
func testGenome(view, consumption, maxEnergy float64) genome.Genome {
	return genome.New([genome.NumGenes]float64{view, consumption, maxEnergy, 1, 1})
}

func newTestWorld(t *testing.T, cfg *config.Config, seed int64) *World {
	t.Helper()
	w, err := New(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func mustAdd(t *testing.T, w *World, x, y int, energy float64, s components.Species, g genome.Genome) Animal {
	t.Helper()
	a, err := w.AddAnimal(x, y, energy, s, g)
	if err != nil {
		t.Fatalf("AddAnimal: %v", err)
	}
	return a
}

func TestNewPlacesInitialPopulation(t *testing.T) {
	cfg := testConfig(t, 10)
	cfg.Population.Predators = 3
	cfg.Population.Prey = 5
	cfg.Vegetation.InitialSupply = 2
	w := newTestWorld(t, cfg, 1)

	stats := w.Statistics()
	if stats.NPredators() != 3 || stats.NPrey() != 5 {
		t.Fatalf("population = %d/%d, want 3/5", stats.NPredators(), stats.NPrey())
	}
	if got := stats.NGrass(); got != 200 {
		t.Errorf("NGrass = %d, want 200", got)
	}

	mid := genome.Midpoint(cfg.Derived.GeneRanges)
	occupied := make(map[[2]int]bool)
	for _, a := range w.Animals() {
		x, y := a.Position()
		if occupied[[2]int{x, y}] {
			t.Errorf("two initial animals on (%d,%d)", x, y)
		}
		occupied[[2]int{x, y}] = true
		if a.Energy() != cfg.Population.BaseEnergy {
			t.Errorf("%v: energy %v, want %v", a, a.Energy(), cfg.Population.BaseEnergy)
		}
		if a.Genome() != mid {
			t.Errorf("%v: genome %v, want midpoint", a, a.Genome())
		}
	}
}

func TestNewOvercrowdedGrid(t *testing.T) {
	cfg := testConfig(t, 2)
	cfg.Population.Predators = 3
	cfg.Population.Prey = 3
	w := newTestWorld(t, cfg, 1)
	if n := len(w.Animals()); n != 6 {
		t.Fatalf("placed %d animals, want 6", n)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t, 5)
	cfg.Genome.MaxEnergy = config.GeneRange{Min: 200, Max: 100}
	_ = cfg.Finalize() // New must catch it on its own
	if _, err := New(cfg, rand.New(rand.NewSource(1))); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestAddAnimalValidation(t *testing.T) {
	w := newTestWorld(t, testConfig(t, 5), 1)
	g := testGenome(1, 1, 150)

	if _, err := w.AddAnimal(1, 1, 10, components.Species(9), g); !errors.Is(err, components.ErrInvalidSpecies) {
		t.Errorf("unknown species: got %v", err)
	}
	if _, err := w.AddAnimal(5, 0, 10, components.SpeciesPrey, g); err == nil {
		t.Error("out-of-bounds position should fail")
	}

	a := mustAdd(t, w, 1, 1, 10, components.SpeciesPrey, g)
	b := mustAdd(t, w, 1, 1, 10, components.SpeciesPrey, g)
	if a.ID() != 1 || b.ID() != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", a.ID(), b.ID())
	}
	if !w.Tile(1, 1).Contains(a.Entity()) || !w.Tile(1, 1).Contains(b.Entity()) {
		t.Error("tile should hold both animals")
	}
}

func TestMoveWrapsAndRelocates(t *testing.T) {
	w := newTestWorld(t, testConfig(t, 5), 1)
	a := mustAdd(t, w, 0, 0, 10, components.SpeciesPrey, testGenome(0, 1, 150))

	tests := []struct {
		dir  components.Direction
		x, y int
	}{
		{components.DirUp, 0, 4},
		{components.DirLeft, 4, 4},
		{components.DirDown, 4, 0},
		{components.DirRight, 0, 0},
		{components.DirStay, 0, 0},
	}
	px, py := 0, 0
	for _, tt := range tests {
		if a.Move(tt.dir) {
			t.Fatalf("%v: animal with zero consumption starved", tt.dir)
		}
		x, y := a.Position()
		if x != tt.x || y != tt.y {
			t.Fatalf("after %v at (%d,%d), want (%d,%d)", tt.dir, x, y, tt.x, tt.y)
		}
		if !w.Tile(x, y).Contains(a.Entity()) {
			t.Fatalf("after %v tile (%d,%d) lost the animal", tt.dir, x, y)
		}
		if (px != x || py != y) && w.Tile(px, py).Contains(a.Entity()) {
			t.Fatalf("after %v old tile (%d,%d) still holds the animal", tt.dir, px, py)
		}
		px, py = x, y
	}
	if a.Energy() != 10 {
		t.Errorf("energy = %v, want 10", a.Energy())
	}
}

func TestMoveCostIsStochasticallyRounded(t *testing.T) {
	w := newTestWorld(t, testConfig(t, 5), 3)
	// Consumption 2 * 0.75 = 1.5, so each step costs 1 or 2.
	a := mustAdd(t, w, 2, 2, 1000, components.SpeciesPrey, testGenome(2, 0.75, 2000))

	const steps = 400
	for i := 0; i < steps; i++ {
		before := a.Energy()
		a.Move(components.DirStay)
		if cost := before - a.Energy(); cost != 1 && cost != 2 {
			t.Fatalf("step cost %v, want 1 or 2", cost)
		}
	}
	spent := 1000 - a.Energy()
	if mean := spent / steps; mean < 1.4 || mean > 1.6 {
		t.Errorf("mean step cost %v, want about 1.5", mean)
	}
}

func TestSubmapWraps(t *testing.T) {
	w := newTestWorld(t, testConfig(t, 5), 1)
	sub := w.Submap(0, 0, 1)
	if len(sub) != 3 || len(sub[0]) != 3 {
		t.Fatalf("submap is %dx%d, want 3x3", len(sub), len(sub[0]))
	}
	if c := sub[1][1]; c.X != 0 || c.Y != 0 {
		t.Errorf("centre = (%d,%d), want (0,0)", c.X, c.Y)
	}
	if c := sub[0][0]; c.X != 4 || c.Y != 4 {
		t.Errorf("corner = (%d,%d), want (4,4)", c.X, c.Y)
	}
	if c := sub[2][0]; c.X != 1 || c.Y != 4 {
		t.Errorf("corner = (%d,%d), want (1,4)", c.X, c.Y)
	}
}

func TestGetMapForRender(t *testing.T) {
	cfg := testConfig(t, 4)
	cfg.World.Height = 3
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}
	w := newTestWorld(t, cfg, 1)
	w.Tile(0, 0).Plants = 4.5
	mustAdd(t, w, 3, 2, 10, components.SpeciesPredator, testGenome(1, 1, 150))

	m := w.GetMapForRender()
	if len(m) != 4 || len(m[0]) != 3 {
		t.Fatalf("render map is %dx%d, want 4x3", len(m), len(m[0]))
	}
	if m[0][0] != VegetationCodeOffset+4 {
		t.Errorf("vegetation tile = %d, want %d", m[0][0], VegetationCodeOffset+4)
	}
	if m[3][2] != int(components.SpeciesPredator) {
		t.Errorf("predator tile = %d", m[3][2])
	}
	if m[1][1] != VegetationCodeOffset {
		t.Errorf("barren tile = %d, want %d", m[1][1], VegetationCodeOffset)
	}
}

func TestTileRenderValue(t *testing.T) {
	w := newTestWorld(t, testConfig(t, 5), 1)
	g := testGenome(1, 1, 150)

	tile := w.Tile(2, 2)
	tile.Plants = 3.7
	if got := tile.RenderValue(); got != VegetationCodeOffset+3 {
		t.Fatalf("empty tile = %d, want %d", got, VegetationCodeOffset+3)
	}

	prey := mustAdd(t, w, 2, 2, 10, components.SpeciesPrey, g)
	mustAdd(t, w, 2, 2, 10, components.SpeciesPredator, g)
	if got := tile.RenderValue(); got != int(components.SpeciesPrey) {
		t.Errorf("tie should go to first arrival, got %d", got)
	}

	mustAdd(t, w, 2, 2, 10, components.SpeciesPredator, g)
	if got := tile.RenderValue(); got != int(components.SpeciesPredator) {
		t.Errorf("majority predator tile = %d", got)
	}

	prey.die(DeathEaten)
	if p, _ := tile.Counts(); p != 0 {
		t.Errorf("dead prey still counted: %d", p)
	}
	if tile.IsEmpty() {
		t.Error("tile with living predators reported empty")
	}
}

func TestTileRemoveAbsentIsNoop(t *testing.T) {
	w := newTestWorld(t, testConfig(t, 5), 1)
	a := mustAdd(t, w, 1, 1, 10, components.SpeciesPrey, testGenome(1, 1, 150))

	other := w.Tile(3, 3)
	if other.Remove(a.Entity()) {
		t.Error("Remove reported success for an absent animal")
	}
	home := w.Tile(1, 1)
	if !home.Remove(a.Entity()) || home.Remove(a.Entity()) {
		t.Error("second Remove should be a no-op")
	}
	if home.Len() != 0 {
		t.Errorf("Len = %d after removal", home.Len())
	}
}

func TestStatistics(t *testing.T) {
	w := newTestWorld(t, testConfig(t, 5), 1)
	mustAdd(t, w, 0, 0, 10, components.SpeciesPrey, testGenome(1, 1, 150))
	mustAdd(t, w, 1, 0, 20, components.SpeciesPrey, testGenome(2, 1, 150))
	dead := mustAdd(t, w, 2, 0, 30, components.SpeciesPrey, testGenome(3, 1, 150))
	mustAdd(t, w, 3, 0, 40, components.SpeciesPredator, testGenome(4, 1, 150))
	dead.die(DeathStarved)
	w.Tile(4, 4).Plants = 2.9
	w.Tile(4, 3).Plants = 1.1

	s := w.Statistics()
	if s.NPrey() != 2 || s.NPredators() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", s.NPrey(), s.NPredators())
	}
	if s.NGrass() != 3 {
		t.Errorf("NGrass = %d, want 3", s.NGrass())
	}

	prey, preds := s.Energies()
	if len(prey) != 2 || len(preds) != 1 || preds[0] != 40 {
		t.Errorf("Energies = %v, %v", prey, preds)
	}

	genes := s.Genes()
	views := genes[components.SpeciesPrey][genome.ViewRange]
	if len(views) != 2 {
		t.Fatalf("prey view samples = %v", views)
	}
	if got := genes[components.SpeciesPredator][genome.ViewRange]; len(got) != 1 || got[0] != 4 {
		t.Errorf("predator view samples = %v", got)
	}
}
