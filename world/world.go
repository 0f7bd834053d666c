// Package world implements the grid simulation: tiles, animals and the
// per-turn update pipeline.
package world

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/genome"
)

// newborn is a queued child. Entities are only created in the placement
// phase so component pointers stay stable while a turn is in progress.
type newborn struct {
	x, y    int
	energy  float64
	species components.Species
	genome  genome.Genome
	id      uint32
}

// World is a toroidal grid of tiles plus the animal roster living on it.
type World struct {
	cfg    config.Config
	rng    *rand.Rand
	width  int
	height int

	ecs *ecs.World

	animalMapper *ecs.Map3[components.Position, components.Energy, components.Organism]
	animalFilter *ecs.Filter3[components.Position, components.Energy, components.Organism]

	posMap    *ecs.Map1[components.Position]
	energyMap *ecs.Map1[components.Energy]
	orgMap    *ecs.Map1[components.Organism]

	tiles [][]*Tile // [x][y]

	roster   []ecs.Entity // canonical animal order
	newborns []newborn
	lastID   uint32

	policy    MovementPolicy
	phaseHook func(phase string)
	counts    [components.NumSpecies]int
	turn      int
	events    TurnEvents
}

// New builds a world from cfg and places the initial population. The config
// is copied; later changes to cfg do not affect the world.
func New(cfg *config.Config, rng *rand.Rand) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ew := ecs.NewWorld()
	w := &World{
		cfg:    *cfg,
		rng:    rng,
		width:  cfg.Derived.GridWidth,
		height: cfg.Derived.GridHeight,
		ecs:    ew,
		animalMapper: ecs.NewMap3[
			components.Position,
			components.Energy,
			components.Organism,
		](ew),
		animalFilter: ecs.NewFilter3[
			components.Position,
			components.Energy,
			components.Organism,
		](ew),
		posMap:    ecs.NewMap1[components.Position](ew),
		energyMap: ecs.NewMap1[components.Energy](ew),
		orgMap:    ecs.NewMap1[components.Organism](ew),
	}

	if cfg.Genome.Simulate {
		w.policy = GenomeDriven{}
	} else {
		w.policy = RandomWalk{}
	}

	w.tiles = make([][]*Tile, w.width)
	for x := range w.tiles {
		w.tiles[x] = make([]*Tile, w.height)
		for y := range w.tiles[x] {
			w.tiles[x][y] = &Tile{X: x, Y: y, Plants: cfg.Vegetation.InitialSupply, w: w}
		}
	}

	base := genome.Midpoint(cfg.Derived.GeneRanges)
	if err := w.populate(components.SpeciesPredator, cfg.Population.Predators, base); err != nil {
		return nil, err
	}
	if err := w.populate(components.SpeciesPrey, cfg.Population.Prey, base); err != nil {
		return nil, err
	}
	return w, nil
}

// populate scatters n animals of one species, preferring empty tiles.
func (w *World) populate(s components.Species, n int, g genome.Genome) error {
	for i := 0; i < n; i++ {
		x, y := w.randomFreeTile()
		if _, err := w.AddAnimal(x, y, w.cfg.Population.BaseEnergy, s, g); err != nil {
			return err
		}
	}
	return nil
}

// randomFreeTile picks a random tile with no occupants, or any tile once the
// grid is full.
func (w *World) randomFreeTile() (int, int) {
	if len(w.roster) < w.width*w.height {
		for {
			x, y := w.rng.Intn(w.width), w.rng.Intn(w.height)
			if w.tiles[x][y].Len() == 0 {
				return x, y
			}
		}
	}
	return w.rng.Intn(w.width), w.rng.Intn(w.height)
}

// AddAnimal creates a live animal at (x, y) immediately.
func (w *World) AddAnimal(x, y int, energy float64, s components.Species, g genome.Genome) (Animal, error) {
	if err := w.checkPlacement(x, y, s); err != nil {
		return Animal{}, err
	}
	w.lastID++
	return w.spawn(newborn{x: x, y: y, energy: energy, species: s, genome: g, id: w.lastID})
}

// AddChild queues a newborn for placement at the end of the interaction
// phase. Its id is allocated now.
func (w *World) AddChild(x, y int, energy float64, s components.Species, g genome.Genome) error {
	if err := w.checkPlacement(x, y, s); err != nil {
		return err
	}
	w.lastID++
	w.newborns = append(w.newborns, newborn{x: x, y: y, energy: energy, species: s, genome: g, id: w.lastID})
	return nil
}

func (w *World) checkPlacement(x, y int, s components.Species) error {
	if err := s.Check(); err != nil {
		return err
	}
	if x < 0 || x >= w.width || y < 0 || y >= w.height {
		return fmt.Errorf("position (%d,%d) outside %dx%d grid", x, y, w.width, w.height)
	}
	return nil
}

// spawn creates the entity and registers it with the roster and its tile.
func (w *World) spawn(nb newborn) (Animal, error) {
	org, err := components.NewOrganism(nb.id, nb.species, nb.genome, w.turn)
	if err != nil {
		return Animal{}, err
	}
	pos := components.Position{X: nb.x, Y: nb.y}
	energy := components.Energy{Value: nb.energy, Alive: true}

	e := w.animalMapper.NewEntity(&pos, &energy, &org)
	w.roster = append(w.roster, e)
	w.tiles[nb.x][nb.y].Put(e)
	w.counts[nb.species]++
	return Animal{entity: e, w: w}, nil
}

// Animal returns the handle for entity e.
func (w *World) Animal(e ecs.Entity) Animal {
	return Animal{entity: e, w: w}
}

// Animals returns handles for the roster in order, including animals that
// died this turn and have not been cleaned up yet.
func (w *World) Animals() []Animal {
	out := make([]Animal, len(w.roster))
	for i, e := range w.roster {
		out[i] = Animal{entity: e, w: w}
	}
	return out
}

// Tile returns the tile at (x, y), wrapping out-of-range coordinates.
func (w *World) Tile(x, y int) *Tile {
	return w.tiles[components.Wrap(x, w.width)][components.Wrap(y, w.height)]
}

// Submap returns the (2r+1)x(2r+1) neighbourhood centred on (x, y) with
// toroidal wrap. Entry [i][j] sits at offset (i-r, j-r).
//
// On grids smaller than the window the same tile appears more than once.
func (w *World) Submap(x, y, r int) [][]*Tile {
	size := 2*r + 1
	out := make([][]*Tile, size)
	for i := range out {
		out[i] = make([]*Tile, size)
		for j := range out[i] {
			out[i][j] = w.Tile(x+i-r, y+j-r)
		}
	}
	return out
}

// GetMapForRender returns one render code per tile, indexed [x][y].
func (w *World) GetMapForRender() [][]int {
	out := make([][]int, w.width)
	for x := range out {
		out[x] = make([]int, w.height)
		for y := range out[x] {
			out[x][y] = w.tiles[x][y].RenderValue()
		}
	}
	return out
}

// Width returns the grid width.
func (w *World) Width() int { return w.width }

// Height returns the grid height.
func (w *World) Height() int { return w.height }

// Turn returns the number of completed turns.
func (w *World) Turn() int { return w.turn }

// LastTurn returns the events of the most recent turn.
func (w *World) LastTurn() TurnEvents { return w.events }

// Config returns the configuration the world was built with.
func (w *World) Config() config.Config { return w.cfg }

// SetPolicy replaces the movement policy.
func (w *World) SetPolicy(p MovementPolicy) { w.policy = p }

// Statistics returns a read-only view over the world.
func (w *World) Statistics() Statistics { return Statistics{w: w} }

// Extinct reports whether either species has died out.
func (w *World) Extinct() bool {
	return w.counts[components.SpeciesPrey] == 0 || w.counts[components.SpeciesPredator] == 0
}
