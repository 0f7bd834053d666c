package world

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// Render codes: species use their own numeric value, an empty tile uses
// VegetationCodeOffset + floor(plants) so one colormap covers both.
const VegetationCodeOffset = int(components.NumSpecies)

// Tile is one grid cell. It holds non-owning handles to the animals standing
// on it, in arrival order, plus a real-valued plant supply.
//
// Arrival order matters: interaction pairing and feeding both walk the
// occupants in this order.
type Tile struct {
	X, Y   int
	Plants float64

	animals []ecs.Entity
	w       *World
}

// Put appends an animal to the tile.
func (t *Tile) Put(e ecs.Entity) {
	t.animals = append(t.animals, e)
}

// Remove drops an animal from the tile. Removing an absent animal is a no-op.
func (t *Tile) Remove(e ecs.Entity) bool {
	for i, o := range t.animals {
		if o == e {
			t.animals = append(t.animals[:i], t.animals[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether e is on the tile.
func (t *Tile) Contains(e ecs.Entity) bool {
	for _, o := range t.animals {
		if o == e {
			return true
		}
	}
	return false
}

// Len returns the number of occupants, dead or alive.
func (t *Tile) Len() int {
	return len(t.animals)
}

// Animals returns the living occupants in arrival order.
func (t *Tile) Animals() []Animal {
	out := make([]Animal, 0, len(t.animals))
	for _, e := range t.animals {
		a := t.w.Animal(e)
		if a.Alive() {
			out = append(out, a)
		}
	}
	return out
}

// Counts returns living prey and predator counts.
func (t *Tile) Counts() (prey, predators int) {
	return t.countsExcluding(ecs.Entity{})
}

// countsExcluding counts living occupants other than self.
func (t *Tile) countsExcluding(self ecs.Entity) (prey, predators int) {
	for _, e := range t.animals {
		if e == self {
			continue
		}
		if !t.w.energyMap.Get(e).Alive {
			continue
		}
		if t.w.orgMap.Get(e).Species == components.SpeciesPredator {
			predators++
		} else {
			prey++
		}
	}
	return prey, predators
}

// IsEmpty reports whether no living animal is on the tile.
func (t *Tile) IsEmpty() bool {
	prey, predators := t.Counts()
	return prey+predators == 0
}

// NPlants returns the whole units of vegetation available.
func (t *Tile) NPlants() int {
	return int(math.Floor(t.Plants))
}

// RenderValue returns the most common living species on the tile, or a
// vegetation bucket code when nobody is there. Ties go to the species that
// arrived first.
func (t *Tile) RenderValue() int {
	var counts [components.NumSpecies]int
	first := components.Species(components.NumSpecies)
	for _, a := range t.Animals() {
		s := a.Species()
		counts[s]++
		if first == components.NumSpecies {
			first = s
		}
	}
	if first == components.NumSpecies {
		return VegetationCodeOffset + t.NPlants()
	}

	best := first
	for s := components.Species(0); s < components.NumSpecies; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return int(best)
}

// grow adds ratio units of vegetation, capped at limit.
func (t *Tile) grow(ratio, limit float64) {
	t.Plants = math.Min(t.Plants+ratio, limit)
}
