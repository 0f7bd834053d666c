package world

import (
	"log/slog"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/genome"
)

// GeneSamples holds gene values of living animals, indexed by species then gene.
type GeneSamples [components.NumSpecies][genome.NumGenes][]float64

// Statistics is a read-only view of population and vegetation.
type Statistics struct {
	w *World
}

// NPrey returns the number of living prey.
func (s Statistics) NPrey() int { return s.w.counts[components.SpeciesPrey] }

// NPredators returns the number of living predators.
func (s Statistics) NPredators() int { return s.w.counts[components.SpeciesPredator] }

// Count returns the number of living animals of species sp.
func (s Statistics) Count(sp components.Species) int { return s.w.counts[sp] }

// NGrass returns the whole vegetation units across the grid.
func (s Statistics) NGrass() int {
	n := 0
	for _, col := range s.w.tiles {
		for _, t := range col {
			n += t.NPlants()
		}
	}
	return n
}

// Energies returns the energy of every living animal split by species.
func (s Statistics) Energies() (prey, predators []float64) {
	query := s.w.animalFilter.Query()
	for query.Next() {
		_, energy, org := query.Get()
		if !energy.Alive {
			continue
		}
		if org.Species == components.SpeciesPredator {
			predators = append(predators, energy.Value)
		} else {
			prey = append(prey, energy.Value)
		}
	}
	return prey, predators
}

// Genes returns every living animal's gene values split by species.
func (s Statistics) Genes() GeneSamples {
	var out GeneSamples
	query := s.w.animalFilter.Query()
	for query.Next() {
		_, energy, org := query.Get()
		if !energy.Alive {
			continue
		}
		for i, v := range org.Genome.Values() {
			out[org.Species][i] = append(out[org.Species][i], v)
		}
	}
	return out
}

// LogValue implements slog.LogValuer.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("turn", s.w.turn),
		slog.Int("prey", s.NPrey()),
		slog.Int("predators", s.NPredators()),
		slog.Int("grass", s.NGrass()),
	)
}
