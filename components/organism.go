package components

import "github.com/pthm-cable/meadow/genome"

// Energy tracks an animal's energy and life state.
// Value may be fractional between turns; the animal is dead once it reaches 0.
type Energy struct {
	Value float64
	Alive bool
}

// Organism bundles identity, species and heritable traits.
type Organism struct {
	ID      uint32
	Species Species
	Genome  genome.Genome
	Born    int // turn of birth

	// Consumption is the per-step energy cost, derived once from Genome.
	Consumption float64
}

// NewOrganism builds an Organism, deriving its energy consumption.
func NewOrganism(id uint32, species Species, g genome.Genome, born int) (Organism, error) {
	if err := species.Check(); err != nil {
		return Organism{}, err
	}
	return Organism{
		ID:          id,
		Species:     species,
		Genome:      g,
		Born:        born,
		Consumption: g.EnergyConsumption(),
	}, nil
}
