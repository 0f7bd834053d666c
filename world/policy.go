package world

import (
	"math/rand"

	"github.com/pthm-cable/meadow/components"
)

// MovementPolicy decides which way an animal moves this turn.
type MovementPolicy interface {
	ChooseDirection(a Animal, rng *rand.Rand) components.Direction
}

// RandomWalk picks one of the five directions uniformly.
type RandomWalk struct{}

// ChooseDirection implements MovementPolicy.
func (RandomWalk) ChooseDirection(_ Animal, rng *rand.Rand) components.Direction {
	return components.Directions[rng.Intn(components.NumDirections)]
}

// GenomeDriven scores the tiles within the animal's view range and moves
// towards attractive ones and away from threats.
type GenomeDriven struct{}

// ChooseDirection implements MovementPolicy.
func (GenomeDriven) ChooseDirection(a Animal, rng *rand.Rand) components.Direction {
	g := a.Genome()
	r := stochasticRound(g.ViewRange(), rng)
	x, y := a.Position()

	area := a.w.Submap(x, y, r)
	sightings := make([]sighting, 0, len(area)*len(area))
	for i, col := range area {
		for j, t := range col {
			prey, predators := t.countsExcluding(a.entity)
			sightings = append(sightings, sighting{
				dx:        i - r,
				dy:        j - r,
				prey:      prey,
				predators: predators,
				plants:    t.NPlants(),
			})
		}
	}

	fear, mating := g.FearRatio(), g.MatingRatio()
	score := func(s sighting) float64 { return predatorScore(s, mating) }
	if a.Species() == components.SpeciesPrey {
		score = func(s sighting) float64 { return preyScore(s, fear, mating) }
	}

	w := directionWeights(sightings, score)
	cleanWeights(&w)
	normalizeWeights(&w)
	return sampleDirection(w, rng)
}

// Stay keeps every animal in place. Useful for scripted scenarios.
type Stay struct{}

// ChooseDirection implements MovementPolicy.
func (Stay) ChooseDirection(Animal, *rand.Rand) components.Direction {
	return components.DirStay
}
