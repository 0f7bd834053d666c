package world

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/meadow/components"
)

// stochasticRound floors v and rounds up with probability equal to the
// fractional part, so the expected value equals v.
func stochasticRound(v float64, rng *rand.Rand) int {
	whole := math.Floor(v)
	n := int(whole)
	if frac := v - whole; frac > 0 && rng.Float64() < frac {
		n++
	}
	return n
}

// sighting is what an animal sees on one tile of its neighbourhood, at
// offset (dx, dy) from itself. Counts exclude the observer.
type sighting struct {
	dx, dy    int
	prey      int
	predators int
	plants    int
}

// preyScore rates a tile for a prey animal: predators repel, other prey and
// plants attract.
func preyScore(s sighting, fear, mating float64) float64 {
	return -float64(s.predators)*fear + float64(s.prey)/mating + float64(s.plants)*mating
}

// predatorScore rates a tile for a predator.
func predatorScore(s sighting, mating float64) float64 {
	return float64(s.predators)/mating + float64(s.prey)*mating
}

// directionWeights spreads each tile's score over the cardinal directions
// pointing at it. A tile contributes to its x direction in proportion to
// |dx| and to its y direction in proportion to |dy|, scaled by the inverse
// squared distance. The observer's own tile feeds DirStay. Tiles with no
// other animals are ignored.
func directionWeights(sightings []sighting, score func(sighting) float64) [components.NumDirections]float64 {
	var w [components.NumDirections]float64
	for _, s := range sightings {
		if s.prey+s.predators == 0 {
			continue
		}
		v := score(s)
		if s.dx == 0 && s.dy == 0 {
			w[components.DirStay] += v
			continue
		}

		ax, ay := math.Abs(float64(s.dx)), math.Abs(float64(s.dy))
		dist2 := float64(s.dx*s.dx + s.dy*s.dy)
		if s.dx != 0 {
			w[horizontal(s.dx)] += v * ax / (ax + ay) / dist2
		}
		if s.dy != 0 {
			w[vertical(s.dy)] += v * ay / (ax + ay) / dist2
		}
	}
	return w
}

func horizontal(dx int) components.Direction {
	if dx > 0 {
		return components.DirRight
	}
	return components.DirLeft
}

func vertical(dy int) components.Direction {
	if dy > 0 {
		return components.DirDown
	}
	return components.DirUp
}

// cleanWeights removes negative weights. A negative cardinal weight is
// moved onto the opposite direction, cardinals handled in Directions order.
// A negative stay weight is spread evenly over the four cardinals as an
// extra pull away from the current tile.
func cleanWeights(w *[components.NumDirections]float64) {
	for _, d := range components.Directions[:components.DirStay] {
		if w[d] < 0 {
			w[d.Opposite()] -= w[d]
			w[d] = 0
		}
	}
	if w[components.DirStay] < 0 {
		share := -w[components.DirStay] / 4
		for _, d := range components.Directions[:components.DirStay] {
			w[d] += share
		}
		w[components.DirStay] = 0
	}
}

// normalizeWeights scales w to sum to 1. A vector with nothing positive to
// scale becomes uniform.
func normalizeWeights(w *[components.NumDirections]float64) {
	sum := floats.Sum(w[:])
	if sum <= 0 {
		for i := range w {
			w[i] = 1 / float64(components.NumDirections)
		}
		return
	}
	floats.Scale(1/sum, w[:])
}

// sampleDirection draws from a normalised weight vector.
func sampleDirection(w [components.NumDirections]float64, rng *rand.Rand) components.Direction {
	r := rng.Float64()
	var acc float64
	for i, p := range w {
		acc += p
		if r < acc {
			return components.Directions[i]
		}
	}
	// Rounding can leave acc a hair under 1.
	for i := len(w) - 1; i >= 0; i-- {
		if w[i] > 0 {
			return components.Directions[i]
		}
	}
	return components.DirStay
}
