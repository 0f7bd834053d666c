package telemetry

import (
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/genome"
	"github.com/pthm-cable/meadow/world"
)

// Collector accumulates turn events within windows and produces WindowStats.
type Collector struct {
	runID       string
	windowTurns int

	// Current window tracking
	windowStartTurn int

	// Event counters for current window
	births       [components.NumSpecies]int
	deaths       [components.NumSpecies]int
	matings      [components.NumSpecies]int
	preyStarved  int
	kills        int
	huntsRefused int
	plantsEaten  int
}

// NewCollector creates a stats collector flushing every windowTurns turns.
func NewCollector(runID string, windowTurns int) *Collector {
	if windowTurns < 1 {
		windowTurns = 1
	}
	return &Collector{
		runID:       runID,
		windowTurns: windowTurns,
	}
}

// RecordTurn adds one turn's events to the current window.
func (c *Collector) RecordTurn(ev world.TurnEvents) {
	for s := components.Species(0); s < components.NumSpecies; s++ {
		c.births[s] += ev.Births[s]
		c.deaths[s] += ev.Deaths(s)
		c.matings[s] += ev.Matings[s]
	}
	c.preyStarved += ev.Starved[components.SpeciesPrey]
	c.kills += ev.Eaten
	c.huntsRefused += ev.HuntsRefused
	c.plantsEaten += ev.PlantsEaten
}

// ShouldFlush returns true if enough turns have passed to flush the window.
func (c *Collector) ShouldFlush(turn int) bool {
	return turn-c.windowStartTurn >= c.windowTurns
}

// Flush produces a WindowStats from the counters and a read of the world,
// then resets counters for the next window.
func (c *Collector) Flush(turn int, st world.Statistics) WindowStats {
	var killRate float64
	if encounters := c.kills + c.huntsRefused; encounters > 0 {
		killRate = float64(c.kills) / float64(encounters)
	}

	preyE, predE := st.Energies()
	preyMean, preyP10, preyP50, preyP90 := ComputeEnergyStats(preyE)
	predMean, predP10, predP50, predP90 := ComputeEnergyStats(predE)

	genes := st.Genes()
	prey, pred := components.SpeciesPrey, components.SpeciesPredator

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTurn: c.windowStartTurn,
		WindowEndTurn:   turn,

		PreyCount: st.NPrey(),
		PredCount: st.NPredators(),
		Grass:     st.NGrass(),

		PreyBirths:  c.births[prey],
		PredBirths:  c.births[pred],
		PreyDeaths:  c.deaths[prey],
		PredDeaths:  c.deaths[pred],
		PreyStarved: c.preyStarved,
		PreyMatings: c.matings[prey],
		PredMatings: c.matings[pred],
		PlantsEaten: c.plantsEaten,

		Kills:        c.kills,
		HuntsRefused: c.huntsRefused,
		KillRate:     killRate,

		PreyEnergyMean: preyMean,
		PreyEnergyP10:  preyP10,
		PreyEnergyP50:  preyP50,
		PreyEnergyP90:  preyP90,

		PredEnergyMean: predMean,
		PredEnergyP10:  predP10,
		PredEnergyP50:  predP50,
		PredEnergyP90:  predP90,

		PreyViewMean:        Mean(genes[prey][genome.ViewRange]),
		PredViewMean:        Mean(genes[pred][genome.ViewRange]),
		PreyConsumptionMean: Mean(genes[prey][genome.EnergyConsumptionRatio]),
		PredConsumptionMean: Mean(genes[pred][genome.EnergyConsumptionRatio]),
		PreyMaxEnergyMean:   Mean(genes[prey][genome.MaxEnergy]),
		PredMaxEnergyMean:   Mean(genes[pred][genome.MaxEnergy]),
		PreyFearMean:        Mean(genes[prey][genome.FearOfPredator]),
		PredFearMean:        Mean(genes[pred][genome.FearOfPredator]),
		PreyMatingMean:      Mean(genes[prey][genome.EatingOverMating]),
		PredMatingMean:      Mean(genes[pred][genome.EatingOverMating]),
	}

	// Reset for next window
	c.windowStartTurn = turn
	c.births = [components.NumSpecies]int{}
	c.deaths = [components.NumSpecies]int{}
	c.matings = [components.NumSpecies]int{}
	c.preyStarved = 0
	c.kills = 0
	c.huntsRefused = 0
	c.plantsEaten = 0

	return stats
}

// Reset clears all counters and restarts windows at turn.
func (c *Collector) Reset(turn int) {
	*c = Collector{runID: c.runID, windowTurns: c.windowTurns, windowStartTurn: turn}
}

// WindowTurns returns the number of turns per window.
func (c *Collector) WindowTurns() int {
	return c.windowTurns
}
