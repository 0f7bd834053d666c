package world

import "github.com/pthm-cable/meadow/components"

// DeathCause records why an animal died.
type DeathCause uint8

const (
	DeathStarved DeathCause = iota
	DeathEaten
)

// TurnEvents counts what happened during the most recent turn.
type TurnEvents struct {
	Turn int

	Births  [components.NumSpecies]int
	Matings [components.NumSpecies]int
	Starved [components.NumSpecies]int

	Eaten        int // prey killed by predators
	HuntsRefused int // predator-prey encounters skipped because the predator was full
	PlantsEaten  int // vegetation units converted to prey energy
}

// Deaths returns all deaths of species s this turn.
func (e TurnEvents) Deaths(s components.Species) int {
	n := e.Starved[s]
	if s == components.SpeciesPrey {
		n += e.Eaten
	}
	return n
}

// recordDeath updates live counts and turn events.
func (w *World) recordDeath(s components.Species, cause DeathCause) {
	w.counts[s]--
	switch cause {
	case DeathStarved:
		w.events.Starved[s]++
	case DeathEaten:
		w.events.Eaten++
	}
}
