package world

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/genome"
)

// Animal is a handle to one animal entity. Component data lives in the
// World's ECS storage and is looked up on every access, so a handle stays
// valid across structural changes for as long as the entity exists.
type Animal struct {
	entity ecs.Entity
	w      *World
}

// Entity returns the underlying ECS entity.
func (a Animal) Entity() ecs.Entity { return a.entity }

func (a Animal) pos() *components.Position { return a.w.posMap.Get(a.entity) }
func (a Animal) energy() *components.Energy { return a.w.energyMap.Get(a.entity) }
func (a Animal) org() *components.Organism  { return a.w.orgMap.Get(a.entity) }

// ID returns the animal's unique id.
func (a Animal) ID() uint32 { return a.org().ID }

// Species returns prey or predator.
func (a Animal) Species() components.Species { return a.org().Species }

// Genome returns the animal's genome.
func (a Animal) Genome() genome.Genome { return a.org().Genome }

// Energy returns the current energy.
func (a Animal) Energy() float64 { return a.energy().Value }

// Alive reports whether the animal is still alive.
func (a Animal) Alive() bool { return a.energy().Alive }

// Position returns the animal's tile coordinates.
func (a Animal) Position() (x, y int) {
	p := a.pos()
	return p.X, p.Y
}

// OverEnergyCap reports whether energy is strictly above floor(max energy gene).
func (a Animal) OverEnergyCap() bool {
	return a.Energy() > a.Genome().EnergyCap()
}

// canEat reports whether the animal can still gain energy from plants.
func (a Animal) canEat() bool {
	return a.Energy() < a.Genome().EnergyCap()
}

// ChooseDirection asks the world's movement policy where to go next.
func (a Animal) ChooseDirection() components.Direction {
	return a.w.policy.ChooseDirection(a, a.w.rng)
}

// Move pays the step cost and moves one tile in dir, wrapping at the grid
// edges and keeping tile membership in sync. The cost is the organism's
// consumption, stochastically rounded. Returns true if the animal starved.
func (a Animal) Move(dir components.Direction) bool {
	w := a.w
	e := a.energy()
	if !e.Alive {
		return false
	}

	cost := float64(stochasticRound(a.org().Consumption, w.rng))
	e.Value = math.Max(0, e.Value-cost)

	p := a.pos()
	oldX, oldY := p.X, p.Y
	p.X, p.Y = dir.Step(p.X, p.Y, w.width, w.height)
	if p.X != oldX || p.Y != oldY {
		w.tiles[oldX][oldY].Remove(a.entity)
		w.tiles[p.X][p.Y].Put(a.entity)
	}

	if e.Value <= 0 {
		return a.die(DeathStarved)
	}
	return false
}

// Interact resolves an encounter with other: same species may mate, a
// predator may eat a prey.
func (a Animal) Interact(other Animal) error {
	return a.w.interact(a, other)
}

// die marks the animal dead and updates the world's population counts.
// It returns false if the animal was already dead.
func (a Animal) die(cause DeathCause) bool {
	e := a.energy()
	if !e.Alive {
		return false
	}
	e.Alive = false
	a.w.recordDeath(a.Species(), cause)
	return true
}

// String implements fmt.Stringer.
func (a Animal) String() string {
	x, y := a.Position()
	return fmt.Sprintf("%s#%d@(%d,%d) e=%.1f", a.Species(), a.ID(), x, y, a.Energy())
}

// interact implements Animal.Interact. a is the acting animal: a newborn is
// placed on a's tile.
func (w *World) interact(a, b Animal) error {
	if !a.Alive() || !b.Alive() {
		return nil
	}

	sa, sb := a.Species(), b.Species()
	switch {
	case sa == sb:
		return w.mate(a, b)
	case sa == components.SpeciesPredator:
		w.hunt(a, b)
	default:
		w.hunt(b, a)
	}
	return nil
}

// mate splits a third of each parent's energy into a newborn with a
// crossover genome. Both parents must exceed the minimal reproduction energy.
func (w *World) mate(a, b Animal) error {
	minimal := w.cfg.Reproduction.MinimalEnergy
	ea, eb := a.energy(), b.energy()
	if ea.Value <= minimal || eb.Value <= minimal {
		return nil
	}

	g, err := genome.Crossover(a.Genome(), b.Genome(), w.cfg.Genome.MutationRatio, w.cfg.Derived.GeneRanges, w.rng)
	if err != nil {
		return fmt.Errorf("crossover of %d and %d: %w", a.ID(), b.ID(), err)
	}

	keepA, keepB := parentShare(ea.Value), parentShare(eb.Value)
	child := (ea.Value - keepA) + (eb.Value - keepB)
	ea.Value, eb.Value = keepA, keepB

	w.events.Matings[a.Species()]++
	x, y := a.Position()
	return w.AddChild(x, y, child, a.Species(), g)
}

// parentShare is what a parent keeps after mating: two thirds, in whole units.
func parentShare(e float64) float64 {
	return math.Floor(e/3) * 2
}

// hunt lets pred eat prey unless pred is already above its energy cap.
func (w *World) hunt(pred, prey Animal) {
	if pred.OverEnergyCap() {
		w.events.HuntsRefused++
		return
	}
	gain := math.Floor(prey.Energy() * w.cfg.Feeding.FoodEfficiencyRatio)
	if prey.die(DeathEaten) {
		pred.energy().Value += gain
	}
}
