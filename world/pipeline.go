package world

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// Pipeline phase names, as passed to the phase hook.
const (
	PhaseClean    = "clean"
	PhaseMove     = "move"
	PhaseInteract = "interact"
	PhasePlace    = "place"
	PhaseFeed     = "feed"
)

// SetPhaseHook registers fn to be called as each pipeline phase starts.
// Pass nil to remove it.
func (w *World) SetPhaseHook(fn func(phase string)) {
	w.phaseHook = fn
}

func (w *World) startPhase(phase string) {
	if w.phaseHook != nil {
		w.phaseHook(phase)
	}
}

// NextTurn advances the simulation by one turn. The phases run strictly in
// order, each over the whole world:
//
//  1. remove animals that died last turn
//  2. move every living animal
//  3. pair up animals sharing a tile and let them interact
//  4. place newborns
//  5. let prey eat vegetation, then regrow every tile
//
// Everything that can fail is checked before phase 1 starts, so an error
// leaves the world untouched.
func (w *World) NextTurn() error {
	if err := w.cfg.Derived.GeneRanges.Validate(); err != nil {
		return fmt.Errorf("turn %d: %w", w.turn+1, err)
	}
	w.events = TurnEvents{Turn: w.turn + 1}

	w.startPhase(PhaseClean)
	w.cleanDead()
	w.startPhase(PhaseMove)
	w.moveAnimals()
	w.startPhase(PhaseInteract)
	if err := w.processInteractions(); err != nil {
		// Unreachable with validated ranges.
		return fmt.Errorf("turn %d: %w", w.turn+1, err)
	}
	w.startPhase(PhasePlace)
	if err := w.placeNewborns(); err != nil {
		return fmt.Errorf("turn %d: %w", w.turn+1, err)
	}
	w.startPhase(PhaseFeed)
	w.feedAndGrow()

	w.turn++
	return nil
}

// cleanDead drops dead animals from their tiles, the roster and the ECS.
func (w *World) cleanDead() {
	alive := w.roster[:0]
	var dead []ecs.Entity
	for _, e := range w.roster {
		if w.energyMap.Get(e).Alive {
			alive = append(alive, e)
		} else {
			dead = append(dead, e)
		}
	}
	w.roster = alive

	for _, e := range dead {
		p := w.posMap.Get(e)
		w.tiles[p.X][p.Y].Remove(e)
		w.ecs.RemoveEntity(e)
	}
}

// moveAnimals moves a snapshot of the roster. Children queued later this
// turn are not in the roster yet and so do not move.
func (w *World) moveAnimals() {
	for _, e := range w.roster {
		a := Animal{entity: e, w: w}
		if !a.Alive() {
			continue
		}
		a.Move(a.ChooseDirection())
	}
}

// tilesInRosterOrder returns each tile holding a roster animal once, in the
// order its first occupant appears in the roster.
func (w *World) tilesInRosterOrder() []*Tile {
	seen := make(map[*Tile]struct{}, len(w.roster))
	var out []*Tile
	for _, e := range w.roster {
		p := w.posMap.Get(e)
		t := w.tiles[p.X][p.Y]
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// processInteractions pairs the living occupants of each tile in arrival
// order: (0,1), (2,3), ... An odd animal out sits this turn out. Animals
// that starved while moving are skipped before pairing, so they never take
// a living animal's slot.
func (w *World) processInteractions() error {
	for _, t := range w.tilesInRosterOrder() {
		occupants := t.Animals()
		for i := 0; i+1 < len(occupants); i += 2 {
			if err := occupants[i].Interact(occupants[i+1]); err != nil {
				return err
			}
		}
	}
	return nil
}

// placeNewborns moves queued children into the roster and onto their tiles.
func (w *World) placeNewborns() error {
	for _, nb := range w.newborns {
		if _, err := w.spawn(nb); err != nil {
			return err
		}
		w.events.Births[nb.species]++
	}
	w.newborns = w.newborns[:0]
	return nil
}

// feedAndGrow runs the feeding phase tile by tile, then regrows vegetation
// on every tile.
func (w *World) feedAndGrow() {
	for _, t := range w.tilesInRosterOrder() {
		w.feedTile(t)
	}

	regen := w.cfg.Vegetation.RegenerationRatio
	limit := w.cfg.Vegetation.MaxSupply
	for _, col := range w.tiles {
		for _, t := range col {
			t.grow(regen, limit)
		}
	}
}

// feedTile shares the tile's whole plant units among prey below their
// energy cap. With at least as many eaters as units, the first eaters get
// one unit each. Otherwise every eater gets an equal share and the first
// also gets the remainder. Gains are capped at each eater's own cap.
func (w *World) feedTile(t *Tile) {
	supply := t.NPlants()
	if supply <= 1 {
		return
	}

	var eaters []Animal
	for _, a := range t.Animals() {
		if a.Species() == components.SpeciesPrey && a.canEat() {
			eaters = append(eaters, a)
		}
	}
	if len(eaters) == 0 {
		return
	}

	portions := make([]int, len(eaters))
	if len(eaters) >= supply {
		for i := 0; i < supply; i++ {
			portions[i] = 1
		}
	} else {
		share := supply / len(eaters)
		for i := range portions {
			portions[i] = share
		}
		portions[0] += supply % len(eaters)
	}

	var given float64
	units := 0
	for i, a := range eaters {
		e := a.energy()
		before := e.Value
		e.Value = math.Min(before+float64(portions[i]), a.Genome().EnergyCap())
		given += e.Value - before
		units += portions[i]
	}

	if given > 0 {
		t.Plants = 0
		w.events.PlantsEaten += units
	}
}
