package game

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/genome"
	"github.com/pthm-cable/meadow/telemetry"
	"github.com/pthm-cable/meadow/world"
)

// ErrExtinct is returned by Step when StopOnExtinction is set and a species
// has died out.
var ErrExtinct = errors.New("game: species extinct")

// perfWindow is the number of turns averaged by the perf collector.
const perfWindow = 60

// Game owns a World together with its telemetry. Step, Snapshot and Reset
// are serialized, so a Runner goroutine and a render loop can share a Game.
type Game struct {
	mu sync.Mutex

	cfg   *config.Config
	opts  Options
	seed  int64
	runID string
	log   *slog.Logger

	world *world.World

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	history   *telemetry.History
	output    *telemetry.OutputManager

	extinct [components.NumSpecies]bool
}

// Snapshot is a consistent copy of the state a renderer or HUD needs.
type Snapshot struct {
	RunID string
	Turn  int

	Width, Height int
	Map           [][]int // render codes, see world.GetMapForRender

	Prey, Predators, Grass int
	LastTurn               world.TurnEvents
	Extinct                bool

	History []telemetry.PopulationSample
	Energy  [components.NumSpecies]telemetry.Histogram
	Genes   [components.NumSpecies][genome.NumGenes]telemetry.Histogram
	Perf    telemetry.PerfStats
}

// NewGame builds a game from cfg. The config is copied.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.World.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		opts: opts,
		seed: seed,
		perf: telemetry.NewPerfCollector(perfWindow),
	}
	if err := g.reset(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Step advances the simulation by one turn and records telemetry.
func (g *Game) Step() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.step()
}

// StepN advances up to n turns, stopping at the first error.
func (g *Game) StepN(n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := 0; i < n; i++ {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) step() error {
	if g.opts.StopOnExtinction && g.world.Extinct() {
		return ErrExtinct
	}

	g.perf.StartTurn()
	if err := g.world.NextTurn(); err != nil {
		return fmt.Errorf("turn %d: %w", g.world.Turn(), err)
	}
	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.recordTurn()
	g.perf.EndTurn()
	return nil
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.world.Statistics()
	bins := g.cfg.Telemetry.HistogramBins
	return Snapshot{
		RunID:     g.runID,
		Turn:      g.world.Turn(),
		Width:     g.world.Width(),
		Height:    g.world.Height(),
		Map:       g.world.GetMapForRender(),
		Prey:      st.NPrey(),
		Predators: st.NPredators(),
		Grass:     st.NGrass(),
		LastTurn:  g.world.LastTurn(),
		Extinct:   g.world.Extinct(),
		History:   g.history.Samples(),
		Energy:    telemetry.EnergyHistograms(st, bins),
		Genes:     telemetry.GeneHistograms(st.Genes(), g.cfg.Derived.GeneRanges, bins),
		Perf:      g.perf.Stats(),
	}
}

// RecordFrame feeds render timing into the perf stats.
func (g *Game) RecordFrame() {
	g.mu.Lock()
	g.perf.RecordFrame()
	g.mu.Unlock()
}

// Turn returns the number of completed turns.
func (g *Game) Turn() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world.Turn()
}

// Population returns the living prey and predator counts.
func (g *Game) Population() (prey, predators int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	st := g.world.Statistics()
	return st.NPrey(), st.NPredators()
}

// RunID returns the identifier of the current run.
func (g *Game) RunID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.runID
}

// Seed returns the RNG seed every reset starts from.
func (g *Game) Seed() int64 { return g.seed }

// Config returns a copy of the active configuration.
func (g *Game) Config() config.Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return *g.cfg
}

// Close flushes and closes the CSV output.
func (g *Game) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.logWorldState("run finished")
	return g.output.Close()
}
