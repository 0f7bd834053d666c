package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/telemetry"
	"github.com/pthm-cable/meadow/world"
)

// bookmarkHistory is the number of stats windows bookmarks compare against.
const bookmarkHistory = 10

// Reset rebuilds the world from cfg and starts a new run. The RNG restarts
// from the game seed, so resetting with an unchanged config replays the
// same run.
func (g *Game) Reset(cfg *config.Config) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reset(cfg)
}

func (g *Game) reset(cfg *config.Config) error {
	c := *cfg
	if err := c.Finalize(); err != nil {
		return err
	}

	w, err := world.New(&c, rand.New(rand.NewSource(g.seed)))
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}
	w.SetPhaseHook(g.perf.StartPhase)

	runID := telemetry.NewRunID()
	var dir string
	if g.opts.OutputDir != "" {
		dir = filepath.Join(g.opts.OutputDir, runID)
	}
	out, err := telemetry.NewOutputManager(dir, runID)
	if err != nil {
		return err
	}
	if err := out.WriteConfig(&c); err != nil {
		out.Close()
		return err
	}

	// The previous run is complete; its files are no longer written.
	if err := g.output.Close(); err != nil {
		g.log.Error("failed to close output", "error", err)
	}

	g.cfg = &c
	g.world = w
	g.runID = runID
	g.log = slog.Default().With("run_id", runID)
	g.collector = telemetry.NewCollector(runID, c.Telemetry.StatsWindow)
	g.bookmarks = telemetry.NewBookmarkDetector(bookmarkHistory)
	g.history = telemetry.NewHistory(c.Telemetry.HistoryLength)
	g.output = out
	g.extinct = [components.NumSpecies]bool{}

	g.recordPopulation()
	g.logWorldState("run started", slog.Int64("seed", g.seed), slog.String("output_dir", out.Dir()))
	return nil
}
