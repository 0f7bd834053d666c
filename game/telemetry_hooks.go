package game

import (
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/telemetry"
)

// recordTurn feeds the finished turn into every telemetry sink.
func (g *Game) recordTurn() {
	g.collector.RecordTurn(g.world.LastTurn())
	g.recordPopulation()
	g.checkExtinction()
	g.flushTelemetry()
}

// recordPopulation samples the population into the history and population.csv.
func (g *Game) recordPopulation() {
	sample := telemetry.SampleOf(g.world)
	g.history.Add(sample)
	if err := g.output.WritePopulation(sample); err != nil {
		g.log.Error("failed to write population", "error", err)
	}
}

// checkExtinction logs each species the first time its count reaches zero.
func (g *Game) checkExtinction() {
	st := g.world.Statistics()
	for s := components.Species(0); s < components.NumSpecies; s++ {
		if g.extinct[s] || st.Count(s) > 0 {
			continue
		}
		g.extinct[s] = true
		g.log.Info("species extinct", "species", s.String(), "turn", g.world.Turn())
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	turn := g.world.Turn()
	if !g.collector.ShouldFlush(turn) {
		return
	}

	stats := g.collector.Flush(turn, g.world.Statistics())
	perfStats := g.perf.Stats()

	if g.opts.StatsCallback != nil {
		g.opts.StatsCallback(stats)
	}

	if g.opts.LogStats {
		g.logWindow(stats, perfStats)
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		g.log.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTurn); err != nil {
		g.log.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.opts.LogStats {
			g.log.Info("bookmark", "type", string(bm.Type), "turn", bm.Turn, "description", bm.Description)
		}
		if err := g.output.WriteBookmark(bm); err != nil {
			g.log.Error("failed to write bookmark", "error", err)
		}
	}
}
