package game

import "github.com/pthm-cable/meadow/telemetry"

// Options holds configuration for game initialization.
type Options struct {
	Seed             int64  // RNG seed (0 = config seed, then time-based)
	LogStats         bool   // log window stats via slog
	OutputDir        string // parent directory for CSV output (empty = disabled)
	StopOnExtinction bool   // Step fails with ErrExtinct once a species dies out

	// StatsCallback, when set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}
