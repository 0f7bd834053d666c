package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/meadow/world"
)

// PhaseTelemetry times the driver's own bookkeeping after the pipeline.
const PhaseTelemetry = "telemetry"

// Phases lists every timed phase of a turn in execution order.
var Phases = [...]string{
	world.PhaseClean, world.PhaseMove, world.PhaseInteract,
	world.PhasePlace, world.PhaseFeed, PhaseTelemetry,
}

const numPhases = len(Phases)

func phaseIndex(name string) int {
	for i, p := range Phases {
		if p == name {
			return i
		}
	}
	return -1
}

// turnTiming is the wall time of one turn split by phase.
type turnTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times turns phase by phase over a sliding window of the
// most recent turns. Time spent in a phase not listed in Phases is only
// counted towards the turn total.
type PerfCollector struct {
	window []turnTiming
	next   int
	filled bool

	cur        turnTiming
	turnStart  time.Time
	phaseStart time.Time
	phase      int

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector returns a collector averaging over the last windowTurns
// turns.
func NewPerfCollector(windowTurns int) *PerfCollector {
	return &PerfCollector{
		window: make([]turnTiming, max(windowTurns, 1)),
		phase:  -1,
	}
}

// StartTurn begins timing a turn.
func (p *PerfCollector) StartTurn() {
	p.turnStart = time.Now()
	p.cur = turnTiming{}
	p.phase = -1
}

// StartPhase closes the running phase and opens the named one. It has the
// signature of a world phase hook.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(name)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTurn closes the running phase and stores the turn in the window.
func (p *PerfCollector) EndTurn() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.cur.total = now.Sub(p.turnStart)

	p.window[p.next] = p.cur
	p.next = (p.next + 1) % len(p.window)
	if p.next == 0 {
		p.filled = true
	}
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the turns in the window.
type PerfStats struct {
	Turns int // turns in the window

	AvgTurn, MinTurn, MaxTurn time.Duration
	TurnsPerSecond            float64

	// PhaseShare is each phase's percentage of the average turn, indexed
	// like Phases.
	PhaseShare [numPhases]float64

	// Frame is the last frame time in graphical mode; zero when headless.
	Frame time.Duration
	FPS   float64
}

// Share returns the percentage of turn time spent in the named phase.
func (s PerfStats) Share(phase string) float64 {
	if i := phaseIndex(phase); i >= 0 {
		return s.PhaseShare[i]
	}
	return 0
}

// Stats summarizes the current window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.frame > 0 {
		s.Frame = p.frame
		s.FPS = float64(time.Second) / float64(p.frame)
	}

	n := p.next
	if p.filled {
		n = len(p.window)
	}
	if n == 0 {
		return s
	}
	s.Turns = n

	totals := make([]float64, n)
	var phaseSums [numPhases]float64
	for i, tt := range p.window[:n] {
		totals[i] = float64(tt.total)
		for j, d := range tt.phases {
			phaseSums[j] += float64(d)
		}
	}

	mean := stat.Mean(totals, nil)
	s.AvgTurn = time.Duration(mean)
	s.MinTurn = time.Duration(floats.Min(totals))
	s.MaxTurn = time.Duration(floats.Max(totals))
	if mean > 0 {
		s.TurnsPerSecond = float64(time.Second) / mean
		sum := floats.Sum(totals)
		for j, ps := range phaseSums {
			s.PhaseShare[j] = ps / sum * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_turn_us", s.AvgTurn.Microseconds()),
		slog.Int64("max_turn_us", s.MaxTurn.Microseconds()),
		slog.Float64("turns_per_sec", s.TurnsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for i, name := range Phases {
		attrs = append(attrs, slog.Float64(name+"_pct", s.PhaseShare[i]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	RunID        string  `csv:"run_id"`
	WindowEnd    int     `csv:"window_end"`
	AvgTurnUS    int64   `csv:"avg_turn_us"`
	MinTurnUS    int64   `csv:"min_turn_us"`
	MaxTurnUS    int64   `csv:"max_turn_us"`
	TurnsPerSec  float64 `csv:"turns_per_sec"`
	FPS          float64 `csv:"fps"`
	CleanPct     float64 `csv:"clean_pct"`
	MovePct      float64 `csv:"move_pct"`
	InteractPct  float64 `csv:"interact_pct"`
	PlacePct     float64 `csv:"place_pct"`
	FeedPct      float64 `csv:"feed_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(runID string, windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		RunID:        runID,
		WindowEnd:    windowEnd,
		AvgTurnUS:    s.AvgTurn.Microseconds(),
		MinTurnUS:    s.MinTurn.Microseconds(),
		MaxTurnUS:    s.MaxTurn.Microseconds(),
		TurnsPerSec:  s.TurnsPerSecond,
		FPS:          s.FPS,
		CleanPct:     s.Share(world.PhaseClean),
		MovePct:      s.Share(world.PhaseMove),
		InteractPct:  s.Share(world.PhaseInteract),
		PlacePct:     s.Share(world.PhasePlace),
		FeedPct:      s.Share(world.PhaseFeed),
		TelemetryPct: s.Share(PhaseTelemetry),
	}
}
