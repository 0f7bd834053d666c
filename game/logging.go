package game

import "log/slog"

// logWindow logs a flushed stats window and the perf breakdown behind it.
func (g *Game) logWindow(stats, perf slog.LogValuer) {
	g.log.Info("stats", "window", stats)
	g.log.Info("perf", "window", perf)
}

// logWorldState logs the current population with a message and extra attrs.
func (g *Game) logWorldState(msg string, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.Any("world", g.world.Statistics()))
	for _, a := range attrs {
		args = append(args, a)
	}
	g.log.Info(msg, args...)
}
