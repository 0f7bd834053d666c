package game

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner advances a Game on a timer in its own goroutine, the way the
// graphical mode plays a simulation.
type Runner struct {
	game *Game

	mu       sync.Mutex
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	err      error

	// wake interrupts the loop so a new interval applies immediately.
	wake chan struct{}
}

// NewRunner creates a stopped runner stepping g every interval.
func NewRunner(g *Game, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Runner{
		game:     g,
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Start launches the turn loop. It returns false if the runner is already
// running. The loop ends when ctx is cancelled, Stop is called, or a step
// fails.
func (r *Runner) Start(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.err = nil
	go r.loop(ctx, done)
	return true
}

// Stop halts the loop and waits for the in-flight turn to finish.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the loop exits and returns the step error that ended
// it, if any.
func (r *Runner) Wait() error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
	return r.Err()
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done != nil
}

// Err returns the error that stopped the last loop.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Interval returns the time between turns.
func (r *Runner) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// SetInterval changes the time between turns; a running loop picks it up
// without waiting for the current tick.
func (r *Runner) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	r.interval = d
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	var err error
	defer func() {
		r.mu.Lock()
		r.err = err
		r.cancel()
		r.cancel = nil
		r.done = nil
		r.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(r.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.wake:
			ticker.Reset(r.Interval())
		case <-ticker.C:
			if err = r.game.Step(); err != nil {
				slog.Warn("runner stopped", "run_id", r.game.RunID(), "error", err)
				return
			}
		}
	}
}
