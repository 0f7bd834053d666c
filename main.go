package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/camera"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/renderer"
	"github.com/pthm-cable/meadow/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	maxTurns := flag.Int("max-turns", 0, "Stop after N turns (0 = unlimited)")
	stopOnExtinction := flag.Bool("stop-on-extinction", false, "Stop once either species dies out")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Turns per headless update call (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *stepsPerUpdate > 0 {
		cfg.Run.StepsPerUpdate = *stepsPerUpdate
	}

	g, err := game.NewGame(cfg, game.Options{
		Seed:             *seed,
		LogStats:         *logStats,
		OutputDir:        *outputDir,
		StopOnExtinction: *stopOnExtinction,
	})
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *headless {
		err = runHeadless(ctx, g, cfg, *maxTurns)
	} else {
		err = runGraphical(ctx, g, cfg, *maxTurns)
	}
	if cerr := g.Close(); cerr != nil {
		slog.Error("failed to close output", "error", cerr)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the game as fast as possible until interrupted, the
// turn limit is hit, or extinction stops it.
func runHeadless(ctx context.Context, g *game.Game, cfg *config.Config, maxTurns int) error {
	steps := max(cfg.Run.StepsPerUpdate, 1)
	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"max_turns", maxTurns,
		"steps_per_update", steps,
	)

	for ctx.Err() == nil {
		n := steps
		if maxTurns > 0 {
			n = min(n, maxTurns-g.Turn())
		}
		if err := g.StepN(n); err != nil {
			if errors.Is(err, game.ErrExtinct) {
				slog.Info("extinction reached", "turn", g.Turn())
				return nil
			}
			return err
		}
		if maxTurns > 0 && g.Turn() >= maxTurns {
			slog.Info("max turns reached", "turn", g.Turn())
			return nil
		}
	}
	return nil
}

// runGraphical opens a window with the grid, controls and statistics. Turns
// advance on a Runner so the frame rate and turn rate are independent.
func runGraphical(ctx context.Context, g *game.Game, cfg *config.Config, maxTurns int) error {
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, "Meadow")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	runner := game.NewRunner(g, cfg.Derived.TurnInterval)
	defer runner.Stop()

	grid := renderer.NewGridRenderer(cfg.Vegetation.MaxSupply)
	const sideWidth = 420
	controls := ui.NewControls(0, 0, sideWidth)
	hud := ui.NewHUD(grid.Palette)
	stats := ui.NewStatsPanel(grid.Palette)
	cam := camera.New(cfg.Derived.GridWidth, cfg.Derived.GridHeight)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		snap := g.Snapshot()
		width, height = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

		if snap.Width != cam.Cols || snap.Height != cam.Rows {
			cam.SetGrid(snap.Width, snap.Height)
		}
		cam.SetViewport(sideWidth, 0, float32(width-sideWidth), float32(height))
		ui.HandleCameraInput(cam)
		if rl.IsKeyPressed(rl.KeyG) {
			grid.ShowGrid = !grid.ShowGrid
		}
		hx, hy, hovering := ui.HoveredTile(cam)
		hud.SetHover(hx, hy, hovering)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		grid.Draw(snap.Map, cam)
		if hovering {
			grid.Highlight(cam, hx, hy)
		}
		act := controls.Draw(ui.ControlState{Running: runner.Running(), Interval: runner.Interval()})
		y := hud.Draw(0, controls.Height(), sideWidth, snap, runner.Running())
		stats.Draw(rl.Rectangle{X: 4, Y: float32(y + 4), Width: sideWidth - 8, Height: float32(height-y) - 8}, snap)

		rl.EndDrawing()
		g.RecordFrame()

		if err := applyActions(ctx, g, runner, act); err != nil {
			return err
		}
		if maxTurns > 0 && snap.Turn >= maxTurns {
			break
		}
	}
	return nil
}

// applyActions carries out what the controls asked for.
func applyActions(ctx context.Context, g *game.Game, runner *game.Runner, act ui.Actions) error {
	if act.Interval > 0 {
		runner.SetInterval(act.Interval)
	}
	if act.Toggle {
		if runner.Running() {
			runner.Stop()
		} else {
			runner.Start(ctx)
		}
	}
	if act.Next && !runner.Running() {
		if err := g.Step(); err != nil && !errors.Is(err, game.ErrExtinct) {
			return err
		}
	}
	if act.Reset {
		runner.Stop()
		cfg := g.Config()
		if err := g.Reset(&cfg); err != nil {
			return err
		}
	}
	// Surface a step failure that stopped the runner.
	if err := runner.Err(); err != nil && !errors.Is(err, game.ErrExtinct) {
		return err
	}
	return nil
}
