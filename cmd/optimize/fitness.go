package main

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTurns    int
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTurns int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTurns:    maxTurns,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 25,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Minimum viable population: if either species stays below this for
// extinctionGraceTurns consecutive turns, it counts as functionally extinct.
const (
	minViablePop         = 2
	extinctionGraceTurns = 50
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTurns int                     // turns before functional extinction (or maxTurns if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival turns: longer coexistence = lower fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.configFor(x)

	type seedResult struct {
		fitness, quality float64
	}
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r, err := fe.runSimulation(cfg, s)
			if err != nil {
				// An unusable parameter set scores as instant extinction.
				results[idx] = seedResult{}
				return
			}
			quality := computeQuality(r.windowStats, cfg.Population.BaseEnergy)
			results[idx] = seedResult{fitness: computeFitness(r.survivalTurns, quality), quality: quality}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	fe.bestFitness = min(fe.bestFitness, avgFitness)
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// configFor returns a copy of the base config with x applied.
func (fe *FitnessEvaluator) configFor(x []float64) *config.Config {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	cfg.Telemetry.StatsWindow = fe.statsWindow
	return &cfg
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTurns, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	result := &runResult{}

	g, err := game.NewGame(cfg, game.Options{
		Seed:             seed,
		StopOnExtinction: true,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}
	defer g.Close()

	var preyBelow, predBelow int
	for g.Turn() < fe.maxTurns {
		if err := g.Step(); err != nil {
			if errors.Is(err, game.ErrExtinct) {
				break
			}
			return nil, err
		}

		prey, pred := g.Population()
		preyBelow = belowCount(prey, preyBelow)
		predBelow = belowCount(pred, predBelow)
		if preyBelow >= extinctionGraceTurns || predBelow >= extinctionGraceTurns {
			break
		}
	}

	result.survivalTurns = g.Turn()
	return result, nil
}

// belowCount extends a run of turns spent under the viable population.
func belowCount(pop, run int) int {
	if pop < minViablePop {
		return run + 1
	}
	return 0
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTurns × (1.0 + 0.2 × quality))
func computeFitness(survivalTurns int, quality float64) float64 {
	return -(float64(survivalTurns) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.25
	qualityWeightEnergy    = 0.25
	qualityWeightHunting   = 0.20

	qualityWarmupWindows = 2 // skip first N windows (warmup)
	qualityMinPop        = 2 // exclude windows where either species < this
	targetPreyPerPred    = 2.0
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats, baseEnergy float64) float64 {
	if len(windows) <= qualityWarmupWindows || baseEnergy <= 0 {
		return 0
	}

	var ratioSum, energySum, huntSum float64
	var ratioCount, huntCount int
	preyCounts := make([]float64, 0, len(windows))
	predCounts := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.PreyCount < qualityMinPop || w.PredCount < qualityMinPop {
			continue
		}
		preyCounts = append(preyCounts, float64(w.PreyCount))
		predCounts = append(predCounts, float64(w.PredCount))

		// Population ratio on a log scale
		logErr := math.Log(float64(w.PreyCount) / float64(w.PredCount) / targetPreyPerPred)
		ratioSum += math.Exp(-logErr * logErr)
		ratioCount++

		// Median energy near the starting energy
		preyH := math.Exp(-math.Pow((w.PreyEnergyP50/baseEnergy-1)/0.5, 2))
		predH := math.Exp(-math.Pow((w.PredEnergyP50/baseEnergy-1)/0.5, 2))
		energySum += (preyH + predH) / 2

		// Hunting: some encounters succeed, not all
		if w.Kills+w.HuntsRefused > 0 {
			huntSum += math.Exp(-math.Pow((w.KillRate-0.5)/0.3, 2))
			huntCount++
		}
	}

	if ratioCount == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(preyCounts) >= 2 {
		cvPrey, cvPred := cv(preyCounts), cv(predCounts)
		stabilityScore = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}
	huntScore := 0.0
	if huntCount > 0 {
		huntScore = huntSum / float64(huntCount)
	}

	quality := qualityWeightRatio*ratioSum/float64(ratioCount) +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/float64(ratioCount) +
		qualityWeightHunting*huntScore
	return min(max(quality, 0), 1)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, variance := stat.PopMeanVariance(values, nil)
	if mean == 0 {
		return 0
	}
	return math.Sqrt(variance) / mean
}
