package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of turns.
type WindowStats struct {
	RunID           string `csv:"run_id"`
	WindowStartTurn int    `csv:"-"`
	WindowEndTurn   int    `csv:"window_end"`

	// Population at window end
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`
	Grass     int `csv:"grass"`

	// Events during window
	PreyBirths  int `csv:"prey_births"`
	PredBirths  int `csv:"pred_births"`
	PreyDeaths  int `csv:"prey_deaths"`
	PredDeaths  int `csv:"pred_deaths"`
	PreyStarved int `csv:"prey_starved"`
	PreyMatings int `csv:"prey_matings"`
	PredMatings int `csv:"pred_matings"`
	PlantsEaten int `csv:"plants_eaten"`

	// Hunting
	Kills        int     `csv:"kills"`
	HuntsRefused int     `csv:"hunts_refused"`
	KillRate     float64 `csv:"kill_rate"` // kills / predator-prey encounters

	// Energy distribution (sampled at window end)
	PreyEnergyMean float64 `csv:"prey_energy_mean"`
	PreyEnergyP10  float64 `csv:"prey_energy_p10"`
	PreyEnergyP50  float64 `csv:"prey_energy_p50"`
	PreyEnergyP90  float64 `csv:"prey_energy_p90"`

	PredEnergyMean float64 `csv:"pred_energy_mean"`
	PredEnergyP10  float64 `csv:"pred_energy_p10"`
	PredEnergyP50  float64 `csv:"pred_energy_p50"`
	PredEnergyP90  float64 `csv:"pred_energy_p90"`

	// Gene means (sampled at window end)
	PreyViewMean        float64 `csv:"prey_view_mean"`
	PredViewMean        float64 `csv:"pred_view_mean"`
	PreyConsumptionMean float64 `csv:"prey_consumption_mean"`
	PredConsumptionMean float64 `csv:"pred_consumption_mean"`
	PreyMaxEnergyMean   float64 `csv:"prey_max_energy_mean"`
	PredMaxEnergyMean   float64 `csv:"pred_max_energy_mean"`
	PreyFearMean        float64 `csv:"prey_fear_mean"`
	PredFearMean        float64 `csv:"pred_fear_mean"`
	PreyMatingMean      float64 `csv:"prey_mating_mean"`
	PredMatingMean      float64 `csv:"pred_mating_mean"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// Mean returns the mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTurn),
		slog.Int("window_end", s.WindowEndTurn),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("grass", s.Grass),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_deaths", s.PreyDeaths),
		slog.Int("pred_deaths", s.PredDeaths),
		slog.Int("prey_starved", s.PreyStarved),
		slog.Int("kills", s.Kills),
		slog.Int("hunts_refused", s.HuntsRefused),
		slog.Float64("kill_rate", s.KillRate),
		slog.Int("plants_eaten", s.PlantsEaten),
		slog.Float64("prey_energy_mean", s.PreyEnergyMean),
		slog.Float64("prey_energy_p50", s.PreyEnergyP50),
		slog.Float64("pred_energy_mean", s.PredEnergyMean),
		slog.Float64("pred_energy_p50", s.PredEnergyP50),
		slog.Float64("prey_view_mean", s.PreyViewMean),
		slog.Float64("pred_view_mean", s.PredViewMean),
	)
}

