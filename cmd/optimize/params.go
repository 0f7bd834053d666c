package main

import (
	"github.com/pthm-cable/meadow/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Vegetation
			{Name: "regeneration_ratio", Path: "vegetation.regeneration_ratio", Min: 0.05, Max: 1.0, Default: 0.2},
			{Name: "max_supply", Path: "vegetation.max_supply", Min: 2, Max: 40, Default: 15},
			// Feeding
			{Name: "food_efficiency_ratio", Path: "feeding.food_efficiency_ratio", Min: 0.1, Max: 1.0, Default: 0.5},
			// Reproduction
			{Name: "minimal_energy", Path: "reproduction.minimal_energy", Min: 5, Max: 90, Default: 30},
			// Genome
			{Name: "mutation_ratio", Path: "genome.mutation_ratio", Min: 0, Max: 0.3, Default: 0.05},
			// Population
			{Name: "base_energy", Path: "population.base_energy", Min: 40, Max: 200, Default: 100},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Vegetation.RegenerationRatio = clamped[0]
	cfg.Vegetation.MaxSupply = clamped[1]
	cfg.Feeding.FoodEfficiencyRatio = clamped[2]
	cfg.Reproduction.MinimalEnergy = clamped[3]
	cfg.Genome.MutationRatio = clamped[4]
	cfg.Population.BaseEnergy = clamped[5]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Vegetation.RegenerationRatio,
		cfg.Vegetation.MaxSupply,
		cfg.Feeding.FoodEfficiencyRatio,
		cfg.Reproduction.MinimalEnergy,
		cfg.Genome.MutationRatio,
		cfg.Population.BaseEnergy,
	}
}
