// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/meadow/genome"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Vegetation   VegetationConfig   `yaml:"vegetation"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Feeding      FeedingConfig      `yaml:"feeding"`
	Genome       GenomeConfig       `yaml:"genome"`
	Run          RunConfig          `yaml:"run"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for graphical mode.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds grid dimensions and the RNG seed.
type WorldConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"` // 0 = same as width (square grid)
	Seed   int64 `yaml:"seed"`   // 0 = time-based
}

// PopulationConfig holds the initial population.
type PopulationConfig struct {
	Predators  int     `yaml:"predators"`
	Prey       int     `yaml:"prey"`
	BaseEnergy float64 `yaml:"base_energy"`
}

// VegetationConfig holds per-tile plant supply parameters.
type VegetationConfig struct {
	RegenerationRatio float64 `yaml:"regeneration_ratio"` // added to every tile each turn
	MaxSupply         float64 `yaml:"max_supply"`
	InitialSupply     float64 `yaml:"initial_supply"`
}

// ReproductionConfig holds mating parameters.
type ReproductionConfig struct {
	MinimalEnergy float64 `yaml:"minimal_energy"` // both parents must exceed this
}

// FeedingConfig holds predation parameters.
type FeedingConfig struct {
	FoodEfficiencyRatio float64 `yaml:"food_efficiency_ratio"` // fraction of prey energy a predator gains
}

// GeneRange is the valid interval for one gene.
type GeneRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// GenomeConfig holds genome behavior and per-gene ranges.
type GenomeConfig struct {
	Simulate               bool      `yaml:"simulate"` // false = random walk
	MutationRatio          float64   `yaml:"mutation_ratio"`
	ViewRange              GeneRange `yaml:"view_range"`
	EnergyConsumptionRatio GeneRange `yaml:"energy_consumption_ratio"`
	MaxEnergy              GeneRange `yaml:"max_energy"`
	FearOfPredatorRatio    GeneRange `yaml:"fear_of_predator_ratio"`
	EatingOverMatingRatio  GeneRange `yaml:"eating_over_mating_ratio"`
}

// RunConfig holds driver timing.
type RunConfig struct {
	TurnIntervalMS int `yaml:"turn_interval_ms"` // timer period in graphical mode
	StepsPerUpdate int `yaml:"steps_per_update"` // turns per headless update call
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow   int `yaml:"stats_window"`   // turns per stats window
	HistogramBins int `yaml:"histogram_bins"` // bins for energy/gene histograms
	HistoryLength int `yaml:"history_length"` // population samples kept in memory
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GridWidth    int
	GridHeight   int
	GeneRanges   genome.Ranges
	TurnInterval time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize recomputes derived values and validates the config. Call it after
// changing fields programmatically.
func (c *Config) Finalize() error {
	c.computeDerived()
	return c.Validate()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.GridWidth = c.World.Width
	c.Derived.GridHeight = c.World.Height
	if c.Derived.GridHeight == 0 {
		c.Derived.GridHeight = c.World.Width
	}

	g := &c.Genome
	c.Derived.GeneRanges = genome.Ranges{
		genome.ViewRange:              {Lo: g.ViewRange.Min, Hi: g.ViewRange.Max},
		genome.EnergyConsumptionRatio: {Lo: g.EnergyConsumptionRatio.Min, Hi: g.EnergyConsumptionRatio.Max},
		genome.MaxEnergy:              {Lo: g.MaxEnergy.Min, Hi: g.MaxEnergy.Max},
		genome.FearOfPredator:         {Lo: g.FearOfPredatorRatio.Min, Hi: g.FearOfPredatorRatio.Max},
		genome.EatingOverMating:       {Lo: g.EatingOverMatingRatio.Min, Hi: g.EatingOverMatingRatio.Max},
	}

	c.Derived.TurnInterval = time.Duration(c.Run.TurnIntervalMS) * time.Millisecond
}

// Validate checks the config for values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Derived.GridWidth <= 0 || c.Derived.GridHeight <= 0:
		return fmt.Errorf("%w: grid must be positive, got %dx%d", ErrInvalid, c.Derived.GridWidth, c.Derived.GridHeight)
	case c.Population.Predators < 0 || c.Population.Prey < 0:
		return fmt.Errorf("%w: population counts must be non-negative", ErrInvalid)
	case c.Population.BaseEnergy <= 0:
		return fmt.Errorf("%w: base_energy must be positive", ErrInvalid)
	case c.Vegetation.MaxSupply < 0 || c.Vegetation.RegenerationRatio < 0 || c.Vegetation.InitialSupply < 0:
		return fmt.Errorf("%w: vegetation values must be non-negative", ErrInvalid)
	case c.Feeding.FoodEfficiencyRatio < 0:
		return fmt.Errorf("%w: food_efficiency_ratio must be non-negative", ErrInvalid)
	case c.Genome.MutationRatio < 0:
		return fmt.Errorf("%w: mutation_ratio must be non-negative", ErrInvalid)
	}

	if err := c.Derived.GeneRanges.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	// The mating gene is a divisor in movement scoring.
	if c.Genome.EatingOverMatingRatio.Min <= 0 {
		return fmt.Errorf("%w: eating_over_mating_ratio.min must be positive", ErrInvalid)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
