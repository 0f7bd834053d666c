// Package genome defines the heritable traits of an animal and how they are
// recombined and mutated at reproduction.
package genome

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Gene indexes a single trait inside a Genome.
type Gene int

const (
	ViewRange              Gene = iota // Vision radius in tiles (real valued)
	EnergyConsumptionRatio             // Multiplier on per-step energy cost
	MaxEnergy                          // Energy cap
	FearOfPredator                     // Prey repulsion from predators
	EatingOverMating                   // Food vs. mate attraction balance

	NumGenes = iota
)

// firstMultiplicative is the index of the first gene mutated by scaling
// instead of by additive jitter.
const firstMultiplicative = FearOfPredator

var geneNames = [NumGenes]string{
	"view_range",
	"energy_consumption_ratio",
	"max_energy",
	"fear_of_predator_ratio",
	"eating_over_mating_ratio",
}

// String returns the gene's config/CSV name.
func (g Gene) String() string {
	if g < 0 || int(g) >= NumGenes {
		return fmt.Sprintf("gene(%d)", int(g))
	}
	return geneNames[g]
}

// Names returns gene names in index order.
func Names() []string {
	out := make([]string, NumGenes)
	copy(out, geneNames[:])
	return out
}

// ErrInvalidRange is returned when a gene range has Lo > Hi.
var ErrInvalidRange = errors.New("invalid gene range")

// Range is the inclusive valid interval for one gene.
type Range struct {
	Lo, Hi float64
}

// Clamp limits v to [Lo, Hi].
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Lo, math.Min(r.Hi, v))
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 {
	return (r.Lo + r.Hi) / 2
}

// Ranges holds one Range per gene, in gene order.
type Ranges [NumGenes]Range

// Validate reports the first malformed range.
func (rs Ranges) Validate() error {
	for i, r := range rs {
		if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) || r.Lo > r.Hi {
			return fmt.Errorf("%w: %s [%g, %g]", ErrInvalidRange, Gene(i), r.Lo, r.Hi)
		}
	}
	return nil
}

// Genome is an immutable set of gene values. The zero value has every gene at 0.
type Genome struct {
	genes [NumGenes]float64
}

// New builds a genome from raw values in gene order.
func New(values [NumGenes]float64) Genome {
	return Genome{genes: values}
}

// Midpoint returns the genome used for the initial population: every gene at
// the middle of its configured range.
func Midpoint(rs Ranges) Genome {
	var g Genome
	for i, r := range rs {
		g.genes[i] = r.Mid()
	}
	return g
}

// Get returns the value of a single gene.
func (g Genome) Get(gene Gene) float64 {
	return g.genes[gene]
}

// Values returns a copy of all gene values in gene order.
func (g Genome) Values() [NumGenes]float64 {
	return g.genes
}

// ViewRange returns the real-valued vision radius.
func (g Genome) ViewRange() float64 { return g.genes[ViewRange] }

// MaxEnergy returns the energy cap gene.
func (g Genome) MaxEnergy() float64 { return g.genes[MaxEnergy] }

// FearRatio returns the fear-of-predator gene.
func (g Genome) FearRatio() float64 { return g.genes[FearOfPredator] }

// MatingRatio returns the eating-over-mating gene.
func (g Genome) MatingRatio() float64 { return g.genes[EatingOverMating] }

// EnergyCap returns the integer energy cap, floor(MaxEnergy).
func (g Genome) EnergyCap() float64 {
	return math.Floor(g.genes[MaxEnergy])
}

// EnergyConsumption returns the per-step energy cost: view range times the
// consumption ratio. Seeing further costs more.
func (g Genome) EnergyConsumption() float64 {
	return g.genes[ViewRange] * g.genes[EnergyConsumptionRatio]
}

// Crossover produces a child genome from two parents. Each gene is the
// parents' mean, then mutated: the first three genes get additive jitter in
// [-mutationRatio, mutationRatio] (rounded to 3 decimals, floored at 0), the
// rest are scaled by 1 + jitter. Every gene is finally clamped to its range.
func Crossover(a, b Genome, mutationRatio float64, rs Ranges, rng *rand.Rand) (Genome, error) {
	if err := rs.Validate(); err != nil {
		return Genome{}, err
	}

	var child Genome
	for i := 0; i < NumGenes; i++ {
		v := (a.genes[i] + b.genes[i]) / 2
		jitter := (rng.Float64()*2 - 1) * mutationRatio

		if Gene(i) < firstMultiplicative {
			v = math.Round((v+jitter)*1000) / 1000
			v = math.Max(0, v)
		} else {
			v *= 1 + jitter
		}

		child.genes[i] = rs[i].Clamp(v)
	}
	return child, nil
}

// String implements fmt.Stringer.
func (g Genome) String() string {
	return fmt.Sprintf("view=%.3f cons=%.3f max=%.3f fear=%.3f mating=%.3f",
		g.genes[ViewRange], g.genes[EnergyConsumptionRatio], g.genes[MaxEnergy],
		g.genes[FearOfPredator], g.genes[EatingOverMating])
}
