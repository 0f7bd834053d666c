package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/genome"
	"github.com/pthm-cable/meadow/world"
)

// Histogram is a fixed-bin count of samples over [Lo, Hi].
type Histogram struct {
	Lo, Hi float64
	Counts []float64
}

// Bins returns the number of bins.
func (h Histogram) Bins() int { return len(h.Counts) }

// Total returns the number of samples counted.
func (h Histogram) Total() float64 { return floats.Sum(h.Counts) }

// Max returns the largest bin count.
func (h Histogram) Max() float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	return floats.Max(h.Counts)
}

// NewHistogram bins values over their own range.
func NewHistogram(values []float64, bins int) Histogram {
	if len(values) == 0 {
		return Histogram{Counts: make([]float64, max(bins, 1))}
	}
	return NewHistogramRange(values, bins, floats.Min(values), floats.Max(values))
}

// NewHistogramRange bins values over [lo, hi]. Values outside the range are
// counted in the first or last bin.
func NewHistogramRange(values []float64, bins int, lo, hi float64) Histogram {
	if bins < 1 {
		bins = 1
	}
	if hi <= lo {
		hi = lo + 1
	}
	h := Histogram{Lo: lo, Hi: hi, Counts: make([]float64, bins)}
	if len(values) == 0 {
		return h
	}

	x := make([]float64, len(values))
	for i, v := range values {
		x[i] = math.Min(math.Max(v, lo), hi)
	}
	sort.Float64s(x)

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// The top divider is exclusive; nudge it so hi lands in the last bin.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	stat.Histogram(h.Counts, dividers, x, nil)
	return h
}

// EnergyHistograms bins living animals' energies per species.
func EnergyHistograms(st world.Statistics, bins int) [components.NumSpecies]Histogram {
	prey, pred := st.Energies()
	var out [components.NumSpecies]Histogram
	out[components.SpeciesPrey] = NewHistogram(prey, bins)
	out[components.SpeciesPredator] = NewHistogram(pred, bins)
	return out
}

// GeneHistograms bins every gene per species over its configured range.
func GeneHistograms(samples world.GeneSamples, rs genome.Ranges, bins int) [components.NumSpecies][genome.NumGenes]Histogram {
	var out [components.NumSpecies][genome.NumGenes]Histogram
	for s := range samples {
		for g := range samples[s] {
			out[s][g] = NewHistogramRange(samples[s][g], bins, rs[g].Lo, rs[g].Hi)
		}
	}
	return out
}
