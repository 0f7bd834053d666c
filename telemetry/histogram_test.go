package telemetry

import (
	"testing"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/genome"
)

func TestNewHistogramRange(t *testing.T) {
	values := []float64{0, 0.5, 1, 4.9, 5, 9.99, 10, -3, 42}
	h := NewHistogramRange(values, 2, 0, 10)

	// Out-of-range values clamp into the edge bins; 10 lands in the last bin.
	want := []float64{5, 4}
	for i := range want {
		if h.Counts[i] != want[i] {
			t.Fatalf("Counts = %v, want %v", h.Counts, want)
		}
	}
	if h.Total() != float64(len(values)) {
		t.Errorf("Total = %v, want %d", h.Total(), len(values))
	}
	if h.Max() != 5 || h.Bins() != 2 {
		t.Errorf("Max = %v Bins = %d", h.Max(), h.Bins())
	}
}

func TestNewHistogramDegenerate(t *testing.T) {
	h := NewHistogram(nil, 4)
	if h.Bins() != 4 || h.Total() != 0 {
		t.Errorf("empty histogram = %+v", h)
	}

	// All samples equal: the range widens instead of collapsing.
	h = NewHistogram([]float64{7, 7, 7}, 5)
	if h.Total() != 3 || h.Lo != 7 || h.Hi <= h.Lo {
		t.Errorf("constant histogram = %+v", h)
	}
}

func TestEnergyAndGeneHistograms(t *testing.T) {
	w := newPerfWorld(t)
	st := w.Statistics()

	energy := EnergyHistograms(st, 20)
	if energy[components.SpeciesPrey].Total() != 10 || energy[components.SpeciesPredator].Total() != 3 {
		t.Errorf("energy totals = %v/%v", energy[0].Total(), energy[1].Total())
	}

	rs := w.Config().Derived.GeneRanges
	genes := GeneHistograms(st.Genes(), rs, 20)
	h := genes[components.SpeciesPrey][genome.MaxEnergy]
	if h.Lo != rs[genome.MaxEnergy].Lo || h.Hi != rs[genome.MaxEnergy].Hi {
		t.Errorf("gene histogram range = [%v, %v]", h.Lo, h.Hi)
	}
	if h.Total() != 10 || h.Bins() != 20 {
		t.Errorf("gene histogram = %+v", h)
	}
	// Midpoint 150 of [100, 200] opens bin 10.
	if h.Counts[10] != 10 {
		t.Errorf("Counts = %v, want all samples in bin 10", h.Counts)
	}
}
