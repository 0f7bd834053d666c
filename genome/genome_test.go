package genome

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func testRanges() Ranges {
	return Ranges{
		{Lo: 0, Hi: 5},
		{Lo: 0.5, Hi: 1.5},
		{Lo: 100, Hi: 200},
		{Lo: 0.5, Hi: 1.5},
		{Lo: 0.5, Hi: 1.5},
	}
}

func TestMidpoint(t *testing.T) {
	g := Midpoint(testRanges())
	want := [NumGenes]float64{2.5, 1.0, 150, 1.0, 1.0}
	if g.Values() != want {
		t.Errorf("Midpoint = %v, want %v", g.Values(), want)
	}
}

func TestEnergyConsumption(t *testing.T) {
	tests := []struct {
		name string
		view float64
		cons float64
		want float64
	}{
		{"midpoint", 2.5, 1.0, 2.5},
		{"blind", 0, 1.5, 0},
		{"fractional", 1.5, 0.5, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New([NumGenes]float64{tt.view, tt.cons, 100, 1, 1})
			if got := g.EnergyConsumption(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EnergyConsumption() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnergyCap(t *testing.T) {
	g := New([NumGenes]float64{1, 1, 150.9, 1, 1})
	if got := g.EnergyCap(); got != 150 {
		t.Errorf("EnergyCap() = %v, want 150", got)
	}
}

func TestCrossoverStaysInRange(t *testing.T) {
	rs := testRanges()
	rng := rand.New(rand.NewSource(7))

	// Parents sit on opposite edges so the mean plus jitter regularly
	// overshoots when the mutation ratio is large.
	lo := New([NumGenes]float64{0, 0.5, 100, 0.5, 0.5})
	hi := New([NumGenes]float64{5, 1.5, 200, 1.5, 1.5})

	for _, ratio := range []float64{0, 0.05, 0.5, 3, 50} {
		for i := 0; i < 500; i++ {
			parents := [][2]Genome{{lo, lo}, {hi, hi}, {lo, hi}}
			for _, p := range parents {
				child, err := Crossover(p[0], p[1], ratio, rs, rng)
				if err != nil {
					t.Fatalf("Crossover: %v", err)
				}
				for gi, v := range child.Values() {
					if v < rs[gi].Lo || v > rs[gi].Hi {
						t.Fatalf("ratio %v: gene %s = %v outside [%v, %v]",
							ratio, Gene(gi), v, rs[gi].Lo, rs[gi].Hi)
					}
				}
			}
		}
	}
}

func TestCrossoverWithoutMutationAverages(t *testing.T) {
	rs := testRanges()
	rng := rand.New(rand.NewSource(1))

	a := New([NumGenes]float64{1, 0.5, 100, 0.5, 1.5})
	b := New([NumGenes]float64{3, 1.5, 200, 1.5, 0.5})

	child, err := Crossover(a, b, 0, rs, rng)
	if err != nil {
		t.Fatalf("Crossover: %v", err)
	}
	want := [NumGenes]float64{2, 1, 150, 1, 1}
	for i, v := range child.Values() {
		if math.Abs(v-want[i]) > 1e-9 {
			t.Errorf("gene %s = %v, want %v", Gene(i), v, want[i])
		}
	}
}

func TestCrossoverAdditiveGenesRounded(t *testing.T) {
	rs := Ranges{
		{Lo: 0, Hi: 100},
		{Lo: 0, Hi: 100},
		{Lo: 0, Hi: 1000},
		{Lo: 0, Hi: 100},
		{Lo: 0, Hi: 100},
	}
	rng := rand.New(rand.NewSource(3))
	a := New([NumGenes]float64{1.23456, 2.5, 150, 1, 1})

	for i := 0; i < 100; i++ {
		child, err := Crossover(a, a, 0.3, rs, rng)
		if err != nil {
			t.Fatalf("Crossover: %v", err)
		}
		for gi := 0; gi < int(firstMultiplicative); gi++ {
			v := child.Get(Gene(gi))
			scaled := v * 1000
			if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
				t.Fatalf("gene %s = %v not rounded to 3 decimals", Gene(gi), v)
			}
		}
	}
}

func TestCrossoverAdditiveFlooredAtZero(t *testing.T) {
	// A range that admits negatives must still never produce one for an
	// additive gene.
	rs := testRanges()
	rs[ViewRange] = Range{Lo: -10, Hi: 10}
	rng := rand.New(rand.NewSource(11))
	a := New([NumGenes]float64{0, 1, 150, 1, 1})

	for i := 0; i < 200; i++ {
		child, err := Crossover(a, a, 1, rs, rng)
		if err != nil {
			t.Fatalf("Crossover: %v", err)
		}
		if child.ViewRange() < 0 {
			t.Fatalf("view range went negative: %v", child.ViewRange())
		}
	}
}

func TestCrossoverInvalidRange(t *testing.T) {
	rs := testRanges()
	rs[MaxEnergy] = Range{Lo: 200, Hi: 100}
	_, err := Crossover(Genome{}, Genome{}, 0.05, rs, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestGeneString(t *testing.T) {
	if got := EatingOverMating.String(); got != "eating_over_mating_ratio" {
		t.Errorf("String() = %q", got)
	}
	if got := Gene(42).String(); got != "gene(42)" {
		t.Errorf("out of range String() = %q", got)
	}
	if n := len(Names()); n != NumGenes {
		t.Errorf("Names() has %d entries, want %d", n, NumGenes)
	}
}
