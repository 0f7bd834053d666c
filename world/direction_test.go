package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/meadow/components"
)

func TestStochasticRound(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, v := range []float64{0, 1, 4} {
		for i := 0; i < 20; i++ {
			if got := stochasticRound(v, rng); got != int(v) {
				t.Fatalf("stochasticRound(%v) = %d", v, got)
			}
		}
	}

	const n = 4000
	sum := 0
	for i := 0; i < n; i++ {
		r := stochasticRound(2.25, rng)
		if r != 2 && r != 3 {
			t.Fatalf("stochasticRound(2.25) = %d", r)
		}
		sum += r
	}
	if mean := float64(sum) / n; math.Abs(mean-2.25) > 0.05 {
		t.Errorf("mean = %v, want about 2.25", mean)
	}
}

func TestDirectionWeights(t *testing.T) {
	one := func(sighting) float64 { return 1 }

	tests := []struct {
		name      string
		sightings []sighting
		want      [components.NumDirections]float64
	}{
		{
			name:      "straight right at distance 2",
			sightings: []sighting{{dx: 2, prey: 1}},
			want:      [components.NumDirections]float64{components.DirRight: 0.25},
		},
		{
			name:      "diagonal up-left",
			sightings: []sighting{{dx: -1, dy: -1, predators: 1}},
			want:      [components.NumDirections]float64{components.DirUp: 0.25, components.DirLeft: 0.25},
		},
		{
			name:      "own tile goes to stay",
			sightings: []sighting{{prey: 2}},
			want:      [components.NumDirections]float64{components.DirStay: 1},
		},
		{
			name:      "tiles without animals ignored",
			sightings: []sighting{{dx: 1, plants: 9}, {dy: 1, prey: 1}},
			want:      [components.NumDirections]float64{components.DirDown: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := directionWeights(tt.sightings, one)
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("weights = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestScores(t *testing.T) {
	s := sighting{prey: 2, predators: 1, plants: 3}
	if got := preyScore(s, 1.5, 0.5); got != -1.5+4+1.5 {
		t.Errorf("preyScore = %v", got)
	}
	if got := predatorScore(s, 0.5); got != 2+1 {
		t.Errorf("predatorScore = %v", got)
	}
}

func TestCleanWeights(t *testing.T) {
	tests := []struct {
		name string
		in   [components.NumDirections]float64
		want [components.NumDirections]float64
	}{
		{
			name: "already clean",
			in:   [components.NumDirections]float64{1, 2, 3, 4, 5},
			want: [components.NumDirections]float64{1, 2, 3, 4, 5},
		},
		{
			name: "negative moves to opposite",
			in:   [components.NumDirections]float64{-1, 2, 0, -0.5, 0},
			want: [components.NumDirections]float64{0, 3, 0.5, 0, 0},
		},
		{
			name: "both sides negative",
			in:   [components.NumDirections]float64{-1, -3, 0, 0, 0},
			want: [components.NumDirections]float64{2, 0, 0, 0, 0},
		},
		{
			name: "negative stay spreads over cardinals",
			in:   [components.NumDirections]float64{0, 1, 0, 0, -4},
			want: [components.NumDirections]float64{1, 2, 1, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.in
			cleanWeights(&w)
			for i := range w {
				if w[i] < 0 {
					t.Fatalf("negative weight left: %v", w)
				}
				if math.Abs(w[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("cleanWeights(%v) = %v, want %v", tt.in, w, tt.want)
				}
			}
		})
	}
}

func TestNormalizeWeights(t *testing.T) {
	w := [components.NumDirections]float64{1, 1, 2, 0, 0}
	normalizeWeights(&w)
	want := [components.NumDirections]float64{0.25, 0.25, 0.5, 0, 0}
	if w != want {
		t.Errorf("normalizeWeights = %v, want %v", w, want)
	}

	var zero [components.NumDirections]float64
	normalizeWeights(&zero)
	for i, p := range zero {
		if p != 0.2 {
			t.Errorf("degenerate weight %d = %v, want 0.2", i, p)
		}
	}

	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 100; i++ {
		var v [components.NumDirections]float64
		for j := range v {
			v[j] = rng.Float64()*10 - 5
		}
		cleanWeights(&v)
		normalizeWeights(&v)
		sum := 0.0
		for _, p := range v {
			if p < 0 {
				t.Fatalf("negative probability in %v", v)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("probabilities sum to %v", sum)
		}
	}
}

func TestSampleDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := [components.NumDirections]float64{components.DirLeft: 1}
	for i := 0; i < 50; i++ {
		if d := sampleDirection(w, rng); d != components.DirLeft {
			t.Fatalf("sampled %v from a certain distribution", d)
		}
	}

	uniform := [components.NumDirections]float64{0.2, 0.2, 0.2, 0.2, 0.2}
	var seen [components.NumDirections]int
	for i := 0; i < 1000; i++ {
		seen[sampleDirection(uniform, rng)]++
	}
	for d, n := range seen {
		if n < 120 || n > 280 {
			t.Errorf("%v sampled %d times out of 1000", components.Direction(d), n)
		}
	}
}

func TestGenomeDrivenDirection(t *testing.T) {
	tests := []struct {
		name    string
		self    components.Species
		selfX   int
		other   components.Species
		otherX  int
		wantDir components.Direction
	}{
		{"predator chases prey", components.SpeciesPredator, 4, components.SpeciesPrey, 6, components.DirRight},
		{"prey flees predator", components.SpeciesPrey, 4, components.SpeciesPredator, 6, components.DirLeft},
		{"chase across the edge", components.SpeciesPredator, 0, components.SpeciesPrey, 8, components.DirLeft},
		{"prey joins prey", components.SpeciesPrey, 4, components.SpeciesPrey, 2, components.DirLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, testConfig(t, 9), 1)
			self := mustAdd(t, w, tt.selfX, 4, 100, tt.self, testGenome(3, 0, 150))
			mustAdd(t, w, tt.otherX, 4, 100, tt.other, testGenome(0, 0, 150))

			rng := rand.New(rand.NewSource(2))
			for i := 0; i < 50; i++ {
				if d := (GenomeDriven{}).ChooseDirection(self, rng); d != tt.wantDir {
					t.Fatalf("chose %v, want %v", d, tt.wantDir)
				}
			}
		})
	}
}

func TestGenomeDrivenAloneWalksRandomly(t *testing.T) {
	// With view 0 only the own tile is seen. Alone there, every weight is
	// zero and the choice falls back to uniform.
	w := newTestWorld(t, testConfig(t, 5), 1)
	a := mustAdd(t, w, 2, 2, 100, components.SpeciesPrey, testGenome(0, 1, 150))

	rng := rand.New(rand.NewSource(3))
	var seen [components.NumDirections]int
	for i := 0; i < 500; i++ {
		seen[(GenomeDriven{}).ChooseDirection(a, rng)]++
	}
	for d, n := range seen {
		if n == 0 {
			t.Errorf("%v never chosen", components.Direction(d))
		}
	}
}
