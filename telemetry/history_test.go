package telemetry

import "testing"

func TestHistoryRing(t *testing.T) {
	h := NewHistory(3)
	if h.Len() != 0 || len(h.Samples()) != 0 {
		t.Fatal("new history should be empty")
	}

	for turn := 1; turn <= 5; turn++ {
		h.Add(PopulationSample{Turn: turn, Prey: turn * 10, Predators: turn, Grass: 100 - turn})
	}

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	samples := h.Samples()
	for i, want := range []int{3, 4, 5} {
		if samples[i].Turn != want {
			t.Errorf("samples[%d].Turn = %d, want %d", i, samples[i].Turn, want)
		}
	}

	prey, preds, grass := h.Series()
	if prey[0] != 30 || preds[2] != 5 || grass[1] != 96 {
		t.Errorf("Series = %v %v %v", prey, preds, grass)
	}

	h.Reset()
	if h.Len() != 0 {
		t.Errorf("Len after Reset = %d", h.Len())
	}
}

func TestSampleOf(t *testing.T) {
	w := newPerfWorld(t)
	s := SampleOf(w)
	if s.Turn != 0 || s.Prey != 10 || s.Predators != 3 {
		t.Errorf("SampleOf = %+v", s)
	}
	// Default initial supply is one unit per tile.
	if s.Grass != 64 {
		t.Errorf("Grass = %d, want 64", s.Grass)
	}
}
