package telemetry

import "github.com/pthm-cable/meadow/world"

// PopulationSample is one turn's population, as written to population.csv.
type PopulationSample struct {
	Turn      int `csv:"turn"`
	Prey      int `csv:"prey"`
	Predators int `csv:"predators"`
	Grass     int `csv:"grass"`
}

// SampleOf reads a PopulationSample from the world.
func SampleOf(w *world.World) PopulationSample {
	st := w.Statistics()
	return PopulationSample{
		Turn:      w.Turn(),
		Prey:      st.NPrey(),
		Predators: st.NPredators(),
		Grass:     st.NGrass(),
	}
}

// History keeps the most recent population samples in a ring buffer.
type History struct {
	samples []PopulationSample
	next    int
	full    bool
}

// NewHistory creates a history holding up to size samples.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{samples: make([]PopulationSample, size)}
}

// Add appends a sample, evicting the oldest once full.
func (h *History) Add(s PopulationSample) {
	h.samples[h.next] = s
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.full = true
	}
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	if h.full {
		return len(h.samples)
	}
	return h.next
}

// Samples returns stored samples oldest first.
func (h *History) Samples() []PopulationSample {
	if !h.full {
		return append([]PopulationSample(nil), h.samples[:h.next]...)
	}
	out := make([]PopulationSample, 0, len(h.samples))
	out = append(out, h.samples[h.next:]...)
	return append(out, h.samples[:h.next]...)
}

// Series returns prey, predator and grass counts oldest first, ready for
// plotting.
func (h *History) Series() (prey, predators, grass []float64) {
	return SeriesOf(h.Samples())
}

// SeriesOf splits samples into prey, predator and grass series.
func SeriesOf(samples []PopulationSample) (prey, predators, grass []float64) {
	prey = make([]float64, len(samples))
	predators = make([]float64, len(samples))
	grass = make([]float64, len(samples))
	for i, s := range samples {
		prey[i] = float64(s.Prey)
		predators[i] = float64(s.Predators)
		grass[i] = float64(s.Grass)
	}
	return prey, predators, grass
}

// Reset drops all samples.
func (h *History) Reset() {
	h.next = 0
	h.full = false
}
