package sim

import "math/rand"

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a reproducible random stream
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// FixedSource always returns the same value. Useful for forcing outcomes:
// a value >= 1 never produces an upset, 0 produces one whenever the upset
// probability is positive.
type FixedSource float64

func (f FixedSource) Float64() float64 { return float64(f) }

// SequenceSource replays a fixed list of draws, cycling when exhausted
type SequenceSource struct {
	Values []float64
	next   int
}

func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Draws returns how many values have been consumed
func (s *SequenceSource) Draws() int {
	return s.next
}
