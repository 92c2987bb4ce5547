package charge

import "math/rand/v2"

// RandomSource yields values in [0, 1) for the simulated charge outcome.
// Tests pin it to exercise both sides of the threshold.
type RandomSource interface {
	Next() float64
}

type mathRandomSource struct{}

func (mathRandomSource) Next() float64 {
	return rand.Float64()
}

// NewRandomSource returns the default math/rand/v2 backed source.
func NewRandomSource() RandomSource {
	return mathRandomSource{}
}
