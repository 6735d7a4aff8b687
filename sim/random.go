package sim

import (
	"math/rand"
	"time"
)

// RandomSource yields uniform draws in [0, 1). *rand.Rand satisfies it.
// A source is owned by one controller and is not shared across goroutines.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a seeded PRNG. A zero seed picks one from the clock.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
