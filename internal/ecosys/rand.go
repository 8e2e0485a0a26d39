package ecosys

import "math/rand/v2"

// Rand is the pseudo-random source consumed by the engine. Placement draws a
// column then a row; an acting creature draws a row delta then a column delta.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a seeded PCG source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}
