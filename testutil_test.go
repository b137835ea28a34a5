package vitemap

import "math/rand"

// newRand returns a seeded PRNG so tests are deterministic across runs.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
