// Package randutil builds the deterministic random sources the simulator
// runs on. Every generator is seeded through the same mixing function, so
// a run is fully reproducible from its top-level seed.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a generator seeded from a single int64. The seed is mixed
// into the two words rand/v2's PCG wants, so nearby seeds still start
// well-separated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// DeriveSeed maps a base seed and a child index to an independent child seed.
// Seeds derived this way depend only on (base, index), never on execution
// order, which is what lets parallel runs reproduce sequential runs exactly.
func DeriveSeed(base int64, index int64) int64 {
	u := mix(uint64(base) + goldenRatio64)
	v := mix(uint64(index)*goldenRatio64 + goldenRatio64)
	return int64(mix(u ^ v))
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
