package seiz

import "math/rand/v2"

// Reserved stream tags outside the step-index space. Step indices are
// incrementing counters and never reach these values in practice.
const (
	streamProfile = ^uint64(0)
	streamShuffle = ^uint64(0) - 1
)

// splitmix64 is the standard SplitMix64 finalizer, used to derive
// well-separated PCG seeds from (run seed, node ID, stream tag).
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// subStream returns an independent generator for one (node, stream) pair of
// a run. Every stochastic draw in the engine comes from such a sub-stream,
// so per-node updates can be evaluated in any order (or concurrently)
// without changing the outcome for a fixed run seed.
func subStream(seed, node, stream uint64) *rand.Rand {
	k := splitmix64(seed)
	k = splitmix64(k ^ node)
	k = splitmix64(k ^ stream)
	return rand.New(rand.NewPCG(k, splitmix64(k)))
}
