// Package seed derives deterministic, platform-independent pseudo-random
// seeds for chunk computation from (index.x, index.y, layer salt), and
// provides a fixed-width splitmix64 generator to draw values from them
// (spec §4.2).
//
// All arithmetic here is fixed-width 64-bit and endianness-explicit so that
// two processes (or two runs, on two platforms) compute byte-identical
// seeds and byte-identical draw sequences for the same chunk index. Nothing
// in this package may use math/rand's global state, wall-clock time, or any
// other source of non-determinism.
package seed

import "encoding/binary"

// Mix folds a chunk index and a per-layer salt into a single 64-bit seed.
// The mixing function is a splitmix64-style avalanche over the
// little-endian byte representation of (x, y, salt); it is intentionally
// cryptographically weak but well-mixing, as spec §4.2 requires.
func Mix(x, y int64, salt uint64) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(x))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(y))
	binary.LittleEndian.PutUint64(buf[16:24], salt)

	h := fnvOffset
	for _, b := range buf {
		h ^= uint64(b)
		h *= fnvPrime
	}
	return splitmix64Step(h)
}

const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
)

// splitmix64Step applies one splitmix64 avalanche round to x.
func splitmix64Step(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x = x ^ (x >> 31)
	return x
}

// Gen is a minimal, fixed-width splitmix64 pseudo-random generator. It is
// the "minimum-quality seed generator" spec §4.2 calls for: deterministic,
// cheap, and free of any platform-dependent behavior.
type Gen struct {
	state uint64
}

// New constructs a generator from a 64-bit seed (typically the output of
// Mix).
func New(seedValue uint64) *Gen {
	return &Gen{state: seedValue}
}

// Uint64 returns the next pseudo-random 64-bit value and advances state.
func (g *Gen) Uint64() uint64 {
	g.state += 0x9E3779B97F4A7C15
	z := g.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Int64InRange returns a pseudo-random value in [lo, hi). Panics if
// hi <= lo. The draw order and width are fixed so repeated calls against
// the same Gen produce the same sequence across platforms.
func (g *Gen) Int64InRange(lo, hi int64) int64 {
	if hi <= lo {
		panic("seed: Int64InRange requires hi > lo")
	}
	span := uint64(hi - lo)
	return lo + int64(g.Uint64()%span)
}
