package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// Shuffle permutes items in place with a Fisher-Yates walk from the back,
// drawing one Intn per swap so a seeded source always yields the same order
func Shuffle[T any](r Random, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Pick returns a random element of items, or the zero value if empty
func Pick[T any](r Random, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.Intn(len(items))]
}

// SeededRandom implements Random with a deterministic PCG stream
type SeededRandom struct {
	seed uint64
	rng  *rand.Rand
}

// NewSeeded creates a SeededRandom. Two sources with the same seed produce
// the same sequence.
func NewSeeded(seed uint64) *SeededRandom {
	return &SeededRandom{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed this source was created with
func (r *SeededRandom) Seed() uint64 {
	return r.seed
}

// Intn returns a deterministic int in [0, n)
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

// Derive returns the source for the i-th child of this seed, used to give
// each game of a series, and each bot within a game, its own reproducible
// stream. Children are mixed through splitmix64 so a grandchild never
// shares a seed with a sibling of its parent.
func (r *SeededRandom) Derive(i int) *SeededRandom {
	return NewSeeded(splitmix64(r.seed ^ splitmix64(uint64(i)+1)))
}

// splitmix64 is the finalizer from Steele, Lea and Flood's SplitMix
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// NewSeed returns a fresh seed for callers that did not supply one
func NewSeed() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return binary.LittleEndian.Uint64(buf[:])
}
