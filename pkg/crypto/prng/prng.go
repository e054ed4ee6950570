// Package prng provides the seeded Mulberry32 generator and the xmur3
// string hash used to derive seeds from text.
package prng

import "unicode/utf16"

const (
	increment = 0x6D2B79F5
	twoTo32   = 4294967296.0
)

// Random is a Mulberry32 generator. The zero value is a generator seeded
// with 0. It is not safe for concurrent use.
type Random struct {
	state uint32
	seed  uint32
}

// New returns a generator seeded with a signed 32-bit seed. Negative seeds
// are reinterpreted as their two's complement bit pattern.
func New(seed int32) *Random {
	return NewFromUint32(uint32(seed))
}

func NewFromUint32(seed uint32) *Random {
	return &Random{state: seed, seed: seed}
}

// Seed returns the seed the generator was created with.
func (r *Random) Seed() uint32 {
	return r.seed
}

// Reset rewinds the generator to its initial seed.
func (r *Random) Reset() {
	r.state = r.seed
}

// Uint32 advances the generator and returns the raw 32-bit output.
func (r *Random) Uint32() uint32 {
	r.state += increment
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (r *Random) Float64() float64 {
	return float64(r.Uint32()) / twoTo32
}

// Intn returns floor(Float64() * n). It returns 0 when n <= 0 without
// advancing the generator.
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// Shuffle performs an in-place Fisher-Yates shuffle of n elements,
// walking from the last index down to 1.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// Hash returns the first xmur3 output for text, computed over its UTF-16
// code units. It is not suitable for integrity checks.
func Hash(text string) uint32 {
	units := utf16.Encode([]rune(text))

	h := uint32(1779033703) ^ uint32(len(units))
	for _, u := range units {
		h = (h ^ uint32(u)) * 3432918353
		h = h<<13 | h>>19
	}

	h = (h ^ (h >> 16)) * 2246822507
	h = (h ^ (h >> 13)) * 3266489909
	return h ^ (h >> 16)
}
