package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed, so a game
// started with the same seed deals the same cards.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewOrRandom behaves like New for a non-zero seed. A zero seed picks a
// fresh random seed, which is returned so it can be logged and replayed.
func NewOrRandom(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		var buf [8]byte
		if _, err := crand.Read(buf[:]); err != nil {
			panic("randutil: reading random seed: " + err.Error())
		}
		seed = int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
		if seed == 0 {
			seed = 1
		}
	}
	return New(seed), seed
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
