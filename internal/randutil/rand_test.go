package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(99), New(99)
	for range 20 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestNewOrRandom(t *testing.T) {
	_, seed := NewOrRandom(12)
	assert.Equal(t, int64(12), seed)

	rng, seed := NewOrRandom(0)
	assert.NotZero(t, seed)
	assert.Positive(t, seed)

	replay := New(seed)
	assert.Equal(t, replay.IntN(1<<30), rng.IntN(1<<30))
}
