package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMultiDisplay(t *testing.T) {
	assert.IsType(t, NullDisplay{}, NewMultiDisplay())
	assert.IsType(t, NullDisplay{}, NewMultiDisplay(nil, nil))

	only := NewRecordingDisplay()
	assert.Same(t, only, NewMultiDisplay(nil, only, nil), "a single display is used directly")
}

func TestMultiDisplayFansOut(t *testing.T) {
	first := NewRecordingDisplay()
	second := NewRecordingDisplay()
	multi := NewMultiDisplay(first, nil, second)
	require.IsType(t, &MultiDisplay{}, multi)

	multi.SetCountdown(4*time.Second, true)
	multi.PlaceCard(7, 2)
	multi.PlaceToken(1, 2)
	multi.RemoveToken(1, 2)
	multi.RemoveAllTokens(2)
	multi.RemoveCard(2)
	multi.SetScore(1, 3)
	multi.SetFreeze(1, time.Second)
	multi.AnnounceWinners([]int{1})

	for _, d := range []*RecordingDisplay{first, second} {
		assert.Equal(t, []string{
			"place-card 7 2",
			"place-token 1 2",
			"remove-token 1 2",
			"remove-all-tokens 2",
			"remove-card 2",
			"winners [1]",
		}, d.Events())

		remaining, warned := d.Countdown()
		assert.Equal(t, 4*time.Second, remaining)
		assert.True(t, warned)
		assert.Equal(t, 3, d.Score(1))
		assert.Equal(t, []time.Duration{time.Second}, d.Freezes(1))
		assert.Equal(t, []int{1}, d.Winners())
	}
}
