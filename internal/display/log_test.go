package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/setgame/internal/deck"
	"github.com/stretchr/testify/assert"
)

func newBufferLogger(level log.Level) (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: level})
	return logger, &buf
}

func TestLogDisplayCountdownThrottles(t *testing.T) {
	logger, buf := newBufferLogger(log.DebugLevel)
	d := NewLogDisplay(logger, deck.DefaultRules())

	d.SetCountdown(10*time.Second, false)
	d.SetCountdown(9900*time.Millisecond, false)
	d.SetCountdown(9500*time.Millisecond, false)
	d.SetCountdown(9*time.Second, false)

	assert.Equal(t, 2, strings.Count(buf.String(), "Countdown"))

	d.SetCountdown(4*time.Second, true)
	assert.Contains(t, buf.String(), "WARN")
}

func TestLogDisplayCards(t *testing.T) {
	logger, buf := newBufferLogger(log.DebugLevel)
	d := NewLogDisplay(logger, deck.Rules{FeatureSize: 3, FeatureCount: 4})

	d.PlaceCard(5, 3)
	d.PlaceToken(1, 3)
	d.RemoveAllTokens(3)
	d.RemoveCard(3)

	out := buf.String()
	assert.Contains(t, out, "Card placed")
	assert.Contains(t, out, "features=2100")
	assert.Contains(t, out, "Token placed")
	assert.Contains(t, out, "Tokens cleared")
	assert.Contains(t, out, "Card removed")
}

func TestLogDisplayWinners(t *testing.T) {
	logger, buf := newBufferLogger(log.InfoLevel)
	d := NewLogDisplay(logger, deck.DefaultRules())

	d.SetFreeze(0, time.Second)
	d.AnnounceWinners([]int{1})
	assert.Contains(t, buf.String(), "Winner")
	assert.NotContains(t, buf.String(), "frozen", "freeze is debug chatter")

	buf.Reset()
	d.AnnounceWinners([]int{0, 2})
	assert.Contains(t, buf.String(), "Tie")
	assert.Contains(t, buf.String(), "[0 2]")
}
