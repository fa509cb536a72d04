package game

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/setgame/internal/deck"
)

// TestConfigOption configures test game creation
type TestConfigOption func(*Config)

// Test config options
func WithPlayers(total, humans int) TestConfigOption {
	return func(c *Config) {
		c.Players = total
		c.HumanPlayers = humans
	}
}

func WithRules(featureSize, featureCount int) TestConfigOption {
	return func(c *Config) { c.Rules = deck.Rules{FeatureSize: featureSize, FeatureCount: featureCount} }
}

func WithTableSize(slots int) TestConfigOption {
	return func(c *Config) { c.TableSize = slots }
}

func WithTurnTimeout(timeout, warning time.Duration) TestConfigOption {
	return func(c *Config) {
		c.TurnTimeout = timeout
		c.TurnTimeoutWarning = warning
	}
}

func WithFreezes(point, penalty, tick time.Duration) TestConfigOption {
	return func(c *Config) {
		c.PointFreeze = point
		c.PenaltyFreeze = penalty
		c.FreezeTick = tick
	}
}

// NewTestConfig returns a fast configuration for tests: two human players,
// no table delay and millisecond freezes.
func NewTestConfig(opts ...TestConfigOption) Config {
	cfg := DefaultConfig()
	cfg.TableDelay = 0
	cfg.WarningTick = time.Millisecond
	cfg.PointFreeze = 5 * time.Millisecond
	cfg.PenaltyFreeze = 10 * time.Millisecond
	cfg.FreezeTick = time.Millisecond
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewTestLogger returns a logger that discards everything below error level.
func NewTestLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// RecordingDisplay remembers every call it receives.
type RecordingDisplay struct {
	mu sync.Mutex

	events    []string
	scores    map[int]int
	winners   []int
	countdown time.Duration
	warned    bool
	freezes   map[int][]time.Duration
}

// NewRecordingDisplay creates an empty recorder.
func NewRecordingDisplay() *RecordingDisplay {
	return &RecordingDisplay{
		scores:  make(map[int]int),
		freezes: make(map[int][]time.Duration),
	}
}

func (r *RecordingDisplay) record(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *RecordingDisplay) SetCountdown(remaining time.Duration, warn bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countdown = remaining
	r.warned = r.warned || warn
}

func (r *RecordingDisplay) PlaceCard(card deck.Card, slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("place-card %d %d", card, slot)
}

func (r *RecordingDisplay) RemoveCard(slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("remove-card %d", slot)
}

func (r *RecordingDisplay) PlaceToken(player, slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("place-token %d %d", player, slot)
}

func (r *RecordingDisplay) RemoveToken(player, slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("remove-token %d %d", player, slot)
}

func (r *RecordingDisplay) RemoveAllTokens(slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("remove-all-tokens %d", slot)
}

func (r *RecordingDisplay) SetScore(player, score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[player] = score
}

func (r *RecordingDisplay) SetFreeze(player int, remaining time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.freezes[player] = append(r.freezes[player], remaining)
}

func (r *RecordingDisplay) AnnounceWinners(players []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.winners = append([]int(nil), players...)
	r.record("winners %v", players)
}

// Events returns the recorded card and token events in order.
func (r *RecordingDisplay) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Score returns the last score shown for player.
func (r *RecordingDisplay) Score(player int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scores[player]
}

// Winners returns the announced winners, nil if none were announced.
func (r *RecordingDisplay) Winners() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.winners
}

// Countdown returns the last countdown value and whether a warning was ever
// shown.
func (r *RecordingDisplay) Countdown() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countdown, r.warned
}

// Freezes returns every freeze value shown for player.
func (r *RecordingDisplay) Freezes(player int) []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.freezes[player]...)
}
