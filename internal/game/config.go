package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/lox/setgame/internal/deck"
)

// Config holds the constants a game runs with.
type Config struct {
	// Players is the total number of players. The first HumanPlayers of them
	// take keyboard input; the rest get a random input generator.
	Players      int
	HumanPlayers int

	TableSize int
	Rules     deck.Rules

	// TurnTimeout is the length of a round. Once less than
	// TurnTimeoutWarning is left the dealer wakes every WarningTick.
	TurnTimeout        time.Duration
	TurnTimeoutWarning time.Duration
	WarningTick        time.Duration

	PointFreeze   time.Duration
	PenaltyFreeze time.Duration
	FreezeTick    time.Duration

	// TableDelay is slept on every card placement and removal so dealing
	// can be followed on screen.
	TableDelay time.Duration

	// Hints logs every set on the table after each deal.
	Hints bool
}

// DefaultConfig returns the configuration of a regular two player game.
func DefaultConfig() Config {
	return Config{
		Players:            2,
		HumanPlayers:       2,
		TableSize:          12,
		Rules:              deck.DefaultRules(),
		TurnTimeout:        60 * time.Second,
		TurnTimeoutWarning: 5 * time.Second,
		WarningTick:        10 * time.Millisecond,
		PointFreeze:        1 * time.Second,
		PenaltyFreeze:      3 * time.Second,
		FreezeTick:         1 * time.Second,
		TableDelay:         100 * time.Millisecond,
	}
}

// FeatureSize is the number of tokens needed to claim a set.
func (c Config) FeatureSize() int {
	return c.Rules.FeatureSize
}

// DeckSize is the number of distinct cards in the game.
func (c Config) DeckSize() int {
	return c.Rules.DeckSize()
}

// Validate checks that the configuration can run a game.
func (c Config) Validate() error {
	var errs []error

	if c.Players < 1 {
		errs = append(errs, fmt.Errorf("players must be positive, got %d", c.Players))
	}
	if c.HumanPlayers < 0 || c.HumanPlayers > c.Players {
		errs = append(errs, fmt.Errorf("human players must be between 0 and %d, got %d", c.Players, c.HumanPlayers))
	}
	if c.Rules.FeatureSize < 2 {
		errs = append(errs, fmt.Errorf("feature size must be at least 2, got %d", c.Rules.FeatureSize))
	}
	if c.Rules.FeatureCount < 1 {
		errs = append(errs, fmt.Errorf("feature count must be positive, got %d", c.Rules.FeatureCount))
	}
	if c.TableSize < c.Rules.FeatureSize {
		errs = append(errs, fmt.Errorf("table size %d cannot hold a set of %d", c.TableSize, c.Rules.FeatureSize))
	}
	if c.TurnTimeout <= 0 {
		errs = append(errs, errors.New("turn timeout must be positive"))
	}
	if c.TurnTimeoutWarning < 0 || c.TurnTimeoutWarning > c.TurnTimeout {
		errs = append(errs, errors.New("turn timeout warning must be between zero and the turn timeout"))
	}
	if c.WarningTick <= 0 {
		errs = append(errs, errors.New("warning tick must be positive"))
	}
	if c.PointFreeze < 0 || c.PenaltyFreeze < 0 {
		errs = append(errs, errors.New("freeze durations must not be negative"))
	}
	if c.FreezeTick <= 0 {
		errs = append(errs, errors.New("freeze tick must be positive"))
	}
	if c.TableDelay < 0 {
		errs = append(errs, errors.New("table delay must not be negative"))
	}

	return errors.Join(errs...)
}
