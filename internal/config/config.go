package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/setgame/internal/deck"
	"github.com/lox/setgame/internal/game"
)

// Config represents the complete game configuration
type Config struct {
	Game   *GameSettings   `hcl:"game,block"`
	Timing *TimingSettings `hcl:"timing,block"`
	Log    *LogSettings    `hcl:"log,block"`
}

// GameSettings describes the players, the table and the cards
type GameSettings struct {
	Players      int   `hcl:"players,optional"`
	HumanPlayers *int  `hcl:"human_players,optional"`
	TableSize    int   `hcl:"table_size,optional"`
	FeatureSize  int   `hcl:"feature_size,optional"`
	FeatureCount int   `hcl:"feature_count,optional"`
	Hints        bool  `hcl:"hints,optional"`
	Seed         int64 `hcl:"seed,optional"`
}

// TimingSettings holds every duration as a Go duration string ("60s")
type TimingSettings struct {
	TurnTimeout        string `hcl:"turn_timeout,optional"`
	TurnTimeoutWarning string `hcl:"turn_timeout_warning,optional"`
	WarningTick        string `hcl:"warning_tick,optional"`
	PointFreeze        string `hcl:"point_freeze,optional"`
	PenaltyFreeze      string `hcl:"penalty_freeze,optional"`
	FreezeTick         string `hcl:"freeze_tick,optional"`
	TableDelay         string `hcl:"table_delay,optional"`
}

// LogSettings configures the logger
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// DefaultConfig returns the configuration of a regular two player game
func DefaultConfig() *Config {
	defaults := game.DefaultConfig()
	humans := defaults.HumanPlayers
	return &Config{
		Game: &GameSettings{
			Players:      defaults.Players,
			HumanPlayers: &humans,
			TableSize:    defaults.TableSize,
			FeatureSize:  defaults.Rules.FeatureSize,
			FeatureCount: defaults.Rules.FeatureCount,
		},
		Timing: &TimingSettings{
			TurnTimeout:        defaults.TurnTimeout.String(),
			TurnTimeoutWarning: defaults.TurnTimeoutWarning.String(),
			WarningTick:        defaults.WarningTick.String(),
			PointFreeze:        defaults.PointFreeze.String(),
			PenaltyFreeze:      defaults.PenaltyFreeze.String(),
			FreezeTick:         defaults.FreezeTick.String(),
			TableDelay:         defaults.TableDelay.String(),
		},
		Log: &LogSettings{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills every block and value the file left out
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Timing == nil {
		c.Timing = &TimingSettings{}
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}

	if c.Game.Players == 0 {
		c.Game.Players = defaults.Game.Players
	}
	if c.Game.HumanPlayers == nil {
		// Everyone beyond the default humans is a computer player.
		humans := min(*defaults.Game.HumanPlayers, c.Game.Players)
		c.Game.HumanPlayers = &humans
	}
	if c.Game.TableSize == 0 {
		c.Game.TableSize = defaults.Game.TableSize
	}
	if c.Game.FeatureSize == 0 {
		c.Game.FeatureSize = defaults.Game.FeatureSize
	}
	if c.Game.FeatureCount == 0 {
		c.Game.FeatureCount = defaults.Game.FeatureCount
	}

	fill := func(value *string, fallback string) {
		if *value == "" {
			*value = fallback
		}
	}
	fill(&c.Timing.TurnTimeout, defaults.Timing.TurnTimeout)
	fill(&c.Timing.TurnTimeoutWarning, defaults.Timing.TurnTimeoutWarning)
	fill(&c.Timing.WarningTick, defaults.Timing.WarningTick)
	fill(&c.Timing.PointFreeze, defaults.Timing.PointFreeze)
	fill(&c.Timing.PenaltyFreeze, defaults.Timing.PenaltyFreeze)
	fill(&c.Timing.FreezeTick, defaults.Timing.FreezeTick)
	fill(&c.Timing.TableDelay, defaults.Timing.TableDelay)
	fill(&c.Log.Level, defaults.Log.Level)
}

// Humans returns the number of human players
func (c *Config) Humans() int {
	if c.Game.HumanPlayers == nil {
		return 0
	}
	return *c.Game.HumanPlayers
}

// SetHumans overrides the number of human players
func (c *Config) SetHumans(n int) {
	c.Game.HumanPlayers = &n
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// GameConfig converts the file representation into the engine configuration
func (c *Config) GameConfig() (game.Config, error) {
	var errs []error
	duration := func(name, value string) time.Duration {
		d, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("timing.%s: %w", name, err))
		}
		return d
	}

	cfg := game.Config{
		Players:      c.Game.Players,
		HumanPlayers: c.Humans(),
		TableSize:    c.Game.TableSize,
		Rules: deck.Rules{
			FeatureSize:  c.Game.FeatureSize,
			FeatureCount: c.Game.FeatureCount,
		},
		TurnTimeout:        duration("turn_timeout", c.Timing.TurnTimeout),
		TurnTimeoutWarning: duration("turn_timeout_warning", c.Timing.TurnTimeoutWarning),
		WarningTick:        duration("warning_tick", c.Timing.WarningTick),
		PointFreeze:        duration("point_freeze", c.Timing.PointFreeze),
		PenaltyFreeze:      duration("penalty_freeze", c.Timing.PenaltyFreeze),
		FreezeTick:         duration("freeze_tick", c.Timing.FreezeTick),
		TableDelay:         duration("table_delay", c.Timing.TableDelay),
		Hints:              c.Game.Hints,
	}
	if err := errors.Join(errs...); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}

	cfg, err := c.GameConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
