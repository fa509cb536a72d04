package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/setgame/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setgame.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	gameCfg, err := cfg.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), gameCfg)
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := writeConfig(t, `
game {
  players = 4
  hints   = true
  seed    = 99
}

timing {
  turn_timeout   = "30s"
  penalty_freeze = "1500ms"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, 2, cfg.Humans(), "default humans, rest are computer players")
	assert.Equal(t, "info", cfg.Log.Level)

	gameCfg, err := cfg.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, 4, gameCfg.Players)
	assert.Equal(t, 12, gameCfg.TableSize)
	assert.True(t, gameCfg.Hints)
	assert.Equal(t, 30*time.Second, gameCfg.TurnTimeout)
	assert.Equal(t, 1500*time.Millisecond, gameCfg.PenaltyFreeze)
	assert.Equal(t, 5*time.Second, gameCfg.TurnTimeoutWarning)
}

func TestLoadConfigExplicitZeroHumans(t *testing.T) {
	path := writeConfig(t, `
game {
  players       = 3
  human_players = 0
}

log {
  level = "debug"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Humans())

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestLoadConfigSingleHuman(t *testing.T) {
	path := writeConfig(t, `
game {
  players = 1
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Humans(), "default humans are capped by the player count")
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `game {`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse HCL file")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `game { colour = "red" }`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode HCL")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad duration",
			mutate:  func(c *Config) { c.Timing.FreezeTick = "soon" },
			wantErr: "timing.freeze_tick",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "invalid log level",
		},
		{
			name:    "too many humans",
			mutate:  func(c *Config) { c.SetHumans(5) },
			wantErr: "human players",
		},
		{
			name:    "table smaller than a set",
			mutate:  func(c *Config) { c.Game.TableSize = 2 },
			wantErr: "table size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
