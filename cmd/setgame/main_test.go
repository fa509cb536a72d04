package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lox/setgame/internal/config"
	"github.com/lox/setgame/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name       string
		cli        CLI
		wantPlay   int
		wantHumans int
		wantSeed   int64
		wantLevel  string
	}{
		{
			name:       "no overrides",
			cli:        CLI{Humans: -1},
			wantPlay:   2,
			wantHumans: 2,
			wantLevel:  "info",
		},
		{
			name:       "more players keeps humans",
			cli:        CLI{Players: 4, Humans: -1, Seed: 7, LogLevel: "debug"},
			wantPlay:   4,
			wantHumans: 2,
			wantSeed:   7,
			wantLevel:  "debug",
		},
		{
			name:       "headless has no humans",
			cli:        CLI{Players: 3, Humans: 2, Headless: true},
			wantPlay:   3,
			wantHumans: 0,
			wantLevel:  "info",
		},
		{
			name:       "humans capped by players",
			cli:        CLI{Players: 1, Humans: -1},
			wantPlay:   1,
			wantHumans: 1,
			wantLevel:  "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			require.NoError(t, tt.cli.apply(cfg))

			require.NoError(t, cfg.Validate())
			assert.Equal(t, tt.wantPlay, cfg.Game.Players)
			assert.Equal(t, tt.wantHumans, cfg.Humans())
			assert.Equal(t, tt.wantSeed, cfg.Game.Seed)
			assert.Equal(t, tt.wantLevel, cfg.Log.Level)
		})
	}
}

func TestApplyRejectsHumansWithoutKeys(t *testing.T) {
	cfg := config.DefaultConfig()
	cli := CLI{Players: 4, Humans: 3}

	err := cli.apply(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 2 human players")

	// Headless games have no humans at all.
	cfg = config.DefaultConfig()
	cli.Headless = true
	require.NoError(t, cli.apply(cfg))
	assert.Zero(t, cfg.Humans())
}

func TestFormatResult(t *testing.T) {
	out := formatResult(game.Result{Scores: []int{2, 5, 5}, Winners: []int{1, 2}})
	assert.Equal(t, "Player 0: 2\nPlayer 1: 5 (winner)\nPlayer 2: 5 (winner)\n", out)
}

func TestNewSummary(t *testing.T) {
	id := uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057")
	sum := newSummary(id, 42, game.Result{Scores: []int{1, 0}, Winners: []int{0}})

	assert.Equal(t, summary{
		Game:    "01890a5d-ac96-774b-bcce-b302099a8057",
		Seed:    42,
		Scores:  []int{1, 0},
		Winners: []int{0},
	}, sum)
}
