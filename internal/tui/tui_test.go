package tui

import (
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/setgame/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type press struct{ player, slot int }

type fakeInput struct {
	mu         sync.Mutex
	presses    []press
	terminated bool
}

func (f *fakeInput) OnInput(player, slot int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presses = append(f.presses, press{player, slot})
}

func (f *fakeInput) Terminate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terminated = true
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap(2, 12)
	require.Len(t, km.Players, 2)

	tests := []struct {
		key    rune
		player int
		slot   int
	}{
		{'q', 0, 0},
		{'r', 0, 3},
		{'a', 0, 4},
		{'v', 0, 11},
		{'u', 1, 0},
		{';', 1, 7},
		{'m', 1, 8},
		{'/', 1, 11},
	}
	for _, tt := range tests {
		player, slot, ok := km.Lookup(runeKey(tt.key))
		require.True(t, ok, "key %q", tt.key)
		assert.Equal(t, tt.player, player, "key %q", tt.key)
		assert.Equal(t, tt.slot, slot, "key %q", tt.key)
	}

	_, _, ok := km.Lookup(runeKey('y'))
	assert.False(t, ok)

	assert.Equal(t, "w", km.SlotKey(0, 1))
	assert.Empty(t, km.SlotKey(2, 0))
}

func TestDefaultKeyMapLimits(t *testing.T) {
	km := DefaultKeyMap(1, 6)
	require.Len(t, km.Players, 1)
	assert.Len(t, km.Players[0], 6)

	_, _, ok := km.Lookup(runeKey('d'))
	assert.False(t, ok, "slot 6 does not exist")
	_, _, ok = km.Lookup(runeKey('u'))
	assert.False(t, ok, "only one human")

	assert.Empty(t, DefaultKeyMap(0, 12).Players)
	assert.Len(t, DefaultKeyMap(MaxHumans()+1, 12).Players, MaxHumans(), "extra humans get no keys")
}

func TestTUIModelForwardsKeys(t *testing.T) {
	input := &fakeInput{}
	m := NewTUIModel(game.DefaultConfig(), input, quietLogger())

	_, cmd := m.Update(runeKey('e'))
	assert.Nil(t, cmd)
	_, cmd = m.Update(runeKey('k'))
	assert.Nil(t, cmd)
	m.Update(runeKey('y'))

	assert.Equal(t, []press{{0, 2}, {1, 5}}, input.presses)
	assert.False(t, input.terminated)
}

func TestTUIModelQuit(t *testing.T) {
	input := &fakeInput{}
	m := NewTUIModel(game.DefaultConfig(), input, quietLogger())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, input.terminated)
	assert.Empty(t, m.View())
}

func TestTUIModelTracksTable(t *testing.T) {
	m := NewTUIModel(game.DefaultConfig(), &fakeInput{}, quietLogger())

	m.Update(placeCardMsg{card: 5, slot: 3})
	m.Update(placeTokenMsg{player: 0, slot: 3})
	m.Update(placeTokenMsg{player: 1, slot: 3})
	assert.True(t, m.slots[3].present)
	assert.Equal(t, []int{0, 1}, m.slots[3].tokens)

	m.Update(removeTokenMsg{player: 0, slot: 3})
	assert.Equal(t, []int{1}, m.slots[3].tokens)

	m.Update(removeAllTokensMsg{slot: 3})
	assert.Empty(t, m.slots[3].tokens)

	m.Update(removeCardMsg{slot: 3})
	assert.False(t, m.slots[3].present)

	m.Update(countdownMsg{remaining: 4 * time.Second, warn: true})
	assert.True(t, m.warn)
	assert.Equal(t, 4*time.Second, m.countdown)
}

func TestTUIModelLogsScoresAndWinners(t *testing.T) {
	input := &fakeInput{}
	m := NewTUIModel(game.DefaultConfig(), input, quietLogger())

	m.Update(freezeMsg{player: 1, remaining: 3 * time.Second})
	m.Update(freezeMsg{player: 1, remaining: 2 * time.Second})
	m.Update(freezeMsg{player: 1, remaining: 0})
	m.Update(scoreMsg{player: 0, score: 1})
	m.Update(scoreMsg{player: 0, score: 1})
	m.Update(winnersMsg{players: []int{0, 1}})

	entries := m.Log()
	require.Len(t, entries, 3)
	assert.Contains(t, entries[0], "Player 1 frozen for 3s")
	assert.Contains(t, entries[1], "Player 0 scores (1)")
	assert.Contains(t, entries[2], "Tie between players 0, 1")
	assert.Contains(t, m.View(), "Game over")

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd, "any key exits once the game is over")
	assert.Empty(t, input.presses)
	assert.True(t, input.terminated)
}

func TestTUIModelView(t *testing.T) {
	m := NewTUIModel(game.DefaultConfig(), &fakeInput{}, quietLogger())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(placeCardMsg{card: 5, slot: 0})
	m.Update(placeTokenMsg{player: 1, slot: 0})
	m.Update(scoreMsg{player: 1, score: 2})

	view := m.View()
	assert.Contains(t, view, "SET")
	assert.Contains(t, view, "2100")
	assert.Contains(t, view, "P1")
	assert.Contains(t, view, "1m0s left")
}

func TestWinnersText(t *testing.T) {
	assert.Equal(t, "Player 2 wins!", winnersText([]int{2}))
	assert.Equal(t, "Tie between players 0, 1, 3", winnersText([]int{0, 1, 3}))
}
