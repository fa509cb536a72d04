package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Each human player gets a block of keys, one per slot, in table order.
var playerLayouts = [][]string{
	{
		"q", "w", "e", "r",
		"a", "s", "d", "f",
		"z", "x", "c", "v",
	},
	{
		"u", "i", "o", "p",
		"j", "k", "l", ";",
		"m", ",", ".", "/",
	},
}

// MaxHumans is the number of human players that get a block of keys.
func MaxHumans() int {
	return len(playerLayouts)
}

// KeyMap binds keys to slots for each human player.
type KeyMap struct {
	Quit    key.Binding
	Players [][]key.Binding
}

// DefaultKeyMap builds bindings for up to len(playerLayouts) humans. Slots
// past the end of a layout have no key.
func DefaultKeyMap(humans, tableSize int) KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}

	for player := range min(humans, len(playerLayouts)) {
		layout := playerLayouts[player]
		bindings := make([]key.Binding, 0, tableSize)
		for slot := range min(tableSize, len(layout)) {
			k := layout[slot]
			bindings = append(bindings, key.NewBinding(
				key.WithKeys(k),
				key.WithHelp(k, fmt.Sprintf("player %d slot %d", player, slot)),
			))
		}
		km.Players = append(km.Players, bindings)
	}
	return km
}

// Lookup returns the player and slot bound to msg.
func (km KeyMap) Lookup(msg tea.KeyMsg) (player, slot int, ok bool) {
	for player, bindings := range km.Players {
		for slot, b := range bindings {
			if key.Matches(msg, b) {
				return player, slot, true
			}
		}
	}
	return 0, 0, false
}

// SlotKey returns the key of player's binding for slot, or "" if none.
func (km KeyMap) SlotKey(player, slot int) string {
	if player >= len(km.Players) || slot >= len(km.Players[player]) {
		return ""
	}
	return km.Players[player][slot].Help().Key
}
