package game

import (
	"time"

	"github.com/lox/setgame/internal/deck"
)

// Display receives every change that should become visible to the people
// watching the game. Implementations must be safe for concurrent use: the
// dealer and each player call into it from their own goroutines, and table
// notifications are delivered while the table lock is held, so
// implementations must not call back into the Table.
type Display interface {
	// SetCountdown shows the time left in the current round. warn is true
	// once the round has entered its warning window.
	SetCountdown(remaining time.Duration, warn bool)

	PlaceCard(card deck.Card, slot int)
	RemoveCard(slot int)

	PlaceToken(player, slot int)
	RemoveToken(player, slot int)

	// RemoveAllTokens clears every player's token from a slot.
	RemoveAllTokens(slot int)

	SetScore(player, score int)

	// SetFreeze shows how long a player stays frozen. Zero ends the freeze.
	SetFreeze(player int, remaining time.Duration)

	AnnounceWinners(players []int)
}

// NullDisplay is a no-op implementation.
type NullDisplay struct{}

func (NullDisplay) SetCountdown(time.Duration, bool) {}
func (NullDisplay) PlaceCard(deck.Card, int)         {}
func (NullDisplay) RemoveCard(int)                   {}
func (NullDisplay) PlaceToken(int, int)              {}
func (NullDisplay) RemoveToken(int, int)             {}
func (NullDisplay) RemoveAllTokens(int)              {}
func (NullDisplay) SetScore(int, int)                {}
func (NullDisplay) SetFreeze(int, time.Duration)     {}
func (NullDisplay) AnnounceWinners([]int)            {}

// MultiDisplay fans out every call to several displays in order.
type MultiDisplay struct {
	displays []Display
}

// NewMultiDisplay builds a composite display, pruning nil entries. It returns
// a NullDisplay when nothing is left and the sole display when only one is.
func NewMultiDisplay(displays ...Display) Display {
	filtered := make([]Display, 0, len(displays))
	for _, d := range displays {
		if d != nil {
			filtered = append(filtered, d)
		}
	}

	switch len(filtered) {
	case 0:
		return NullDisplay{}
	case 1:
		return filtered[0]
	default:
		return &MultiDisplay{displays: filtered}
	}
}

func (m *MultiDisplay) SetCountdown(remaining time.Duration, warn bool) {
	for _, d := range m.displays {
		d.SetCountdown(remaining, warn)
	}
}

func (m *MultiDisplay) PlaceCard(card deck.Card, slot int) {
	for _, d := range m.displays {
		d.PlaceCard(card, slot)
	}
}

func (m *MultiDisplay) RemoveCard(slot int) {
	for _, d := range m.displays {
		d.RemoveCard(slot)
	}
}

func (m *MultiDisplay) PlaceToken(player, slot int) {
	for _, d := range m.displays {
		d.PlaceToken(player, slot)
	}
}

func (m *MultiDisplay) RemoveToken(player, slot int) {
	for _, d := range m.displays {
		d.RemoveToken(player, slot)
	}
}

func (m *MultiDisplay) RemoveAllTokens(slot int) {
	for _, d := range m.displays {
		d.RemoveAllTokens(slot)
	}
}

func (m *MultiDisplay) SetScore(player, score int) {
	for _, d := range m.displays {
		d.SetScore(player, score)
	}
}

func (m *MultiDisplay) SetFreeze(player int, remaining time.Duration) {
	for _, d := range m.displays {
		d.SetFreeze(player, remaining)
	}
}

func (m *MultiDisplay) AnnounceWinners(players []int) {
	for _, d := range m.displays {
		d.AnnounceWinners(players)
	}
}
