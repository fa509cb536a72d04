package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/setgame/internal/deck"
	"github.com/lox/setgame/internal/game"
)

type (
	countdownMsg struct {
		remaining time.Duration
		warn      bool
	}
	placeCardMsg struct {
		card deck.Card
		slot int
	}
	removeCardMsg      struct{ slot int }
	placeTokenMsg      struct{ player, slot int }
	removeTokenMsg     struct{ player, slot int }
	removeAllTokensMsg struct{ slot int }
	scoreMsg           struct{ player, score int }
	freezeMsg          struct {
		player    int
		remaining time.Duration
	}
	winnersMsg struct{ players []int }
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

var _ game.Display = (*Display)(nil)

// Display turns game display calls into Bubble Tea messages. Send returns
// once the program has accepted the message, or immediately after the
// program exited.
type Display struct {
	sender Sender
}

// NewDisplay creates a display feeding sender.
func NewDisplay(sender Sender) *Display {
	return &Display{sender: sender}
}

func (d *Display) SetCountdown(remaining time.Duration, warn bool) {
	d.sender.Send(countdownMsg{remaining: remaining, warn: warn})
}

func (d *Display) PlaceCard(card deck.Card, slot int) {
	d.sender.Send(placeCardMsg{card: card, slot: slot})
}

func (d *Display) RemoveCard(slot int) {
	d.sender.Send(removeCardMsg{slot: slot})
}

func (d *Display) PlaceToken(player, slot int) {
	d.sender.Send(placeTokenMsg{player: player, slot: slot})
}

func (d *Display) RemoveToken(player, slot int) {
	d.sender.Send(removeTokenMsg{player: player, slot: slot})
}

func (d *Display) RemoveAllTokens(slot int) {
	d.sender.Send(removeAllTokensMsg{slot: slot})
}

func (d *Display) SetScore(player, score int) {
	d.sender.Send(scoreMsg{player: player, score: score})
}

func (d *Display) SetFreeze(player int, remaining time.Duration) {
	d.sender.Send(freezeMsg{player: player, remaining: remaining})
}

func (d *Display) AnnounceWinners(players []int) {
	d.sender.Send(winnersMsg{players: append([]int(nil), players...)})
}
