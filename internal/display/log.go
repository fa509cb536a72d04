package display

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/setgame/internal/deck"
	"github.com/lox/setgame/internal/game"
)

var _ game.Display = (*LogDisplay)(nil)

// LogDisplay writes every display change to a logger. It backs headless runs
// where nobody watches a terminal.
type LogDisplay struct {
	logger *log.Logger
	rules  deck.Rules

	mu            sync.Mutex
	lastCountdown time.Duration
	lastWarn      bool
}

// NewLogDisplay creates a display logging through logger. Card features are
// formatted with rules.
func NewLogDisplay(logger *log.Logger, rules deck.Rules) *LogDisplay {
	return &LogDisplay{
		logger:        logger.WithPrefix("display"),
		rules:         rules,
		lastCountdown: -1,
	}
}

// SetCountdown logs once per whole second, and on every change of the
// warning state.
func (d *LogDisplay) SetCountdown(remaining time.Duration, warn bool) {
	seconds := remaining.Truncate(time.Second)

	d.mu.Lock()
	changed := seconds != d.lastCountdown || warn != d.lastWarn
	d.lastCountdown = seconds
	d.lastWarn = warn
	d.mu.Unlock()

	if !changed {
		return
	}
	if warn {
		d.logger.Warn("Countdown", "remaining", remaining.Round(time.Millisecond))
		return
	}
	d.logger.Debug("Countdown", "remaining", seconds)
}

func (d *LogDisplay) PlaceCard(card deck.Card, slot int) {
	d.logger.Debug("Card placed", "slot", slot, "card", card, "features", d.rules.Format(card))
}

func (d *LogDisplay) RemoveCard(slot int) {
	d.logger.Debug("Card removed", "slot", slot)
}

func (d *LogDisplay) PlaceToken(player, slot int) {
	d.logger.Debug("Token placed", "player", player, "slot", slot)
}

func (d *LogDisplay) RemoveToken(player, slot int) {
	d.logger.Debug("Token removed", "player", player, "slot", slot)
}

func (d *LogDisplay) RemoveAllTokens(slot int) {
	d.logger.Debug("Tokens cleared", "slot", slot)
}

func (d *LogDisplay) SetScore(player, score int) {
	d.logger.Info("Score", "player", player, "score", score)
}

func (d *LogDisplay) SetFreeze(player int, remaining time.Duration) {
	if remaining == 0 {
		d.logger.Debug("Player unfrozen", "player", player)
		return
	}
	d.logger.Debug("Player frozen", "player", player, "remaining", remaining)
}

func (d *LogDisplay) AnnounceWinners(players []int) {
	if len(players) == 1 {
		d.logger.Info("Winner", "player", players[0])
		return
	}
	d.logger.Info("Tie", "players", players)
}
