package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/setgame/internal/deck"
	"github.com/lox/setgame/internal/randutil"
)

// Phase is the part of the game loop the dealer is in.
type Phase int32

const (
	PhaseStarting Phase = iota
	PhaseDealing
	PhaseTimedPlay
	PhaseCollecting
	PhaseAnnouncing
	PhaseShuttingDown
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseDealing:
		return "dealing"
	case PhaseTimedPlay:
		return "timed-play"
	case PhaseCollecting:
		return "collecting"
	case PhaseAnnouncing:
		return "announcing"
	case PhaseShuttingDown:
		return "shutting-down"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Result is the outcome of a finished game.
type Result struct {
	Scores  []int
	Winners []int
}

// Dealer owns the deck and the round timer. It deals, adjudicates claims one
// at a time, reshuffles when a round times out and ends the game once no set
// can be formed from the cards left in play.
type Dealer struct {
	cfg     Config
	rules   deck.Rules
	table   *Table
	players []*Player
	deck    *deck.Deck

	display Display
	clock   quartz.Clock
	logger  *log.Logger

	deadline time.Time
	// exhausted is set once no set exists among the cards in the deck and on
	// the table. It only changes when an accepted claim takes cards out of
	// play, so it is recomputed then rather than every tick.
	exhausted bool
	phase     atomic.Int32

	mu         sync.Mutex
	cancel     context.CancelFunc
	terminated bool
}

// NewDealer creates the table, the deck and every player for cfg. rng seeds
// the deck and the input generators of computer players.
func NewDealer(cfg Config, display Display, clock quartz.Clock, rng *rand.Rand, logger *log.Logger) (*Dealer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if display == nil {
		display = NullDisplay{}
	}

	table := NewTable(cfg, display, clock, logger)
	players := make([]*Player, cfg.Players)
	for id := range players {
		human := id < cfg.HumanPlayers
		var playerRNG *rand.Rand
		if !human {
			playerRNG = randutil.New(rng.Int64())
		}
		players[id] = NewPlayer(id, human, table, cfg, display, clock, playerRNG, logger)
	}

	return &Dealer{
		cfg:     cfg,
		rules:   cfg.Rules,
		table:   table,
		players: players,
		deck:    deck.New(cfg.Rules, rng),
		display: display,
		clock:   clock,
		logger:  logger.WithPrefix("dealer"),
	}, nil
}

// Table returns the shared table.
func (d *Dealer) Table() *Table { return d.table }

// Players returns the players in id order.
func (d *Dealer) Players() []*Player { return d.players }

// Phase returns the current phase of the game loop.
func (d *Dealer) Phase() Phase { return Phase(d.phase.Load()) }

func (d *Dealer) setPhase(p Phase) {
	d.phase.Store(int32(p))
	d.logger.Debug("Phase", "phase", p)
}

// OnInput forwards a key press to a player. Unknown players are ignored.
func (d *Dealer) OnInput(player, slot int) {
	if player < 0 || player >= len(d.players) {
		return
	}
	d.players[player].OnInput(slot)
}

// Terminate asks the game to end. Run still announces the winners and shuts
// the players down before it returns.
func (d *Dealer) Terminate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.terminated = true
	if d.cancel != nil {
		d.cancel()
	}
}

// Run plays the game until no set is left or ctx is cancelled, and returns
// the final scores. All player goroutines have exited when Run returns.
func (d *Dealer) Run(ctx context.Context) Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	d.cancel = cancel
	if d.terminated {
		cancel()
	}
	d.mu.Unlock()

	d.logger.Info("Dealer starting", "players", len(d.players), "deck", d.deck.Len())
	d.startPlayers(ctx)

	d.exhausted = !d.rules.HasSet(d.cardsInPlay())
	for !d.shouldFinish(ctx) {
		d.setPhase(PhaseDealing)
		d.placeCardsOnTable()

		d.setPhase(PhaseTimedPlay)
		d.timerLoop(ctx)
		d.updateCountdown()
		d.drainClaims()

		d.setPhase(PhaseCollecting)
		d.removeAllCardsFromTable()
	}

	d.setPhase(PhaseAnnouncing)
	result := d.announceWinners()

	d.setPhase(PhaseShuttingDown)
	d.stopPlayers()

	d.setPhase(PhaseFinished)
	d.logger.Info("Dealer terminated", "winners", result.Winners)
	return result
}

// startPlayers brings players up one at a time, each only after the previous
// one reported ready. Players get a context that outlives ctx so that they
// are stopped by stopPlayers, in order, and not all at once.
func (d *Dealer) startPlayers(ctx context.Context) {
	playerCtx := context.WithoutCancel(ctx)
	for _, p := range d.players {
		p.Start(playerCtx)
		<-p.Ready()
	}
}

// stopPlayers terminates players in reverse start order.
func (d *Dealer) stopPlayers() {
	for _, p := range slices.Backward(d.players) {
		p.Terminate()
	}
}

func (d *Dealer) shouldFinish(ctx context.Context) bool {
	return ctx.Err() != nil || d.exhausted
}

// cardsInPlay returns the deck together with the cards on the table.
func (d *Dealer) cardsInPlay() []deck.Card {
	return append(d.deck.Cards(), d.table.Cards()...)
}

// timerLoop runs one round until its deadline passes, the game is
// terminated, or no set is left in play.
func (d *Dealer) timerLoop(ctx context.Context) {
	for ctx.Err() == nil && d.clock.Now().Before(d.deadline) && !d.exhausted {
		d.sleepUntilWokenOrTimeout(ctx)
		d.updateCountdown()
		d.removeClaimedCards()
		d.placeCardsOnTable()
	}
}

// sleepUntilWokenOrTimeout waits until the countdown reaches its next whole
// second, or for one warning tick inside the warning window. A queued claim
// wakes it early.
func (d *Dealer) sleepUntilWokenOrTimeout(ctx context.Context) {
	timer := d.clock.NewTimer(d.nextWait(), "dealer", "tick")
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-d.table.Claims():
	case <-timer.C:
	}
}

func (d *Dealer) nextWait() time.Duration {
	remaining := d.clock.Until(d.deadline)
	if remaining <= d.cfg.TurnTimeoutWarning {
		return d.cfg.WarningTick
	}

	wait := remaining - remaining.Truncate(time.Second)
	if wait == 0 {
		wait = time.Second
	}
	// Wake exactly when the warning window opens.
	if untilWarning := remaining - d.cfg.TurnTimeoutWarning; untilWarning < wait {
		wait = untilWarning
	}
	return wait
}

// resetTimer starts a fresh round deadline.
func (d *Dealer) resetTimer() {
	d.deadline = d.clock.Now().Add(d.cfg.TurnTimeout)
	d.display.SetCountdown(d.cfg.TurnTimeout, false)
}

// updateCountdown publishes the time left in the round.
func (d *Dealer) updateCountdown() {
	remaining := max(d.clock.Until(d.deadline), 0)
	d.display.SetCountdown(remaining, remaining <= d.cfg.TurnTimeoutWarning)
}

// placeCardsOnTable fills empty slots from the deck. The round timer restarts
// whenever at least one card was dealt.
func (d *Dealer) placeCardsOnTable() {
	t := d.table
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.countCardsLocked() >= t.Size() {
		return
	}

	placed := 0
	for slot := range t.Size() {
		if t.occupied[slot] {
			continue
		}
		card, ok := d.deck.Draw()
		if !ok {
			break
		}
		t.placeCardLocked(card, slot)
		placed++
	}
	if placed == 0 {
		return
	}

	d.resetTimer()
	d.logger.Info("Dealt cards", "placed", placed, "onTable", t.countCardsLocked(), "deck", d.deck.Len())
	if d.cfg.Hints {
		for _, h := range t.hintsLocked() {
			d.logger.Info("Hint: set found", "slots", h.Slots, "features", h.Features)
		}
	}
}

// drainClaims adjudicates the claims still queued when a round ends, so no
// player carries a pending claim into a table it never saw. Each player can
// be queued at most once, which bounds the work.
func (d *Dealer) drainClaims() {
	for range d.players {
		if !d.removeClaimedCards() {
			return
		}
	}
}

// removeClaimedCards adjudicates the oldest queued claim and reports whether
// there was one.
func (d *Dealer) removeClaimedCards() bool {
	t := d.table
	t.mu.Lock()
	defer t.mu.Unlock()

	id, ok := t.popClaimLocked()
	if !ok {
		return false
	}
	claimant := d.players[id]

	cards := t.cardsWithTokensLocked(id)
	if len(cards) != d.rules.FeatureSize {
		d.logger.Debug("Stale claim released", "player", id, "cards", len(cards))
		claimant.deliver(VerdictNone)
		return true
	}

	if !d.rules.IsSet(cards) {
		d.logger.Info("Claim rejected", "player", id, "cards", cards)
		claimant.deliver(VerdictPenalty)
		return true
	}

	slots := slices.Clone(t.tokens[id])
	claimant.score.Add(1)
	d.logger.Info("Claim accepted", "player", id, "slots", slots, "score", claimant.Score())

	for _, other := range d.players {
		if other == claimant {
			continue
		}
		for _, slot := range slots {
			t.removeTokenLocked(other.id, slot)
		}
		if len(t.tokens[other.id]) < d.rules.FeatureSize && t.withdrawClaimLocked(other.id) {
			d.logger.Debug("Claim withdrawn", "player", other.id)
			other.deliver(VerdictNone)
		}
		other.ClearActions()
	}

	for _, slot := range slots {
		t.removeCardLocked(slot)
	}
	d.exhausted = !d.rules.HasSet(append(d.deck.Cards(), t.cardsLocked()...))

	claimant.deliver(VerdictPoint)
	return true
}

// removeAllCardsFromTable returns every card on the table to the deck and
// shuffles it.
func (d *Dealer) removeAllCardsFromTable() {
	t := d.table
	t.mu.Lock()
	defer t.mu.Unlock()

	for slot := range t.Size() {
		if card, ok := t.removeCardLocked(slot); ok {
			d.deck.Add(card)
		}
	}
	d.deck.Shuffle()
	d.logger.Debug("Cards collected", "deck", d.deck.Len())
}

// announceWinners publishes the final scores and every player sharing the
// top score.
func (d *Dealer) announceWinners() Result {
	result := Result{Scores: make([]int, len(d.players))}

	best := -1
	for i, p := range d.players {
		score := p.Score()
		result.Scores[i] = score
		d.display.SetScore(p.id, score)
		switch {
		case score > best:
			best = score
			result.Winners = []int{p.id}
		case score == best:
			result.Winners = append(result.Winners, p.id)
		}
	}

	d.display.AnnounceWinners(result.Winners)
	d.logger.Info("Winners announced", "winners", result.Winners, "scores", result.Scores)
	return result
}
