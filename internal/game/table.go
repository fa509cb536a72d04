package game

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/setgame/internal/deck"
)

const noSlot = -1

// Table is the state every player can see: which card lies in which slot,
// where each player's tokens are, and who is waiting for a verdict.
//
// slotToCard and cardToSlot are kept as exact inverses. A single mutex guards
// them together with the token lists and the claim queue; methods ending in
// Locked expect the caller to hold it.
type Table struct {
	mu sync.Mutex

	rules      deck.Rules
	slotToCard []deck.Card
	occupied   []bool
	cardToSlot []int

	tokens [][]int
	claims []int

	claimSignal chan struct{}

	display Display
	clock   quartz.Clock
	delay   time.Duration
	logger  *log.Logger
}

// Hint describes one set currently on the table.
type Hint struct {
	Slots    []int
	Cards    []deck.Card
	Features [][]int
}

// NewTable creates an empty table for cfg.
func NewTable(cfg Config, display Display, clock quartz.Clock, logger *log.Logger) *Table {
	if display == nil {
		display = NullDisplay{}
	}

	cardToSlot := make([]int, cfg.DeckSize())
	for i := range cardToSlot {
		cardToSlot[i] = noSlot
	}

	return &Table{
		rules:       cfg.Rules,
		slotToCard:  make([]deck.Card, cfg.TableSize),
		occupied:    make([]bool, cfg.TableSize),
		cardToSlot:  cardToSlot,
		tokens:      make([][]int, cfg.Players),
		claims:      make([]int, 0, cfg.Players),
		claimSignal: make(chan struct{}, 1),
		display:     display,
		clock:       clock,
		delay:       cfg.TableDelay,
		logger:      logger.WithPrefix("table"),
	}
}

// Size returns the number of slots.
func (t *Table) Size() int {
	return len(t.slotToCard)
}

// Claims returns a channel that receives a value whenever a claim is queued.
// Signals coalesce, so one receive may stand for several queued claims.
func (t *Table) Claims() <-chan struct{} {
	return t.claimSignal
}

// PlaceCard puts card into an empty slot.
func (t *Table) PlaceCard(card deck.Card, slot int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.placeCardLocked(card, slot)
}

func (t *Table) placeCardLocked(card deck.Card, slot int) {
	if t.occupied[slot] {
		panic(fmt.Sprintf("table: slot %d already holds card %d", slot, t.slotToCard[slot]))
	}
	if t.cardToSlot[card] != noSlot {
		panic(fmt.Sprintf("table: card %d already in slot %d", card, t.cardToSlot[card]))
	}

	t.pause()
	t.cardToSlot[card] = slot
	t.slotToCard[slot] = card
	t.occupied[slot] = true

	t.display.PlaceCard(card, slot)
}

// RemoveCard clears a slot and purges every token placed on it. It reports
// false when the slot was already empty.
func (t *Table) RemoveCard(slot int) (deck.Card, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeCardLocked(slot)
}

func (t *Table) removeCardLocked(slot int) (deck.Card, bool) {
	if slot < 0 || slot >= len(t.slotToCard) || !t.occupied[slot] {
		return 0, false
	}

	t.pause()
	card := t.slotToCard[slot]
	t.cardToSlot[card] = noSlot
	t.occupied[slot] = false

	for player := range t.tokens {
		t.tokens[player] = slices.DeleteFunc(t.tokens[player], func(s int) bool { return s == slot })
	}

	t.display.RemoveAllTokens(slot)
	t.display.RemoveCard(slot)
	return card, true
}

// pause sleeps for the configured table delay.
func (t *Table) pause() {
	if t.delay <= 0 {
		return
	}
	timer := t.clock.NewTimer(t.delay, "table", "delay")
	<-timer.C
}

// PlaceToken adds a token for player on slot. It is rejected when the slot is
// empty, already carries this player's token, or the player has no tokens
// left. When the token completes the player's set, the player is queued for
// a verdict before the lock is released and claimed is true.
func (t *Table) PlaceToken(player, slot int) (placed, claimed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if slot < 0 || slot >= len(t.slotToCard) || !t.occupied[slot] {
		return false, false
	}
	if len(t.tokens[player]) >= t.rules.FeatureSize || slices.Contains(t.tokens[player], slot) {
		return false, false
	}

	t.tokens[player] = append(t.tokens[player], slot)
	t.display.PlaceToken(player, slot)

	if len(t.tokens[player]) == t.rules.FeatureSize && t.enqueueClaimLocked(player) {
		return true, true
	}
	return true, false
}

// RemoveToken removes player's token from slot and reports whether there was
// one to remove.
func (t *Table) RemoveToken(player, slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeTokenLocked(player, slot)
}

func (t *Table) removeTokenLocked(player, slot int) bool {
	idx := slices.Index(t.tokens[player], slot)
	if idx < 0 {
		return false
	}
	t.tokens[player] = slices.Delete(t.tokens[player], idx, idx+1)
	t.display.RemoveToken(player, slot)
	return true
}

// Tokens returns the slots player currently has tokens on, in placement order.
func (t *Table) Tokens(player int) []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.tokens[player])
}

// CardsWithTokens resolves player's tokens to cards, skipping slots that have
// been emptied in the meantime.
func (t *Table) CardsWithTokens(player int) []deck.Card {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cardsWithTokensLocked(player)
}

func (t *Table) cardsWithTokensLocked(player int) []deck.Card {
	cards := make([]deck.Card, 0, len(t.tokens[player]))
	for _, slot := range t.tokens[player] {
		if t.occupied[slot] {
			cards = append(cards, t.slotToCard[slot])
		}
	}
	return cards
}

// CardAt returns the card in slot, if any.
func (t *Table) CardAt(slot int) (deck.Card, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if slot < 0 || slot >= len(t.slotToCard) || !t.occupied[slot] {
		return 0, false
	}
	return t.slotToCard[slot], true
}

// SlotOf returns the slot holding card, if it is on the table.
func (t *Table) SlotOf(card deck.Card) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.rules.Valid(card) || t.cardToSlot[card] == noSlot {
		return 0, false
	}
	return t.cardToSlot[card], true
}

// CountCards returns the number of cards on the table.
func (t *Table) CountCards() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countCardsLocked()
}

func (t *Table) countCardsLocked() int {
	n := 0
	for _, ok := range t.occupied {
		if ok {
			n++
		}
	}
	return n
}

// Cards returns the cards on the table in slot order.
func (t *Table) Cards() []deck.Card {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cardsLocked()
}

func (t *Table) cardsLocked() []deck.Card {
	cards := make([]deck.Card, 0, len(t.slotToCard))
	for slot, ok := range t.occupied {
		if ok {
			cards = append(cards, t.slotToCard[slot])
		}
	}
	return cards
}

// HasLegalSet reports whether the cards on the table contain a set.
func (t *Table) HasLegalSet() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rules.HasSet(t.cardsLocked())
}

// Hints lists every set on the table.
func (t *Table) Hints() []Hint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hintsLocked()
}

func (t *Table) hintsLocked() []Hint {
	sets := t.rules.FindSets(t.cardsLocked(), 0)
	hints := make([]Hint, 0, len(sets))
	for _, set := range sets {
		h := Hint{Cards: set}
		for _, card := range set {
			h.Slots = append(h.Slots, t.cardToSlot[card])
			h.Features = append(h.Features, t.rules.Features(card))
		}
		slices.Sort(h.Slots)
		hints = append(hints, h)
	}
	return hints
}

// enqueueClaimLocked queues player unless it is already waiting.
func (t *Table) enqueueClaimLocked(player int) bool {
	if slices.Contains(t.claims, player) {
		return false
	}
	t.claims = append(t.claims, player)
	t.logger.Debug("Claim queued", "player", player, "pending", len(t.claims))
	t.signalClaim()
	return true
}

func (t *Table) signalClaim() {
	select {
	case t.claimSignal <- struct{}{}:
	default:
	}
}

// PopClaim removes and returns the oldest queued claim.
func (t *Table) PopClaim() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.popClaimLocked()
}

func (t *Table) popClaimLocked() (int, bool) {
	if len(t.claims) == 0 {
		return 0, false
	}
	player := t.claims[0]
	t.claims = slices.Delete(t.claims, 0, 1)
	if len(t.claims) > 0 {
		// Keep the dealer awake while claims remain.
		t.signalClaim()
	}
	return player, true
}

// WithdrawClaim removes player from the claim queue.
func (t *Table) WithdrawClaim(player int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.withdrawClaimLocked(player)
}

func (t *Table) withdrawClaimLocked(player int) bool {
	idx := slices.Index(t.claims, player)
	if idx < 0 {
		return false
	}
	t.claims = slices.Delete(t.claims, idx, idx+1)
	return true
}

// ClaimPending reports whether player is queued for a verdict.
func (t *Table) ClaimPending(player int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.claims, player)
}

// PendingClaims returns the queued claims, oldest first.
func (t *Table) PendingClaims() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.claims)
}

// Validate checks the table invariants: the slot and card mappings are
// inverses, no player holds more than FeatureSize tokens or a token on an
// empty slot, and the claim queue holds each player at most once.
func (t *Table) Validate() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for slot, ok := range t.occupied {
		if !ok {
			continue
		}
		card := t.slotToCard[slot]
		if t.cardToSlot[card] != slot {
			return fmt.Errorf("slot %d holds card %d but card maps to slot %d", slot, card, t.cardToSlot[card])
		}
	}
	for card, slot := range t.cardToSlot {
		if slot == noSlot {
			continue
		}
		if !t.occupied[slot] || t.slotToCard[slot] != deck.Card(card) {
			return fmt.Errorf("card %d maps to slot %d which does not hold it", card, slot)
		}
	}

	for player, tokens := range t.tokens {
		if len(tokens) > t.rules.FeatureSize {
			return fmt.Errorf("player %d holds %d tokens", player, len(tokens))
		}
		for _, slot := range tokens {
			if !t.occupied[slot] {
				return fmt.Errorf("player %d has a token on empty slot %d", player, slot)
			}
		}
	}

	if len(t.claims) > len(t.tokens) {
		return fmt.Errorf("claim queue holds %d entries for %d players", len(t.claims), len(t.tokens))
	}
	seen := make(map[int]bool, len(t.claims))
	for _, player := range t.claims {
		if seen[player] {
			return fmt.Errorf("player %d queued twice", player)
		}
		seen[player] = true
	}
	return nil
}
