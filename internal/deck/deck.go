package deck

import (
	rand "math/rand/v2"
)

// Deck holds the cards that are not currently on the table. Order only
// matters for Shuffle; Draw always picks uniformly at random.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full deck for the given rules.
func New(rules Rules, rng *rand.Rand) *Deck {
	size := rules.DeckSize()
	d := &Deck{
		cards: make([]Card, 0, size),
		rng:   rng,
	}
	for c := range size {
		d.cards = append(d.cards, Card(c))
	}
	return d
}

// NewFromCards creates a deck holding exactly the given cards.
func NewFromCards(cards []Card, rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   rng,
	}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns a uniformly random card.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return 0, false
	}

	idx := d.rng.IntN(len(d.cards))
	card := d.cards[idx]
	last := len(d.cards) - 1
	d.cards[idx] = d.cards[last]
	d.cards = d.cards[:last]
	return card, true
}

// Add returns cards to the deck.
func (d *Deck) Add(cards ...Card) {
	d.cards = append(d.cards, cards...)
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the cards in deck order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
