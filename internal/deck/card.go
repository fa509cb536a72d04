package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Card identifies a single card in the deck. The feature vector of a card is
// derived from its id alone, so the same id always describes the same card.
type Card int

// Rules describes the shape of the deck. Every card has FeatureCount features
// and every feature takes one of FeatureSize values. FeatureSize is also the
// number of cards (and tokens) that make up a set.
type Rules struct {
	FeatureSize  int
	FeatureCount int
}

// DefaultRules returns the classic 81 card deck with four features of three
// values each.
func DefaultRules() Rules {
	return Rules{FeatureSize: 3, FeatureCount: 4}
}

// DeckSize returns the number of distinct cards, FeatureSize^FeatureCount.
func (r Rules) DeckSize() int {
	size := 1
	for range r.FeatureCount {
		size *= r.FeatureSize
	}
	return size
}

// Valid reports whether the card id belongs to a deck with these rules.
func (r Rules) Valid(c Card) bool {
	return c >= 0 && int(c) < r.DeckSize()
}

// Features returns the feature vector of a card. Feature i is the i-th digit
// of the card id written in base FeatureSize, least significant digit first.
func (r Rules) Features(c Card) []int {
	features := make([]int, r.FeatureCount)
	r.featuresInto(c, features)
	return features
}

func (r Rules) featuresInto(c Card, dst []int) {
	v := int(c)
	for i := range dst {
		dst[i] = v % r.FeatureSize
		v /= r.FeatureSize
	}
}

// CardFromFeatures is the inverse of Features.
func (r Rules) CardFromFeatures(features []int) (Card, error) {
	if len(features) != r.FeatureCount {
		return 0, fmt.Errorf("expected %d features, got %d", r.FeatureCount, len(features))
	}
	id, mul := 0, 1
	for i, f := range features {
		if f < 0 || f >= r.FeatureSize {
			return 0, fmt.Errorf("feature %d out of range: %d", i, f)
		}
		id += f * mul
		mul *= r.FeatureSize
	}
	return Card(id), nil
}

// Format renders a card as its feature vector, e.g. "0120".
func (r Rules) Format(c Card) string {
	var sb strings.Builder
	for _, f := range r.Features(c) {
		sb.WriteString(strconv.Itoa(f))
	}
	return sb.String()
}
