package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckSize(t *testing.T) {
	tests := []struct {
		rules Rules
		want  int
	}{
		{DefaultRules(), 81},
		{Rules{FeatureSize: 3, FeatureCount: 3}, 27},
		{Rules{FeatureSize: 4, FeatureCount: 2}, 16},
		{Rules{FeatureSize: 2, FeatureCount: 1}, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rules.DeckSize(), "rules %+v", tt.rules)
	}
}

func TestFeaturesAreDeterministic(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, []int{0, 0, 0, 0}, rules.Features(0))
	assert.Equal(t, []int{1, 0, 0, 0}, rules.Features(1))
	assert.Equal(t, []int{0, 1, 0, 0}, rules.Features(3))
	assert.Equal(t, []int{2, 2, 2, 2}, rules.Features(80))

	for c := Card(0); int(c) < rules.DeckSize(); c++ {
		got, err := rules.CardFromFeatures(rules.Features(c))
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

func TestCardFromFeaturesRejectsBadInput(t *testing.T) {
	rules := DefaultRules()

	_, err := rules.CardFromFeatures([]int{0, 0, 0})
	assert.Error(t, err)

	_, err = rules.CardFromFeatures([]int{0, 3, 0, 0})
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, "0000", rules.Format(0))
	assert.Equal(t, "2100", rules.Format(5))
}
