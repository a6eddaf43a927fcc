package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/game/card"
	"github.com/palemoky/card-showdown/internal/protocol"
)

func TestCardRoundTrip(t *testing.T) {
	t.Parallel()

	original := card.Card{Rank: card.Rank10, Suit: card.SuitCaret}

	// Card -> Info -> Card
	info := CardToInfo(original)
	assert.Equal(t, protocol.CardInfo{Rank: 10, Suit: 3}, info)

	result, err := InfoToCard(info)
	require.NoError(t, err)
	assert.Equal(t, original, result)
}

func TestCardsRoundTrip(t *testing.T) {
	t.Parallel()

	originals := []card.Card(card.NewDeck())

	infos := CardsToInfos(originals)
	results, err := InfosToCards(infos)
	require.NoError(t, err)
	assert.Equal(t, originals, results)
}

func TestInfoToCard_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info protocol.CardInfo
	}{
		{"zero value", protocol.CardInfo{}},
		{"rank too high", protocol.CardInfo{Rank: 15, Suit: 1}},
		{"suit too high", protocol.CardInfo{Rank: 5, Suit: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := InfoToCard(tt.info)
			assert.ErrorIs(t, err, apperrors.ErrCorruptRecord)
		})
	}

	_, err := InfosToCards([]protocol.CardInfo{{Rank: 2, Suit: 1}, {}})
	assert.ErrorIs(t, err, apperrors.ErrCorruptRecord)
}

func TestEmptyCards(t *testing.T) {
	t.Parallel()

	infos := CardsToInfos([]card.Card{})
	assert.Empty(t, infos)

	cards, err := InfosToCards([]protocol.CardInfo{})
	require.NoError(t, err)
	assert.Empty(t, cards)
}
