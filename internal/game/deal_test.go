package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/game/card"
	"github.com/palemoky/card-showdown/internal/randutil"
)

func TestDistribute_StandardDeckIsPartition(t *testing.T) {
	t.Parallel()

	deck := card.Shuffle(card.NewDeck(), randutil.New(11))
	players := NewPlayers()

	hands, err := Distribute(deck, players)
	require.NoError(t, err)
	require.Len(t, hands, PlayerCount)

	seen := make(map[card.Card]int)
	for i, ph := range hands {
		assert.Same(t, players[i], ph.Player)
		assert.Len(t, ph.Hand, 13)
		for _, c := range ph.Hand {
			seen[c]++
		}
	}
	assert.Len(t, seen, card.DeckSize)
	for c, n := range seen {
		assert.Equal(t, 1, n, "card %s dealt %d times", c, n)
	}
}

func TestDistribute_RoundRobinOrder(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()[:8]
	hands, err := Distribute(deck, NewPlayers("a", "b", "c", "d"))
	require.NoError(t, err)

	for i, c := range deck {
		assert.Equal(t, c, hands[i%4].Hand[i/4])
	}
}

func TestDistribute_UnevenLeftoverGoesToEarliestPlayers(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()[:10]
	hands, err := Distribute(deck, NewPlayers("a", "b", "c"))
	require.NoError(t, err)

	sizes := make([]int, len(hands))
	for i, ph := range hands {
		sizes[i] = len(ph.Hand)
	}
	assert.Equal(t, []int{4, 3, 3}, sizes)
}

func TestDistribute_DoesNotMutateDeck(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()
	_, err := Distribute(deck, NewPlayers())
	require.NoError(t, err)
	assert.Equal(t, card.NewDeck(), deck)
}

func TestDistribute_InvalidPlayers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		players []*Player
	}{
		{"no players", nil},
		{"empty slice", []*Player{}},
		{"nil player", []*Player{NewPlayer("a"), nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hands, err := Distribute(card.NewDeck(), tt.players)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			assert.Nil(t, hands)
		})
	}
}

func TestDistribute_FewerCardsThanPlayers(t *testing.T) {
	t.Parallel()

	hands, err := Distribute(card.NewDeck()[:2], NewPlayers())
	require.NoError(t, err)
	assert.Len(t, hands[0].Hand, 1)
	assert.Len(t, hands[1].Hand, 1)
	assert.Empty(t, hands[2].Hand)
	assert.Empty(t, hands[3].Hand)

	// 评估阶段拒绝空手牌
	_, err = Evaluate(hands)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestGather_InvertsDistribute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		players int
	}{
		{"standard", card.DeckSize, 4},
		{"uneven", 10, 3},
		{"single player", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deck := card.Shuffle(card.NewDeck(), randutil.New(int64(tt.size)))[:tt.size]
			names := make([]string, tt.players)
			hands, err := Distribute(deck, NewPlayers(names...))
			require.NoError(t, err)
			assert.Equal(t, deck, Gather(hands))
		})
	}
}

func TestHandsByPlayer_HandOf(t *testing.T) {
	t.Parallel()

	players := NewPlayers()
	hands, err := Distribute(card.NewDeck(), players)
	require.NoError(t, err)

	hand, ok := hands.HandOf(players[2].ID)
	require.True(t, ok)
	assert.Equal(t, hands[2].Hand, hand)

	_, ok = hands.HandOf("missing")
	assert.False(t, ok)
}
