package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/game"
	"github.com/palemoky/card-showdown/internal/protocol"
)

func playedRound(t *testing.T, seed int64) *game.Round {
	t.Helper()
	r := game.NewSeededRound(game.NewPlayers(), seed)
	_, err := r.Play()
	require.NoError(t, err)
	return r
}

func TestRoundToRecord(t *testing.T) {
	t.Parallel()

	r := playedRound(t, 5)
	playedAt := time.UnixMilli(1760000000000)

	rec, err := RoundToRecord(r, playedAt)
	require.NoError(t, err)

	assert.Equal(t, r.ID, rec.ID)
	assert.Equal(t, int64(5), rec.Seed)
	assert.Equal(t, playedAt.UnixMilli(), rec.PlayedAt)
	require.Len(t, rec.Players, game.PlayerCount)
	require.Len(t, rec.Hands, game.PlayerCount)
	for i, h := range rec.Hands {
		assert.Equal(t, r.Players[i].ID, h.PlayerID)
		assert.Len(t, h.Cards, 13)
	}
	require.NotNil(t, rec.Result)
	assert.Equal(t, r.Result.Winner.ID, rec.Result.WinnerID)
	assert.Equal(t, int(r.Result.Rank), rec.Result.Rank)
	assert.Equal(t, r.Result.Winner.Name, rec.PlayerName(rec.Result.WinnerID))
}

func TestRecordToRound_RoundTrip(t *testing.T) {
	t.Parallel()

	original := playedRound(t, 17)
	rec, err := RoundToRecord(original, time.Now())
	require.NoError(t, err)

	restored, err := RecordToRound(rec)
	require.NoError(t, err)

	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Seed, restored.Seed)
	assert.Equal(t, original.Players, restored.Players)
	assert.Equal(t, original.Deck, restored.Deck)
	assert.Equal(t, original.Hands, restored.Hands)
	assert.Equal(t, game.RoundEvaluated, restored.State)
	assert.Equal(t, *original.Result, *restored.Result)

	// 重建后的手牌重新评估结果一致
	again, err := game.Evaluate(restored.Hands)
	require.NoError(t, err)
	assert.Equal(t, original.Result.WinnerIndex, again.WinnerIndex)
}

func TestRoundToRecord_DealtWithoutResult(t *testing.T) {
	t.Parallel()

	r := game.NewSeededRound(game.NewPlayers(), 3)
	require.NoError(t, r.Shuffle())
	require.NoError(t, r.Deal())

	rec, err := RoundToRecord(r, time.Now())
	require.NoError(t, err)
	assert.Nil(t, rec.Result)

	restored, err := RecordToRound(rec)
	require.NoError(t, err)
	assert.Equal(t, game.RoundDealt, restored.State)
	assert.Nil(t, restored.Result)
}

func TestRoundToRecord_NotDealt(t *testing.T) {
	t.Parallel()

	_, err := RoundToRecord(game.NewSeededRound(game.NewPlayers(), 1), time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = RoundToRecord(nil, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestRecordToRound_Corrupt(t *testing.T) {
	t.Parallel()

	players := []protocol.PlayerInfo{{ID: "p1", Name: "A"}}

	tests := []struct {
		name string
		rec  *protocol.RoundRecord
	}{
		{
			name: "hand of unknown player",
			rec: &protocol.RoundRecord{
				Players: players,
				Hands:   []protocol.HandInfo{{PlayerID: "ghost", Cards: []protocol.CardInfo{{Rank: 2, Suit: 1}}}},
			},
		},
		{
			name: "invalid card",
			rec: &protocol.RoundRecord{
				Players: players,
				Hands:   []protocol.HandInfo{{PlayerID: "p1", Cards: []protocol.CardInfo{{Rank: 99, Suit: 1}}}},
			},
		},
		{
			name: "unknown winner",
			rec: &protocol.RoundRecord{
				Players: players,
				Hands:   []protocol.HandInfo{{PlayerID: "p1", Cards: []protocol.CardInfo{{Rank: 2, Suit: 1}}}},
				Result:  &protocol.ResultInfo{WinnerID: "ghost", Rank: 2, SetSize: 1, TopSuit: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := RecordToRound(tt.rec)
			assert.ErrorIs(t, err, apperrors.ErrCorruptRecord)
		})
	}
}
