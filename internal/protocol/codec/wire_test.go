package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/protocol"
)

func sampleRecord() *protocol.RoundRecord {
	return &protocol.RoundRecord{
		ID:       "round-1",
		Seed:     -42,
		PlayedAt: 1760000000123,
		Players: []protocol.PlayerInfo{
			{ID: "p1", Name: "Player 1"},
			{ID: "p2", Name: "玩家 2"},
		},
		Hands: []protocol.HandInfo{
			{PlayerID: "p1", Cards: []protocol.CardInfo{{Rank: 2, Suit: 1}, {Rank: 2, Suit: 2}, {Rank: 14, Suit: 4}}},
			{PlayerID: "p2", Cards: []protocol.CardInfo{{Rank: 10, Suit: 3}, {Rank: 13, Suit: 1}}},
		},
		Result: &protocol.ResultInfo{WinnerID: "p1", Rank: 2, SetSize: 2, TopSuit: 2, Tie: true},
	}
}

func TestEncodeDecodeRound(t *testing.T) {
	t.Parallel()

	original := sampleRecord()
	data, err := EncodeRound(original)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := DecodeRound(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeRound_WithoutResult(t *testing.T) {
	t.Parallel()

	original := sampleRecord()
	original.Result = nil
	original.Seed = 0

	data, err := EncodeRound(original)
	require.NoError(t, err)
	decoded, err := DecodeRound(data)
	require.NoError(t, err)
	assert.Nil(t, decoded.Result)
	assert.Equal(t, original, decoded)
}

func TestEncodeRound_Nil(t *testing.T) {
	t.Parallel()

	_, err := EncodeRound(nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestDecodeRound_Truncated(t *testing.T) {
	t.Parallel()

	data, err := EncodeRound(sampleRecord())
	require.NoError(t, err)

	_, err = DecodeRound(data[:len(data)-1])
	assert.ErrorIs(t, err, apperrors.ErrCorruptRecord)
}

func TestDecodeRound_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	data, err := EncodeRound(sampleRecord())
	require.NoError(t, err)

	// 追加一个未知的 fixed32 字段和一个未知的字符串字段
	data = protowire.AppendTag(data, 99, protowire.Fixed32Type)
	data = protowire.AppendFixed32(data, 7)
	data = protowire.AppendTag(data, 100, protowire.BytesType)
	data = protowire.AppendString(data, "future")

	decoded, err := DecodeRound(data)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), decoded)
}

func TestDecodeRound_Empty(t *testing.T) {
	t.Parallel()

	decoded, err := DecodeRound(nil)
	require.NoError(t, err)
	assert.Equal(t, &protocol.RoundRecord{}, decoded)
}

func TestEncodeRound_Concurrent(t *testing.T) {
	t.Parallel()

	expected, err := EncodeRound(sampleRecord())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				data, err := EncodeRound(sampleRecord())
				assert.NoError(t, err)
				assert.Equal(t, expected, data)
			}
		}()
	}
	wg.Wait()
}

func TestBufferPool_GetPut(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	require.NotNil(t, buf)
	buf.WriteString("data")
	PutBuffer(buf)

	assert.NotPanics(t, func() { PutBuffer(nil) })
	assert.Zero(t, GetBuffer().Len())
}

func TestCardInfoCode(t *testing.T) {
	t.Parallel()

	for rank := 2; rank <= 14; rank++ {
		for suit := 1; suit <= 4; suit++ {
			info := protocol.CardInfo{Rank: rank, Suit: suit}
			assert.Equal(t, info, protocol.CardInfoFromCode(info.Code()))
		}
	}
}
