package storage

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/card-showdown/internal/game"
	"github.com/palemoky/card-showdown/internal/protocol"
	"github.com/palemoky/card-showdown/internal/protocol/convert"
)

func newTestRedisClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

// newTestRecord 用固定种子打一局并转换为记录
func newTestRecord(t *testing.T, seed int64, playedAt time.Time) *protocol.RoundRecord {
	t.Helper()
	r := game.NewSeededRound(game.NewPlayers(), seed)
	_, err := r.Play()
	require.NoError(t, err)

	rec, err := convert.RoundToRecord(r, playedAt)
	require.NoError(t, err)
	return rec
}
