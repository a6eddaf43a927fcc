package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, historyLimit int) *RedisStore {
	t.Helper()
	client, _ := newTestRedisClient(t)
	return NewRedisStore(client, historyLimit)
}

func TestRedisStore_SaveLoadRound(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t, 10)
	ctx := context.Background()
	rec := newTestRecord(t, 1, time.UnixMilli(1760000000000))

	require.NoError(t, store.SaveRound(ctx, rec))

	loaded, err := store.LoadRound(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)
}

func TestRedisStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t, 10)

	loaded, err := store.LoadRound(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_RecentRounds(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t, 10)
	ctx := context.Background()

	var ids []string
	for i := range 3 {
		rec := newTestRecord(t, int64(i), time.UnixMilli(int64(1000+i)))
		require.NoError(t, store.SaveRound(ctx, rec))
		ids = append(ids, rec.ID)
	}

	recent, err := store.RecentRounds(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// 从新到旧
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)
}

func TestRedisStore_SaveSameIDTwice(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t, 10)
	ctx := context.Background()
	rec := newTestRecord(t, 3, time.UnixMilli(1000))

	require.NoError(t, store.SaveRound(ctx, rec))
	require.NoError(t, store.SaveRound(ctx, rec))

	recent, err := store.RecentRounds(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestRedisStore_HistoryLimit(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t, 2)
	ctx := context.Background()

	first := newTestRecord(t, 1, time.UnixMilli(1000))
	require.NoError(t, store.SaveRound(ctx, first))
	for i := 2; i <= 3; i++ {
		require.NoError(t, store.SaveRound(ctx, newTestRecord(t, int64(i), time.UnixMilli(int64(1000*i)))))
	}

	recent, err := store.RecentRounds(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	// 最旧的一局已被删除
	loaded, err := store.LoadRound(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_Reset(t *testing.T) {
	t.Parallel()

	store := newTestRedisStore(t, 10)
	ctx := context.Background()
	rec := newTestRecord(t, 1, time.UnixMilli(1000))
	require.NoError(t, store.SaveRound(ctx, rec))

	require.NoError(t, store.Reset(ctx))

	recent, err := store.RecentRounds(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	loaded, err := store.LoadRound(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_CorruptRecord(t *testing.T) {
	t.Parallel()

	client, mr := newTestRedisClient(t)
	store := NewRedisStore(client, 10)
	require.NoError(t, mr.Set(roundKeyPrefix+"bad", "\xff\xff\xff"))

	_, err := store.LoadRound(context.Background(), "bad")
	assert.Error(t, err)
}
