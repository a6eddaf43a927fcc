package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/card-showdown/internal/protocol"
	"github.com/palemoky/card-showdown/internal/protocol/codec"
)

const (
	// Redis key 前缀
	roundKeyPrefix  = "round:"
	recentRoundsKey = "rounds:recent"
)

// RedisStore Redis 存储，对局以 protobuf 编码保存
type RedisStore struct {
	client       *redis.Client
	historyLimit int
}

// NewRedisStore 创建 Redis 存储，只保留最近 historyLimit 局
func NewRedisStore(client *redis.Client, historyLimit int) *RedisStore {
	return &RedisStore{client: client, historyLimit: historyLimit}
}

// SaveRound 保存对局，并把超出保留数量的旧对局一并删除
func (rs *RedisStore) SaveRound(ctx context.Context, rec *protocol.RoundRecord) error {
	data, err := codec.EncodeRound(rec)
	if err != nil {
		return err
	}

	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, roundKeyPrefix+rec.ID, data, 0)
	pipe.LRem(ctx, recentRoundsKey, 0, rec.ID)
	pipe.LPush(ctx, recentRoundsKey, rec.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("保存对局失败: %w", err)
	}

	if rs.historyLimit > 0 {
		return rs.trim(ctx)
	}
	return nil
}

// trim 删除超出保留数量的对局
func (rs *RedisStore) trim(ctx context.Context) error {
	stale, err := rs.client.LRange(ctx, recentRoundsKey, int64(rs.historyLimit), -1).Result()
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	keys := make([]string, len(stale))
	for i, id := range stale {
		keys[i] = roundKeyPrefix + id
	}

	pipe := rs.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.LTrim(ctx, recentRoundsKey, 0, int64(rs.historyLimit-1))
	_, err = pipe.Exec(ctx)
	return err
}

// LoadRound 从 Redis 加载对局
func (rs *RedisStore) LoadRound(ctx context.Context, id string) (*protocol.RoundRecord, error) {
	data, err := rs.client.Get(ctx, roundKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 对局不存在
		}
		return nil, err
	}

	rec, err := codec.DecodeRound(data)
	if err != nil {
		return nil, fmt.Errorf("解码对局 %s 失败: %w", id, err)
	}
	return rec, nil
}

// RecentRounds 获取最近的对局，已过期的条目会被跳过
func (rs *RedisStore) RecentRounds(ctx context.Context, limit int) ([]*protocol.RoundRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := rs.client.LRange(ctx, recentRoundsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	pipe := rs.client.Pipeline()
	results := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		results[i] = pipe.Get(ctx, roundKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	records := make([]*protocol.RoundRecord, 0, len(ids))
	for i, result := range results {
		data, err := result.Bytes()
		if err != nil {
			continue
		}
		rec, err := codec.DecodeRound(data)
		if err != nil {
			return nil, fmt.Errorf("解码对局 %s 失败: %w", ids[i], err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Reset 删除所有对局
func (rs *RedisStore) Reset(ctx context.Context) error {
	keys, err := rs.client.Keys(ctx, roundKeyPrefix+"*").Result()
	if err != nil {
		return err
	}
	keys = append(keys, recentRoundsKey)
	return rs.client.Del(ctx, keys...).Err()
}

// Close 关闭连接
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
