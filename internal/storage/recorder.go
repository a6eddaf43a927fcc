package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder/quartz"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/config"
	"github.com/palemoky/card-showdown/internal/game"
	"github.com/palemoky/card-showdown/internal/logger"
	"github.com/palemoky/card-showdown/internal/protocol"
	"github.com/palemoky/card-showdown/internal/protocol/convert"
)

// ErrNoRanking 当前存储后端没有排行榜
var ErrNoRanking = errors.New("当前存储后端不支持排行榜")

// Ranking 排行榜接口，只有 Redis 后端提供
type Ranking interface {
	RecordRound(ctx context.Context, rec *protocol.RoundRecord) error
	GetLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
	GetPlayerRank(ctx context.Context, playerID string) (int64, error)
	Reset(ctx context.Context) error
}

// Recorder 把每局结果写入存储和排行榜
type Recorder struct {
	Store   Store
	Ranking Ranking // 可为 nil

	clock quartz.Clock
}

// NewRecorder 创建 Recorder，store 为 nil 时不做持久化
func NewRecorder(store Store, ranking Ranking, clock quartz.Clock) *Recorder {
	if store == nil {
		store = NopStore{}
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Recorder{Store: store, Ranking: ranking, clock: clock}
}

// Open 按配置打开存储后端
func Open(ctx context.Context, cfg *config.Config, clock quartz.Clock) (*Recorder, error) {
	switch cfg.Storage.Backend {
	case config.BackendNone, "":
		return NewRecorder(NopStore{}, nil, clock), nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("连接 Redis 失败: %w", err)
		}
		logger.Info("已连接 Redis", "addr", cfg.Redis.Addr)
		store := NewRedisStore(client, cfg.Game.HistoryLimit)
		return NewRecorder(store, NewLeaderboard(client, clock), clock), nil

	case config.BackendSQLite:
		store, err := NewSQLiteStore(ctx, cfg.SQLite.Path, cfg.Game.HistoryLimit)
		if err != nil {
			return nil, err
		}
		logger.Info("已打开 SQLite", "path", cfg.SQLite.Path)
		return NewRecorder(store, nil, clock), nil

	default:
		return nil, apperrors.InvalidArgument("未知的存储后端 %q", cfg.Storage.Backend)
	}
}

// RecordRound 保存一局并更新排行榜，返回写入的记录。
// 排行榜更新失败时对局已经保存，仍返回记录和错误，排行榜本身保持原状。
func (r *Recorder) RecordRound(ctx context.Context, round *game.Round) (*protocol.RoundRecord, error) {
	rec, err := convert.RoundToRecord(round, r.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := r.Store.SaveRound(ctx, rec); err != nil {
		return nil, fmt.Errorf("保存对局失败: %w", err)
	}
	if r.Ranking != nil {
		if err := r.Ranking.RecordRound(ctx, rec); err != nil {
			return rec, fmt.Errorf("对局 %s 已保存，但更新排行榜失败: %w", rec.ID, err)
		}
	}
	logger.Debug("对局已记录", "round", rec.ID, "seed", rec.Seed)
	return rec, nil
}

// LoadRound 从存储恢复一局，包括牌堆、手牌和结果
func (r *Recorder) LoadRound(ctx context.Context, id string) (*game.Round, error) {
	rec, err := r.Store.LoadRound(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.InvalidArgument("对局 %s 不存在", id)
	}
	return convert.RecordToRound(rec)
}

// PlayerRank 玩家在排行榜上的名次，后端没有排行榜或未上榜时返回 -1
func (r *Recorder) PlayerRank(ctx context.Context, playerID string) (int64, error) {
	if r.Ranking == nil {
		return -1, nil
	}
	return r.Ranking.GetPlayerRank(ctx, playerID)
}

// History 最近的对局记录
func (r *Recorder) History(ctx context.Context, limit int) ([]*protocol.RoundRecord, error) {
	return r.Store.RecentRounds(ctx, limit)
}

// Leaderboard 排行榜，后端不支持时返回 ErrNoRanking
func (r *Recorder) Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	if r.Ranking == nil {
		return nil, ErrNoRanking
	}
	return r.Ranking.GetLeaderboard(ctx, limit)
}

// Reset 清空记录和排行榜
func (r *Recorder) Reset(ctx context.Context) error {
	if err := r.Store.Reset(ctx); err != nil {
		return err
	}
	if r.Ranking != nil {
		return r.Ranking.Reset(ctx)
	}
	return nil
}

// Close 关闭存储
func (r *Recorder) Close() error {
	return r.Store.Close()
}
