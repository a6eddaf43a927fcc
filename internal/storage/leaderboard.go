package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coder/quartz"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/card-showdown/internal/protocol"
)

const (
	// Redis key
	playerStatsKey = "player:stats:"
	leaderboardKey = "leaderboard:wins"
)

// PlayerStats 玩家统计数据
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	// 总计
	TotalGames int `json:"total_games"` // 总局数
	Wins       int `json:"wins"`        // 胜局
	Losses     int `json:"losses"`      // 负局
	TieWins    int `json:"tie_wins"`    // 完全平局时按先到先得赢下的局数

	// 连胜/连败
	CurrentStreak int `json:"current_streak"` // 正数为连胜，负数为连败
	MaxWinStreak  int `json:"max_win_streak"` // 最大连胜

	// 获胜时拿到过的最大组合
	BestSetSize int `json:"best_set_size"`
	BestSetRank int `json:"best_set_rank"`

	// 时间
	LastPlayedAt int64 `json:"last_played_at"` // 最后游戏时间
	CreatedAt    int64 `json:"created_at"`     // 首次游戏时间
}

// WinRate 胜率（百分比）
func (s *PlayerStats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalGames) * 100
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Wins       int     `json:"wins"`
	TotalGames int     `json:"total_games"`
	WinRate    float64 `json:"win_rate"`
}

// Leaderboard 基于 Redis 有序集合的胜场排行榜
type Leaderboard struct {
	redis *redis.Client
	clock quartz.Clock
}

// NewLeaderboard 创建排行榜，clock 为 nil 时使用真实时钟
func NewLeaderboard(client *redis.Client, clock quartz.Clock) *Leaderboard {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Leaderboard{redis: client, clock: clock}
}

// GetPlayerStats 获取玩家统计，不存在时返回 nil, nil
func (lb *Leaderboard) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	data, err := lb.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("反序列化玩家统计失败: %w", err)
	}
	return &stats, nil
}

// getOrCreateStats 获取或创建玩家统计
func (lb *Leaderboard) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := lb.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:   playerID,
			PlayerName: playerName,
			CreatedAt:  lb.clock.Now().Unix(),
		}
	}
	return stats, nil
}

// updateWinLossStats 更新胜负统计和连胜/连败
func updateWinLossStats(stats *PlayerStats, isWinner bool) {
	if isWinner {
		stats.Wins++
		stats.CurrentStreak = max(1, stats.CurrentStreak+1)
	} else {
		stats.Losses++
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
	}

	if stats.CurrentStreak > stats.MaxWinStreak {
		stats.MaxWinStreak = stats.CurrentStreak
	}
}

// updateBestSet 记录更大的获胜组合
func updateBestSet(stats *PlayerStats, res *protocol.ResultInfo) {
	if res.SetSize > stats.BestSetSize || (res.SetSize == stats.BestSetSize && res.Rank > stats.BestSetRank) {
		stats.BestSetSize = res.SetSize
		stats.BestSetRank = res.Rank
	}
}

// RecordRound 按一局结果更新所有参与玩家的统计和排行榜。
// 先读出全部玩家的统计，再在同一个事务里写回，任何一步失败都不会只更新部分玩家。
func (lb *Leaderboard) RecordRound(ctx context.Context, rec *protocol.RoundRecord) error {
	if rec == nil || rec.Result == nil {
		return nil
	}

	now := lb.clock.Now().Unix()
	updated := make([]*PlayerStats, 0, len(rec.Players))
	for _, p := range rec.Players {
		stats, err := lb.getOrCreateStats(ctx, p.ID, p.Name)
		if err != nil {
			return err
		}

		isWinner := p.ID == rec.Result.WinnerID
		stats.PlayerName = p.Name
		stats.TotalGames++
		stats.LastPlayedAt = now
		updateWinLossStats(stats, isWinner)
		if isWinner {
			updateBestSet(stats, rec.Result)
			if rec.Result.Tie {
				stats.TieWins++
			}
		}
		updated = append(updated, stats)
	}
	return lb.saveAll(ctx, updated)
}

// saveAll 在一个事务内保存统计并同步排行榜分数
func (lb *Leaderboard) saveAll(ctx context.Context, all []*PlayerStats) error {
	pipe := lb.redis.TxPipeline()
	for _, stats := range all {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		pipe.Set(ctx, playerStatsKey+stats.PlayerID, data, 0)
		pipe.ZAdd(ctx, leaderboardKey, redis.Z{
			Score:  float64(stats.Wins),
			Member: stats.PlayerID,
		})
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetLeaderboard 按胜场从高到低返回前 limit 名
func (lb *Leaderboard) GetLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	results, err := lb.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(results))
	for _, result := range results {
		playerID, ok := result.Member.(string)
		if !ok {
			continue
		}

		stats, err := lb.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}

		entries = append(entries, &LeaderboardEntry{
			Rank:       len(entries) + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Wins:       int(result.Score),
			TotalGames: stats.TotalGames,
			WinRate:    stats.WinRate(),
		})
	}
	return entries, nil
}

// GetPlayerRank 获取玩家排名，未上榜返回 -1
func (lb *Leaderboard) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := lb.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil // 未上榜
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}

// Reset 清空排行榜和所有玩家统计
func (lb *Leaderboard) Reset(ctx context.Context) error {
	keys, err := lb.redis.Keys(ctx, playerStatsKey+"*").Result()
	if err != nil {
		return err
	}
	keys = append(keys, leaderboardKey)
	return lb.redis.Del(ctx, keys...).Err()
}
