package simulator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/game"
	"github.com/palemoky/card-showdown/internal/game/card"
	"github.com/palemoky/card-showdown/internal/logger"
)

// Config 批量模拟参数
type Config struct {
	Rounds  int
	Workers int
	Seed    int64    // 第 i 局使用 Seed+i
	Players []string // 为空时使用默认玩家名
}

// Report 模拟统计
type Report struct {
	Rounds   int
	Seed     int64
	Players  []string
	Wins     []int             // 按座位统计的胜局数
	Ties     int               // 完全平局由先到者获胜的局数
	SetSizes map[int]int       // 获胜组合张数 -> 局数
	Ranks    map[card.Rank]int // 获胜组合点数 -> 局数
}

// outcome 单局结果，每局独占一个槽位
type outcome struct {
	seat    int
	setSize int
	rank    card.Rank
	tie     bool
}

// Run 并发模拟多局，结果与并发数无关
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Rounds <= 0 {
		return nil, apperrors.InvalidArgument("模拟局数必须为正数: %d", cfg.Rounds)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	players := game.NewPlayers(cfg.Players...)

	outcomes := make([]outcome, cfg.Rounds)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	logger.Debug("开始模拟", "rounds", cfg.Rounds, "workers", cfg.Workers, "seed", cfg.Seed)
	for i := range cfg.Rounds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			round := game.NewSeededRound(players, cfg.Seed+int64(i))
			res, err := round.Play()
			if err != nil {
				return fmt.Errorf("第 %d 局: %w", i, err)
			}
			outcomes[i] = outcome{
				seat:    res.WinnerIndex,
				setSize: res.SetSize,
				rank:    res.Rank,
				tie:     res.Tie,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// 外部取消时未跑完的局没有结果
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Rounds:   cfg.Rounds,
		Seed:     cfg.Seed,
		Players:  make([]string, len(players)),
		Wins:     make([]int, len(players)),
		SetSizes: make(map[int]int),
		Ranks:    make(map[card.Rank]int),
	}
	for i, p := range players {
		report.Players[i] = p.Name
	}
	for _, o := range outcomes {
		report.Wins[o.seat]++
		report.SetSizes[o.setSize]++
		report.Ranks[o.rank]++
		if o.tie {
			report.Ties++
		}
	}
	logger.Debug("模拟完成", "rounds", cfg.Rounds, "ties", report.Ties)
	return report, nil
}

// WinRate 某座位的胜率（百分比）
func (r *Report) WinRate(seat int) float64 {
	if r.Rounds == 0 || seat < 0 || seat >= len(r.Wins) {
		return 0
	}
	return float64(r.Wins[seat]) / float64(r.Rounds) * 100
}

// SortedSetSizes 按张数从小到大返回出现过的获胜组合张数
func (r *Report) SortedSetSizes() []int {
	sizes := make([]int, 0, len(r.SetSizes))
	for size := range r.SetSizes {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// String 纯文本汇总，供非交互输出
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rounds: %d  seed: %d  ties: %d\n", r.Rounds, r.Seed, r.Ties)
	for i, name := range r.Players {
		fmt.Fprintf(&sb, "  %-10s %6d wins  %5.1f%%\n", name, r.Wins[i], r.WinRate(i))
	}
	for _, size := range r.SortedSetSizes() {
		fmt.Fprintf(&sb, "  set of %d: %d\n", size, r.SetSizes[size])
	}
	return sb.String()
}
