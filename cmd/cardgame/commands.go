package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/card-showdown/internal/logger"
	"github.com/palemoky/card-showdown/internal/randutil"
	"github.com/palemoky/card-showdown/internal/simulator"
	"github.com/palemoky/card-showdown/internal/sound"
	"github.com/palemoky/card-showdown/internal/ui"
	"github.com/palemoky/card-showdown/internal/ui/view"
)

// PlayCmd 交互式对局
type PlayCmd struct {
	Seed int64 `help:"起始种子，0 表示读取配置或随机"`
}

func (c *PlayCmd) Run(g *Globals) (err error) {
	cfg, err := g.setup()
	if err != nil {
		return err
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			err = fmt.Errorf("程序异常退出，详见 %s", logger.GetLogPath())
		}
	}()

	ctx := context.Background()
	recorder, err := openRecorder(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = recorder.Close() }()

	var player sound.Player = sound.Nop{}
	if cfg.Sound.Enabled {
		sm := sound.NewSoundManager(cfg.Sound.Dir)
		if err := sm.Init(); err != nil {
			logger.Error("初始化音效失败", "error", err)
		} else {
			defer sm.Close()
			player = sm
		}
	}

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	model := ui.NewModel(ui.Options{
		Players:  cfg.Game.Players,
		Seed:     seed,
		Recorder: recorder,
		Sound:    player,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("运行界面失败: %w", err)
	}
	return nil
}

// SimulateCmd 批量模拟
type SimulateCmd struct {
	Rounds  int   `short:"n" help:"模拟局数，0 表示读取配置"`
	Workers int   `short:"w" help:"并发数，0 表示读取配置"`
	Seed    int64 `help:"起始种子，0 表示读取配置或随机"`
	Plain   bool  `help:"输出不带样式的纯文本"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	simCfg := simulator.Config{
		Rounds:  cfg.Simulate.Rounds,
		Workers: cfg.Simulate.Workers,
		Seed:    cfg.Game.Seed,
		Players: cfg.Game.Players,
	}
	if c.Rounds != 0 {
		simCfg.Rounds = c.Rounds
	}
	if c.Workers != 0 {
		simCfg.Workers = c.Workers
	}
	if c.Seed != 0 {
		simCfg.Seed = c.Seed
	}
	if simCfg.Seed == 0 {
		simCfg.Seed = randutil.NewSeed()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := simulator.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	if c.Plain {
		fmt.Print(report.String())
		return nil
	}
	fmt.Println(view.RenderReport(report))
	return nil
}

// HistoryCmd 查看最近的对局
type HistoryCmd struct {
	Limit int    `short:"l" default:"10" help:"显示条数"`
	Show  string `short:"s" help:"按对局 ID 重新展示该局的手牌和获胜者"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	cfg, err := g.setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx := context.Background()
	recorder, err := openRecorder(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = recorder.Close() }()

	if c.Show != "" {
		round, err := recorder.LoadRound(ctx, c.Show)
		if err != nil {
			return err
		}
		fmt.Println(view.RenderRound(round))
		return nil
	}

	records, err := recorder.History(ctx, c.Limit)
	if err != nil {
		return err
	}
	fmt.Println(view.RenderHistory(records))
	return nil
}

// LeaderboardCmd 查看排行榜
type LeaderboardCmd struct {
	Limit int `short:"l" default:"10" help:"显示名次数"`
}

func (c *LeaderboardCmd) Run(g *Globals) error {
	cfg, err := g.setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx := context.Background()
	recorder, err := openRecorder(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = recorder.Close() }()

	entries, err := recorder.Leaderboard(ctx, c.Limit)
	if err != nil {
		return err
	}
	fmt.Println(view.RenderLeaderboard(entries))
	return nil
}

// ResetCmd 清空存储
type ResetCmd struct{}

func (c *ResetCmd) Run(g *Globals) error {
	cfg, err := g.setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx := context.Background()
	recorder, err := openRecorder(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = recorder.Close() }()

	if err := recorder.Reset(ctx); err != nil {
		return err
	}
	logger.Info("存储已清空", "backend", cfg.Storage.Backend)
	fmt.Println("已清空对局记录")
	return nil
}
