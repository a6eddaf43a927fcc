package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"显示版本"`
	Play        PlayCmd          `cmd:"" default:"1" help:"交互式对局（默认命令）"`
	Simulate    SimulateCmd      `cmd:"" help:"批量模拟并统计胜率"`
	History     HistoryCmd       `cmd:"" help:"查看最近的对局"`
	Leaderboard LeaderboardCmd   `cmd:"" help:"查看排行榜（仅 Redis 后端）"`
	Reset       ResetCmd         `cmd:"" help:"清空对局记录和排行榜"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardgame"),
		kong.Description("四人比大小纸牌游戏：洗牌、发牌、按最多同点数判定胜者"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
