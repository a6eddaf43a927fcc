package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/palemoky/card-showdown/internal/game/card"
	"github.com/palemoky/card-showdown/internal/protocol"
	"github.com/palemoky/card-showdown/internal/simulator"
	"github.com/palemoky/card-showdown/internal/storage"
	"github.com/palemoky/card-showdown/internal/ui/common"
)

// RenderHistory 渲染最近对局列表
func RenderHistory(records []*protocol.RoundRecord) string {
	if len(records) == 0 {
		return common.MutedStyle.Render("暂无对局记录")
	}

	var sb strings.Builder
	sb.WriteString(common.TitleStyle("📜 最近对局"))
	sb.WriteString("\n\n")
	for _, rec := range records {
		playedAt := time.UnixMilli(rec.PlayedAt).Format("2006-01-02 15:04:05")
		fmt.Fprintf(&sb, "%s  %s  seed %-20d  ", rec.ID, playedAt, rec.Seed)
		if res := rec.Result; res != nil {
			name := common.TruncateName(rec.PlayerName(res.WinnerID), nameWidth)
			fmt.Fprintf(&sb, "%-10s %d x %s", name, res.SetSize, card.Rank(res.Rank))
			if res.Tie {
				sb.WriteString(" " + common.TieIcon)
			}
		} else {
			sb.WriteString("未评估")
		}
		sb.WriteString("\n")
	}
	return common.BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// RenderLeaderboard 渲染排行榜
func RenderLeaderboard(entries []*storage.LeaderboardEntry) string {
	if len(entries) == 0 {
		return common.MutedStyle.Render("排行榜为空")
	}

	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🏆 排行榜"))
	sb.WriteString("\n\n")
	for _, e := range entries {
		icon := "  "
		switch e.Rank {
		case 1:
			icon = "🥇"
		case 2:
			icon = "🥈"
		case 3:
			icon = "🥉"
		}
		fmt.Fprintf(&sb, "%s %2d. %-10s  胜 %-5d  局 %-5d  胜率 %5.1f%%\n",
			icon, e.Rank, common.TruncateName(e.PlayerName, nameWidth), e.Wins, e.TotalGames, e.WinRate)
	}
	return common.BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// RenderReport 渲染批量模拟结果
func RenderReport(r *simulator.Report) string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🎲 模拟结果"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "局数 %d  起始种子 %d  完全平局 %d\n\n", r.Rounds, r.Seed, r.Ties)

	for i, name := range r.Players {
		fmt.Fprintf(&sb, "%-10s  胜 %-7d  %5.1f%%\n", common.TruncateName(name, nameWidth), r.Wins[i], r.WinRate(i))
	}

	sb.WriteString("\n获胜组合张数分布\n")
	for _, size := range r.SortedSetSizes() {
		n := r.SetSizes[size]
		fmt.Fprintf(&sb, "  %d 张  %-7d  %5.1f%%\n", size, n, float64(n)/float64(r.Rounds)*100)
	}

	sb.WriteString("\n获胜点数分布\n")
	for _, rank := range card.Ranks() {
		if n, ok := r.Ranks[rank]; ok {
			fmt.Fprintf(&sb, "  %-2s  %d\n", rank, n)
		}
	}
	return common.BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
