// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/card-showdown/internal/game"
	"github.com/palemoky/card-showdown/internal/game/card"
	"github.com/palemoky/card-showdown/internal/ui/common"
)

const nameWidth = 10

// RenderCard 渲染单张牌，highlight 为 true 时使用高亮样式
func RenderCard(c card.Card, highlight bool) string {
	if highlight {
		return common.HighlightStyle.Render(" " + c.String() + " ")
	}
	return common.SuitStyle(c.Suit).Render(" " + c.String() + " ")
}

// RenderHand 按发牌顺序渲染手牌，highlight 中的牌高亮
func RenderHand(h card.Hand, highlight []card.Card) string {
	marked := make(map[card.Card]bool, len(highlight))
	for _, c := range highlight {
		marked[c] = true
	}

	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = RenderCard(c, marked[c])
	}
	return strings.Join(parts, " ")
}

// WinnerLine 获胜提示
func WinnerLine(name string, rank card.Rank) string {
	return fmt.Sprintf("The winner is %s with the highest number of %ss.", name, rank)
}

// RenderRound 渲染一局：每名玩家的手牌和获胜者
func RenderRound(r *game.Round) string {
	if r == nil || len(r.Hands) == 0 {
		return ""
	}

	var winning []card.Card
	if r.Result != nil {
		winning = r.WinningCards()
	}

	var sb strings.Builder
	for i, ph := range r.Hands {
		name := common.TruncateName(ph.Player.Name, nameWidth)
		var highlight []card.Card
		if r.Result != nil && i == r.Result.WinnerIndex {
			name = common.WinnerIcon + " " + name
			highlight = winning
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			common.NameStyle.Render(name),
			RenderHand(ph.Hand, highlight),
		))
		sb.WriteString("\n")
	}

	if res := r.Result; res != nil {
		sb.WriteString("\n")
		sb.WriteString(common.WinnerStyle.Render(WinnerLine(res.Winner.Name, res.Rank)))
		sb.WriteString("\n")
		sb.WriteString(common.MutedStyle.Render(fmt.Sprintf("获胜组合: %d 张 %s，最大花色 %s", res.SetSize, res.Rank, res.TopSuit)))
		if res.Tie {
			sb.WriteString("\n")
			sb.WriteString(common.MutedStyle.Render(common.TieIcon + " 完全平局，按座位顺序判给先到者"))
		}
	}
	return sb.String()
}
