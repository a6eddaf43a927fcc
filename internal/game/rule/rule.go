package rule

import (
	"cmp"
	"fmt"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/game/card"
)

// BestSet 一手牌中张数最多的同点数组合
type BestSet struct {
	Rank    card.Rank // 组合的点数
	Count   int       // 组合张数
	TopSuit card.Suit // 组合内最大花色
}

func (b BestSet) String() string {
	return fmt.Sprintf("%d 张 %s（最大花色 %s）", b.Count, b.Rank, b.TopSuit)
}

// BestSetOf 计算一手牌的最大同点组合：张数多者优先，张数相同取点数大者
func BestSetOf(hand card.Hand) (BestSet, error) {
	if len(hand) == 0 {
		return BestSet{}, apperrors.InvalidState("手牌为空，无法计算最大组合")
	}

	var best BestSet
	for rank, g := range groupByRank(hand) {
		if g.count > best.Count || (g.count == best.Count && rank > best.Rank) {
			best = BestSet{Rank: rank, Count: g.count, TopSuit: g.topSuit}
		}
	}
	return best, nil
}

// Compare 比较两个最大组合，依次比较张数、点数、组内最大花色。
// a 更大返回 1，更小返回 -1，完全相同返回 0。
func Compare(a, b BestSet) int {
	if c := cmp.Compare(a.Count, b.Count); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	return cmp.Compare(a.TopSuit, b.TopSuit)
}

// Outcome 一轮评估的结果
type Outcome struct {
	Winner int       // 获胜者在输入中的下标
	Best   BestSet   // 获胜者的最大组合
	Sets   []BestSet // 每名玩家的最大组合，与输入顺序一致
	Tie    bool      // 有后序玩家与获胜者完全相同，按先到先得保留获胜者
}

// Evaluate 按输入顺序逐个与当前领先者比较，严格更大才替换领先者。
// 所有手牌先做校验，任何一手为空都不会返回部分结果。
func Evaluate(hands []card.Hand) (Outcome, error) {
	if len(hands) == 0 {
		return Outcome{}, apperrors.InvalidState("没有玩家参与评估")
	}

	sets := make([]BestSet, len(hands))
	for i, h := range hands {
		set, err := BestSetOf(h)
		if err != nil {
			return Outcome{}, fmt.Errorf("第 %d 名玩家: %w", i+1, err)
		}
		sets[i] = set
	}

	winner := 0
	for i := 1; i < len(sets); i++ {
		if Compare(sets[i], sets[winner]) > 0 {
			winner = i
		}
	}

	tie := false
	for i := winner + 1; i < len(sets); i++ {
		if Compare(sets[i], sets[winner]) == 0 {
			tie = true
			break
		}
	}

	return Outcome{Winner: winner, Best: sets[winner], Sets: sets, Tie: tie}, nil
}
