package rule

import "github.com/palemoky/card-showdown/internal/game/card"

// rankGroup 手牌中某一点数的分组统计
type rankGroup struct {
	count   int
	topSuit card.Suit
}

// groupByRank 按点数分组，记录每组张数和组内最大花色
func groupByRank(hand card.Hand) map[card.Rank]*rankGroup {
	groups := make(map[card.Rank]*rankGroup)
	for _, c := range hand {
		g, ok := groups[c.Rank]
		if !ok {
			g = &rankGroup{}
			groups[c.Rank] = g
		}
		g.count++
		g.topSuit = max(g.topSuit, c.Suit)
	}
	return groups
}

// CardsOfRank 按原顺序取出手牌中指定点数的牌，用于展示获胜组合
func CardsOfRank(hand card.Hand, rank card.Rank) []card.Card {
	var result []card.Card
	for _, c := range hand {
		if c.Rank == rank {
			result = append(result, c)
		}
	}
	return result
}
