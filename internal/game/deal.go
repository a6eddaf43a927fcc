package game

import (
	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/game/card"
)

// Distribute 轮流发牌：第 i 张牌发给 players[i % N]。
// 牌数不能整除人数时，多出的牌依次归前面的玩家。牌堆本身不会被修改。
func Distribute(d card.Deck, players []*Player) (HandsByPlayer, error) {
	n := len(players)
	if n == 0 {
		return nil, apperrors.InvalidArgument("发牌需要至少一名玩家")
	}

	hands := make(HandsByPlayer, n)
	perPlayer := (len(d) + n - 1) / n
	for i, p := range players {
		if p == nil {
			return nil, apperrors.InvalidArgument("第 %d 名玩家为空", i+1)
		}
		hands[i] = PlayerHand{Player: p, Hand: make(card.Hand, 0, perPlayer)}
	}

	for i, c := range d {
		seat := i % n
		hands[seat].Hand = append(hands[seat].Hand, c)
	}
	return hands, nil
}

// Gather 按发牌顺序把手牌还原成牌堆，是 Distribute 的逆操作，用于从存档恢复一局
func Gather(hands HandsByPlayer) card.Deck {
	total := 0
	for _, ph := range hands {
		total += len(ph.Hand)
	}

	deck := make(card.Deck, 0, total)
	for round := 0; len(deck) < total; round++ {
		for _, ph := range hands {
			if round < len(ph.Hand) {
				deck = append(deck, ph.Hand[round])
			}
		}
	}
	return deck
}
