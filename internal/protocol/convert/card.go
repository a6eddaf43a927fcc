package convert

import (
	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/game/card"
	"github.com/palemoky/card-showdown/internal/protocol"
)

// CardToInfo 将 card.Card 转换为 protocol.CardInfo
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Rank: int(c.Rank),
		Suit: int(c.Suit),
	}
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 将 protocol.CardInfo 转换为 card.Card，点数或花色越界时报错
func InfoToCard(info protocol.CardInfo) (card.Card, error) {
	c := card.Card{
		Rank: card.Rank(info.Rank),
		Suit: card.Suit(info.Suit),
	}
	if !c.Valid() {
		return card.Card{}, apperrors.CorruptRecord("无效的牌: rank=%d suit=%d", info.Rank, info.Suit)
	}
	return c, nil
}

// InfosToCards 将 []protocol.CardInfo 转换为 []card.Card
func InfosToCards(infos []protocol.CardInfo) ([]card.Card, error) {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		c, err := InfoToCard(info)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}
