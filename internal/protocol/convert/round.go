package convert

import (
	"time"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/game"
	"github.com/palemoky/card-showdown/internal/game/card"
	"github.com/palemoky/card-showdown/internal/protocol"
)

// RoundToRecord 将已发牌（或已评估）的一局转换为可存储的记录
func RoundToRecord(r *game.Round, playedAt time.Time) (*protocol.RoundRecord, error) {
	if r == nil {
		return nil, apperrors.InvalidArgument("对局为空")
	}
	if r.State < game.RoundDealt {
		return nil, apperrors.InvalidState("对局尚未发牌，当前阶段 %s", r.State)
	}

	rec := &protocol.RoundRecord{
		ID:       r.ID,
		Seed:     r.Seed,
		PlayedAt: playedAt.UnixMilli(),
		Players:  make([]protocol.PlayerInfo, len(r.Players)),
		Hands:    make([]protocol.HandInfo, len(r.Hands)),
	}
	for i, p := range r.Players {
		rec.Players[i] = protocol.PlayerInfo{ID: p.ID, Name: p.Name}
	}
	for i, ph := range r.Hands {
		rec.Hands[i] = protocol.HandInfo{
			PlayerID: ph.Player.ID,
			Cards:    CardsToInfos(ph.Hand),
		}
	}
	if r.Result != nil && r.Result.Winner != nil {
		rec.Result = &protocol.ResultInfo{
			WinnerID: r.Result.Winner.ID,
			Rank:     int(r.Result.Rank),
			SetSize:  r.Result.SetSize,
			TopSuit:  int(r.Result.TopSuit),
			Tie:      r.Result.Tie,
		}
	}
	return rec, nil
}

// RecordToRound 从记录重建一局，牌堆按轮流发牌的顺序还原
func RecordToRound(rec *protocol.RoundRecord) (*game.Round, error) {
	if rec == nil {
		return nil, apperrors.InvalidArgument("记录为空")
	}

	players := make([]*game.Player, len(rec.Players))
	byID := make(map[string]*game.Player, len(rec.Players))
	for i, p := range rec.Players {
		players[i] = &game.Player{ID: p.ID, Name: p.Name}
		byID[p.ID] = players[i]
	}

	hands := make(game.HandsByPlayer, len(rec.Hands))
	for i, h := range rec.Hands {
		p, ok := byID[h.PlayerID]
		if !ok {
			return nil, apperrors.CorruptRecord("手牌属于未知玩家 %s", h.PlayerID)
		}
		cards, err := InfosToCards(h.Cards)
		if err != nil {
			return nil, err
		}
		hands[i] = game.PlayerHand{Player: p, Hand: card.Hand(cards)}
	}

	r := &game.Round{
		ID:      rec.ID,
		Seed:    rec.Seed,
		Players: players,
		Deck:    game.Gather(hands),
		Hands:   hands,
		State:   game.RoundDealt,
	}

	if rec.Result != nil {
		winner, ok := byID[rec.Result.WinnerID]
		if !ok {
			return nil, apperrors.CorruptRecord("获胜者 %s 不在玩家列表中", rec.Result.WinnerID)
		}
		index := 0
		for i, p := range players {
			if p == winner {
				index = i
				break
			}
		}
		r.Result = &game.Result{
			Winner:      winner,
			WinnerIndex: index,
			Rank:        card.Rank(rec.Result.Rank),
			SetSize:     rec.Result.SetSize,
			TopSuit:     card.Suit(rec.Result.TopSuit),
			Tie:         rec.Result.Tie,
		}
		r.State = game.RoundEvaluated
	}
	return r, nil
}
