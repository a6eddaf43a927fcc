package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/game/card"
	"github.com/palemoky/card-showdown/internal/game/rule"
	"github.com/palemoky/card-showdown/internal/randutil"
)

// RoundState 一局的生命周期：建牌 -> 洗牌 -> 发牌 -> 评估
type RoundState int

const (
	RoundCreated RoundState = iota
	RoundShuffled
	RoundDealt
	RoundEvaluated
)

var roundStateNames = map[RoundState]string{
	RoundCreated:   "created",
	RoundShuffled:  "shuffled",
	RoundDealt:     "dealt",
	RoundEvaluated: "evaluated",
}

func (s RoundState) String() string {
	if name, ok := roundStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("RoundState(%d)", int(s))
}

// Result 一局的结果
type Result struct {
	Winner      *Player
	WinnerIndex int
	Rank        card.Rank // 获胜组合的点数
	SetSize     int       // 获胜组合的张数
	TopSuit     card.Suit // 获胜组合内的最大花色
	Tie         bool      // 与后序玩家完全相同，按先到先得判给 Winner
}

// Evaluate 评估所有手牌并返回获胜者
func Evaluate(hands HandsByPlayer) (Result, error) {
	outcome, err := rule.Evaluate(hands.Hands())
	if err != nil {
		return Result{}, err
	}
	return Result{
		Winner:      hands[outcome.Winner].Player,
		WinnerIndex: outcome.Winner,
		Rank:        outcome.Best.Rank,
		SetSize:     outcome.Best.Count,
		TopSuit:     outcome.Best.TopSuit,
		Tie:         outcome.Tie,
	}, nil
}

// Round 定义一局游戏，每局相互独立
type Round struct {
	ID      string
	Seed    int64
	Players []*Player
	Deck    card.Deck
	Hands   HandsByPlayer
	Result  *Result
	State   RoundState

	rng card.Rand
}

// NewRound 创建一局并生成一副新牌，rng 只归本局使用
func NewRound(players []*Player, rng card.Rand) *Round {
	return &Round{
		ID:      uuid.New().String(),
		Players: players,
		Deck:    card.NewDeck(),
		State:   RoundCreated,
		rng:     rng,
	}
}

// NewSeededRound 用种子创建一局，同一种子和玩家顺序必然得到同一结果
func NewSeededRound(players []*Player, seed int64) *Round {
	r := NewRound(players, randutil.New(seed))
	r.Seed = seed
	return r
}

func (r *Round) expect(state RoundState, action string) error {
	if r.State != state {
		return apperrors.InvalidState("当前阶段 %s 不能%s", r.State, action)
	}
	return nil
}

// Shuffle 洗牌
func (r *Round) Shuffle() error {
	if err := r.expect(RoundCreated, "洗牌"); err != nil {
		return err
	}
	if r.rng == nil {
		return apperrors.InvalidArgument("未提供随机源")
	}
	r.Deck = card.Shuffle(r.Deck, r.rng)
	r.State = RoundShuffled
	return nil
}

// Deal 发牌，之后牌堆只读
func (r *Round) Deal() error {
	if err := r.expect(RoundShuffled, "发牌"); err != nil {
		return err
	}
	hands, err := Distribute(r.Deck, r.Players)
	if err != nil {
		return err
	}
	r.Hands = hands
	r.State = RoundDealt
	return nil
}

// Evaluate 评估本局获胜者
func (r *Round) Evaluate() (Result, error) {
	if err := r.expect(RoundDealt, "评估"); err != nil {
		return Result{}, err
	}
	result, err := Evaluate(r.Hands)
	if err != nil {
		return Result{}, err
	}
	r.Result = &result
	r.State = RoundEvaluated
	return result, nil
}

// Play 依次完成洗牌、发牌和评估
func (r *Round) Play() (Result, error) {
	if err := r.Shuffle(); err != nil {
		return Result{}, err
	}
	if err := r.Deal(); err != nil {
		return Result{}, err
	}
	return r.Evaluate()
}

// WinningCards 返回获胜者手中构成获胜组合的牌
func (r *Round) WinningCards() []card.Card {
	if r.Result == nil || r.Result.Winner == nil {
		return nil
	}
	hand, ok := r.Hands.HandOf(r.Result.Winner.ID)
	if !ok {
		return nil
	}
	return rule.CardsOfRank(hand, r.Result.Rank)
}
