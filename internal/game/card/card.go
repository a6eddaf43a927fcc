package card

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/palemoky/card-showdown/internal/apperrors"
)

// Rank 定义点数，数值即牌力（A 最大）
type Rank int

// Suit 定义花色，数值即牌力，仅用作最后一级比较
type Suit int

// Card 定义一张牌，点数和花色都是必填值
type Card struct {
	Rank Rank
	Suit Suit
}

const (
	Rank2 Rank = iota + 2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

const (
	SuitAt    Suit = iota + 1 // @
	SuitHash                  // #
	SuitCaret                 // ^
	SuitStar                  // *
)

// DeckSize 一副标准牌的张数
const DeckSize = 52

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank2:  "2",
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	SuitAt:    "@",
	SuitHash:  "#",
	SuitCaret: "^",
	SuitStar:  "*",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Valid 判断点数是否在 2..A 范围内
func (r Rank) Valid() bool {
	return r >= Rank2 && r <= RankA
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Valid 判断花色是否为四种花色之一
func (s Suit) Valid() bool {
	return s >= SuitAt && s <= SuitStar
}

// String 返回牌面，如 "10@"、"K*"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Valid 判断点数和花色是否都合法
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// Ranks 按牌力从小到大返回全部点数
func Ranks() []Rank {
	ranks := make([]Rank, 0, RankA-Rank2+1)
	for r := Rank2; r <= RankA; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// Suits 按牌力从小到大返回全部花色
func Suits() []Suit {
	return []Suit{SuitAt, SuitHash, SuitCaret, SuitStar}
}

// ParseRank 解析点数，"10" 也可以写成 "T"
func ParseRank(s string) (Rank, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "T" {
		return Rank10, nil
	}
	for r, name := range rankNames {
		if name == s {
			return r, nil
		}
	}
	return 0, apperrors.InvalidArgument("无法识别的点数: %q", s)
}

// ParseSuit 解析花色符号
func ParseSuit(s string) (Suit, error) {
	for suit, symbol := range suitSymbols {
		if symbol == s {
			return suit, nil
		}
	}
	return 0, apperrors.InvalidArgument("无法识别的花色: %q", s)
}

// ParseCard 解析单张牌，格式为点数加花色符号，如 "10@"、"A*"
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 2 {
		return Card{}, apperrors.InvalidArgument("无法识别的牌: %q", s)
	}
	_, size := utf8.DecodeLastRuneInString(s)
	rank, err := ParseRank(s[:len(s)-size])
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(s[len(s)-size:])
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards 解析以空格或逗号分隔的多张牌
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Hand 一名玩家本局持有的牌，保持发牌顺序
type Hand []Card

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 按点数优先、花色其次的固定顺序生成 52 张牌，每种组合恰好一张
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, r := range Ranks() {
		for _, s := range Suits() {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Clone 返回牌堆的副本
func (d Deck) Clone() Deck {
	if d == nil {
		return nil
	}
	cp := make(Deck, len(d))
	copy(cp, d)
	return cp
}
