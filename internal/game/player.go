package game

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/palemoky/card-showdown/internal/game/card"
)

// PlayerCount 一局的玩家人数
const PlayerCount = 4

// DefaultPlayerNames 默认玩家名
var DefaultPlayerNames = []string{"Player 1", "Player 2", "Player 3", "Player 4"}

// Player 玩家身份，手牌不挂在玩家身上，由每局的 HandsByPlayer 持有
type Player struct {
	ID   string
	Name string
}

// playerNamespace 由玩家名派生 ID 的命名空间，修改后已有的排行榜数据会失联
var playerNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("card-showdown/player"))

// NewPlayer 创建带随机 ID 的玩家
func NewPlayer(name string) *Player {
	return &Player{ID: uuid.New().String(), Name: name}
}

// PlayerID 由玩家名派生的固定 ID，同名玩家每次得到同一个 ID
func PlayerID(name string) string {
	return uuid.NewSHA1(playerNamespace, []byte(name)).String()
}

// NewPlayers 按给定顺序创建玩家，不传名字时使用默认玩家名。
// ID 由名字派生，跨会话保持不变；同名玩家按出现次数区分，如第二个 "Bob" 对应 "Bob#2"。
func NewPlayers(names ...string) []*Player {
	if len(names) == 0 {
		names = DefaultPlayerNames
	}
	players := make([]*Player, len(names))
	seen := make(map[string]int, len(names))
	for i, name := range names {
		seen[name]++
		key := name
		if n := seen[name]; n > 1 {
			key = name + "#" + strconv.Itoa(n)
		}
		players[i] = &Player{ID: PlayerID(key), Name: name}
	}
	return players
}

// PlayerHand 某名玩家本局的手牌
type PlayerHand struct {
	Player *Player
	Hand   card.Hand
}

// HandsByPlayer 按座位顺序排列的手牌，顺序决定完全平局时的归属
type HandsByPlayer []PlayerHand

// Hands 按顺序返回所有手牌
func (h HandsByPlayer) Hands() []card.Hand {
	hands := make([]card.Hand, len(h))
	for i, ph := range h {
		hands[i] = ph.Hand
	}
	return hands
}

// HandOf 根据玩家 ID 查找手牌
func (h HandsByPlayer) HandOf(playerID string) (card.Hand, bool) {
	for _, ph := range h {
		if ph.Player != nil && ph.Player.ID == playerID {
			return ph.Hand, true
		}
	}
	return nil, false
}
