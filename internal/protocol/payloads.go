package protocol

// 持久化层与核心之间的数据契约，存储实现必须原样往返这些结构

// CardInfo 牌信息
type CardInfo struct {
	Rank int `json:"rank"` // 2-14
	Suit int `json:"suit"` // 1-4
}

// Code 将牌编码为一个整数：高位为点数，低 3 位为花色
func (c CardInfo) Code() int {
	return c.Rank<<3 | c.Suit
}

// CardInfoFromCode 从编码还原牌信息
func CardInfoFromCode(code int) CardInfo {
	return CardInfo{Rank: code >> 3, Suit: code & 0b111}
}

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HandInfo 某名玩家的手牌，保持发牌顺序
type HandInfo struct {
	PlayerID string     `json:"player_id"`
	Cards    []CardInfo `json:"cards"`
}

// ResultInfo 一局的结果
type ResultInfo struct {
	WinnerID string `json:"winner_id"`
	Rank     int    `json:"rank"`
	SetSize  int    `json:"set_size"`
	TopSuit  int    `json:"top_suit"`
	Tie      bool   `json:"tie,omitempty"` // 完全平局，按先到先得判定
}

// RoundRecord 一局的完整记录
type RoundRecord struct {
	ID       string       `json:"id"`
	Seed     int64        `json:"seed"`
	PlayedAt int64        `json:"played_at"` // 毫秒时间戳
	Players  []PlayerInfo `json:"players"`   // 座位顺序
	Hands    []HandInfo   `json:"hands"`     // 与 Players 顺序一致
	Result   *ResultInfo  `json:"result,omitempty"`
}

// PlayerName 根据 ID 查找玩家名
func (r *RoundRecord) PlayerName(id string) string {
	for _, p := range r.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}
