package protocol

// 错误码
const (
	ErrCodeUnknown         = 1000
	ErrCodeInvalidArgument = 1001 // 参数无效（如发牌时没有玩家）
	ErrCodeInvalidState    = 1002 // 状态无效（如空手牌参与评估）
	ErrCodeCorruptRecord   = 2001 // 存档数据损坏
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "未知错误",
	ErrCodeInvalidArgument: "参数无效",
	ErrCodeInvalidState:    "状态无效",
	ErrCodeCorruptRecord:   "存档数据损坏",
}
