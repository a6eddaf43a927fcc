package apperrors

import (
	"fmt"

	"github.com/palemoky/card-showdown/internal/protocol"
)

// GameError 游戏错误，按错误码区分种类
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Is 错误码相同即视为同一种错误，便于 errors.Is 匹配带详情的错误
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	return ok && t.Code == e.Code
}

// 预定义错误
var (
	ErrInvalidArgument = &GameError{Code: protocol.ErrCodeInvalidArgument, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidArgument]}
	ErrInvalidState    = &GameError{Code: protocol.ErrCodeInvalidState, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidState]}
	ErrCorruptRecord   = &GameError{Code: protocol.ErrCodeCorruptRecord, Message: protocol.ErrorMessages[protocol.ErrCodeCorruptRecord]}
)

// InvalidArgument 创建带详情的参数错误
func InvalidArgument(format string, args ...any) error {
	return withDetail(ErrInvalidArgument, format, args...)
}

// InvalidState 创建带详情的状态错误
func InvalidState(format string, args ...any) error {
	return withDetail(ErrInvalidState, format, args...)
}

// CorruptRecord 创建带详情的存档错误
func CorruptRecord(format string, args ...any) error {
	return withDetail(ErrCorruptRecord, format, args...)
}

func withDetail(kind *GameError, format string, args ...any) error {
	return &GameError{
		Code:    kind.Code,
		Message: kind.Message + ": " + fmt.Sprintf(format, args...),
	}
}
