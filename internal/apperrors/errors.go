package apperrors

import (
	"errors"

	"github.com/palemoky/stellar-empires/internal/protocol"
)

// GameError 游戏错误（客户端和服务端共享），Code 对应 protocol.ErrCode*
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrInvalidMessage = &GameError{Code: protocol.ErrCodeInvalidMsg, Message: "invalid message"}
	ErrNotJoined      = &GameError{Code: protocol.ErrCodeNotJoined, Message: "player has not joined the game"}
	ErrGameFull       = &GameError{Code: protocol.ErrCodeGameFull, Message: "game is full"}
	ErrNoEmpire       = &GameError{Code: protocol.ErrCodeNoEmpire, Message: "player controls no empire"}
	ErrWrongTurn      = &GameError{Code: protocol.ErrCodeWrongTurn, Message: "orders are for a different turn"}
	ErrTurnProcessing = &GameError{Code: protocol.ErrCodeWrongTurn, Message: "turn is being processed"}
	ErrOrderRejected  = &GameError{Code: protocol.ErrCodeOrderReject, Message: "orders rejected"}
	ErrRateLimited    = &GameError{Code: protocol.ErrCodeRateLimit, Message: "too many requests"}
	ErrStorage        = &GameError{Code: protocol.ErrCodeStorage, Message: "failed to store orders"}
)

// CodeOf 返回错误链中 GameError 的错误码，没有则返回 ErrCodeUnknown
func CodeOf(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return protocol.ErrCodeUnknown
}
