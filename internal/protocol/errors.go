package protocol

// 错误码
const (
	ErrCodeUnknown     = 1000
	ErrCodeInvalidMsg  = 1001
	ErrCodeRateLimit   = 1002 // 速率限制
	ErrCodeNotJoined   = 2001 // 尚未加入游戏
	ErrCodeGameFull    = 2002 // 游戏已满
	ErrCodeNoEmpire    = 3001 // 没有控制的帝国
	ErrCodeWrongTurn   = 3002 // 回合号不匹配
	ErrCodeOrderReject = 3003 // 指令无效
	ErrCodeStorage     = 5001 // 存储失败
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:     "unknown error",
	ErrCodeInvalidMsg:  "invalid message format",
	ErrCodeRateLimit:   "too many requests",
	ErrCodeNotJoined:   "not joined to a game",
	ErrCodeGameFull:    "game is full",
	ErrCodeNoEmpire:    "no empire controlled by this player",
	ErrCodeWrongTurn:   "orders are for a different turn",
	ErrCodeOrderReject: "orders rejected",
	ErrCodeStorage:     "failed to store orders",
}
