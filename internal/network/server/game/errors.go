package game

import "github.com/palemoky/stellar-empires/internal/apperrors"

// 对局错误，与客户端共享错误码
var (
	ErrGameFull  = apperrors.ErrGameFull
	ErrNotJoined = apperrors.ErrNotJoined
	ErrNoEmpire  = apperrors.ErrNoEmpire
	ErrWrongTurn = apperrors.ErrWrongTurn

	ErrTurnProcessing = apperrors.ErrTurnProcessing
)
