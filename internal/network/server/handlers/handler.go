package handlers

import (
	"context"
	"time"

	"github.com/palemoky/stellar-empires/internal/apperrors"
	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/network/server/types"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
)

// storeTimeout 单次存储操作超时
const storeTimeout = 5 * time.Second

// Handler 消息处理器
type Handler struct {
	server types.ServerContext
}

// NewHandler 创建处理器
func NewHandler(s types.ServerContext) *Handler {
	return &Handler{server: s}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client, msg)
	case protocol.MsgJoinGame:
		h.handleJoinGame(client, msg)

	// 回合操作
	case protocol.MsgTurnOrders:
		h.handleTurnOrders(client, msg)
	case protocol.MsgTurnPartialOrders:
		h.handlePartialOrders(client, msg)

	default:
		logger.LogWarn("unknown message type %q from player %d (%s), payload %d bytes",
			msg.Type, client.GetID(), client.GetName(), len(msg.Payload))
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// sendError 把错误转换为错误消息发给客户端
func sendError(client types.ClientInterface, err error) {
	code := apperrors.CodeOf(err)
	client.SendMessage(codec.NewErrorMessageWithText(code, err.Error()))
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
