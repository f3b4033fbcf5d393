package types

import (
	"context"

	"github.com/palemoky/stellar-empires/internal/order"
	"github.com/palemoky/stellar-empires/internal/protocol"
)

// ServerContext 服务器上下文接口 - 避免循环依赖
type ServerContext interface {
	GetTurnStore() TurnStoreInterface
	GetGame() GameInterface
	GetContentChecksums() map[string]uint32
	AllowPartialOrders(clientID int) bool
	Broadcast(msg *protocol.Message)
	GetClientByID(id int) ClientInterface
}

// GameInterface 回合制对局接口
type GameInterface interface {
	GetID() string
	GetTurn() int
	AcceptingOrders(turn int) error
	Join(client ClientInterface, name string, clientType protocol.ClientType) (*protocol.PlayerInfo, error)
	Leave(playerID int) (turnReady bool)
	GetPlayer(playerID int) (protocol.PlayerInfo, bool)
	PlayersInfo() []protocol.PlayerInfo
	Objects() []protocol.ObjectInfo
	ApplyOrders(empireID int, orders []order.Order) (applied int)
	SubmitTurn(playerID, turn int) (allWaiting bool, err error)
	ProcessTurn(ctx context.Context) int
}

// TurnStoreInterface 回合指令存储接口
type TurnStoreInterface interface {
	SaveTurnOrders(ctx context.Context, gameID string, turn, empireID int, orders []protocol.OrderInfo, saveState []byte) error
	ApplyPartialOrders(ctx context.Context, gameID string, turn, empireID int, added []protocol.OrderInfo, removed []int) error
	LoadOrders(ctx context.Context, gameID string, turn, empireID int) ([]protocol.OrderInfo, error)
	LoadSaveState(ctx context.Context, gameID string, turn, empireID int) ([]byte, error)
	ClearTurn(ctx context.Context, gameID string, turn int) error
}

// ClientInterface 客户端接口
type ClientInterface interface {
	GetID() int
	GetName() string
	SendMessage(msg *protocol.Message)
	Close()
}

// ChecksumSource 内容表校验和来源
type ChecksumSource interface {
	ComputeContentChecksums() map[string]uint32
}
