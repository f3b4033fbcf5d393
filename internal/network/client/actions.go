package client

import (
	"time"

	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
)

// --- 便捷方法 ---

// JoinGame 加入游戏，断线重连后会用相同参数重新加入
func (c *Client) JoinGame(name string, clientType protocol.ClientType) error {
	payload := protocol.JoinGamePayload{PlayerName: name, ClientType: clientType}
	c.mu.Lock()
	c.joined = &payload
	c.mu.Unlock()
	return c.SendMessage(codec.MustNewMessage(protocol.MsgJoinGame, payload))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
