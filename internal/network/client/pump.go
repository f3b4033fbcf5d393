package client

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
)

// readPump 从服务器读取消息。连接断开时关闭 stop，并在需要时触发重连
func (c *Client) readPump(conn *websocket.Conn, stop chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		_ = conn.Close()
		close(stop)

		// 重连过程中由 tryReconnect 处理这条连接的断开
		if c.reconnecting.Load() {
			return
		}
		c.mu.RLock()
		canRejoin := c.joined != nil && !c.closed && c.maxReconnect > 0
		c.mu.RUnlock()

		if canRejoin {
			go c.tryReconnect()
			return
		}
		c.Close()
		if c.OnClose != nil {
			c.OnClose()
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.LogWarn("connection to %s lost: %v", c.ServerURL, err)
				if c.OnError != nil {
					c.OnError(err)
				}
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		msg, err := codec.Decode(data)
		if err != nil {
			logger.LogWarn("消息解析错误: %v", err)
			continue
		}

		// 重新加入成功 - 标记状态但不立即回调
		isRejoined := msg.Type == protocol.MsgConnected && c.finishRejoin()

		// 处理 pong 消息计算延迟
		if msg.Type == protocol.MsgPong {
			if payload, err := codec.ParsePayload[protocol.PongPayload](msg); err == nil {
				latency := time.Now().UnixMilli() - payload.ClientTimestamp
				c.latency.Store(latency)
				if c.OnLatencyUpdate != nil {
					c.OnLatencyUpdate(latency)
				}
			}
		}

		if c.OnMessage != nil {
			c.OnMessage(msg)
		}

		c.mu.RLock()
		receive := c.receive
		c.mu.RUnlock()
		select {
		case receive <- msg:
		default:
			logger.LogWarn("receive buffer full, dropping %s", msg.Type)
		}

		// 重连回调放在最后，确保消息已经发送到 channel
		if isRejoined && c.OnReconnect != nil {
			c.OnReconnect()
		}
	}
}

// finishRejoin 重连中收到 connected 时结束重连，返回是否确实在重连
func (c *Client) finishRejoin() bool {
	c.mu.Lock()
	rejoined := c.rejoined
	c.rejoined = nil
	c.mu.Unlock()
	if rejoined == nil {
		return false
	}
	c.reconnectCount.Store(0)
	c.reconnecting.Store(false)
	close(rejoined)
	return true
}

// writePump 向服务器写入消息，直到这条连接的读协程退出
func (c *Client) writePump(conn *websocket.Conn, send chan []byte, stop chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	c.mu.RLock()
	done := c.done
	c.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case data, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-stop:
			return

		case <-done:
			return
		}
	}
}
