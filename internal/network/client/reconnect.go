package client

import (
	"context"
	"time"

	"github.com/palemoky/stellar-empires/internal/logger"
)

// StartHeartbeat 启动应用层心跳，pong 用于计算延迟
func (c *Client) StartHeartbeat() {
	c.mu.RLock()
	done := c.done
	c.mu.RUnlock()

	go func() {
		ticker := time.NewTicker(c.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if c.IsTxConnected() {
					_ = c.Ping()
				}
			case <-done:
				return
			}
		}
	}()
}

// tryReconnect 指数退避重连，成功后重新加入游戏
func (c *Client) tryReconnect() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			c.reconnecting.Store(false)
		}
	}()

	if !c.reconnecting.CompareAndSwap(false, true) {
		return
	}

	c.mu.RLock()
	done := c.done
	c.mu.RUnlock()

	backoff := c.reconnectDelay
	for int(c.reconnectCount.Load()) < c.maxReconnect {
		attempt := int(c.reconnectCount.Add(1))
		logger.LogInfo("reconnecting to %s (%d/%d)", c.ServerURL, attempt, c.maxReconnect)
		if c.OnReconnecting != nil {
			c.OnReconnecting(attempt, c.maxReconnect)
		}

		time.Sleep(backoff)
		backoff = min(backoff*2, maxReconnectBackoff)

		if c.isClosed() {
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		conn, err := c.dial(ctx)
		cancel()
		if err != nil {
			logger.LogWarn("reconnect failed: %v", err)
			continue
		}

		// 新连接使用新的发送队列，旧的写协程拿不到重新加入的消息
		rejoined := make(chan struct{})
		c.mu.Lock()
		c.conn = conn
		c.send = make(chan []byte, sendBufferSize)
		c.rejoined = rejoined
		send := c.send
		join := *c.joined
		c.mu.Unlock()

		stop := c.startPumps(conn, send)

		// 重新加入；收到 connected 后才算重连完成
		if err := c.JoinGame(join.PlayerName, join.ClientType); err != nil {
			logger.LogWarn("rejoin failed: %v", err)
			_ = conn.Close()
			continue
		}
		select {
		case <-rejoined:
			return
		case <-stop:
			// connected 先于断开到达时重连已完成，由读协程重新发起
			select {
			case <-rejoined:
				return
			default:
			}
			logger.LogWarn("connection to %s lost before rejoin completed", c.ServerURL)
		case <-done:
			c.reconnecting.Store(false)
			return
		}
	}

	logger.LogError("giving up on %s after %d attempts", c.ServerURL, c.reconnectCount.Load())
	c.mu.Lock()
	c.rejoined = nil
	c.mu.Unlock()
	c.reconnecting.Store(false)
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
