// Package client is the websocket transport between a game client and the
// turn server. It implements the session's Transport interface.
package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 默认心跳间隔
	defaultHeartbeat = 5 * time.Second
	// 默认最大重连次数
	defaultReconnectAttempts = 5
	// 首次重连等待
	reconnectInterval = 2 * time.Second
	// 每个连接的发送缓冲
	sendBufferSize = 256
	// 重连退避上限
	maxReconnectBackoff = 30 * time.Second
)

var (
	// ErrClosed 连接已关闭
	ErrClosed = errors.New("connection closed")
	// ErrBufferFull 发送缓冲区已满
	ErrBufferFull = errors.New("send buffer full")
	// ErrTimeout 接收超时
	ErrTimeout = errors.New("receive timeout")
)

// Option configures a Client.
type Option func(*Client)

// WithHeartbeat sets the application ping interval used by StartHeartbeat.
func WithHeartbeat(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.heartbeat = d
		}
	}
}

// WithReconnect sets how many times a dropped connection is redialed and the
// first wait between attempts. Zero attempts disables reconnecting.
func WithReconnect(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxReconnect = attempts
		if delay > 0 {
			c.reconnectDelay = delay
		}
	}
}

// Client WebSocket 客户端
type Client struct {
	ServerURL string
	conn      *websocket.Conn
	send      chan []byte
	receive   chan *protocol.Message
	done      chan struct{}

	// 网络延迟（毫秒）
	latency atomic.Int64

	// 回调，在读协程中调用
	OnMessage       func(*protocol.Message)
	OnError         func(error)
	OnClose         func()
	OnReconnect     func()
	OnReconnecting  func(attempt, max int)
	OnLatencyUpdate func(int64)

	heartbeat      time.Duration
	maxReconnect   int
	reconnectDelay time.Duration

	mu             sync.RWMutex
	closed         bool
	joined         *protocol.JoinGamePayload // 断线重连后重新加入
	rejoined       chan struct{}             // 重连中，收到 connected 时关闭
	reconnecting   atomic.Bool
	reconnectCount atomic.Int32
}

// NewClient 创建客户端
func NewClient(serverURL string, opts ...Option) *Client {
	c := &Client{
		ServerURL:      serverURL,
		send:           make(chan []byte, sendBufferSize),
		receive:        make(chan *protocol.Message, 256),
		done:           make(chan struct{}),
		heartbeat:      defaultHeartbeat,
		maxReconnect:   defaultReconnectAttempts,
		reconnectDelay: reconnectInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect 连接服务器
func (c *Client) Connect(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	send := c.send
	c.mu.Unlock()

	c.startPumps(conn, send)
	return nil
}

// startPumps 启动一条连接的读写协程，返回的 stop 在读协程退出时关闭
func (c *Client) startPumps(conn *websocket.Conn, send chan []byte) (stop chan struct{}) {
	stop = make(chan struct{})
	go c.readPump(conn, stop)
	go c.writePump(conn, send, stop)
	return stop
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, c.ServerURL, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// SendMessage 发送消息。只负责入队，不重试
func (c *Client) SendMessage(msg *protocol.Message) error {
	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Receive 接收消息 (阻塞)
func (c *Client) Receive() (*protocol.Message, error) {
	c.mu.RLock()
	receive, done := c.receive, c.done
	c.mu.RUnlock()

	select {
	case msg := <-receive:
		return msg, nil
	case <-done:
		return nil, ErrClosed
	}
}

// ReceiveWithTimeout 带超时接收消息
func (c *Client) ReceiveWithTimeout(timeout time.Duration) (*protocol.Message, error) {
	c.mu.RLock()
	receive, done := c.receive, c.done
	c.mu.RUnlock()

	select {
	case msg := <-receive:
		return msg, nil
	case <-time.After(timeout):
		return nil, ErrTimeout
	case <-done:
		return nil, ErrClosed
	}
}

// Close 关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

// IsTxConnected 连接可用于发送：已连接且不在重连中
func (c *Client) IsTxConnected() bool {
	return c.IsConnected() && !c.reconnecting.Load()
}

// GetLatency 获取当前延迟（毫秒）
func (c *Client) GetLatency() int64 {
	return c.latency.Load()
}

// IsReconnecting 是否正在重连
func (c *Client) IsReconnecting() bool {
	return c.reconnecting.Load()
}
