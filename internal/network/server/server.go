package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/stellar-empires/internal/config"
	"github.com/palemoky/stellar-empires/internal/content"
	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/network/server/core"
	"github.com/palemoky/stellar-empires/internal/network/server/game"
	"github.com/palemoky/stellar-empires/internal/network/server/handlers"
	"github.com/palemoky/stellar-empires/internal/network/server/storage"
	"github.com/palemoky/stellar-empires/internal/network/server/types"
	"github.com/palemoky/stellar-empires/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// Server WebSocket 回合服务器
type Server struct {
	config    *config.Config
	redis     *redis.Client
	turnStore *storage.TurnStore
	game      *game.Game
	checksums map[string]uint32
	handler   *handlers.Handler
	limiter   *core.OrderRateLimiter

	clients      map[int]*Client
	clientsMu    sync.RWMutex
	nextClientID atomic.Int64

	httpServer *http.Server
}

// NewServer 连接 Redis、加载内容表并创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	lib, err := content.Load(os.DirFS(cfg.Game.ContentDir))
	if err != nil {
		return nil, fmt.Errorf("load content from %s: %w", cfg.Game.ContentDir, err)
	}

	return New(cfg, rdb, lib), nil
}

// New 使用已有的 Redis 客户端和内容表创建服务器
func New(cfg *config.Config, rdb *redis.Client, checksums types.ChecksumSource) *Server {
	s := &Server{
		config:    cfg,
		redis:     rdb,
		turnStore: storage.NewTurnStore(rdb),
		game:      game.NewGame(cfg.Server.MaxPlayers, cfg.Game.PhaseDelayDuration()),
		checksums: checksums.ComputeContentChecksums(),
		limiter:   core.NewOrderRateLimiter(cfg.Game.PartialOrdersPerSecond, cfg.Game.PartialOrdersBurst),
		clients:   make(map[int]*Client),
	}
	s.handler = handlers.NewHandler(s)

	logger.LogInfo("game %s created, content checksums %v", s.game.ID, s.checksums)
	return s
}

// Routes 返回 HTTP 路由
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start 启动服务器，ctx 取消后优雅关闭
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.LogInfo("server listening on ws://%s/ws", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.LogWarn("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(s, conn, int(s.nextClientID.Add(1)))
	client.IP = r.RemoteAddr
	s.registerClient(client)
	logger.LogInfo("client %d connected from %s", client.ID, client.IP)

	// 启动客户端读写协程
	go client.WritePump()
	go client.ReadPump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端并离开对局
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	_, ok := s.clients[client.ID]
	delete(s.clients, client.ID)
	s.clientsMu.Unlock()

	if !ok {
		return
	}
	client.Close()
	s.limiter.RemoveClient(client.ID)
	s.handler.HandleLeave(client)
	logger.LogInfo("client %d disconnected", client.ID)
}

// GetOnlineCount 获取在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Shutdown 关闭所有连接和 Redis
func (s *Server) Shutdown() error {
	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = s.httpServer.Shutdown(ctx)
		cancel()
	}

	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if s.redis != nil {
		_ = s.redis.Close()
	}
	logger.LogInfo("server stopped")
	return err
}

// Interface implementations for types.ServerContext
func (s *Server) GetTurnStore() types.TurnStoreInterface { return s.turnStore }
func (s *Server) GetGame() types.GameInterface           { return s.game }
func (s *Server) GetContentChecksums() map[string]uint32 { return s.checksums }
func (s *Server) AllowPartialOrders(clientID int) bool   { return s.limiter.Allow(clientID) }

// Broadcast 广播消息给已加入对局的玩家
func (s *Server) Broadcast(msg *protocol.Message) {
	s.game.Broadcast(msg)
}

func (s *Server) GetClientByID(id int) types.ClientInterface {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return c
	}
	return nil
}
