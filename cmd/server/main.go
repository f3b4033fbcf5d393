package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/palemoky/stellar-empires/internal/config"
	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/network/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	port := flag.Int("port", 0, "监听端口，覆盖配置")
	redisAddr := flag.String("redis", "", "Redis 地址，覆盖配置")
	contentDir := flag.String("content", "", "内容表目录，覆盖配置")
	flag.Parse()

	if err := logger.InitConsole(); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("加载配置文件失败: %v", err)
		}
		logger.LogWarn("config %s not found, using defaults", *configPath)
		cfg = config.Default()
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("读取环境变量失败: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *redisAddr != "" {
		cfg.Redis.Addr = *redisAddr
	}
	if *contentDir != "" {
		cfg.Game.ContentDir = *contentDir
	}

	// 创建服务器
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("创建服务器失败: %v", err)
	}

	// 优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.LogInfo("stellar empires server starting")
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
	logger.LogInfo("server stopped")
}
