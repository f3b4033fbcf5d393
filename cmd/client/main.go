package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/palemoky/stellar-empires/internal/config"
	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	serverAddr := flag.String("server", "", "服务器地址，覆盖配置")
	name := flag.String("name", "", "玩家名称")
	clientType := flag.String("type", "", "客户端类型: player, ai, observer, moderator")
	noSound := flag.Bool("mute", false, "关闭提示音")
	flag.Parse()

	// 终端界面占用 stdout，日志写入文件
	if err := logger.Init(); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("加载配置文件失败: %v", err)
		}
		cfg = config.Default()
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("读取环境变量失败: %v", err)
	}
	if *serverAddr != "" {
		cfg.Client.Server = *serverAddr
	}
	if *name != "" {
		cfg.Client.PlayerName = *name
	}
	if *clientType != "" {
		cfg.Client.ClientType = *clientType
	}
	if *noSound {
		cfg.Client.Sound = false
	}

	ct := protocol.ParseClientType(cfg.Client.ClientType)
	if ct == protocol.ClientTypeInvalid {
		log.Fatalf("未知的客户端类型: %s", cfg.Client.ClientType)
	}

	err = ui.Run(ui.Options{
		ServerURL:      fmt.Sprintf("ws://%s/ws", cfg.Client.Server),
		PlayerName:     cfg.Client.PlayerName,
		ClientType:     ct,
		ContentDir:     cfg.Client.ContentDir,
		SoundDir:       cfg.Client.SoundDir,
		Sound:          cfg.Client.Sound,
		Heartbeat:      cfg.Client.HeartbeatDuration(),
		ReconnectTries: cfg.Client.ReconnectTries,
	})
	if err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
