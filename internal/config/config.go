package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// 默认值
const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 1790
	defaultMaxPlayers     = 16
	defaultRedisAddr      = "localhost:6379"
	defaultPhaseDelay     = 200 // 毫秒
	defaultPartialPerSec  = 5
	defaultPartialBurst   = 10
	defaultContentDir     = "content"
	defaultClientServer   = "localhost:1790"
	defaultClientType     = "player"
	defaultSoundDir       = "assets/sounds"
	defaultHeartbeatSecs  = 5
	defaultReconnectTries = 5
	envPrefix             = "STELLAR_"
)

// Config 客户端与服务端共用配置
type Config struct {
	Server ServerConfig `yaml:"server" envPrefix:"SERVER_"`
	Redis  RedisConfig  `yaml:"redis" envPrefix:"REDIS_"`
	Game   GameConfig   `yaml:"game" envPrefix:"GAME_"`
	Client ClientConfig `yaml:"client" envPrefix:"CLIENT_"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host       string `yaml:"host" env:"HOST"`
	Port       int    `yaml:"port" env:"PORT"`
	MaxPlayers int    `yaml:"max_players" env:"MAX_PLAYERS"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
}

// GameConfig 回合处理配置
type GameConfig struct {
	PhaseDelay             int     `yaml:"phase_delay" env:"PHASE_DELAY"`                   // 每个处理阶段的间隔（毫秒）
	PartialOrdersPerSecond float64 `yaml:"partial_orders_per_second" env:"PARTIAL_PER_SEC"` // 增量指令速率
	PartialOrdersBurst     int     `yaml:"partial_orders_burst" env:"PARTIAL_BURST"`
	ContentDir             string  `yaml:"content_dir" env:"CONTENT_DIR"` // 内容表目录
}

// ClientConfig 客户端配置
type ClientConfig struct {
	Server         string `yaml:"server" env:"SERVER"`
	PlayerName     string `yaml:"player_name" env:"PLAYER_NAME"`
	ClientType     string `yaml:"client_type" env:"CLIENT_TYPE"`
	ContentDir     string `yaml:"content_dir" env:"CONTENT_DIR"`
	Sound          bool   `yaml:"sound" env:"SOUND"`
	SoundDir       string `yaml:"sound_dir" env:"SOUND_DIR"`
	Heartbeat      int    `yaml:"heartbeat" env:"HEARTBEAT"` // 心跳间隔（秒）
	ReconnectTries int    `yaml:"reconnect_tries" env:"RECONNECT_TRIES"`
}

// PhaseDelayDuration 返回阶段间隔时长
func (c *GameConfig) PhaseDelayDuration() time.Duration {
	return time.Duration(c.PhaseDelay) * time.Millisecond
}

// HeartbeatDuration 返回心跳间隔时长
func (c *ClientConfig) HeartbeatDuration() time.Duration {
	return time.Duration(c.Heartbeat) * time.Second
}

// Load 加载配置文件，缺省项使用默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// ApplyEnv 用 STELLAR_* 环境变量覆盖配置
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Default 返回默认配置
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.MaxPlayers == 0 {
		c.Server.MaxPlayers = defaultMaxPlayers
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Game.PhaseDelay == 0 {
		c.Game.PhaseDelay = defaultPhaseDelay
	}
	if c.Game.PartialOrdersPerSecond == 0 {
		c.Game.PartialOrdersPerSecond = defaultPartialPerSec
	}
	if c.Game.PartialOrdersBurst == 0 {
		c.Game.PartialOrdersBurst = defaultPartialBurst
	}
	if c.Game.ContentDir == "" {
		c.Game.ContentDir = defaultContentDir
	}
	if c.Client.Server == "" {
		c.Client.Server = defaultClientServer
	}
	if c.Client.ClientType == "" {
		c.Client.ClientType = defaultClientType
	}
	if c.Client.ContentDir == "" {
		c.Client.ContentDir = defaultContentDir
	}
	if c.Client.SoundDir == "" {
		c.Client.SoundDir = defaultSoundDir
	}
	if c.Client.Heartbeat == 0 {
		c.Client.Heartbeat = defaultHeartbeatSecs
	}
	if c.Client.ReconnectTries == 0 {
		c.Client.ReconnectTries = defaultReconnectTries
	}
}
