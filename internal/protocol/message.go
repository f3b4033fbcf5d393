package protocol

// Message 基础消息结构
type Message struct {
	Type    MessageType `json:"type"`
	Payload []byte      `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgJoinGame          MessageType = "join_game"           // 加入游戏
	MsgTurnOrders        MessageType = "turn_orders"         // 提交整回合指令
	MsgTurnPartialOrders MessageType = "turn_partial_orders" // 回合内增量指令
	MsgPing              MessageType = "ping"                // 心跳 ping
)

// 服务端 → 客户端 消息类型
const (
	MsgConnected       MessageType = "connected"        // 连接成功
	MsgGameStart       MessageType = "game_start"       // 游戏开始
	MsgPlayersList     MessageType = "players_list"     // 玩家名单（整体替换）
	MsgPlayerStatus    MessageType = "player_status"    // 玩家状态变化
	MsgTurnProgress    MessageType = "turn_progress"    // 回合处理阶段
	MsgTurnUpdate      MessageType = "turn_update"      // 新回合开始
	MsgContentChecksum MessageType = "content_checksum" // 内容校验和
	MsgPong            MessageType = "pong"             // 心跳 pong
	MsgError           MessageType = "error"            // 错误消息
)

// PlayerStatus 玩家回合状态
type PlayerStatus int

const (
	PlayerStatusPlaying  PlayerStatus = iota // 正在下达指令
	PlayerStatusWaiting                      // 已提交，等待其他玩家
	PlayerStatusResigned                     // 已退出
)

func (s PlayerStatus) String() string {
	switch s {
	case PlayerStatusPlaying:
		return "playing"
	case PlayerStatusWaiting:
		return "waiting"
	case PlayerStatusResigned:
		return "resigned"
	default:
		return "unknown"
	}
}

// TurnProgressPhase 服务端回合处理阶段
type TurnProgressPhase int

const (
	PhaseFleetMovement TurnProgressPhase = iota
	PhaseCombat
	PhasePostCombat
	PhaseEmpireProduction
	PhaseWaitingForPlayers
	PhaseProcessingOrders
	PhaseColonizeAndScrap
	PhaseDownloading
	PhaseLoadingGame
	PhaseGeneratingUniverse
	PhaseStartingAIs
)

var phaseNames = [...]string{
	PhaseFleetMovement:      "fleet movement",
	PhaseCombat:             "combat",
	PhasePostCombat:         "post combat",
	PhaseEmpireProduction:   "empire production",
	PhaseWaitingForPlayers:  "waiting for players",
	PhaseProcessingOrders:   "processing orders",
	PhaseColonizeAndScrap:   "colonize and scrap",
	PhaseDownloading:        "downloading",
	PhaseLoadingGame:        "loading game",
	PhaseGeneratingUniverse: "generating universe",
	PhaseStartingAIs:        "starting AIs",
}

func (p TurnProgressPhase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// ClientType 客户端类型
type ClientType int

const (
	ClientTypeInvalid ClientType = iota
	ClientTypePlayer             // 人类玩家，控制一个帝国
	ClientTypeAIPlayer           // AI 玩家，控制一个帝国
	ClientTypeObserver           // 观察者，无帝国
	ClientTypeModerator          // 主持人，无帝国
)

func (c ClientType) String() string {
	switch c {
	case ClientTypePlayer:
		return "player"
	case ClientTypeAIPlayer:
		return "ai"
	case ClientTypeObserver:
		return "observer"
	case ClientTypeModerator:
		return "moderator"
	default:
		return "invalid"
	}
}

// ControlsEmpire 是否会被分配帝国
func (c ClientType) ControlsEmpire() bool {
	return c == ClientTypePlayer || c == ClientTypeAIPlayer
}

// ParseClientType 从字符串解析客户端类型，未知值返回 ClientTypeInvalid
func ParseClientType(s string) ClientType {
	switch s {
	case "player":
		return ClientTypePlayer
	case "ai":
		return ClientTypeAIPlayer
	case "observer":
		return ClientTypeObserver
	case "moderator":
		return ClientTypeModerator
	default:
		return ClientTypeInvalid
	}
}
