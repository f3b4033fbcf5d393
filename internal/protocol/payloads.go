package protocol

// NoTurn 游戏开始前的回合号
const NoTurn = -1

// --- 客户端请求 Payloads ---

// JoinGamePayload 加入游戏请求
type JoinGamePayload struct {
	PlayerName string     `json:"player_name"`
	ClientType ClientType `json:"client_type"`
}

// TurnOrdersPayload 整回合指令。UIData 与 SaveState 二选一
type TurnOrdersPayload struct {
	Turn      int             `json:"turn"`
	Orders    []OrderInfo     `json:"orders"`
	UIData    *SaveGameUIData `json:"ui_data,omitempty"`
	SaveState []byte          `json:"save_state,omitempty"` // lz4 压缩后的存档字符串
}

// PartialOrdersPayload 回合内增量指令
type PartialOrdersPayload struct {
	Turn    int         `json:"turn"`
	Added   []OrderInfo `json:"added,omitempty"`
	Removed []int       `json:"removed,omitempty"`
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// GameStartPayload 游戏开始通知。EmpireID 为 nil 表示观察者/主持人
type GameStartPayload struct {
	GameID   string       `json:"game_id"`
	EmpireID *int         `json:"empire_id,omitempty"`
	Turn     int          `json:"turn"`
	Objects  []ObjectInfo `json:"objects,omitempty"` // 加入时已知的宇宙对象
}

// PlayersListPayload 玩家名单
type PlayersListPayload struct {
	Players []PlayerInfo `json:"players"`
}

// PlayerStatusPayload 玩家状态变化
type PlayerStatusPayload struct {
	EmpireID int          `json:"empire_id"`
	Status   PlayerStatus `json:"status"`
}

// TurnProgressPayload 回合处理阶段
type TurnProgressPayload struct {
	Phase TurnProgressPhase `json:"phase"`
}

// TurnUpdatePayload 新回合开始
type TurnUpdatePayload struct {
	Turn int `json:"turn"`
}

// ContentChecksumPayload 服务端内容校验和
type ContentChecksumPayload struct {
	Checksums map[string]uint32 `json:"checksums"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	EmpireID   *int         `json:"empire_id,omitempty"`
	ClientType ClientType   `json:"client_type"`
	Status     PlayerStatus `json:"status"`
}

// OrderInfo 指令的传输形式。Kind 决定哪些字段有效
type OrderInfo struct {
	ID       int    `json:"id"`
	EmpireID int    `json:"empire_id"`
	Kind     string `json:"kind"`
	Fleet    int    `json:"fleet,omitempty"`
	System   int    `json:"system,omitempty"`
	Object   int    `json:"object,omitempty"`
	Planet   int    `json:"planet,omitempty"`
	Ship     int    `json:"ship,omitempty"`
	Location int    `json:"location,omitempty"`
	Position int    `json:"position,omitempty"`
	Name     string `json:"name,omitempty"`
}

// ObjectInfo 宇宙对象信息
type ObjectInfo struct {
	ID         int    `json:"id"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Owner      *int   `json:"owner,omitempty"`
	ExploredBy []int  `json:"explored_by,omitempty"`
}

// SaveGameUIData 客户端界面快照，随整回合指令一起保存
type SaveGameUIData struct {
	MapTop             int     `json:"map_top"`
	MapLeft            int     `json:"map_left"`
	MapZoomStepsIn     float64 `json:"map_zoom_steps_in"`
	FleetsExploring    []int   `json:"fleets_exploring,omitempty"`
	OrderedShipDesigns []int   `json:"ordered_ship_designs,omitempty"`
}
