package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/network/server/types"
	"github.com/palemoky/stellar-empires/internal/opt"
	"github.com/palemoky/stellar-empires/internal/order"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
	"github.com/palemoky/stellar-empires/internal/protocol/convert"
	"github.com/palemoky/stellar-empires/internal/universe"
)

// FirstTurn 新对局的第一个回合
const FirstTurn = 1

// homeSystemBase 帝国母星系的对象 ID 起点，母星系 ID 为 homeSystemBase + 帝国 ID
const homeSystemBase = 1000

// turnPhases 回合处理时依次广播的阶段
var turnPhases = []protocol.TurnProgressPhase{
	protocol.PhaseProcessingOrders,
	protocol.PhaseFleetMovement,
	protocol.PhaseCombat,
	protocol.PhasePostCombat,
	protocol.PhaseColonizeAndScrap,
	protocol.PhaseEmpireProduction,
}

// Player 对局中的一个连接
type Player struct {
	Client     types.ClientInterface
	Name       string
	ClientType protocol.ClientType
	EmpireID   opt.Value[int]
	Status     protocol.PlayerStatus
}

// Game 一局回合制游戏
type Game struct {
	ID string

	mu           sync.RWMutex
	turn         int
	players      map[int]*Player
	nextEmpireID int
	maxEmpires   int
	phaseDelay   time.Duration
	universe     *universe.Universe
	// processing 从最后一个帝国提交到回合号递增期间为 true
	processing bool
}

// NewGame 创建对局。maxEmpires 为 0 表示不限制帝国数量
func NewGame(maxEmpires int, phaseDelay time.Duration) *Game {
	return &Game{
		ID:           uuid.New().String(),
		turn:         FirstTurn,
		players:      make(map[int]*Player),
		nextEmpireID: 1,
		maxEmpires:   maxEmpires,
		phaseDelay:   phaseDelay,
		universe:     universe.New(),
	}
}

// GetID 获取对局 ID
func (g *Game) GetID() string { return g.ID }

// GetTurn 获取当前回合
func (g *Game) GetTurn() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.turn
}

// Join 加入对局。玩家与 AI 分配新的帝国，观察者和主持人没有帝国
func (g *Game) Join(client types.ClientInterface, name string, clientType protocol.ClientType) (*protocol.PlayerInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := &Player{
		Client:     client,
		Name:       name,
		ClientType: clientType,
		Status:     protocol.PlayerStatusPlaying,
	}
	if clientType.ControlsEmpire() {
		if g.maxEmpires > 0 && g.empireCount() >= g.maxEmpires {
			return nil, ErrGameFull
		}
		empireID := g.nextEmpireID
		p.EmpireID = opt.Some(empireID)
		g.nextEmpireID++
		g.universe.Insert(universe.Object{
			ID:         homeSystemBase + empireID,
			Kind:       universe.KindSystem,
			Name:       name + " Home",
			Owner:      opt.Some(empireID),
			ExploredBy: map[int]bool{empireID: true},
		})
	}
	g.players[client.GetID()] = p

	info := g.infoLocked(client.GetID(), p)
	logger.LogInfo("player %d (%s, %s) joined game %s", info.ID, name, clientType, g.ID)
	return &info, nil
}

// Leave 离开对局。离开的是帝国且剩余帝国都已提交时返回 true
func (g *Game) Leave(playerID int) (turnReady bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.players[playerID]
	if !ok {
		return false
	}
	delete(g.players, playerID)
	if p.EmpireID.IsNone() || g.processing || !g.allWaitingLocked() {
		return false
	}
	g.processing = true
	return true
}

// AcceptingOrders 检查对局当前是否接受 turn 回合的指令
func (g *Game) AcceptingOrders(turn int) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.acceptingLocked(turn)
}

func (g *Game) acceptingLocked(turn int) error {
	if turn != g.turn {
		return ErrWrongTurn
	}
	if g.processing {
		return ErrTurnProcessing
	}
	return nil
}

// Objects 返回对局中已知的宇宙对象
func (g *Game) Objects() []protocol.ObjectInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return convert.ObjectsToInfos(g.universe.Objects())
}

// ApplyOrders 在结算时执行帝国的指令，目前只有改名会改变对局状态，返回生效的指令数
func (g *Game) ApplyOrders(empireID int, orders []order.Order) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	applied := 0
	for _, o := range orders {
		r, ok := o.Details.(order.Rename)
		if !ok {
			continue
		}
		if g.universe.Rename(r.Object, empireID, r.Name) {
			applied++
		} else {
			logger.LogDebug("empire %d cannot rename object %d", empireID, r.Object)
		}
	}
	return applied
}

// GetPlayer 获取玩家信息
func (g *Game) GetPlayer(playerID int) (protocol.PlayerInfo, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.players[playerID]
	if !ok {
		return protocol.PlayerInfo{}, false
	}
	return g.infoLocked(playerID, p), true
}

// PlayersInfo 获取按玩家 ID 排序的名单
func (g *Game) PlayersInfo() []protocol.PlayerInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]int, 0, len(g.players))
	for id := range g.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	infos := make([]protocol.PlayerInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, g.infoLocked(id, g.players[id]))
	}
	return infos
}

// SubmitTurn 标记玩家本回合已提交指令，返回是否所有帝国都已提交。
// 同一回合只有一个调用者会得到 true，之后直到 ProcessTurn 推进回合前的提交都会被拒绝
func (g *Game) SubmitTurn(playerID, turn int) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok {
		return false, ErrNotJoined
	}
	if p.EmpireID.IsNone() {
		return false, ErrNoEmpire
	}
	if err := g.acceptingLocked(turn); err != nil {
		return false, err
	}
	p.Status = protocol.PlayerStatusWaiting
	if !g.allWaitingLocked() {
		return false, nil
	}
	g.processing = true
	return true, nil
}

// ProcessTurn 广播各处理阶段，推进回合并通知所有客户端，返回新回合号
func (g *Game) ProcessTurn(ctx context.Context) int {
	for _, phase := range turnPhases {
		g.Broadcast(codec.MustNewMessage(protocol.MsgTurnProgress, protocol.TurnProgressPayload{Phase: phase}))
		if g.phaseDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(g.phaseDelay):
			}
		}
	}

	g.mu.Lock()
	g.turn++
	g.processing = false
	turn := g.turn
	for _, p := range g.players {
		if p.Status == protocol.PlayerStatusWaiting {
			p.Status = protocol.PlayerStatusPlaying
		}
	}
	g.mu.Unlock()

	logger.LogInfo("game %s advanced to turn %d", g.ID, turn)
	g.Broadcast(codec.MustNewMessage(protocol.MsgTurnUpdate, protocol.TurnUpdatePayload{Turn: turn}))
	g.Broadcast(codec.MustNewMessage(protocol.MsgPlayersList, protocol.PlayersListPayload{Players: g.PlayersInfo()}))
	return turn
}

// Broadcast 广播消息给对局内所有玩家
func (g *Game) Broadcast(msg *protocol.Message) {
	g.mu.RLock()
	clients := make([]types.ClientInterface, 0, len(g.players))
	for _, p := range g.players {
		clients = append(clients, p.Client)
	}
	g.mu.RUnlock()

	for _, c := range clients {
		c.SendMessage(msg)
	}
}

func (g *Game) empireCount() int {
	n := 0
	for _, p := range g.players {
		if p.EmpireID.IsSome() {
			n++
		}
	}
	return n
}

// allWaitingLocked 至少有一个帝国且所有未投降的帝国都在等待
func (g *Game) allWaitingLocked() bool {
	empires := 0
	for _, p := range g.players {
		if p.EmpireID.IsNone() || p.Status == protocol.PlayerStatusResigned {
			continue
		}
		empires++
		if p.Status != protocol.PlayerStatusWaiting {
			return false
		}
	}
	return empires > 0
}

func (g *Game) infoLocked(id int, p *Player) protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:         id,
		Name:       p.Name,
		EmpireID:   convert.IntPtr(p.EmpireID.Get()),
		ClientType: p.ClientType,
		Status:     p.Status,
	}
}
