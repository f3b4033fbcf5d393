package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/stellar-empires/internal/network/server/game"
	"github.com/palemoky/stellar-empires/internal/network/server/types"
	"github.com/palemoky/stellar-empires/internal/order"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
	"github.com/palemoky/stellar-empires/internal/testutil"
)

// fakeServer 使用真实对局和可替换存储的服务器上下文
type fakeServer struct {
	game  *game.Game
	store types.TurnStoreInterface
	sums  map[string]uint32
}

func (s *fakeServer) GetTurnStore() types.TurnStoreInterface  { return s.store }
func (s *fakeServer) GetGame() types.GameInterface            { return s.game }
func (s *fakeServer) GetContentChecksums() map[string]uint32  { return s.sums }
func (s *fakeServer) AllowPartialOrders(int) bool             { return true }
func (s *fakeServer) Broadcast(msg *protocol.Message)         { s.game.Broadcast(msg) }
func (s *fakeServer) GetClientByID(int) types.ClientInterface { return nil }

func newTestHandler(t *testing.T) (*Handler, *fakeServer, *testutil.MockTurnStore) {
	t.Helper()
	store := new(testutil.MockTurnStore)
	srv := &fakeServer{
		game:  game.NewGame(0, 0),
		store: store,
		sums:  map[string]uint32{"Techs": 42},
	}
	return NewHandler(srv), srv, store
}

func join(t *testing.T, h *Handler, id int, ct protocol.ClientType) *testutil.SimpleClient {
	t.Helper()
	c := &testutil.SimpleClient{ID: id, Name: "p"}
	h.Handle(c, codec.MustNewMessage(protocol.MsgJoinGame, protocol.JoinGamePayload{PlayerName: "p", ClientType: ct}))
	require.NotEmpty(t, c.OfType(protocol.MsgConnected), "join should succeed")
	return c
}

func lastError(t *testing.T, c *testutil.SimpleClient) *protocol.ErrorPayload {
	t.Helper()
	errs := c.OfType(protocol.MsgError)
	require.NotEmpty(t, errs)
	p, err := codec.ParsePayload[protocol.ErrorPayload](errs[len(errs)-1])
	require.NoError(t, err)
	return p
}

func TestHandler_JoinSendsSessionMessages(t *testing.T) {
	h, srv, _ := newTestHandler(t)

	c := join(t, h, 7, protocol.ClientTypePlayer)
	assert.Equal(t, []protocol.MessageType{
		protocol.MsgConnected,
		protocol.MsgGameStart,
		protocol.MsgContentChecksum,
		protocol.MsgPlayersList,
	}, c.Types())

	start, err := codec.ParsePayload[protocol.GameStartPayload](c.OfType(protocol.MsgGameStart)[0])
	require.NoError(t, err)
	assert.Equal(t, srv.game.ID, start.GameID)
	require.NotNil(t, start.EmpireID)
	assert.Equal(t, 1, *start.EmpireID)
	assert.Equal(t, game.FirstTurn, start.Turn)
	require.Len(t, start.Objects, 1)
	assert.Equal(t, 1001, start.Objects[0].ID)
	assert.Equal(t, "p Home", start.Objects[0].Name)
	assert.Equal(t, []int{1}, start.Objects[0].ExploredBy)

	sums, err := codec.ExtractContentChecksums(c.OfType(protocol.MsgContentChecksum)[0])
	require.NoError(t, err)
	assert.Equal(t, map[string]uint32{"Techs": 42}, sums)
}

func TestHandler_ObserverHasNoEmpire(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c := join(t, h, 1, protocol.ClientTypeObserver)
	start, err := codec.ParsePayload[protocol.GameStartPayload](c.OfType(protocol.MsgGameStart)[0])
	require.NoError(t, err)
	assert.Nil(t, start.EmpireID)

	h.Handle(c, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 1}))
	assert.Equal(t, protocol.ErrCodeNoEmpire, lastError(t, c).Code)
}

func TestHandler_JoinTwiceRejected(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c := join(t, h, 1, protocol.ClientTypePlayer)
	c.Reset()
	h.Handle(c, codec.MustNewMessage(protocol.MsgJoinGame, protocol.JoinGamePayload{PlayerName: "again"}))
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastError(t, c).Code)
}

func TestHandler_TurnOrdersNotJoined(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: 3}
	h.Handle(c, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 1}))
	assert.Equal(t, protocol.ErrCodeNotJoined, lastError(t, c).Code)
}

func TestHandler_TurnOrdersWrongTurn(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c := join(t, h, 1, protocol.ClientTypePlayer)
	h.Handle(c, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 5}))
	assert.Equal(t, protocol.ErrCodeWrongTurn, lastError(t, c).Code)
}

func TestHandler_TurnOrdersForeignEmpireRejected(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c := join(t, h, 1, protocol.ClientTypePlayer)
	h.Handle(c, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{
		Turn:   1,
		Orders: []protocol.OrderInfo{{ID: 1, EmpireID: 99, Kind: "scrap", Object: 3}},
	}))
	assert.Equal(t, protocol.ErrCodeOrderReject, lastError(t, c).Code)
}

func TestHandler_TurnCycle(t *testing.T) {
	h, srv, store := newTestHandler(t)
	gameID := srv.game.ID

	a := join(t, h, 1, protocol.ClientTypePlayer)
	b := join(t, h, 2, protocol.ClientTypeAIPlayer)
	a.Reset()
	b.Reset()

	orders := []protocol.OrderInfo{{ID: 1, EmpireID: 1, Kind: "scrap", Object: 3}}
	store.On("SaveTurnOrders", mock.Anything, gameID, 1, 1, orders, []byte(nil)).Return(nil).Once()
	store.On("SaveTurnOrders", mock.Anything, gameID, 1, 2, []protocol.OrderInfo(nil), []byte("state")).Return(nil).Once()
	// 存储中的指令包含结算前通过增量指令追加的改名
	stored := append([]protocol.OrderInfo{{ID: 2, EmpireID: 1, Kind: "rename", Object: 1001, Name: "Haven"}}, orders...)
	store.On("LoadOrders", mock.Anything, gameID, 1, 1).Return(stored, nil).Once()
	store.On("LoadOrders", mock.Anything, gameID, 1, 2).Return([]protocol.OrderInfo{
		{ID: 1, EmpireID: 2, Kind: "rename", Object: 1001, Name: "Stolen"},
	}, nil).Once()
	store.On("LoadSaveState", mock.Anything, gameID, 1, 1).Return(nil, nil).Once()
	store.On("LoadSaveState", mock.Anything, gameID, 1, 2).Return([]byte("state"), nil).Once()
	store.On("ClearTurn", mock.Anything, gameID, 1).Return(nil).Once()

	h.Handle(a, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 1, Orders: orders}))
	assert.Equal(t, 1, srv.game.GetTurn(), "turn waits for every empire")
	require.Len(t, b.OfType(protocol.MsgPlayerStatus), 1)

	h.Handle(b, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 1, SaveState: []byte("state")}))
	assert.Equal(t, 2, srv.game.GetTurn())

	updates := a.OfType(protocol.MsgTurnUpdate)
	require.Len(t, updates, 1)
	p, err := codec.ParsePayload[protocol.TurnUpdatePayload](updates[0])
	require.NoError(t, err)
	assert.Equal(t, 2, p.Turn)
	assert.Len(t, a.OfType(protocol.MsgTurnProgress), 6)

	for _, info := range srv.game.PlayersInfo() {
		assert.Equal(t, protocol.PlayerStatusPlaying, info.Status)
	}
	objects := srv.game.Objects()
	require.Len(t, objects, 2)
	assert.Equal(t, "Haven", objects[0].Name, "only the owner's rename applies")
	store.AssertExpectations(t)
}

func TestHandler_LeaveCompletesTurn(t *testing.T) {
	h, srv, store := newTestHandler(t)

	a := join(t, h, 1, protocol.ClientTypePlayer)
	b := join(t, h, 2, protocol.ClientTypePlayer)
	store.On("SaveTurnOrders", mock.Anything, srv.game.ID, 1, 1, mock.Anything, mock.Anything).Return(nil).Once()
	store.On("LoadOrders", mock.Anything, srv.game.ID, 1, 1).Return([]protocol.OrderInfo{}, nil).Once()
	store.On("LoadSaveState", mock.Anything, srv.game.ID, 1, 1).Return(nil, nil).Once()
	store.On("ClearTurn", mock.Anything, srv.game.ID, 1).Return(nil).Once()

	h.Handle(a, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 1}))
	assert.Equal(t, 1, srv.game.GetTurn())
	a.Reset()

	// 未提交的玩家断开，剩余帝国都在等待
	h.HandleLeave(b)
	assert.Equal(t, 2, srv.game.GetTurn())
	assert.Len(t, a.OfType(protocol.MsgTurnUpdate), 1)
	assert.NotEmpty(t, a.OfType(protocol.MsgPlayersList))
	store.AssertExpectations(t)

	// 重复离开不再广播
	a.Reset()
	h.HandleLeave(b)
	assert.Empty(t, a.Types())
}

func TestHandler_LeaveDuringProcessing(t *testing.T) {
	store := new(testutil.MockTurnStore)
	srv := &fakeServer{game: game.NewGame(0, 20*time.Millisecond), store: store, sums: map[string]uint32{}}
	h := NewHandler(srv)
	gameID := srv.game.ID

	a := join(t, h, 1, protocol.ClientTypePlayer)
	b := join(t, h, 2, protocol.ClientTypePlayer)
	store.On("SaveTurnOrders", mock.Anything, gameID, 1, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	store.On("LoadOrders", mock.Anything, gameID, 1, mock.Anything).Return([]protocol.OrderInfo{}, nil)
	store.On("LoadSaveState", mock.Anything, gameID, 1, mock.Anything).Return(nil, nil)
	store.On("ClearTurn", mock.Anything, gameID, 1).Return(nil).Once()

	h.Handle(a, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 1}))
	a.Reset()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Handle(b, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 1}))
	}()
	require.Eventually(t, func() bool {
		return len(a.OfType(protocol.MsgTurnProgress)) > 0
	}, time.Second, time.Millisecond)

	// 结算中：离开不再触发结算，迟到的整回合指令被拒绝
	h.HandleLeave(b)
	h.Handle(a, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 1}))
	assert.Equal(t, protocol.ErrCodeWrongTurn, lastError(t, a).Code)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("turn processing did not finish")
	}
	assert.Equal(t, 2, srv.game.GetTurn())
	assert.Len(t, a.OfType(protocol.MsgTurnUpdate), 1)
	store.AssertNumberOfCalls(t, "SaveTurnOrders", 2)
	store.AssertNumberOfCalls(t, "ClearTurn", 1)
}

func TestHandler_ResolveOrders(t *testing.T) {
	h, srv, store := newTestHandler(t)
	gameID := srv.game.ID

	join(t, h, 1, protocol.ClientTypePlayer)
	join(t, h, 2, protocol.ClientTypePlayer)
	join(t, h, 3, protocol.ClientTypeObserver)

	state, err := codec.CompressSaveState("empire one notes")
	require.NoError(t, err)
	stored := []protocol.OrderInfo{
		{ID: 1, EmpireID: 1, Kind: "rename", Object: 2, Name: "Home"},
		{ID: 2, EmpireID: 1, Kind: "scrap", Object: 5},
	}
	store.On("LoadOrders", mock.Anything, gameID, 1, 1).Return(stored, nil).Once()
	store.On("LoadSaveState", mock.Anything, gameID, 1, 1).Return(state, nil).Once()
	store.On("LoadOrders", mock.Anything, gameID, 1, 2).Return(nil, errors.New("redis down")).Once()

	resolved := h.resolveOrders(srv.game, 1)
	require.Len(t, resolved, 1, "empire 2 failed to load and the observer has no empire")
	require.Len(t, resolved[1], 2)
	assert.Equal(t, order.KindRename, resolved[1][0].Kind())
	assert.Equal(t, order.KindScrap, resolved[1][1].Kind())
	assert.Equal(t, "rename=1 scrap=1", summarize(resolved[1]))
	assert.Equal(t, "no orders", summarize(nil))
	store.AssertExpectations(t)
}

func TestHandler_TurnOrdersStorageFailure(t *testing.T) {
	h, srv, store := newTestHandler(t)

	c := join(t, h, 1, protocol.ClientTypePlayer)
	store.On("SaveTurnOrders", mock.Anything, srv.game.ID, 1, 1, mock.Anything, mock.Anything).
		Return(errors.New("redis down"))

	h.Handle(c, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{Turn: 1}))
	assert.Equal(t, protocol.ErrCodeStorage, lastError(t, c).Code)

	info, ok := srv.game.GetPlayer(1)
	require.True(t, ok)
	assert.Equal(t, protocol.PlayerStatusPlaying, info.Status)
}

func TestHandler_PartialOrders(t *testing.T) {
	h, srv, store := newTestHandler(t)

	c := join(t, h, 1, protocol.ClientTypePlayer)
	added := []protocol.OrderInfo{{ID: 4, EmpireID: 1, Kind: "rename", Object: 2, Name: "Home"}}
	store.On("ApplyPartialOrders", mock.Anything, srv.game.ID, 1, 1, added, []int{2}).Return(nil).Once()

	c.Reset()
	h.Handle(c, codec.MustNewMessage(protocol.MsgTurnPartialOrders, protocol.PartialOrdersPayload{
		Turn: 1, Added: added, Removed: []int{2},
	}))
	assert.Empty(t, c.OfType(protocol.MsgError))
	store.AssertExpectations(t)
}

func TestHandler_PartialOrdersRateLimited(t *testing.T) {
	srv := new(testutil.MockServer)
	srv.On("AllowPartialOrders", 1).Return(false).Once()
	h := NewHandler(srv)

	c := &testutil.SimpleClient{ID: 1}
	h.Handle(c, codec.MustNewMessage(protocol.MsgTurnPartialOrders, protocol.PartialOrdersPayload{Turn: 1}))
	assert.Equal(t, protocol.ErrCodeRateLimit, lastError(t, c).Code)

	// 被限流时不应访问对局或存储
	srv.AssertExpectations(t)
	srv.AssertNotCalled(t, "GetGame")
	srv.AssertNotCalled(t, "GetTurnStore")
}

func TestHandler_Ping(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c := &testutil.SimpleClient{ID: 1}
	h.Handle(c, codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 1234}))

	pongs := c.OfType(protocol.MsgPong)
	require.Len(t, pongs, 1)
	p, err := codec.ParsePayload[protocol.PongPayload](pongs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1234), p.ClientTimestamp)
	assert.NotZero(t, p.ServerTimestamp)
}

func TestHandler_UnknownMessage(t *testing.T) {
	h, _, _ := newTestHandler(t)

	mc := new(testutil.MockClient)
	mc.On("GetID").Return(1)
	mc.On("GetName").Return("p")
	mc.On("SendMessage", mock.MatchedBy(func(m *protocol.Message) bool {
		return m.Type == protocol.MsgError
	})).Once()

	h.Handle(mc, &protocol.Message{Type: "bogus"})
	mc.AssertExpectations(t)
}
