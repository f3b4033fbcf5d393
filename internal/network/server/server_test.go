package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/stellar-empires/internal/config"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
	"github.com/palemoky/stellar-empires/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := config.Default()
	cfg.Game.PhaseDelay = 0
	s := New(cfg, rdb, testutil.StaticChecksums{"Techs": 42, "Species": 7})

	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		ts.Close()
		_ = s.Shutdown()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg *protocol.Message) {
	t.Helper()
	data, err := codec.Encode(msg)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, data))
}

// readUntil 读取消息直到出现指定类型
func readUntil(t *testing.T, conn *websocket.Conn, want protocol.MessageType) *protocol.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		msg, err := codec.Decode(data)
		require.NoError(t, err)
		if msg.Type == want {
			return msg
		}
	}
}

func TestServer_HandleHealth(t *testing.T) {
	t.Parallel()

	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_JoinOverWebSocket(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, codec.MustNewMessage(protocol.MsgJoinGame, protocol.JoinGamePayload{
		PlayerName: "alice",
		ClientType: protocol.ClientTypePlayer,
	}))

	connected, err := codec.ParsePayload[protocol.ConnectedPayload](readUntil(t, conn, protocol.MsgConnected))
	require.NoError(t, err)
	assert.Equal(t, "alice", connected.PlayerName)
	assert.Positive(t, connected.PlayerID)

	start, err := codec.ParsePayload[protocol.GameStartPayload](readUntil(t, conn, protocol.MsgGameStart))
	require.NoError(t, err)
	assert.Equal(t, s.game.ID, start.GameID)

	sums, err := codec.ExtractContentChecksums(readUntil(t, conn, protocol.MsgContentChecksum))
	require.NoError(t, err)
	assert.Equal(t, map[string]uint32{"Techs": 42, "Species": 7}, sums)

	assert.Equal(t, 1, s.GetOnlineCount())
}

func TestServer_FullTurnOverWebSocket(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, codec.MustNewMessage(protocol.MsgJoinGame, protocol.JoinGamePayload{PlayerName: "solo"}))
	start, err := codec.ParsePayload[protocol.GameStartPayload](readUntil(t, conn, protocol.MsgGameStart))
	require.NoError(t, err)
	require.NotNil(t, start.EmpireID)

	send(t, conn, codec.MustNewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{
		Turn:   start.Turn,
		Orders: []protocol.OrderInfo{{ID: 1, EmpireID: *start.EmpireID, Kind: "scrap", Object: 5}},
	}))

	update, err := codec.ParsePayload[protocol.TurnUpdatePayload](readUntil(t, conn, protocol.MsgTurnUpdate))
	require.NoError(t, err)
	assert.Equal(t, start.Turn+1, update.Turn)
}

func TestServer_MalformedFrame(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0xff, 0xff}))
	p, err := codec.ParsePayload[protocol.ErrorPayload](readUntil(t, conn, protocol.MsgError))
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, p.Code)
}
