package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/stellar-empires/internal/protocol"
)

func newTestTurnStore(t *testing.T) (*TurnStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTurnStore(client), mr
}

func TestTurnStore_SaveLoad(t *testing.T) {
	store, _ := newTestTurnStore(t)
	ctx := context.Background()

	orders := []protocol.OrderInfo{
		{ID: 2, EmpireID: 1, Kind: "scrap", Object: 9},
		{ID: 1, EmpireID: 1, Kind: "fleet_move", Fleet: 3, System: 4},
	}
	require.NoError(t, store.SaveTurnOrders(ctx, "g1", 1, 1, orders, nil))

	loaded, err := store.LoadOrders(ctx, "g1", 1, 1)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[0].ID)
	assert.Equal(t, "fleet_move", loaded[0].Kind)
	assert.Equal(t, 2, loaded[1].ID)

	// other empire has nothing
	loaded, err = store.LoadOrders(ctx, "g1", 1, 2)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestTurnStore_SaveReplacesPrevious(t *testing.T) {
	store, _ := newTestTurnStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTurnOrders(ctx, "g1", 1, 1, []protocol.OrderInfo{{ID: 1, Kind: "scrap"}}, nil))
	require.NoError(t, store.SaveTurnOrders(ctx, "g1", 1, 1, []protocol.OrderInfo{{ID: 5, Kind: "rename", Name: "x"}}, nil))

	loaded, err := store.LoadOrders(ctx, "g1", 1, 1)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 5, loaded[0].ID)
}

func TestTurnStore_ApplyPartialOrders(t *testing.T) {
	store, _ := newTestTurnStore(t)
	ctx := context.Background()

	require.NoError(t, store.ApplyPartialOrders(ctx, "g1", 3, 1,
		[]protocol.OrderInfo{{ID: 1, Kind: "scrap"}, {ID: 2, Kind: "scrap"}}, nil))
	require.NoError(t, store.ApplyPartialOrders(ctx, "g1", 3, 1,
		[]protocol.OrderInfo{{ID: 3, Kind: "scrap"}}, []int{1}))

	loaded, err := store.LoadOrders(ctx, "g1", 3, 1)
	require.NoError(t, err)
	ids := make([]int, 0, len(loaded))
	for _, o := range loaded {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int{2, 3}, ids)
}

func TestTurnStore_SaveState(t *testing.T) {
	store, _ := newTestTurnStore(t)
	ctx := context.Background()

	state, err := store.LoadSaveState(ctx, "g1", 1, 1)
	require.NoError(t, err)
	assert.Nil(t, state)

	require.NoError(t, store.SaveTurnOrders(ctx, "g1", 1, 1, nil, []byte{1, 2, 3}))
	state, err = store.LoadSaveState(ctx, "g1", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, state)
}

func TestTurnStore_ClearTurn(t *testing.T) {
	store, mr := newTestTurnStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTurnOrders(ctx, "g1", 1, 1, []protocol.OrderInfo{{ID: 1, Kind: "scrap"}}, []byte("s")))
	require.NoError(t, store.SaveTurnOrders(ctx, "g1", 2, 1, []protocol.OrderInfo{{ID: 1, Kind: "scrap"}}, nil))

	require.NoError(t, store.ClearTurn(ctx, "g1", 1))

	assert.False(t, mr.Exists(ordersKey("g1", 1, 1)))
	assert.False(t, mr.Exists(saveStateKey("g1", 1, 1)))
	assert.False(t, mr.Exists(indexKey("g1", 1)))
	assert.True(t, mr.Exists(ordersKey("g1", 2, 1)))
}

func TestTurnStore_Unavailable(t *testing.T) {
	store, mr := newTestTurnStore(t)
	mr.Close()

	err := store.SaveTurnOrders(context.Background(), "g1", 1, 1, []protocol.OrderInfo{{ID: 1}}, nil)
	assert.Error(t, err)
}
