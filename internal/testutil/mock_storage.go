//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/stellar-empires/internal/protocol"
)

// MockTurnStore 回合指令存储 mock
type MockTurnStore struct {
	mock.Mock
}

func (m *MockTurnStore) SaveTurnOrders(ctx context.Context, gameID string, turn, empireID int, orders []protocol.OrderInfo, saveState []byte) error {
	args := m.Called(ctx, gameID, turn, empireID, orders, saveState)
	return args.Error(0)
}

func (m *MockTurnStore) ApplyPartialOrders(ctx context.Context, gameID string, turn, empireID int, added []protocol.OrderInfo, removed []int) error {
	args := m.Called(ctx, gameID, turn, empireID, added, removed)
	return args.Error(0)
}

func (m *MockTurnStore) LoadOrders(ctx context.Context, gameID string, turn, empireID int) ([]protocol.OrderInfo, error) {
	args := m.Called(ctx, gameID, turn, empireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]protocol.OrderInfo), args.Error(1)
}

func (m *MockTurnStore) LoadSaveState(ctx context.Context, gameID string, turn, empireID int) ([]byte, error) {
	args := m.Called(ctx, gameID, turn, empireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockTurnStore) ClearTurn(ctx context.Context, gameID string, turn int) error {
	args := m.Called(ctx, gameID, turn)
	return args.Error(0)
}
