//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/stellar-empires/internal/network/server/types"
	"github.com/palemoky/stellar-empires/internal/protocol"
)

// MockServer 实现 types.ServerContext 的 mock
type MockServer struct {
	mock.Mock
}

func (m *MockServer) GetTurnStore() types.TurnStoreInterface {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.TurnStoreInterface)
}

func (m *MockServer) GetGame() types.GameInterface {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.GameInterface)
}

func (m *MockServer) GetContentChecksums() map[string]uint32 {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]uint32)
}

func (m *MockServer) AllowPartialOrders(clientID int) bool {
	args := m.Called(clientID)
	return args.Bool(0)
}

func (m *MockServer) Broadcast(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockServer) GetClientByID(id int) types.ClientInterface {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.ClientInterface)
}
