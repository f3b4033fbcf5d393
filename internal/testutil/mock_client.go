//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/stellar-empires/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，不使用 testify（用于不需要断言调用的测试）
type SimpleClient struct {
	ID   int
	Name string

	mu       sync.Mutex
	Messages []*protocol.Message
	Closed   bool
}

func (m *SimpleClient) GetID() int      { return m.ID }
func (m *SimpleClient) GetName() string { return m.Name }

func (m *SimpleClient) SendMessage(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, msg)
}

func (m *SimpleClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// Received 返回收到的消息副本
func (m *SimpleClient) Received() []*protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*protocol.Message(nil), m.Messages...)
}

// OfType 返回指定类型的消息
func (m *SimpleClient) OfType(t protocol.MessageType) []*protocol.Message {
	var out []*protocol.Message
	for _, msg := range m.Received() {
		if msg.Type == t {
			out = append(out, msg)
		}
	}
	return out
}

// Types 按顺序返回收到的消息类型
func (m *SimpleClient) Types() []protocol.MessageType {
	msgs := m.Received()
	out := make([]protocol.MessageType, len(msgs))
	for i, msg := range msgs {
		out[i] = msg.Type
	}
	return out
}

// Reset 清空已收到的消息
func (m *SimpleClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = nil
}
