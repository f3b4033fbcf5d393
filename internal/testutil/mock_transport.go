//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
)

// MockTransport 实现 client.Transport 的 mock
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) IsTxConnected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockTransport) SendMessage(msg *protocol.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

// RecordingTransport 记录发送的消息，可切换连接状态
type RecordingTransport struct {
	Connected bool
	Err       error
	Sent      []*protocol.Message
}

// NewRecordingTransport 创建已连接的记录传输
func NewRecordingTransport() *RecordingTransport {
	return &RecordingTransport{Connected: true}
}

func (r *RecordingTransport) IsTxConnected() bool { return r.Connected }

func (r *RecordingTransport) SendMessage(msg *protocol.Message) error {
	if r.Err != nil {
		return r.Err
	}
	r.Sent = append(r.Sent, msg)
	return nil
}

// Encoded 返回所有已发送消息的线格式字节
func (r *RecordingTransport) Encoded() [][]byte {
	out := make([][]byte, 0, len(r.Sent))
	for _, msg := range r.Sent {
		data, err := codec.Encode(msg)
		if err != nil {
			panic(err)
		}
		out = append(out, data)
	}
	return out
}

// StaticChecksums 固定的本地内容校验和
type StaticChecksums map[string]uint32

func (s StaticChecksums) ComputeContentChecksums() map[string]uint32 {
	out := make(map[string]uint32, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
