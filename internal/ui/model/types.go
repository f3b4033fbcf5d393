// Package model contains the bubbletea model of the terminal client.
package model

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/stellar-empires/internal/client"
	"github.com/palemoky/stellar-empires/internal/protocol"
)

// Connection is the network side of the session. *network/client.Client
// satisfies it.
type Connection interface {
	client.Transport
	Connect(ctx context.Context) error
	Receive() (*protocol.Message, error)
	JoinGame(name string, clientType protocol.ClientType) error
	StartHeartbeat()
	Close()
}

// SoundPlayer plays named notification sounds.
type SoundPlayer interface {
	Play(name string)
}

var (
	errNoEmpire = errors.New("observers cannot issue orders")
	errNoTurn   = errors.New("no turn in progress")
)

// ConnState tracks the connection as seen by the UI.
type ConnState int

const (
	StateConnecting ConnState = iota
	StateJoining
	StateInGame
	StateReconnecting
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateJoining:
		return "joining"
	case StateInGame:
		return "in game"
	case StateReconnecting:
		return "reconnecting"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// --- Tea Messages ---

// ServerMessage wraps a protocol message for tea.Msg.
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg indicates successful connection.
type ConnectedMsg struct{}

// ConnectionErrorMsg indicates the connection failed or was lost.
type ConnectionErrorMsg struct {
	Err error
}

// ReconnectingMsg reports a reconnect attempt.
type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

// ReconnectSuccessMsg indicates the transport is back.
type ReconnectSuccessMsg struct{}

// --- Key bindings ---

type keyMap struct {
	Submit key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run command")),
		Help:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "commands")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var _ tea.Model = (*Model)(nil)
