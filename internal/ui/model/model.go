package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/stellar-empires/internal/client"
	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/sound"
	"github.com/palemoky/stellar-empires/internal/ui/command"
)

const (
	connectTimeout = 10 * time.Second
	maxPhaseLog    = 6
)

// Options configures a Model.
type Options struct {
	PlayerName string
	ClientType protocol.ClientType
	Sound      SoundPlayer
}

// Model is the terminal client. It owns the session loop: every server
// message and every prompt command is applied to the App from Update.
type Model struct {
	app  *client.App
	conn Connection

	name       string
	clientType protocol.ClientType
	sound      SoundPlayer

	state    ConnState
	err      string
	notice   string
	phases   []string
	showHelp bool
	quitting bool
	events   chan tea.Msg

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	width   int
	height  int
}

// New creates the model. The connection is opened by Init.
func New(app *client.App, conn Connection, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "type a command, f1 for the list"
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		app:        app,
		conn:       conn,
		name:       opts.PlayerName,
		clientType: opts.ClientType,
		sound:      opts.Sound,
		state:      StateConnecting,
		events:     make(chan tea.Msg, 10),
		input:      ti,
		spinner:    sp,
		help:       help.New(),
		keys:       defaultKeyMap(),
	}
	app.OnPhase(func(p protocol.TurnProgressPhase) {
		m.phases = append(m.phases, p.String())
		if len(m.phases) > maxPhaseLog {
			m.phases = m.phases[len(m.phases)-maxPhaseLog:]
		}
	})
	return m
}

// Notify queues a message from outside the update loop, e.g. from transport
// callbacks. Messages are dropped when the queue is full.
func (m *Model) Notify(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

func (m *Model) State() ConnState { return m.state }
func (m *Model) Err() string      { return m.err }
func (m *Model) Notice() string   { return m.notice }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.connect(),
		textinput.Blink,
		m.spinner.Tick,
		m.listenForEvents(),
	)
}

func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := m.conn.Connect(ctx); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.conn.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConnectedMsg:
		m.app.SetTransport(m.conn)
		m.conn.StartHeartbeat()
		if err := m.conn.JoinGame(m.name, m.clientType); err != nil {
			m.state = StateDisconnected
			m.err = fmt.Sprintf("join failed: %v", err)
			return m, nil
		}
		m.state = StateJoining
		return m, m.listenForMessages()

	case ConnectionErrorMsg:
		if m.state == StateDisconnected {
			return m, nil
		}
		m.state = StateDisconnected
		m.err = fmt.Sprintf("connection lost: %v", msg.Err)
		logger.LogWarn("connection lost: %v", msg.Err)
		return m, nil

	case ReconnectingMsg:
		// the server treats a rejoin as a new player and sends game_start again
		m.app.Reset()
		m.phases = nil
		m.state = StateReconnecting
		m.notice = fmt.Sprintf("reconnecting (%d/%d)", msg.Attempt, msg.MaxTries)
		return m, m.listenForEvents()

	case ReconnectSuccessMsg:
		// game_start may already have been handled
		if m.state == StateReconnecting {
			m.state = StateJoining
		}
		m.notice = "reconnected"
		return m, m.listenForEvents()

	case ServerMessage:
		m.handleServerMessage(msg.Msg)
		return m, m.listenForMessages()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		m.input.Reset()
		return m, m.execute(line)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.conn.Close()
	return m, tea.Quit
}

func (m *Model) handleServerMessage(msg *protocol.Message) {
	if err := m.app.HandleMessage(msg); err != nil {
		m.err = err.Error()
		return
	}

	switch msg.Type {
	case protocol.MsgGameStart:
		m.state = StateInGame
		m.err = ""
		m.notice = fmt.Sprintf("joined game %s", m.app.GameID())
	case protocol.MsgTurnUpdate:
		m.phases = nil
		m.notice = fmt.Sprintf("turn %s begins", m.app.CurrentTurn())
		if m.sound != nil {
			m.sound.Play(sound.NewTurn)
		}
	case protocol.MsgContentChecksum:
		if !m.app.ChecksumOK().Is(true) {
			m.err = "content checksums differ from the server, see the log"
		}
	}
}

// execute runs one prompt line against the session.
func (m *Model) execute(line string) tea.Cmd {
	cmd, err := command.Parse(line)
	if errors.Is(err, command.ErrEmpty) {
		return nil
	}
	if err != nil {
		m.err = err.Error()
		return nil
	}
	m.err = ""

	switch cmd.Action {
	case command.ActionIssue:
		empireID, ok := m.app.EmpireID().Get()
		if !ok {
			m.err = errNoEmpire.Error()
			return nil
		}
		if m.app.CurrentTurn().IsNone() {
			m.err = errNoTurn.Error()
			return nil
		}
		o := m.app.Orders().Issue(empireID, cmd.Details)
		m.notice = "issued " + o.DescribeNamed(m.app.ObjectName)
		m.sendPartial()

	case command.ActionRescind:
		if !m.app.Orders().Rescind(cmd.OrderID) {
			m.err = fmt.Sprintf("no order #%d", cmd.OrderID)
			return nil
		}
		m.notice = fmt.Sprintf("rescinded #%d", cmd.OrderID)
		m.sendPartial()

	case command.ActionSend:
		m.sendPartial()

	case command.ActionEnd:
		if m.app.CurrentTurn().IsNone() {
			m.err = errNoTurn.Error()
			return nil
		}
		if err := m.app.StartTurnWithUIData(protocol.SaveGameUIData{}); err != nil {
			m.err = fmt.Sprintf("end turn: %v", err)
			return nil
		}
		m.notice = fmt.Sprintf("turn %s submitted with %d orders", m.app.CurrentTurn(), m.app.OrdersView().Len())

	case command.ActionHelp:
		m.showHelp = !m.showHelp

	case command.ActionQuit:
		_, c := m.quit()
		return c
	}
	return nil
}

func (m *Model) sendPartial() {
	if err := m.app.SendPartialOrders(); err != nil {
		m.err = fmt.Sprintf("send orders: %v", err)
	}
}
