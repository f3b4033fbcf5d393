// Package ui wires the terminal client together and runs it.
package ui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/stellar-empires/internal/client"
	"github.com/palemoky/stellar-empires/internal/content"
	"github.com/palemoky/stellar-empires/internal/empire"
	"github.com/palemoky/stellar-empires/internal/logger"
	netclient "github.com/palemoky/stellar-empires/internal/network/client"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/sound"
	"github.com/palemoky/stellar-empires/internal/ui/model"
)

// Options configures the terminal client.
type Options struct {
	ServerURL      string
	PlayerName     string
	ClientType     protocol.ClientType
	ContentDir     string
	SoundDir       string
	Sound          bool
	Heartbeat      time.Duration
	ReconnectTries int
}

// New builds the model with a websocket connection and the local content
// library used for checksum verification.
func New(opts Options) (*model.Model, error) {
	lib, err := content.Load(os.DirFS(opts.ContentDir))
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	conn := netclient.NewClient(opts.ServerURL,
		netclient.WithHeartbeat(opts.Heartbeat),
		netclient.WithReconnect(opts.ReconnectTries, time.Second),
	)
	app := client.NewApp(nil, empire.NewRegistry(), lib)

	var player model.SoundPlayer
	if opts.Sound {
		sm := sound.NewSoundManager(opts.SoundDir)
		if err := sm.Init(); err != nil {
			logger.LogWarn("sound disabled: %v", err)
		} else {
			player = sm
		}
	}

	m := model.New(app, conn, model.Options{
		PlayerName: opts.PlayerName,
		ClientType: opts.ClientType,
		Sound:      player,
	})

	conn.OnReconnecting = func(attempt, maxTries int) {
		m.Notify(model.ReconnectingMsg{Attempt: attempt, MaxTries: maxTries})
	}
	conn.OnReconnect = func() {
		m.Notify(model.ReconnectSuccessMsg{})
	}
	conn.OnClose = func() {
		m.Notify(model.ConnectionErrorMsg{Err: netclient.ErrClosed})
	}
	return m, nil
}

// Run starts the client and blocks until the user quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
