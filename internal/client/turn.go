package client

import (
	"errors"
	"fmt"

	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/opt"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
)

// ErrNoTransport is returned when a full turn is submitted without a transport.
var ErrNoTransport = errors.New("client: no transport")

// wireTurn is the turn number sent to the server.
func (a *App) wireTurn() int {
	return a.currentTurn.OrElse(protocol.NoTurn)
}

// StartTurnWithUIData sends every order of the turn together with the UI
// snapshot and ends this client's turn.
func (a *App) StartTurnWithUIData(ui protocol.SaveGameUIData) error {
	msg, err := codec.NewTurnOrdersWithUIData(a.wireTurn(), a.orders.Orders(), ui)
	if err != nil {
		return err
	}
	return a.send(msg)
}

// StartTurnWithSaveState sends every order of the turn together with a save
// state string (AI clients) and ends this client's turn.
func (a *App) StartTurnWithSaveState(saveState string) error {
	msg, err := codec.NewTurnOrdersWithSaveState(a.wireTurn(), a.orders.Orders(), saveState)
	if err != nil {
		return err
	}
	return a.send(msg)
}

// SendPartialOrders sends the orders changed since the last call without
// ending the turn. It does nothing when there is no connected transport or
// nothing changed.
func (a *App) SendPartialOrders() error {
	if a.transport == nil || !a.transport.IsTxConnected() {
		return nil
	}
	added, removed := a.orders.ExtractChanges()
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	msg, err := codec.NewPartialOrders(a.wireTurn(), added, removed)
	if err != nil {
		return err
	}
	return a.send(msg)
}

func (a *App) send(msg *protocol.Message) error {
	if a.transport == nil {
		return ErrNoTransport
	}
	if err := a.transport.SendMessage(msg); err != nil {
		logger.LogError("send %s failed: %v", msg.Type, err)
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

// HandleTurnPhaseUpdate records a turn processing phase reported by the
// server and forwards it to the registered listeners.
func (a *App) HandleTurnPhaseUpdate(phase protocol.TurnProgressPhase) {
	a.phase = opt.Some(phase)
	for _, l := range a.phaseListeners {
		l(phase)
	}
}

// HandleTurnUpdate starts a new turn: the turn number is stored, the order
// set cleared and every empire marked not ready.
func (a *App) HandleTurnUpdate(turn int) {
	a.currentTurn = opt.Some(turn)
	a.orders.Reset()
	if lister, ok := a.empires.(EmpireLister); ok {
		for _, e := range lister.All() {
			e.SetReady(false)
		}
	}
	for id, p := range a.players {
		if p.Status == protocol.PlayerStatusWaiting {
			p.Status = protocol.PlayerStatusPlaying
			a.players[id] = p
		}
	}
}
