package client

import (
	"fmt"

	"github.com/palemoky/stellar-empires/internal/apperrors"
	"github.com/palemoky/stellar-empires/internal/empire"
	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/opt"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
	"github.com/palemoky/stellar-empires/internal/protocol/convert"
	"github.com/palemoky/stellar-empires/internal/universe"
)

// HandleMessage applies one inbound server message to the session. Server
// error messages are returned as *apperrors.GameError.
func (a *App) HandleMessage(msg *protocol.Message) error {
	switch msg.Type {
	case protocol.MsgConnected:
		p, err := codec.ParsePayload[protocol.ConnectedPayload](msg)
		if err != nil {
			return err
		}
		a.SetPlayerID(p.PlayerID)

	case protocol.MsgGameStart:
		p, err := codec.ParsePayload[protocol.GameStartPayload](msg)
		if err != nil {
			return err
		}
		a.gameID = p.GameID
		if p.EmpireID != nil {
			a.SetEmpireID(opt.Some(*p.EmpireID))
		} else {
			a.SetEmpireID(opt.None[int]())
		}
		a.SetCurrentTurn(opt.Some(p.Turn))
		a.orders.Reset()
		a.loadObjects(p.Objects)

	case protocol.MsgPlayersList:
		p, err := codec.ParsePayload[protocol.PlayersListPayload](msg)
		if err != nil {
			return err
		}
		a.applyRoster(RosterFromInfos(p.Players))

	case protocol.MsgPlayerStatus:
		p, err := codec.ParsePayload[protocol.PlayerStatusPayload](msg)
		if err != nil {
			return err
		}
		a.SetEmpireStatus(p.EmpireID, p.Status)
		if id, ok := a.EmpirePlayerID(p.EmpireID).Get(); ok {
			info := a.players[id]
			info.Status = p.Status
			a.players[id] = info
		}

	case protocol.MsgTurnProgress:
		p, err := codec.ParsePayload[protocol.TurnProgressPayload](msg)
		if err != nil {
			return err
		}
		a.HandleTurnPhaseUpdate(p.Phase)

	case protocol.MsgTurnUpdate:
		p, err := codec.ParsePayload[protocol.TurnUpdatePayload](msg)
		if err != nil {
			return err
		}
		a.HandleTurnUpdate(p.Turn)

	case protocol.MsgContentChecksum:
		a.VerifyCheckSum(msg)

	case protocol.MsgPong:
		// latency is tracked by the transport

	case protocol.MsgError:
		p, err := codec.ParsePayload[protocol.ErrorPayload](msg)
		if err != nil {
			return err
		}
		return &apperrors.GameError{Code: p.Code, Message: p.Message}

	default:
		logger.LogWarn("unhandled message type: %s", msg.Type)
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidMessage, msg.Type)
	}
	return nil
}

// applyRoster replaces the roster and makes sure every empire it mentions is
// known to the registry with the matching readiness.
func (a *App) applyRoster(r Roster) {
	a.SetPlayers(r)
	adder, _ := a.empires.(EmpireAdder)
	for _, id := range r.IDs() {
		p := r[id]
		empireID, ok := p.EmpireID.Get()
		if !ok {
			continue
		}
		if a.empires != nil {
			if _, known := a.empires.GetEmpire(empireID); !known && adder != nil {
				adder.Add(empire.New(empireID, p.Name))
			}
		}
		a.SetEmpireStatus(empireID, p.Status)
	}
}

// loadObjects replaces the known universe. Objects that cannot be decoded are
// logged and skipped.
func (a *App) loadObjects(infos []protocol.ObjectInfo) {
	a.universe = universe.New()
	for _, info := range infos {
		o, err := convert.InfoToObject(info)
		if err != nil {
			logger.LogWarn("skip universe object: %v", err)
			continue
		}
		a.universe.Insert(o)
	}
}
