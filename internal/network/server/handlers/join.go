package handlers

import (
	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/network/server/types"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
)

// handleJoinGame 处理加入游戏
func (h *Handler) handleJoinGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.JoinGamePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	clientType := payload.ClientType
	if clientType == protocol.ClientTypeInvalid {
		clientType = protocol.ClientTypePlayer
	}
	name := payload.PlayerName
	if name == "" {
		name = client.GetName()
	}

	g := h.server.GetGame()
	if _, joined := g.GetPlayer(client.GetID()); joined {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "already joined"))
		return
	}
	info, err := g.Join(client, name, clientType)
	if err != nil {
		logger.LogWarn("player %d failed to join: %v", client.GetID(), err)
		sendError(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   info.ID,
		PlayerName: info.Name,
	}))
	client.SendMessage(codec.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
		GameID:   g.GetID(),
		EmpireID: info.EmpireID,
		Turn:     g.GetTurn(),
		Objects:  g.Objects(),
	}))
	if sums, err := codec.NewContentChecksum(h.server.GetContentChecksums()); err == nil {
		client.SendMessage(sums)
	} else {
		logger.LogError("build content checksum message: %v", err)
	}

	h.broadcastPlayers()
}

// HandleLeave 连接断开后离开对局，剩余帝国都已提交时直接结算回合
func (h *Handler) HandleLeave(client types.ClientInterface) {
	g := h.server.GetGame()
	if _, joined := g.GetPlayer(client.GetID()); !joined {
		return
	}
	turnReady := g.Leave(client.GetID())
	h.broadcastPlayers()
	if turnReady {
		h.processTurn(g.GetTurn())
	}
}

func (h *Handler) broadcastPlayers() {
	h.server.Broadcast(codec.MustNewMessage(protocol.MsgPlayersList, protocol.PlayersListPayload{
		Players: h.server.GetGame().PlayersInfo(),
	}))
}
