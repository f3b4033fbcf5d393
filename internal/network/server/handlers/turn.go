package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/palemoky/stellar-empires/internal/apperrors"
	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/network/server/types"
	"github.com/palemoky/stellar-empires/internal/order"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/codec"
	"github.com/palemoky/stellar-empires/internal/protocol/convert"
)

// empireOf 返回已加入且控制帝国的玩家的帝国 ID
func (h *Handler) empireOf(client types.ClientInterface) (int, error) {
	info, ok := h.server.GetGame().GetPlayer(client.GetID())
	if !ok {
		return 0, apperrors.ErrNotJoined
	}
	if info.EmpireID == nil {
		return 0, apperrors.ErrNoEmpire
	}
	return *info.EmpireID, nil
}

// validateOrders 检查指令能被解析且属于该帝国
func validateOrders(empireID int, orders []protocol.OrderInfo) error {
	if _, err := convert.InfosToOrders(orders); err != nil {
		return err
	}
	for _, o := range orders {
		if o.EmpireID != empireID {
			return apperrors.ErrOrderRejected
		}
	}
	return nil
}

// handleTurnOrders 处理整回合指令：保存、标记等待，所有帝国提交后结算回合
func (h *Handler) handleTurnOrders(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.TurnOrdersPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	empireID, err := h.empireOf(client)
	if err != nil {
		sendError(client, err)
		return
	}
	g := h.server.GetGame()
	if err := g.AcceptingOrders(payload.Turn); err != nil {
		sendError(client, err)
		return
	}
	if err := validateOrders(empireID, payload.Orders); err != nil {
		logger.LogWarn("rejected orders from empire %d: %v", empireID, err)
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeOrderReject, err.Error()))
		return
	}

	ctx, cancel := storeContext()
	err = h.server.GetTurnStore().SaveTurnOrders(ctx, g.GetID(), payload.Turn, empireID, payload.Orders, payload.SaveState)
	cancel()
	if err != nil {
		logger.LogError("store turn orders of empire %d: %v", empireID, err)
		sendError(client, apperrors.ErrStorage)
		return
	}

	allWaiting, err := g.SubmitTurn(client.GetID(), payload.Turn)
	if err != nil {
		sendError(client, err)
		return
	}
	logger.LogInfo("empire %d submitted %d orders for turn %d", empireID, len(payload.Orders), payload.Turn)

	h.server.Broadcast(codec.MustNewMessage(protocol.MsgPlayerStatus, protocol.PlayerStatusPayload{
		EmpireID: empireID,
		Status:   protocol.PlayerStatusWaiting,
	}))

	if allWaiting {
		h.processTurn(payload.Turn)
	}
}

// processTurn 读取并执行本回合存储的指令，结算回合并清理上一回合的存储
func (h *Handler) processTurn(turn int) {
	g := h.server.GetGame()
	for empireID, orders := range h.resolveOrders(g, turn) {
		if n := g.ApplyOrders(empireID, orders); n > 0 {
			logger.LogInfo("turn %d empire %d: applied %d orders", turn, empireID, n)
		}
	}
	g.ProcessTurn(context.Background())

	ctx, cancel := storeContext()
	defer cancel()
	if err := h.server.GetTurnStore().ClearTurn(ctx, g.GetID(), turn); err != nil {
		logger.LogWarn("clear turn %d: %v", turn, err)
	}
}

// resolveOrders 读取每个帝国本回合的指令与存档，返回按帝国 ID 分组的指令
func (h *Handler) resolveOrders(g types.GameInterface, turn int) map[int][]order.Order {
	store := h.server.GetTurnStore()
	ctx, cancel := storeContext()
	defer cancel()

	resolved := make(map[int][]order.Order)
	for _, p := range g.PlayersInfo() {
		if p.EmpireID == nil {
			continue
		}
		empireID := *p.EmpireID

		infos, err := store.LoadOrders(ctx, g.GetID(), turn, empireID)
		if err != nil {
			logger.LogError("load orders of empire %d for turn %d: %v", empireID, turn, err)
			continue
		}
		orders, err := convert.InfosToOrders(infos)
		if err != nil {
			logger.LogError("decode orders of empire %d for turn %d: %v", empireID, turn, err)
			continue
		}
		resolved[empireID] = orders

		stateLen := 0
		if raw, err := store.LoadSaveState(ctx, g.GetID(), turn, empireID); err != nil {
			logger.LogWarn("load save state of empire %d: %v", empireID, err)
		} else if len(raw) > 0 {
			state, err := codec.DecompressSaveState(raw)
			if err != nil {
				logger.LogWarn("save state of empire %d: %v", empireID, err)
			}
			stateLen = len(state)
		}
		logger.LogInfo("turn %d empire %d: %s, save state %d bytes", turn, empireID, summarize(orders), stateLen)
	}
	return resolved
}

// summarize 按种类统计指令数量，如 "fleet_move=2 rename=1"
func summarize(orders []order.Order) string {
	if len(orders) == 0 {
		return "no orders"
	}
	counts := make(map[order.Kind]int)
	for _, o := range orders {
		counts[o.Kind()]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[order.Kind(k)])
	}
	return strings.Join(parts, " ")
}

// handlePartialOrders 处理回合内增量指令
func (h *Handler) handlePartialOrders(client types.ClientInterface, msg *protocol.Message) {
	if !h.server.AllowPartialOrders(client.GetID()) {
		sendError(client, apperrors.ErrRateLimited)
		return
	}
	payload, err := codec.ParsePayload[protocol.PartialOrdersPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	empireID, err := h.empireOf(client)
	if err != nil {
		sendError(client, err)
		return
	}
	g := h.server.GetGame()
	if err := g.AcceptingOrders(payload.Turn); err != nil {
		sendError(client, err)
		return
	}
	if err := validateOrders(empireID, payload.Added); err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeOrderReject, err.Error()))
		return
	}

	ctx, cancel := storeContext()
	defer cancel()
	if err := h.server.GetTurnStore().ApplyPartialOrders(ctx, g.GetID(), payload.Turn, empireID, payload.Added, payload.Removed); err != nil {
		logger.LogError("store partial orders of empire %d: %v", empireID, err)
		sendError(client, apperrors.ErrStorage)
	}
}
