package codec

import (
	"fmt"

	"github.com/palemoky/stellar-empires/internal/order"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/protocol/convert"
)

// NewTurnOrdersWithUIData builds a full turn orders message carrying the UI
// snapshot.
func NewTurnOrdersWithUIData(turn int, orders []order.Order, ui protocol.SaveGameUIData) (*protocol.Message, error) {
	return NewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{
		Turn:   turn,
		Orders: convert.OrdersToInfos(orders),
		UIData: &ui,
	})
}

// NewTurnOrdersWithSaveState builds a full turn orders message carrying a
// compressed save state string.
func NewTurnOrdersWithSaveState(turn int, orders []order.Order, saveState string) (*protocol.Message, error) {
	compressed, err := CompressSaveState(saveState)
	if err != nil {
		return nil, err
	}
	return NewMessage(protocol.MsgTurnOrders, protocol.TurnOrdersPayload{
		Turn:      turn,
		Orders:    convert.OrdersToInfos(orders),
		SaveState: compressed,
	})
}

// NewPartialOrders builds a partial orders message from an extracted diff.
func NewPartialOrders(turn int, added []order.Order, removed []int) (*protocol.Message, error) {
	return NewMessage(protocol.MsgTurnPartialOrders, protocol.PartialOrdersPayload{
		Turn:    turn,
		Added:   convert.OrdersToInfos(added),
		Removed: removed,
	})
}

// NewContentChecksum builds the server checksum announcement.
func NewContentChecksum(sums map[string]uint32) (*protocol.Message, error) {
	return NewMessage(protocol.MsgContentChecksum, protocol.ContentChecksumPayload{Checksums: sums})
}

// ExtractContentChecksums reads the domain to digest mapping out of a
// content_checksum message.
func ExtractContentChecksums(msg *protocol.Message) (map[string]uint32, error) {
	if msg.Type != protocol.MsgContentChecksum {
		return nil, fmt.Errorf("expected %s message, got %s", protocol.MsgContentChecksum, msg.Type)
	}
	p, err := ParsePayload[protocol.ContentChecksumPayload](msg)
	if err != nil {
		return nil, err
	}
	if p.Checksums == nil {
		return map[string]uint32{}, nil
	}
	return p.Checksums, nil
}
