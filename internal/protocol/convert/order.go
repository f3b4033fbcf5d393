package convert

import (
	"fmt"

	"github.com/palemoky/stellar-empires/internal/order"
	"github.com/palemoky/stellar-empires/internal/protocol"
)

// OrderToInfo 将 order.Order 转换为 protocol.OrderInfo
func OrderToInfo(o order.Order) protocol.OrderInfo {
	info := protocol.OrderInfo{
		ID:       o.ID,
		EmpireID: o.EmpireID,
		Kind:     string(o.Kind()),
	}
	switch d := o.Details.(type) {
	case order.FleetMove:
		info.Fleet = d.Fleet
		info.System = d.Destination
	case order.Rename:
		info.Object = d.Object
		info.Name = d.Name
	case order.Colonize:
		info.Planet = d.Planet
		info.Ship = d.Ship
	case order.Scrap:
		info.Object = d.Object
	case order.ResearchQueue:
		info.Name = d.Tech
		info.Position = d.Position
	case order.ProductionQueue:
		info.Name = d.Item
		info.Location = d.Location
	}
	return info
}

// OrdersToInfos 将 []order.Order 转换为 []protocol.OrderInfo
func OrdersToInfos(orders []order.Order) []protocol.OrderInfo {
	infos := make([]protocol.OrderInfo, len(orders))
	for i, o := range orders {
		infos[i] = OrderToInfo(o)
	}
	return infos
}

// InfoToOrder 将 protocol.OrderInfo 转换为 order.Order
func InfoToOrder(info protocol.OrderInfo) (order.Order, error) {
	o := order.Order{ID: info.ID, EmpireID: info.EmpireID}
	switch order.Kind(info.Kind) {
	case order.KindFleetMove:
		o.Details = order.FleetMove{Fleet: info.Fleet, Destination: info.System}
	case order.KindRename:
		o.Details = order.Rename{Object: info.Object, Name: info.Name}
	case order.KindColonize:
		o.Details = order.Colonize{Planet: info.Planet, Ship: info.Ship}
	case order.KindScrap:
		o.Details = order.Scrap{Object: info.Object}
	case order.KindResearchQueue:
		o.Details = order.ResearchQueue{Tech: info.Name, Position: info.Position}
	case order.KindProductionQueue:
		o.Details = order.ProductionQueue{Item: info.Name, Location: info.Location}
	default:
		return order.Order{}, fmt.Errorf("unknown order kind %q", info.Kind)
	}
	return o, nil
}

// InfosToOrders 将 []protocol.OrderInfo 转换为 []order.Order
func InfosToOrders(infos []protocol.OrderInfo) ([]order.Order, error) {
	orders := make([]order.Order, len(infos))
	for i, info := range infos {
		o, err := InfoToOrder(info)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", info.ID, err)
		}
		orders[i] = o
	}
	return orders, nil
}

// IntPtr 将 opt 风格的 (值, 是否存在) 转换为可选的 JSON 字段
func IntPtr(v int, ok bool) *int {
	if !ok {
		return nil
	}
	return &v
}
