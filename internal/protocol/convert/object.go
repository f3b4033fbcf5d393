package convert

import (
	"fmt"
	"sort"

	"github.com/palemoky/stellar-empires/internal/opt"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/universe"
)

// ObjectToInfo 将 universe.Object 转换为 protocol.ObjectInfo
func ObjectToInfo(o universe.Object) protocol.ObjectInfo {
	info := protocol.ObjectInfo{
		ID:    o.ID,
		Kind:  o.Kind.String(),
		Name:  o.Name,
		Owner: IntPtr(o.Owner.Get()),
	}
	for id, explored := range o.ExploredBy {
		if explored {
			info.ExploredBy = append(info.ExploredBy, id)
		}
	}
	sort.Ints(info.ExploredBy)
	return info
}

// ObjectsToInfos 批量转换
func ObjectsToInfos(objects []universe.Object) []protocol.ObjectInfo {
	infos := make([]protocol.ObjectInfo, len(objects))
	for i, o := range objects {
		infos[i] = ObjectToInfo(o)
	}
	return infos
}

// InfoToObject 将 protocol.ObjectInfo 转换为 universe.Object
func InfoToObject(info protocol.ObjectInfo) (universe.Object, error) {
	kind, ok := universe.ParseKind(info.Kind)
	if !ok {
		return universe.Object{}, fmt.Errorf("object %d: unknown kind %q", info.ID, info.Kind)
	}
	o := universe.Object{
		ID:         info.ID,
		Kind:       kind,
		Name:       info.Name,
		ExploredBy: make(map[int]bool, len(info.ExploredBy)),
	}
	if info.Owner != nil {
		o.Owner = opt.Some(*info.Owner)
	}
	for _, id := range info.ExploredBy {
		o.ExploredBy[id] = true
	}
	return o, nil
}
