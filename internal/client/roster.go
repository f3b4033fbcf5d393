package client

import (
	"sort"

	"github.com/palemoky/stellar-empires/internal/opt"
	"github.com/palemoky/stellar-empires/internal/protocol"
)

// PlayerInfo is one roster entry.
type PlayerInfo struct {
	Name       string
	EmpireID   opt.Value[int]
	ClientType protocol.ClientType
	Status     protocol.PlayerStatus
}

// Roster maps player id to player info.
type Roster map[int]PlayerInfo

// RosterView is read-only access to a Roster.
type RosterView interface {
	Get(playerID int) (PlayerInfo, bool)
	IDs() []int
	Len() int
}

// Get looks up a player.
func (r Roster) Get(playerID int) (PlayerInfo, bool) {
	p, ok := r[playerID]
	return p, ok
}

// IDs returns player ids in ascending order.
func (r Roster) IDs() []int {
	ids := make([]int, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of players.
func (r Roster) Len() int { return len(r) }

// RosterFromInfos builds a roster from the wire representation.
func RosterFromInfos(infos []protocol.PlayerInfo) Roster {
	r := make(Roster, len(infos))
	for _, p := range infos {
		empireID := opt.None[int]()
		if p.EmpireID != nil {
			empireID = opt.Some(*p.EmpireID)
		}
		r[p.ID] = PlayerInfo{
			Name:       p.Name,
			EmpireID:   empireID,
			ClientType: p.ClientType,
			Status:     p.Status,
		}
	}
	return r
}
