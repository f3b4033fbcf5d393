// Package client holds the client-side session of a game: who this client
// is, who else is playing, the orders being prepared for the current turn,
// and the protocol used to submit them.
//
// An App is not safe for concurrent use. Every call is expected to come from
// the single loop that also dispatches inbound server messages.
package client

import (
	"github.com/palemoky/stellar-empires/internal/opt"
	"github.com/palemoky/stellar-empires/internal/order"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/universe"
)

// PhaseListener is notified of turn processing phase changes.
type PhaseListener func(phase protocol.TurnProgressPhase)

// App is the per-process client session.
type App struct {
	transport Transport
	empires   EmpireRegistry
	checksums ChecksumSource

	playerID    opt.Value[int]
	empireID    opt.Value[int]
	currentTurn opt.Value[int]
	gameID      string

	players  Roster
	orders   *order.Set
	universe *universe.Universe

	phase          opt.Value[protocol.TurnProgressPhase]
	phaseListeners []PhaseListener
	checksumOK     opt.Value[bool]
}

// NewApp wires a session to its collaborators. transport may be nil until a
// connection exists.
func NewApp(transport Transport, empires EmpireRegistry, checksums ChecksumSource) *App {
	return &App{
		transport: transport,
		empires:   empires,
		checksums: checksums,
		players:   make(Roster),
		orders:    order.NewSet(),
		universe:  universe.New(),
	}
}

// SetTransport replaces the transport, e.g. after reconnecting.
func (a *App) SetTransport(t Transport) { a.transport = t }

// PlayerID is the id the server assigned to this client.
func (a *App) PlayerID() opt.Value[int] { return a.playerID }

// EmpireID is the empire this client controls; empty for observers and
// moderators.
func (a *App) EmpireID() opt.Value[int] { return a.empireID }

// CurrentTurn is empty until the game has started.
func (a *App) CurrentTurn() opt.Value[int] { return a.currentTurn }

// GameID identifies the running game on the server.
func (a *App) GameID() string { return a.gameID }

// SetPlayerID stores the server-assigned player id.
func (a *App) SetPlayerID(id int) { a.playerID = opt.Some(id) }

// SetEmpireID stores the controlled empire without notifying anyone.
func (a *App) SetEmpireID(id opt.Value[int]) { a.empireID = id }

// SetCurrentTurn stores the turn number without notifying anyone.
func (a *App) SetCurrentTurn(turn opt.Value[int]) { a.currentTurn = turn }

// Players returns the mutable roster.
func (a *App) Players() Roster { return a.players }

// PlayersView returns the roster read-only.
func (a *App) PlayersView() RosterView { return a.players }

// SetPlayers replaces the roster wholesale.
func (a *App) SetPlayers(r Roster) {
	if r == nil {
		r = make(Roster)
	}
	a.players = r
}

// Orders returns the mutable order set.
func (a *App) Orders() *order.Set { return a.orders }

// OrdersView returns the order set read-only.
func (a *App) OrdersView() order.View { return a.orders }

// EmpirePlayerID returns the player controlling empireID. Players are scanned
// in ascending id order and the first match wins.
func (a *App) EmpirePlayerID(empireID int) opt.Value[int] {
	for _, id := range a.players.IDs() {
		if a.players[id].EmpireID.Is(empireID) {
			return opt.Some(id)
		}
	}
	return opt.None[int]()
}

// GetPlayerClientType returns the client type of player, or
// ClientTypeInvalid when player is empty or unknown.
func (a *App) GetPlayerClientType(player opt.Value[int]) protocol.ClientType {
	id, ok := player.Get()
	if !ok {
		return protocol.ClientTypeInvalid
	}
	if p, ok := a.players[id]; ok {
		return p.ClientType
	}
	return protocol.ClientTypeInvalid
}

// GetEmpireClientType returns the client type of the player controlling
// empireID.
func (a *App) GetEmpireClientType(empireID int) protocol.ClientType {
	return a.GetPlayerClientType(a.EmpirePlayerID(empireID))
}

// GetClientType returns the client type of this client's own player.
func (a *App) GetClientType() protocol.ClientType {
	return a.GetPlayerClientType(a.playerID)
}

// SetEmpireStatus marks the empire ready when status is waiting and not
// ready for any other status. Unknown empires are ignored.
func (a *App) SetEmpireStatus(empireID int, status protocol.PlayerStatus) {
	if a.empires == nil {
		return
	}
	if e, ok := a.empires.GetEmpire(empireID); ok {
		e.SetReady(status == protocol.PlayerStatusWaiting)
	}
}

// Phase returns the last reported turn processing phase.
func (a *App) Phase() opt.Value[protocol.TurnProgressPhase] { return a.phase }

// ChecksumOK is empty until a checksum message has been verified.
func (a *App) ChecksumOK() opt.Value[bool] { return a.checksumOK }

// OnPhase registers a listener for HandleTurnPhaseUpdate.
func (a *App) OnPhase(l PhaseListener) {
	a.phaseListeners = append(a.phaseListeners, l)
}

// Universe returns the objects this client knows about.
func (a *App) Universe() *universe.Universe { return a.universe }

// ObjectName is the name of object id as this client's empire may see it.
func (a *App) ObjectName(id int) string { return a.universe.NameFor(id, a.empireID) }

// Reset forgets everything tied to the current game, for disconnects and new
// games. Collaborators and listeners are kept; a registry that can be
// cleared is emptied.
func (a *App) Reset() {
	a.playerID = opt.None[int]()
	a.empireID = opt.None[int]()
	a.currentTurn = opt.None[int]()
	a.gameID = ""
	a.players = make(Roster)
	a.orders.Reset()
	a.universe = universe.New()
	a.phase = opt.None[protocol.TurnProgressPhase]()
	a.checksumOK = opt.None[bool]()
	if c, ok := a.empires.(EmpireClearer); ok {
		c.Clear()
	}
}
