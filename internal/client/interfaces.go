package client

import (
	"github.com/palemoky/stellar-empires/internal/empire"
	"github.com/palemoky/stellar-empires/internal/protocol"
)

// Transport carries messages to the server. SendMessage is fire-and-forget:
// a returned error means the message was not queued, and nothing retries it.
type Transport interface {
	IsTxConnected() bool
	SendMessage(msg *protocol.Message) error
}

// EmpireRegistry resolves empire ids to mutable empire handles.
type EmpireRegistry interface {
	GetEmpire(id int) (*empire.Empire, bool)
}

// EmpireLister is implemented by registries that can enumerate their empires.
type EmpireLister interface {
	All() []*empire.Empire
}

// EmpireAdder is implemented by registries that accept new empires.
type EmpireAdder interface {
	Add(e *empire.Empire)
}

// EmpireClearer is implemented by registries that can drop every empire.
type EmpireClearer interface {
	Clear()
}

// ChecksumSource computes the local digest of every content domain.
type ChecksumSource interface {
	ComputeContentChecksums() map[string]uint32
}
