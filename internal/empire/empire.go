// Package empire tracks the empires known to a client and their readiness
// for the current turn.
package empire

import "sort"

// Empire is a player-controlled faction.
type Empire struct {
	ID    int
	Name  string
	ready bool
}

// New creates a not-ready empire.
func New(id int, name string) *Empire {
	return &Empire{ID: id, Name: name}
}

// SetReady marks whether the empire has submitted its orders this turn.
func (e *Empire) SetReady(ready bool) { e.ready = ready }

// IsReady reports the readiness flag.
func (e *Empire) IsReady() bool { return e.ready }

// Registry holds empires by id.
type Registry struct {
	empires map[int]*Empire
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{empires: make(map[int]*Empire)}
}

// Add inserts or replaces an empire.
func (r *Registry) Add(e *Empire) {
	r.empires[e.ID] = e
}

// GetEmpire returns the empire with id, if known.
func (r *Registry) GetEmpire(id int) (*Empire, bool) {
	e, ok := r.empires[id]
	return e, ok
}

// All returns the empires ordered by id.
func (r *Registry) All() []*Empire {
	out := make([]*Empire, 0, len(r.empires))
	for _, e := range r.empires {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of known empires.
func (r *Registry) Len() int { return len(r.empires) }

// Clear forgets every empire.
func (r *Registry) Clear() {
	clear(r.empires)
}
