package order

import "sort"

// View is the read-only side of a Set.
type View interface {
	Orders() []Order
	Len() int
	Get(id int) (Order, bool)
}

// Set is the authoritative collection of orders for the turn in progress.
//
// Alongside the collection it tracks which orders were added and which ids
// were removed since the last ExtractChanges call. The two pending records are
// kept disjoint and are independent of the authoritative collection.
type Set struct {
	orders map[int]Order
	seq    []int // issue order
	nextID int

	added   map[int]Order
	removed map[int]struct{}
}

// NewSet creates an empty order set.
func NewSet() *Set {
	return &Set{
		orders:  make(map[int]Order),
		nextID:  1,
		added:   make(map[int]Order),
		removed: make(map[int]struct{}),
	}
}

// Issue adds a new order for empireID and returns it with its assigned id.
func (s *Set) Issue(empireID int, details Details) Order {
	o := Order{ID: s.nextID, EmpireID: empireID, Details: details}
	s.nextID++
	s.orders[o.ID] = o
	s.seq = append(s.seq, o.ID)
	s.added[o.ID] = o
	delete(s.removed, o.ID)
	return o
}

// Rescind removes the order with the given id. It reports false if no such
// order exists.
func (s *Set) Rescind(id int) bool {
	if _, ok := s.orders[id]; !ok {
		return false
	}
	delete(s.orders, id)
	for i, v := range s.seq {
		if v == id {
			s.seq = append(s.seq[:i], s.seq[i+1:]...)
			break
		}
	}
	delete(s.added, id)
	s.removed[id] = struct{}{}
	return true
}

// ExtractChanges returns the orders added and the ids removed since the
// previous call, then clears that record. The full collection is untouched.
func (s *Set) ExtractChanges() (added []Order, removed []int) {
	added = make([]Order, 0, len(s.added))
	for _, o := range s.added {
		added = append(added, o)
	}
	sort.Slice(added, func(i, j int) bool { return added[i].ID < added[j].ID })

	removed = make([]int, 0, len(s.removed))
	for id := range s.removed {
		removed = append(removed, id)
	}
	sort.Ints(removed)

	clear(s.added)
	clear(s.removed)
	return added, removed
}

// HasChanges reports whether anything is pending for the next extraction.
func (s *Set) HasChanges() bool {
	return len(s.added) > 0 || len(s.removed) > 0
}

// Orders returns all orders in issue order.
func (s *Set) Orders() []Order {
	out := make([]Order, 0, len(s.seq))
	for _, id := range s.seq {
		out = append(out, s.orders[id])
	}
	return out
}

// Len returns the number of orders in the set.
func (s *Set) Len() int { return len(s.seq) }

// Get looks up an order by id.
func (s *Set) Get(id int) (Order, bool) {
	o, ok := s.orders[id]
	return o, ok
}

// Reset empties the set and its change record. Ids keep increasing so that
// ids from a previous turn are never reused within a session.
func (s *Set) Reset() {
	clear(s.orders)
	s.seq = nil
	clear(s.added)
	clear(s.removed)
}
