// Package universe holds the galaxy objects known to a client or a game and
// decides which names a viewer may see.
package universe

import (
	"fmt"
	"sort"

	"github.com/palemoky/stellar-empires/internal/logger"
	"github.com/palemoky/stellar-empires/internal/opt"
)

// DeepSpace is shown for systems the viewer has not explored.
const DeepSpace = "Deep Space"

// Kind is the closed set of object kinds.
type Kind int

const (
	KindSystem Kind = iota + 1
	KindPlanet
	KindFleet
	KindShip
	KindBuilding
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindPlanet:
		return "planet"
	case KindFleet:
		return "fleet"
	case KindShip:
		return "ship"
	case KindBuilding:
		return "building"
	case KindField:
		return "field"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String for the known kinds.
func ParseKind(s string) (Kind, bool) {
	for k := KindSystem; k <= KindField; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Object is one universe object as known to the client.
type Object struct {
	ID         int
	Kind       Kind
	Name       string
	Owner      opt.Value[int]
	ExploredBy map[int]bool
}

// Explored reports whether empireID has explored the object.
func (o Object) Explored(empireID int) bool {
	return o.ExploredBy[empireID]
}

// VisibleName returns the name of obj as shown to viewer. An empty viewer is
// an observer or moderator and sees every name.
func VisibleName(obj Object, viewer opt.Value[int]) string {
	switch obj.Kind {
	case KindSystem:
		empireID, ok := viewer.Get()
		if !ok || obj.Explored(empireID) {
			return obj.Name
		}
		return DeepSpace
	case KindPlanet, KindFleet, KindShip, KindBuilding, KindField:
		return obj.Name
	default:
		logger.LogError("VisibleName: object %d has unknown kind %s", obj.ID, obj.Kind)
		return ""
	}
}

// Universe indexes the known objects by id.
type Universe struct {
	objects map[int]Object
}

// New creates an empty universe.
func New() *Universe {
	return &Universe{objects: make(map[int]Object)}
}

// Insert adds or replaces an object.
func (u *Universe) Insert(o Object) { u.objects[o.ID] = o }

// Get looks up an object.
func (u *Universe) Get(id int) (Object, bool) {
	o, ok := u.objects[id]
	return o, ok
}

// NameFor returns the visible name of object id, or "#id" when unknown.
func (u *Universe) NameFor(id int, viewer opt.Value[int]) string {
	o, ok := u.objects[id]
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	if name := VisibleName(o, viewer); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

// Len returns the number of known objects.
func (u *Universe) Len() int { return len(u.objects) }

// Objects returns every known object ordered by id.
func (u *Universe) Objects() []Object {
	out := make([]Object, 0, len(u.objects))
	for _, o := range u.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Rename changes the name of an object owned by empireID. It reports whether
// the object exists and belongs to that empire.
func (u *Universe) Rename(id, empireID int, name string) bool {
	o, ok := u.objects[id]
	if !ok || !o.Owner.Is(empireID) || name == "" {
		return false
	}
	o.Name = name
	u.objects[id] = o
	return true
}
