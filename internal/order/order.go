// Package order holds the orders a player issues during a turn and the
// bookkeeping needed to send them to the server incrementally.
package order

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant carried in an Order's Details.
type Kind string

const (
	KindFleetMove       Kind = "fleet_move"
	KindRename          Kind = "rename"
	KindColonize        Kind = "colonize"
	KindScrap           Kind = "scrap"
	KindResearchQueue   Kind = "research_queue"
	KindProductionQueue Kind = "production_queue"
)

// Details is the kind-specific part of an order. The set of implementations
// is closed to this package.
type Details interface {
	Kind() Kind
	sealed()
}

// FleetMove sends a fleet towards a system.
type FleetMove struct {
	Fleet       int
	Destination int
}

// Rename gives an owned object a new name.
type Rename struct {
	Object int
	Name   string
}

// Colonize settles a planet using a colony ship.
type Colonize struct {
	Planet int
	Ship   int
}

// Scrap marks a ship or building for scrapping.
type Scrap struct {
	Object int
}

// ResearchQueue places a tech in the research queue at Position.
type ResearchQueue struct {
	Tech     string
	Position int
}

// ProductionQueue enqueues an item for production at a location.
type ProductionQueue struct {
	Item     string
	Location int
}

func (FleetMove) Kind() Kind       { return KindFleetMove }
func (Rename) Kind() Kind          { return KindRename }
func (Colonize) Kind() Kind        { return KindColonize }
func (Scrap) Kind() Kind           { return KindScrap }
func (ResearchQueue) Kind() Kind   { return KindResearchQueue }
func (ProductionQueue) Kind() Kind { return KindProductionQueue }

func (FleetMove) sealed()       {}
func (Rename) sealed()          {}
func (Colonize) sealed()        {}
func (Scrap) sealed()           {}
func (ResearchQueue) sealed()   {}
func (ProductionQueue) sealed() {}

// Order is a single player instruction for the current turn.
type Order struct {
	ID       int
	EmpireID int
	Details  Details
}

// Kind returns the kind of the order's details.
func (o Order) Kind() Kind {
	if o.Details == nil {
		return ""
	}
	return o.Details.Kind()
}

// Describe renders a short human readable summary of the order.
func (o Order) Describe() string { return o.DescribeNamed(nil) }

// DescribeNamed is Describe with object ids rendered through name. A nil
// name prints the bare ids.
func (o Order) DescribeNamed(name func(id int) string) string {
	if name == nil {
		name = strconv.Itoa
	}
	switch d := o.Details.(type) {
	case FleetMove:
		return fmt.Sprintf("#%d move fleet %s to system %s", o.ID, name(d.Fleet), name(d.Destination))
	case Rename:
		return fmt.Sprintf("#%d rename object %s to %q", o.ID, name(d.Object), d.Name)
	case Colonize:
		return fmt.Sprintf("#%d colonize planet %s with ship %s", o.ID, name(d.Planet), name(d.Ship))
	case Scrap:
		return fmt.Sprintf("#%d scrap object %s", o.ID, name(d.Object))
	case ResearchQueue:
		return fmt.Sprintf("#%d research %s at position %d", o.ID, d.Tech, d.Position)
	case ProductionQueue:
		return fmt.Sprintf("#%d produce %s at %s", o.ID, d.Item, name(d.Location))
	case nil:
		return fmt.Sprintf("#%d empty order", o.ID)
	default:
		panic(fmt.Sprintf("order: unhandled details type %T", d))
	}
}
