// Package worldapi is the boundary between the agent core and the host
// embodiment: the interfaces the controller consumes, their error taxonomy,
// and the event stream it emits. Terrain generation, rendering and the
// physical action primitives live behind these interfaces.
package worldapi

import "saverbot.ai/internal/grid"

// Window is the local sensor snapshot centered on the agent. Cells outside
// the world (or unloaded) are absent.
type Window struct {
	Center grid.Coordinate
	Radius int
	Tiles  []grid.Tile
}

// At returns the observed content at pos, ok=false when the cell was absent
// from the snapshot.
func (w Window) At(pos grid.Coordinate) (grid.ContentKind, bool) {
	for _, t := range w.Tiles {
		if t.Pos == pos {
			return t.Content, true
		}
	}
	return grid.None, false
}

// Found is one directional-search hit.
type Found struct {
	Kind grid.ContentKind
	Pos  grid.Coordinate
}

// World is the host embodiment the controller acts through. Every method may
// fail; failures are consumed by the component that issued the call and never
// abort a tick. Energy and inventory are owned by the host and read here.
type World interface {
	// ObserveVicinity reports the local window around the agent and the
	// agent's own coordinate. It has no failure mode.
	ObserveVicinity() (Window, grid.Coordinate)

	// Step moves the agent one cell. Consumes energy on success.
	Step(dir grid.Direction) (grid.Coordinate, error)

	// Destroy harvests the adjacent cell in dir, returning how many units
	// entered the inventory.
	Destroy(dir grid.Direction) (int, error)

	// Put deposits up to quantity units of kind into the adjacent cell in
	// dir. The accepted quantity may be less than requested
	// (capacity-limited) or zero (exhausted).
	Put(kind grid.ContentKind, quantity int, dir grid.Direction) (int, error)

	// Search scans one diagonal quadrant up to depth cells for the given
	// kinds. The result sequence is finite, scoped to this call, and not
	// restartable.
	Search(kinds []grid.ContentKind, depth int, q grid.Quadrant) ([]Found, error)

	// Convert turns the whole held stack of kind into coins.
	Convert(kind grid.ContentKind) (int, error)

	// DesignProject plans a construction around anchor; Apply executes it.
	DesignProject(shape Shape, anchor grid.Coordinate) (Project, error)
	Apply(p Project) error

	// Energy is the agent's current energy level.
	Energy() int

	// InventoryCount reads the held count of one kind.
	InventoryCount(kind grid.ContentKind) int
}

// Shape names a construction template for the finishing maneuver.
type Shape string

const (
	// ShapeRing surrounds the anchor cell with a supporting structure.
	ShapeRing Shape = "RING"
)

// Project is an opaque planned construction handed back to Apply.
type Project struct {
	ID     string
	Shape  Shape
	Anchor grid.Coordinate
	Cells  []grid.Coordinate
}

// EventSink receives one or more notifications per tick for observability.
// The core calls it and depends on nothing it returns.
type EventSink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// NopSink discards events.
var NopSink EventSink = SinkFunc(func(Event) {})

// MultiSink fans every event out to each sink in order.
func MultiSink(sinks ...EventSink) EventSink {
	return SinkFunc(func(ev Event) {
		for _, s := range sinks {
			s.Emit(ev)
		}
	})
}
