package runtime

import "termframe"

// ComponentID identifies one component within the Runtime. :root uses
// the reserved RootID.
type ComponentID string

// RootID is the identifier of the root component, the focused component
// at startup.
const RootID ComponentID = "root"

// Component is the contract a view implements; it is consumed
// exclusively by the Runtime, which owns and mutates component state.
type Component interface {
	// Init returns the component's initial state.
	Init() any
	// EventToMsg converts an incoming event into an EventResult, given
	// the component's current state. Implementations must not mutate
	// state; state is mutated only inside Update.
	EventToMsg(event Event, state any) EventResult
	// Update applies message m to state and returns the normalized
	// result (new state plus any commands to run).
	Update(m Message, state any) UpdateResult
	// View renders the component's current state into a RenderNode.
	View(state any) termframe.RenderNode
}

// InfoHandler is an optional extension interface for a component that
// receives messages not claimed by any routed component. The Runtime
// does not call HandleInfo: a queued message whose component id is not
// registered is dropped.
type InfoHandler interface {
	HandleInfo(m Message, state any) UpdateResult
}

// Parent is the optional extension a component implements to name its
// parent id, consulted when EventToMsg returns Propagate.
type Parent interface {
	ParentID() (ComponentID, bool)
}

// SpatialIndex is the optional extension the host application provides
// to map mouse coordinates to the component under them, in that
// component's local coordinate frame. If absent, all Mouse events route
// to RootID untranslated.
type SpatialIndex interface {
	ComponentAt(x, y int) (id ComponentID, localX, localY int, ok bool)
}
