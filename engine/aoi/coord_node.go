package aoi

import "fmt"

// coordNode is one arena slot. Links are slot indices, noSlot when absent.
type coordNode struct {
	owner Coorder
	gen   uint32
	flags NodeFlag

	alive  bool // allocated and not yet released
	linked bool // present in the three lists
	queued bool // waiting in the delete queue

	sorted [axisCount]float32
	old    [axisCount]float32
	prev   [axisCount]int32
	next   [axisCount]int32
}

func (n *coordNode) unlinkAll() {
	for a := range n.prev {
		n.prev[a] = noSlot
		n.next[a] = noSlot
	}
}

func (n *coordNode) hasLinks() bool {
	for a := range n.prev {
		if n.prev[a] != noSlot || n.next[a] != noSlot {
			return true
		}
	}
	return false
}

// Node is a read cursor over one node of a CoordSystem. It stays usable after
// the node moves and goes invalid once the slot is released.
type Node struct {
	sys *CoordSystem
	h   Handle
}

// Valid reports whether the cursor points at a live node
func (n Node) Valid() bool {
	return n.sys != nil && n.sys.Valid(n.h)
}

// Handle of the node
func (n Node) Handle() Handle {
	return n.h
}

// X sorted coordinate
func (n Node) X() float32 { return n.sys.Position(n.h, AxisX) }

// Y sorted coordinate
func (n Node) Y() float32 { return n.sys.Position(n.h, AxisY) }

// Z sorted coordinate
func (n Node) Z() float32 { return n.sys.Position(n.h, AxisZ) }

// Position sorted coordinate on a
func (n Node) Position(a Axis) float32 { return n.sys.Position(n.h, a) }

// Target coordinate reported by the owner
func (n Node) Target(a Axis) float32 { return n.sys.Target(n.h, a) }

// Old target cached by the last update
func (n Node) Old(a Axis) float32 { return n.sys.OldTarget(n.h, a) }

// Flags of the node
func (n Node) Flags() NodeFlag { return n.sys.Flags(n.h) }

// Owner of the node
func (n Node) Owner() Coorder { return n.sys.Owner(n.h) }

// Prev neighbor on a, invalid Node at the head
func (n Node) Prev(a Axis) Node {
	i, ok := n.sys.slot(n.h)
	if !ok || !a.valid() {
		return Node{}
	}
	return n.sys.nodeAt(n.sys.nodes[i].prev[a])
}

// Next neighbor on a, invalid Node at the tail
func (n Node) Next(a Axis) Node {
	i, ok := n.sys.slot(n.h)
	if !ok || !a.valid() {
		return Node{}
	}
	return n.sys.nodeAt(n.sys.nodes[i].next[a])
}

// Update forwards to the owning system, noop when stale or unlinked
func (n Node) Update() {
	if n.sys != nil {
		n.sys.Update(n.h)
	}
}

func (n Node) String() string {
	if !n.Valid() {
		return fmt.Sprintf("<Node(%s)> stale", n.h)
	}
	name := n.h.String()
	if s, ok := n.Owner().(fmt.Stringer); ok {
		name = s.String()
	}
	return fmt.Sprintf("<Node(%s)> flags:%s x:%.2f y:%.2f z:%.2f oldx:%.2f oldy:%.2f oldz:%.2f",
		name, n.Flags(), n.X(), n.Y(), n.Z(), n.Old(AxisX), n.Old(AxisY), n.Old(AxisZ))
}
