package aoi

import (
	"github.com/chewxy/math32"
	"github.com/tutumagi/crossaoi/logger"
)

// Stats cumulative counters of a CoordSystem
type Stats struct {
	Inserts  uint64
	Removes  uint64
	Updates  uint64
	Released uint64
	Swaps    [axisCount]uint64
}

// CoordSystem 十字链表坐标系统
//	three doubly linked lists (x, y, z) over the same arena of nodes.
//	Not safe for concurrent use, one system belongs to one goroutine.
type CoordSystem struct {
	nodes []coordNode
	free  []int32
	first [axisCount]int32
	size  int

	// removed but still linked, unlinked by RemoveDelNodes
	dels []int32
	// unlinked, freed by ReleaseNodes
	releases []int32

	// traversal window: depth > 0 while an update, remove or walk is running
	depth int
	epoch uint64

	verify bool
	stats  Stats
}

// NewCoordSystem ctor
func NewCoordSystem(opts ...Option) *CoordSystem {
	s := &CoordSystem{}
	for a := range s.first {
		s.first[a] = noSlot
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Alloc reserves a node slot for owner. The node is not in the lists until
// Insert. A nil owner behaves like BaseCoorder.
func (s *CoordSystem) Alloc(owner Coorder, flags NodeFlag) Handle {
	if owner == nil {
		owner = BaseCoorder{}
	}

	var i int32
	if n := len(s.free); n > 0 {
		i = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.nodes = append(s.nodes, coordNode{})
		i = int32(len(s.nodes) - 1)
	}

	node := &s.nodes[i]
	gen := node.gen
	if gen == 0 {
		gen = 1
	}
	*node = coordNode{
		owner: owner,
		gen:   gen,
		flags: flags,
		alive: true,
	}
	node.unlinkAll()

	return Handle{slot: i, gen: gen}
}

// Free gives back a slot that was allocated but never inserted
func (s *CoordSystem) Free(h Handle) bool {
	i, ok := s.slot(h)
	if !ok {
		return false
	}
	node := &s.nodes[i]
	if node.linked || node.queued {
		return false
	}
	for _, r := range s.releases {
		if r == i {
			return false
		}
	}
	s.freeSlot(i)
	return true
}

func (s *CoordSystem) freeSlot(i int32) {
	node := &s.nodes[i]
	node.gen++
	node.alive = false
	node.owner = nil
	node.flags = 0
	s.free = append(s.free, i)
}

// Insert 插入节点
//	empty system: the node becomes the only element with sorted = target.
//	Otherwise it is spliced at the head of every axis, tied with the head,
//	and walked to its place.
func (s *CoordSystem) Insert(h Handle) bool {
	i, ok := s.slot(h)
	if !ok || !s.insertable(i) {
		return false
	}
	s.stats.Inserts++

	if s.size == 0 {
		ts := s.targets(i)
		node := &s.nodes[i]
		for a := range s.first {
			node.sorted[a] = ts[a]
			node.old[a] = ts[a]
			node.prev[a] = noSlot
			node.next[a] = noSlot
			s.first[a] = i
		}
		node.linked = true
		s.size = 1
		s.afterOp()
		return true
	}

	node := &s.nodes[i]
	for a := range s.first {
		head := s.first[a]
		node.sorted[a] = s.nodes[head].sorted[a]
		node.old[a] = math32.Inf(-1)
		node.prev[a] = noSlot
		s.setNext(Axis(a), i, head)
		s.setPrev(Axis(a), head, i)
		s.first[a] = i
	}
	node.linked = true
	s.size++

	s.update(i, true)
	return true
}

// InsertWithRef 根据参考点插入节点
//	like Insert but spliced just before ref on every axis, so nodes created
//	next to their origin (trigger boundaries) walk a short distance.
//	Falls back to Insert when ref is not usable.
func (s *CoordSystem) InsertWithRef(h Handle, ref Handle) bool {
	r, ok := s.slot(ref)
	if !ok || !s.nodes[r].linked || s.nodes[r].flags&FlagRemoved != 0 {
		return s.Insert(h)
	}
	i, ok := s.slot(h)
	if !ok || !s.insertable(i) || i == r {
		return false
	}
	s.stats.Inserts++

	node := &s.nodes[i]
	for a := range s.first {
		ax := Axis(a)
		refNode := &s.nodes[r]
		p := refNode.prev[a]
		node.sorted[a] = refNode.sorted[a]
		node.old[a] = math32.Inf(-1)
		node.prev[a] = noSlot
		if p == noSlot {
			s.first[a] = i
		} else {
			s.setNext(ax, p, i)
			s.setPrev(ax, i, p)
		}
		s.setNext(ax, i, r)
		s.setPrev(ax, r, i)
	}
	node.linked = true
	s.size++

	s.update(i, true)
	return true
}

func (s *CoordSystem) insertable(i int32) bool {
	node := &s.nodes[i]
	return !node.linked && !node.queued && node.flags&(FlagRemoving|FlagRemoved) == 0
}

// Remove 删除节点
//	the node is pinned towards the lowest x, walked there, flagged removed and
//	queued. It stays in the lists until RemoveDelNodes. Removing a node twice
//	is a noop.
func (s *CoordSystem) Remove(h Handle) bool {
	i, ok := s.slot(h)
	if !ok || !s.nodes[i].linked {
		return false
	}
	node := &s.nodes[i]
	if node.flags&(FlagRemoving|FlagRemoved) != 0 {
		return true
	}

	s.enter()

	node.flags |= FlagRemoving
	node.old = node.sorted
	s.stats.Removes++

	node.owner.OnRemove()

	s.update(i, false)

	node = &s.nodes[i]
	node.flags |= FlagRemoved
	if !node.queued {
		node.queued = true
		s.dels = append(s.dels, i)
	}

	s.leave()
	return true
}

// RemoveDelNodes unlinks every removed node. Must be called at a safe point,
// never from inside an update or walk.
func (s *CoordSystem) RemoveDelNodes() {
	if s.depth > 0 {
		logger.Panicf("aoi: RemoveDelNodes inside a traversal (depth %d)", s.depth)
	}
	if len(s.dels) == 0 {
		return
	}
	dels := s.dels
	s.dels = nil
	for _, i := range dels {
		s.removeReal(i)
	}
	s.afterOp()
}

func (s *CoordSystem) removeReal(i int32) {
	node := &s.nodes[i]
	if !node.linked {
		node.queued = false
		return
	}
	for a := range s.first {
		ax := Axis(a)
		p, n := node.prev[a], node.next[a]
		if s.first[a] == i {
			s.first[a] = n
			if n != noSlot {
				s.nodes[n].prev[a] = noSlot
			}
		} else {
			if p != noSlot {
				s.setNext(ax, p, n)
			}
			if n != noSlot {
				s.setPrev(ax, n, p)
			}
		}
	}
	node.unlinkAll()
	node.linked = false
	node.queued = false
	s.size--
	s.releases = append(s.releases, i)
}

// ReleaseNodes drains the delete queue then frees every unlinked slot.
// Handles to freed slots go stale.
func (s *CoordSystem) ReleaseNodes() {
	if s.depth > 0 {
		logger.Panicf("aoi: ReleaseNodes inside a traversal (depth %d)", s.depth)
	}
	s.RemoveDelNodes()

	for _, i := range s.releases {
		node := &s.nodes[i]
		if node.linked || node.hasLinks() {
			logger.Panicf("aoi: release of slot %d still linked", i)
		}
		s.freeSlot(i)
		s.stats.Released++
	}
	s.releases = s.releases[:0]
}

// Update 节点目标位置变化后调用
func (s *CoordSystem) Update(h Handle) {
	i, ok := s.slot(h)
	if !ok {
		return
	}
	node := &s.nodes[i]
	if !node.linked || node.flags&FlagRemoved != 0 {
		return
	}
	s.update(i, false)
}

// First head node of axis a, invalid when empty
func (s *CoordSystem) First(a Axis) Node {
	if !a.valid() {
		return Node{}
	}
	return s.nodeAt(s.first[a])
}

// IsEmpty no linked node
func (s *CoordSystem) IsEmpty() bool {
	return s.size == 0
}

// Size linked node count, removed nodes count until RemoveDelNodes
func (s *CoordSystem) Size() int {
	return s.size
}

// Walk visits axis a from head to tail until fn returns false
func (s *CoordSystem) Walk(a Axis, fn func(n Node) bool) {
	if !a.valid() {
		return
	}
	s.enter()
	defer s.leave()
	for i := s.first[a]; i != noSlot; i = s.nodes[i].next[a] {
		if !fn(s.nodeAt(i)) {
			return
		}
	}
}

// Epoch increments whenever an outermost traversal starts
func (s *CoordSystem) Epoch() uint64 {
	return s.epoch
}

// Traversing reports whether an update, remove or walk is in progress
func (s *CoordSystem) Traversing() bool {
	return s.depth > 0
}

// Stats returns the counters
func (s *CoordSystem) Stats() Stats {
	return s.stats
}

/************************* handle accessors *********************************/

// Valid reports whether h refers to a live slot
func (s *CoordSystem) Valid(h Handle) bool {
	_, ok := s.slot(h)
	return ok
}

// Node cursor for h
func (s *CoordSystem) Node(h Handle) Node {
	return Node{sys: s, h: h}
}

// Linked reports whether h is in the lists
func (s *CoordSystem) Linked(h Handle) bool {
	i, ok := s.slot(h)
	return ok && s.nodes[i].linked
}

// Owner of h, nil when stale
func (s *CoordSystem) Owner(h Handle) Coorder {
	i, ok := s.slot(h)
	if !ok {
		return nil
	}
	return s.nodes[i].owner
}

// Position sorted coordinate of h on a
func (s *CoordSystem) Position(h Handle, a Axis) float32 {
	i, ok := s.slot(h)
	if !ok || !a.valid() {
		return 0
	}
	return s.nodes[i].sorted[a]
}

// Target coordinate of h on a, a removing node is pinned to the lowest x
func (s *CoordSystem) Target(h Handle, a Axis) float32 {
	i, ok := s.slot(h)
	if !ok || !a.valid() {
		return 0
	}
	return s.target(i, a)
}

// OldTarget cached target of h on a
func (s *CoordSystem) OldTarget(h Handle, a Axis) float32 {
	i, ok := s.slot(h)
	if !ok || !a.valid() {
		return 0
	}
	return s.nodes[i].old[a]
}

// SetOldTarget overrides the cached target of h on a
func (s *CoordSystem) SetOldTarget(h Handle, a Axis, v float32) {
	if i, ok := s.slot(h); ok && a.valid() {
		s.nodes[i].old[a] = v
	}
}

// ResetOldTarget caches the current target on every axis
func (s *CoordSystem) ResetOldTarget(h Handle) {
	if i, ok := s.slot(h); ok {
		ts := s.targets(i)
		s.nodes[i].old = ts
	}
}

// Flags of h
func (s *CoordSystem) Flags(h Handle) NodeFlag {
	i, ok := s.slot(h)
	if !ok {
		return 0
	}
	return s.nodes[i].flags
}

// SetFlags replaces the flags of h
func (s *CoordSystem) SetFlags(h Handle, flags NodeFlag) {
	if i, ok := s.slot(h); ok {
		s.nodes[i].flags = flags
	}
}

// AddFlags sets bits on h
func (s *CoordSystem) AddFlags(h Handle, flags NodeFlag) {
	if i, ok := s.slot(h); ok {
		s.nodes[i].flags |= flags
	}
}

// RemoveFlags clears bits on h
func (s *CoordSystem) RemoveFlags(h Handle, flags NodeFlag) {
	if i, ok := s.slot(h); ok {
		s.nodes[i].flags &^= flags
	}
}

// HasFlags any of flags set on h
func (s *CoordSystem) HasFlags(h Handle, flags NodeFlag) bool {
	return s.Flags(h).Has(flags)
}

// HasAllFlags all of flags set on h
func (s *CoordSystem) HasAllFlags(h Handle, flags NodeFlag) bool {
	return s.Flags(h).HasAll(flags)
}

/************************* internal *********************************/

func (s *CoordSystem) slot(h Handle) (int32, bool) {
	if s == nil || h.slot < 0 || int(h.slot) >= len(s.nodes) {
		return noSlot, false
	}
	node := &s.nodes[h.slot]
	if !node.alive || node.gen != h.gen {
		return noSlot, false
	}
	return h.slot, true
}

func (s *CoordSystem) handleOf(i int32) Handle {
	return Handle{slot: i, gen: s.nodes[i].gen}
}

func (s *CoordSystem) nodeAt(i int32) Node {
	if i == noSlot {
		return Node{}
	}
	return Node{sys: s, h: s.handleOf(i)}
}

// the x target of a removing node is pinned to the lowest value so the walk
// drives it to the head of the x list; y and z keep the owner's target
func (s *CoordSystem) target(i int32, a Axis) float32 {
	node := &s.nodes[i]
	if a == AxisX && node.flags&(FlagRemoving|FlagRemoved) != 0 {
		return -math32.MaxFloat32
	}
	return targetOf(node.owner, a)
}

func (s *CoordSystem) targets(i int32) [axisCount]float32 {
	var ts [axisCount]float32
	for a := range ts {
		ts[a] = s.target(i, Axis(a))
	}
	return ts
}

func (s *CoordSystem) setPrev(a Axis, i, p int32) {
	if i == p {
		if debugChecks || s.verify {
			logger.Panicf("aoi: slot %d linked to itself on %s", i, a)
		}
		return
	}
	s.nodes[i].prev[a] = p
}

func (s *CoordSystem) setNext(a Axis, i, n int32) {
	if i == n {
		if debugChecks || s.verify {
			logger.Panicf("aoi: slot %d linked to itself on %s", i, a)
		}
		return
	}
	s.nodes[i].next[a] = n
}

func (s *CoordSystem) enter() {
	if s.depth == 0 {
		s.epoch++
	}
	s.depth++
}

func (s *CoordSystem) leave() {
	s.depth--
	if s.depth == 0 {
		s.afterOp()
	}
}

func (s *CoordSystem) afterOp() {
	if !(debugChecks || s.verify) || s.depth > 0 {
		return
	}
	if err := s.Verify(); err != nil {
		logger.Panicf("aoi: %v\n%s", err, s.Dump())
	}
}
