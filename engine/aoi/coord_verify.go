package aoi

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Verify checks the list invariants: heads have no prev, links are
// symmetric and never point to self, every list holds Size nodes in
// non-decreasing order and no sorted value is NaN. Boundary tie order is
// only checked outside a traversal, a walk in progress may hold a node next
// to an equal one.
func (s *CoordSystem) Verify() error {
	for a := range s.first {
		ax := Axis(a)
		head := s.first[a]
		if head == noSlot {
			if s.size != 0 {
				return fmt.Errorf("%s list empty but size %d", ax, s.size)
			}
			continue
		}
		if s.nodes[head].prev[a] != noSlot {
			return fmt.Errorf("%s head %d has prev %d", ax, head, s.nodes[head].prev[a])
		}

		count := 0
		for i := head; i != noSlot; i = s.nodes[i].next[a] {
			node := &s.nodes[i]
			count++
			if count > s.size {
				return fmt.Errorf("%s list longer than size %d (cycle?)", ax, s.size)
			}
			if !node.alive || !node.linked {
				return fmt.Errorf("%s list holds slot %d alive:%v linked:%v", ax, i, node.alive, node.linked)
			}
			if math32.IsNaN(node.sorted[a]) {
				return fmt.Errorf("%s slot %d sorted at NaN", ax, i)
			}
			if node.prev[a] == i || node.next[a] == i {
				return fmt.Errorf("%s slot %d linked to itself", ax, i)
			}
			n := node.next[a]
			if n == noSlot {
				continue
			}
			next := &s.nodes[n]
			if next.prev[a] != i {
				return fmt.Errorf("%s slot %d next %d points back to %d", ax, i, n, next.prev[a])
			}
			if !(node.sorted[a] <= next.sorted[a]) {
				return fmt.Errorf("%s slot %d (%v) before slot %d (%v)", ax, i, node.sorted[a], n, next.sorted[a])
			}
			if s.depth == 0 && node.sorted[a] == next.sorted[a] && node.flags.rank() > next.flags.rank() {
				return fmt.Errorf("%s slot %d (%s) before slot %d (%s) at %v",
					ax, i, node.flags, n, next.flags, node.sorted[a])
			}
		}
		if count != s.size {
			return fmt.Errorf("%s list has %d nodes, size %d", ax, count, s.size)
		}
	}
	return nil
}

// Dump 当前所有节点信息
func (s *CoordSystem) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "size:%d dels:%d releases:%d\n", s.size, len(s.dels), len(s.releases))
	for a := range s.first {
		ax := Axis(a)
		fmt.Fprintf(&b, "%s:\n", ax)
		count := 0
		for i := s.first[a]; i != noSlot && count <= s.size; i = s.nodes[i].next[a] {
			fmt.Fprintf(&b, "  %s\n", s.nodeAt(i))
			count++
		}
	}
	return b.String()
}
