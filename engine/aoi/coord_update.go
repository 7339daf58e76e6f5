package aoi

// update walks node i to its target on every axis whose target moved since
// the last update, force walks all three (fresh inserts).
func (s *CoordSystem) update(i int32, force bool) {
	// an update of a node already being walked is dropped, the next one picks
	// up the new target because old is only refreshed to what was walked
	if s.nodes[i].flags&FlagPending != 0 {
		return
	}

	s.enter()
	s.nodes[i].flags |= FlagPending

	var ts [axisCount]float32
	for a := range ts {
		ax := Axis(a)
		t := s.target(i, ax)
		ts[a] = t
		if !force && t == s.nodes[i].old[a] {
			continue
		}
		s.moveOnAxis(i, ax, t)
	}

	node := &s.nodes[i]
	node.old = ts
	node.flags &^= FlagPending
	s.stats.Updates++

	s.leave()
}

// moveOnAxis bubbles node i to t by adjacent swaps. While walking, the sorted
// value of i follows each node it crosses so the list stays ordered for
// observers running inside the pass callbacks.
func (s *CoordSystem) moveOnAxis(i int32, a Axis, t float32) {
	moved := false
	for {
		p := s.nodes[i].prev[a]
		if p == noSlot || p == i {
			break
		}
		pv := s.nodes[p].sorted[a]
		if !(pv > t || (pv == t &&
			s.nodes[p].flags&FlagNegativeBoundary == 0 &&
			s.nodes[i].flags&FlagPositiveBoundary == 0)) {
			break
		}
		s.nodes[i].sorted[a] = pv
		s.swapBackward(i, p, a)
		s.stats.Swaps[a]++
		moved = true
		s.notifyPass(i, p, a, true)
	}

	// a node that moved backward already sits after every node it may tie with
	if !moved {
		for {
			n := s.nodes[i].next[a]
			if n == noSlot || n == i {
				break
			}
			nv := s.nodes[n].sorted[a]
			if !(nv < t || (nv == t &&
				s.nodes[n].flags&FlagPositiveBoundary == 0 &&
				s.nodes[i].flags&FlagNegativeBoundary == 0)) {
				break
			}
			s.nodes[i].sorted[a] = nv
			s.swapForward(i, n, a)
			s.stats.Swaps[a]++
			s.notifyPass(i, n, a, false)
		}
	}

	s.nodes[i].sorted[a] = t
}

// pp <-> p <-> i <-> n  =>  pp <-> i <-> p <-> n
func (s *CoordSystem) swapBackward(i, p int32, a Axis) {
	pp := s.nodes[p].prev[a]
	n := s.nodes[i].next[a]

	if pp == noSlot {
		s.first[a] = i
	} else {
		s.setNext(a, pp, i)
	}
	if n != noSlot {
		s.setPrev(a, n, p)
	}

	s.nodes[i].prev[a] = pp
	s.setNext(a, i, p)
	s.setPrev(a, p, i)
	s.nodes[p].next[a] = n
}

// p <-> i <-> n <-> nn  =>  p <-> n <-> i <-> nn
func (s *CoordSystem) swapForward(i, n int32, a Axis) {
	p := s.nodes[i].prev[a]
	nn := s.nodes[n].next[a]

	if p == noSlot {
		s.first[a] = n
	} else {
		s.setNext(a, p, n)
	}
	if nn != noSlot {
		s.setPrev(a, nn, i)
	}

	s.nodes[n].prev[a] = p
	s.setNext(a, n, i)
	s.setPrev(a, i, n)
	s.nodes[i].next[a] = nn
}

// notifyPass tells both sides of a swap. backward means the mover i now
// precedes c. A hidden or removed node is never reported to the other side.
func (s *CoordSystem) notifyPass(i, c int32, a Axis, backward bool) {
	if s.nodes[i].flags&FlagHideOrRemoved == 0 {
		passTo(s.nodes[c].owner, a, s.handleOf(i), backward)
	}
	if s.nodes[c].flags&FlagHideOrRemoved == 0 {
		passTo(s.nodes[i].owner, a, s.handleOf(c), !backward)
	}
}
