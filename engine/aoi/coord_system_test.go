package aoi

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/chewxy/math32"
	. "github.com/go-playground/assert/v2"
)

func addTracker(t *testing.T, s *CoordSystem, p *tracker, flags NodeFlag) Handle {
	h := s.Alloc(p, flags)
	EqualSkip(t, 2, s.Insert(h), true)
	return h
}

func clearPasses(trackers ...*tracker) {
	for _, p := range trackers {
		p.passes = nil
	}
}

func panics(fn func()) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = true
		}
	}()
	fn()
	return false
}

// distinct coordinates so the expected order does not depend on tie history
func distinctCoords(n int) [][axisCount]float32 {
	out := make([][axisCount]float32, n)
	for _, a := range Axes {
		for i, v := range rand.Perm(n) {
			out[i][a] = float32(v) - float32(n)/2
		}
	}
	return out
}

func sortedNames(trackers []*tracker, a Axis) []string {
	ps := append([]*tracker(nil), trackers...)
	sort.Slice(ps, func(i, j int) bool { return ps[i].pos.Axis(a) < ps[j].pos.Axis(a) })
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.name)
	}
	return names
}

func Test_InsertKeepsOrder(t *testing.T) {
	m := newMap(0, 0, WithVerify(true), WithCapacity(64))

	coords := distinctCoords(50)
	trackers := make([]*tracker, 0, len(coords))
	for i, c := range coords {
		p := newTracker(fmt.Sprintf("p%d", i), c[AxisX], c[AxisY], c[AxisZ])
		addTracker(t, m.system, p, 0)
		trackers = append(trackers, p)
	}

	Equal(t, m.system.Size(), len(trackers))
	Equal(t, m.system.Verify(), nil)
	for _, a := range Axes {
		Equal(t, m.labels(a), sortedNames(trackers, a))
	}
	Equal(t, m.system.Stats().Inserts, uint64(len(trackers)))
}

func Test_MoveMatchesReinsert(t *testing.T) {
	moved := newMap(0, 0, WithVerify(true))

	coords := distinctCoords(40)
	trackers := make([]*tracker, 0, len(coords))
	handles := make([]Handle, 0, len(coords))
	for i, c := range coords {
		p := newTracker(fmt.Sprintf("p%d", i), c[AxisX], c[AxisY], c[AxisZ])
		handles = append(handles, addTracker(t, moved.system, p, 0))
		trackers = append(trackers, p)
	}

	// shuffle every coordinate a few times, one node at a time
	for round := 0; round < 3; round++ {
		next := distinctCoords(len(trackers))
		for i, p := range trackers {
			p.pos = Vector3{X: next[i][AxisX], Y: next[i][AxisY], Z: next[i][AxisZ]}
		}
		for i := range trackers {
			moved.system.Update(handles[i])
		}
	}

	fresh := newMap(0, 0, WithVerify(true))
	for _, p := range trackers {
		addTracker(t, fresh.system, newTracker(p.name, p.pos.X, p.pos.Y, p.pos.Z), 0)
	}

	for _, a := range Axes {
		Equal(t, moved.labels(a), fresh.labels(a))
		Equal(t, moved.labels(a), sortedNames(trackers, a))
	}
}

func Test_BoundaryTies(t *testing.T) {
	kinds := []struct {
		name string
		flag NodeFlag
	}{
		{"neg", FlagNegativeBoundary},
		{"plain", 0},
		{"pos", FlagPositiveBoundary},
	}
	orders := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2},
		{1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	for _, order := range orders {
		m := newMap(0, 0, WithVerify(true))
		addTracker(t, m.system, newTracker("low", 1, 1, 1), 0)
		addTracker(t, m.system, newTracker("high", 5, 5, 5), 0)
		for _, k := range order {
			addTracker(t, m.system, newTracker(kinds[k].name, 3, 3, 3), kinds[k].flag)
		}
		for _, a := range Axes {
			Equal(t, m.labels(a), []string{"low", "neg", "plain", "pos", "high"})
		}
	}
}

func Test_BoundaryTiesWhileMoving(t *testing.T) {
	m := newMap(0, 0, WithVerify(true))

	neg := newTracker("neg", 0, 0, 0)
	pos := newTracker("pos", 10, 0, 0)
	plain := newTracker("plain", 5, 0, 0)
	hn := addTracker(t, m.system, neg, FlagNegativeBoundary)
	hp := addTracker(t, m.system, pos, FlagPositiveBoundary)
	addTracker(t, m.system, plain, 0)

	// a negative boundary walking onto a plain node ends up before it
	neg.pos.X = 5
	m.system.Update(hn)
	Equal(t, m.labels(AxisX), []string{"neg", "plain", "pos"})

	// a positive boundary walking onto a plain node ends up after it
	pos.pos.X = 5
	m.system.Update(hp)
	Equal(t, m.labels(AxisX), []string{"neg", "plain", "pos"})

	neg.pos.X = 6
	m.system.Update(hn)
	Equal(t, m.labels(AxisX), []string{"plain", "pos", "neg"})

	neg.pos.X = 5
	m.system.Update(hn)
	Equal(t, m.labels(AxisX), []string{"neg", "plain", "pos"})
}

func Test_PassNotification(t *testing.T) {
	m := newMap(0, 0, WithVerify(true))
	s := m.system

	A := newTracker("A", 0, 0, 0)
	B := newTracker("B", 5, 0, 0)
	ha := addTracker(t, s, A, 0)
	hb := addTracker(t, s, B, 0)
	clearPasses(A, B)

	// B walks backward over A
	B.pos.X = -1
	s.Update(hb)

	Equal(t, m.labels(AxisX), []string{"B", "A"})
	Equal(t, B.passes, []passRecord{{AxisX, ha, false}})
	Equal(t, A.passes, []passRecord{{AxisX, hb, true}})

	C := newTracker("C", 10, 0, 0)
	hc := addTracker(t, s, C, 0)
	clearPasses(A, B, C)

	swaps := s.Stats().Swaps[AxisX]
	C.pos.X = -5
	s.Update(hc)

	Equal(t, m.labels(AxisX), []string{"C", "B", "A"})
	Equal(t, C.passes, []passRecord{{AxisX, ha, false}, {AxisX, hb, false}})
	Equal(t, A.passes, []passRecord{{AxisX, hc, true}})
	Equal(t, B.passes, []passRecord{{AxisX, hc, true}})
	Equal(t, s.Stats().Swaps[AxisX], swaps+2)

	// forward walk: C now follows both
	clearPasses(A, B, C)
	C.pos.X = 20
	s.Update(hc)

	Equal(t, m.labels(AxisX), []string{"B", "A", "C"})
	Equal(t, C.passes, []passRecord{{AxisX, hb, true}, {AxisX, ha, true}})
	Equal(t, A.passes, []passRecord{{AxisX, hc, false}})
	Equal(t, B.passes, []passRecord{{AxisX, hc, false}})

	// unchanged target, no walk
	clearPasses(A, B, C)
	s.Update(hc)
	Equal(t, len(A.passes)+len(B.passes)+len(C.passes), 0)
}

func Test_MovePastTwo(t *testing.T) {
	m := newMap(0, 0, WithVerify(true))
	s := m.system

	A := newTracker("A", 0, 0, 0)
	B := newTracker("B", 5, 5, 5)
	C := newTracker("C", 10, 10, 10)
	ha := addTracker(t, s, A, 0)
	hb := addTracker(t, s, B, 0)
	hc := addTracker(t, s, C, 0)
	Equal(t, m.labels(AxisX), []string{"A", "B", "C"})
	clearPasses(A, B, C)

	A.pos.X = 20
	s.Update(ha)

	Equal(t, m.labels(AxisX), []string{"B", "C", "A"})
	Equal(t, s.Node(hb).X(), float32(5))
	Equal(t, s.Node(hc).X(), float32(10))
	Equal(t, s.Node(ha).X(), float32(20))
	Equal(t, A.passes, []passRecord{{AxisX, hb, true}, {AxisX, hc, true}})
	Equal(t, B.passes, []passRecord{{AxisX, ha, false}})
	Equal(t, C.passes, []passRecord{{AxisX, ha, false}})

	// y and z untouched
	Equal(t, m.labels(AxisY), []string{"A", "B", "C"})
	Equal(t, m.labels(AxisZ), []string{"A", "B", "C"})
}

func Test_VerifyNaN(t *testing.T) {
	s := NewCoordSystem()
	for _, y := range []float32{5, math32.NaN(), 1, 10} {
		Equal(t, s.Insert(s.Alloc(newTracker("n", 0, y, 0), 0)), true)
	}
	NotEqual(t, s.Verify(), nil)

	checked := NewCoordSystem(WithVerify(true))
	Equal(t, checked.Insert(checked.Alloc(newTracker("a", 0, 5, 0), 0)), true)
	Equal(t, panics(func() {
		checked.Insert(checked.Alloc(newTracker("b", 0, math32.NaN(), 0), 0))
	}), true)
}

func Test_HiddenNotReported(t *testing.T) {
	m := newMap(0, 0, WithVerify(true))
	s := m.system

	H := newTracker("H", 2, 0, 0)
	P := newTracker("P", 5, 0, 0)
	hh := addTracker(t, s, H, FlagHide)
	hp := addTracker(t, s, P, 0)
	clearPasses(H, P)

	P.pos.X = -1
	s.Update(hp)
	Equal(t, len(P.passesOn(AxisX)), 0)
	Equal(t, H.passesOn(AxisX), []passRecord{{AxisX, hp, true}})

	clearPasses(H, P)
	H.pos.X = -10
	s.Update(hh)
	Equal(t, len(P.passesOn(AxisX)), 0)
	Equal(t, H.passesOn(AxisX), []passRecord{{AxisX, hp, false}})

	// removed nodes are not reported to newcomers
	Equal(t, s.Remove(hp), true)
	D := newTracker("D", 3, 0, 0)
	hd := addTracker(t, s, D, 0)
	for _, r := range D.passes {
		NotEqual(t, r.other, hp)
	}
	found := false
	for _, r := range P.passes {
		if r.other == hd {
			found = true
		}
	}
	Equal(t, found, true)
}

func Test_TwoPhaseRemove(t *testing.T) {
	m := newMap(0, 0, WithVerify(true))
	s := m.system

	A := newTracker("A", 1, 2, 3)
	B := newTracker("B", 4, 5, 6)
	ha := addTracker(t, s, A, 0)
	hb := addTracker(t, s, B, 0)

	Equal(t, s.Remove(ha), true)
	Equal(t, A.removed, 1)
	Equal(t, s.Size(), 2)
	Equal(t, s.Linked(ha), true)
	Equal(t, s.HasFlags(ha, FlagRemoved), true)
	Equal(t, s.Position(ha, AxisX), s.Target(ha, AxisX))
	Equal(t, s.First(AxisX).Handle(), ha)
	// y and z keep the owner's target
	Equal(t, s.Position(ha, AxisY), float32(2))
	Equal(t, s.Position(ha, AxisZ), float32(3))

	// second remove is a noop
	Equal(t, s.Remove(ha), true)
	Equal(t, A.removed, 1)
	Equal(t, len(s.dels), 1)

	// removed nodes ignore updates
	A.pos.X = 100
	s.Update(ha)
	Equal(t, s.First(AxisX).Handle(), ha)

	s.RemoveDelNodes()
	Equal(t, s.Size(), 1)
	Equal(t, s.Linked(ha), false)
	Equal(t, s.Valid(ha), true)
	Equal(t, m.labels(AxisX), []string{"B"})

	s.ReleaseNodes()
	Equal(t, s.Valid(ha), false)
	Equal(t, s.Owner(ha), nil)
	Equal(t, s.Node(ha).Valid(), false)
	Equal(t, s.Stats().Released, uint64(1))
	Equal(t, s.Stats().Removes, uint64(1))

	// stale handles are refused everywhere
	Equal(t, s.Remove(ha), false)
	Equal(t, s.Insert(ha), false)
	Equal(t, s.Free(ha), false)
	s.Update(ha)

	// the slot comes back with a new generation
	C := newTracker("C", 0, 0, 0)
	hc := addTracker(t, s, C, 0)
	Equal(t, hc.slot, ha.slot)
	NotEqual(t, hc, ha)
	Equal(t, s.Owner(hc), C)
	Equal(t, s.Valid(hb), true)

	Equal(t, s.Remove(hb), true)
	Equal(t, s.Remove(hc), true)
	s.ReleaseNodes()
	Equal(t, s.IsEmpty(), true)
	Equal(t, s.First(AxisX).Valid(), false)
	Equal(t, s.Verify(), nil)
}

func Test_ZeroHandle(t *testing.T) {
	s := NewCoordSystem()

	var h Handle
	Equal(t, h.IsZero(), true)
	Equal(t, s.Valid(h), false)
	Equal(t, s.Insert(h), false)
	Equal(t, s.Remove(h), false)
	Equal(t, s.Flags(h), NodeFlag(0))

	h = s.Alloc(nil, 0)
	Equal(t, h.IsZero(), false)
	Equal(t, s.Valid(h), true)
	Equal(t, s.Linked(h), false)
	Equal(t, s.Insert(h), true)
	// already linked
	Equal(t, s.Insert(h), false)
	Equal(t, s.Free(h), false)
}

func Test_AllocFree(t *testing.T) {
	s := NewCoordSystem(WithVerify(true))

	h := s.Alloc(newTracker("A", 0, 0, 0), FlagEntity)
	Equal(t, s.Flags(h), FlagEntity)
	Equal(t, s.Free(h), true)
	Equal(t, s.Valid(h), false)
	Equal(t, s.Free(h), false)

	h2 := s.Alloc(nil, 0)
	Equal(t, h2.slot, h.slot)
	NotEqual(t, h2.gen, h.gen)
}

func Test_InsertWithRef(t *testing.T) {
	m := newMap(0, 0, WithVerify(true))
	s := m.system

	A := newTracker("A", 0, 0, 0)
	B := newTracker("B", 10, 10, 10)
	addTracker(t, s, A, 0)
	hb := addTracker(t, s, B, 0)
	clearPasses(A, B)

	near := newTracker("near", 8, 8, 8)
	hn := s.Alloc(near, 0)
	Equal(t, s.InsertWithRef(hn, hb), true)
	for _, a := range Axes {
		Equal(t, m.labels(a), []string{"A", "near", "B"})
	}
	// spliced right before B, nothing to cross
	Equal(t, len(A.passes), 0)
	Equal(t, len(B.passes), 0)

	// a stale ref falls back to a plain insert
	far := newTracker("far", 20, 20, 20)
	hf := s.Alloc(far, 0)
	Equal(t, s.InsertWithRef(hf, Handle{}), true)
	for _, a := range Axes {
		Equal(t, m.labels(a), []string{"A", "near", "B", "far"})
	}

	// an unlinked ref falls back too
	self := s.Alloc(nil, 0)
	Equal(t, s.InsertWithRef(self, self), true)
	Equal(t, s.Linked(self), true)
}

func Test_TraversalWindow(t *testing.T) {
	s := NewCoordSystem(WithVerify(true))

	var hs []Handle
	for i := 0; i < 5; i++ {
		hs = append(hs, addTracker(t, s, newTracker(fmt.Sprintf("p%d", i), float32(i), 0, 0), 0))
	}
	Equal(t, s.Remove(hs[0]), true)

	epoch := s.Epoch()
	visited := 0
	s.Walk(AxisX, func(n Node) bool {
		Equal(t, s.Traversing(), true)
		Equal(t, s.Epoch(), epoch+1)
		Equal(t, panics(s.RemoveDelNodes), true)
		Equal(t, panics(s.ReleaseNodes), true)
		visited++
		return visited < 3
	})
	Equal(t, visited, 3)
	Equal(t, s.Traversing(), false)

	// nothing was unlinked by the refused calls
	Equal(t, s.Size(), 5)
	s.RemoveDelNodes()
	Equal(t, s.Size(), 4)

	// cursors walk the list both ways
	n := s.First(AxisX)
	count := 0
	var last Node
	for ; n.Valid(); n = n.Next(AxisX) {
		last = n
		count++
	}
	Equal(t, count, 4)
	Equal(t, last.Handle(), hs[4])
	Equal(t, last.Prev(AxisX).Handle(), hs[3])
	Equal(t, last.Next(AxisX).Valid(), false)
}

func Test_OldTarget(t *testing.T) {
	s := NewCoordSystem(WithVerify(true))

	p := newTracker("p", 1, 2, 3)
	h := addTracker(t, s, p, 0)
	Equal(t, s.OldTarget(h, AxisY), float32(2))

	p.pos = Vector3{X: 4, Y: 5, Z: 6}
	Equal(t, s.OldTarget(h, AxisX), float32(1))
	Equal(t, s.Target(h, AxisX), float32(4))

	s.ResetOldTarget(h)
	Equal(t, s.OldTarget(h, AxisZ), float32(6))
	// old already matches, nothing walks
	s.Update(h)
	Equal(t, s.Position(h, AxisX), float32(1))

	s.SetOldTarget(h, AxisX, 0)
	s.Update(h)
	Equal(t, s.Position(h, AxisX), float32(4))
	Equal(t, s.Position(h, AxisY), float32(2))

	s.AddFlags(h, FlagHide)
	Equal(t, s.HasAllFlags(h, FlagHide), true)
	s.RemoveFlags(h, FlagHide)
	Equal(t, s.HasFlags(h, FlagHide), false)
	s.SetFlags(h, FlagEntity)
	Equal(t, s.Flags(h), FlagEntity)
}
