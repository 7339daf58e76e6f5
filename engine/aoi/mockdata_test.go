package aoi

import (
	"fmt"
	"math/rand"
)

type Map struct {
	system *CoordSystem

	width  int
	height int

	entities map[string]*EntityMock
}

func newMap(width int, height int, opts ...Option) *Map {
	return &Map{
		system:   NewCoordSystem(opts...),
		width:    width,
		height:   height,
		entities: make(map[string]*EntityMock),
	}
}

func (m *Map) entityEnter(e *EntityMock) {
	if _, ok := m.entities[e.id]; ok {
		panic(fmt.Sprintf("duplicate enter %s", e.id))
	}
	e.witness = NewWitness()
	e.witness.Attach(e)
	e.witness.SetViewRadius(e.radius, e.hysteresis)

	e.coord.EnterSystem(m.system)

	e.witness.InstallViewTrigger()

	m.entities[e.AoiID()] = e
}

func (m *Map) entityLeave(e *EntityMock) {
	if _, ok := m.entities[e.id]; !ok {
		return
	}
	// 时序很重要
	e.coord.LeaveSystem()
	e.witness.Detach(e)
	e.witness = nil

	delete(m.entities, e.id)

	m.system.RemoveDelNodes()
}

func (m *Map) entityMove(e *EntityMock, pos Vector3) {
	e.setPos(pos)
	e.coord.Update()
}

func (m *Map) setRadius(e *EntityMock, radius float32) {
	e.radius = radius
	e.witness.SetViewRadius(radius, e.hysteresis)
	m.system.RemoveDelNodes()
}

// labels of the owners on axis a from head to tail
func (m *Map) labels(a Axis) []string {
	out := make([]string, 0, m.system.Size())
	m.system.Walk(a, func(n Node) bool {
		out = append(out, ownerLabel(n.Owner()))
		return true
	})
	return out
}

func ownerLabel(c Coorder) string {
	switch o := c.(type) {
	case *EntityCoord:
		return o.entity.AoiID()
	case *RangeTriggerNode:
		if o.trigger == nil {
			return "?"
		}
		if o.positive {
			return "+" + o.trigger.origin.entity.AoiID()
		}
		return "-" + o.trigger.origin.entity.AoiID()
	case *tracker:
		return o.name
	}
	return fmt.Sprintf("%T", c)
}

type EntityMock struct {
	id string

	coord   *EntityCoord
	witness *Witness

	radius     float32
	hysteresis float32

	sights map[string]struct{}
}

func newEntityMock(id string, pos Vector3, radius float32) *EntityMock {
	e := &EntityMock{
		id:     id,
		radius: radius,
		sights: make(map[string]struct{}),
	}
	e.coord = NewEntityCoord(e)
	e.setPos(pos)
	return e
}

func (a *EntityMock) AoiID() string {
	return a.id
}

func (a *EntityMock) setPos(pos Vector3) {
	a.coord.SetVec3(pos)
}

func (a *EntityMock) String() string {
	return fmt.Sprintf("<EntityMock>(id:%s coord:%s)", a.id, a.coord)
}

func (a *EntityMock) Coord() *EntityCoord {
	return a.coord
}

func (a *EntityMock) OnEnterAOI(other Entityer) {
	if _, ok := a.sights[other.AoiID()]; ok {
		panic(fmt.Sprintf("%s enter sight twice %s", a.id, other.AoiID()))
	}
	a.sights[other.AoiID()] = struct{}{}
}

func (a *EntityMock) OnLeaveAOI(other Entityer) {
	if _, ok := a.sights[other.AoiID()]; !ok {
		panic(fmt.Sprintf("%s leave sight not in sight %s", a.id, other.AoiID()))
	}
	delete(a.sights, other.AoiID())
}

func (a *EntityMock) interestByCount() int {
	if a.witness == nil {
		return 0
	}
	return len(a.witness.InterestedBy)
}

func (a *EntityMock) interestInCount() int {
	if a.witness == nil {
		return 0
	}
	return len(a.witness.InterestIn)
}

func (a *EntityMock) Witness() *Witness {
	return a.witness
}

// tracker is a bare node recording every pass it receives
type tracker struct {
	BaseCoorder

	name    string
	pos     Vector3
	passes  []passRecord
	removed int
}

type passRecord struct {
	axis    Axis
	other   Handle
	isFront bool
}

func newTracker(name string, x, y, z float32) *tracker {
	return &tracker{name: name, pos: Vector3{X: x, Y: y, Z: z}}
}

func (p *tracker) TargetX() float32 { return p.pos.X }
func (p *tracker) TargetY() float32 { return p.pos.Y }
func (p *tracker) TargetZ() float32 { return p.pos.Z }

func (p *tracker) OnNodePassX(other Handle, isFront bool) {
	p.passes = append(p.passes, passRecord{AxisX, other, isFront})
}

func (p *tracker) OnNodePassY(other Handle, isFront bool) {
	p.passes = append(p.passes, passRecord{AxisY, other, isFront})
}

func (p *tracker) OnNodePassZ(other Handle, isFront bool) {
	p.passes = append(p.passes, passRecord{AxisZ, other, isFront})
}

func (p *tracker) OnRemove() {
	p.removed++
}

func (p *tracker) passesOn(a Axis) []passRecord {
	out := make([]passRecord, 0, len(p.passes))
	for _, r := range p.passes {
		if r.axis == a {
			out = append(out, r)
		}
	}
	return out
}

func randMM(min, max int) float32 {
	return float32(min) + float32(rand.Intn(max-min))
}

func randPos(min, max int) Vector3 {
	return Vector3{
		X: randMM(min, max),
		Y: 0,
		Z: randMM(min, max),
	}
}
