package space

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tutumagi/crossaoi/engine/aoi"
)

// UseSpaceRadius makes the entity take the view radius of the space it enters
const UseSpaceRadius float32 = -1

// Entity 实体
type Entity struct {
	ID   string
	Kind string

	space *Space

	coord   *aoi.EntityCoord
	witness *aoi.Witness
	radius  float32
}

var _ aoi.Entityer = (*Entity)(nil)

// NewEntity ctor, an empty id gets a random uuid
func NewEntity(kind string, id string, radius float32) *Entity {
	if id == "" {
		id = uuid.New().String()
	}
	e := &Entity{
		ID:     id,
		Kind:   kind,
		radius: radius,
	}
	e.coord = aoi.NewEntityCoord(e)
	return e
}

func (e *Entity) String() string {
	return fmt.Sprintf("<Entity>kind:%s id:%s pos:%s", e.Kind, e.ID, e.coord.Position())
}

/************************ Getter/Setter *************************/

// Space the entity is in, nil when outside
func (e *Entity) Space() *Space {
	return e.space
}

// Position get pos
func (e *Entity) Position() aoi.Vector3 {
	return e.coord.Position()
}

// ViewRadius 视距半径, UseSpaceRadius until the entity enters a space
func (e *Entity) ViewRadius() float32 {
	return e.radius
}

// SetViewRadius 设置视距半径
//	inside a space the view triggers are moved right away, nodes they drop are
//	unlinked on the next tick.
func (e *Entity) SetViewRadius(radius float32) {
	if radius < 0 {
		radius = 0
	}
	e.radius = radius
	if e.space != nil && e.witness != nil {
		e.witness.SetViewRadius(radius, e.space.config.Hysteresis)
	}
}

// InterestedIn 关心集合, the entities in view
func (e *Entity) InterestedIn() Set {
	set := Set{}
	if e.witness == nil {
		return set
	}
	for other := range e.witness.InterestIn {
		if o, ok := other.(*Entity); ok {
			set.Add(o)
		}
	}
	return set
}

// InterestedBy 被关心集合, the entities that have this one in view
func (e *Entity) InterestedBy() Set {
	set := Set{}
	if e.witness == nil {
		return set
	}
	for other := range e.witness.InterestedBy {
		if o, ok := other.(*Entity); ok {
			set.Add(o)
		}
	}
	return set
}

// IsInterestedIn reports whether other is in view
func (e *Entity) IsInterestedIn(other *Entity) bool {
	return e.witness != nil && e.witness.IsInterestIn(other)
}

/************************ aoi.Entityer *************************/

// AoiID entity id
func (e *Entity) AoiID() string {
	return e.ID
}

// Coord index node of the entity
func (e *Entity) Coord() *aoi.EntityCoord {
	return e.coord
}

// Witness nil outside a space
func (e *Entity) Witness() *aoi.Witness {
	return e.witness
}

// OnEnterAOI other 进入视野
func (e *Entity) OnEnterAOI(other aoi.Entityer) {
	o, ok := other.(*Entity)
	if !ok || e.space == nil {
		return
	}
	e.space.onEnterView(e, o)
}

// OnLeaveAOI other 离开视野
func (e *Entity) OnLeaveAOI(other aoi.Entityer) {
	o, ok := other.(*Entity)
	if !ok || e.space == nil {
		return
	}
	e.space.onLeaveView(e, o)
}
