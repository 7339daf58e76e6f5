package space

// Listener 自定义space事件回调
//	every call runs on the space goroutine, inside the index update that
//	raised it for the view events.
type Listener interface {
	OnEntityEnter(s *Space, e *Entity)
	OnEntityLeave(s *Space, e *Entity)

	// other 进入/离开 e 的视野
	OnEnterView(e *Entity, other *Entity)
	OnLeaveView(e *Entity, other *Entity)
}

// BaseListener ignores every event, embed it and override what is needed
type BaseListener struct{}

var _ Listener = BaseListener{}

// OnEntityEnter 实体进入后回调
func (BaseListener) OnEntityEnter(s *Space, e *Entity) {}

// OnEntityLeave 实体离开后回调
func (BaseListener) OnEntityLeave(s *Space, e *Entity) {}

// OnEnterView other 进入 e 的视野
func (BaseListener) OnEnterView(e *Entity, other *Entity) {}

// OnLeaveView other 离开 e 的视野
func (BaseListener) OnLeaveView(e *Entity, other *Entity) {}
