package aoi

import "fmt"

// EntityCoord 实体的坐标节点
type EntityCoord struct {
	BaseCoorder

	entity Entityer
	sys    *CoordSystem
	handle Handle
	pos    Vector3

	// 该实体节点的监听者
	// 比如该实体有矩形的视距，安装触发器时会生成正负两个边界节点，
	// 这两个节点就在 watchers 里面，当前节点更新时 watchers 也跟着更新
	watchers map[*RangeTriggerNode]struct{}

	updating int
}

var _ Coorder = (*EntityCoord)(nil)

// NewEntityCoord ctor
func NewEntityCoord(entity Entityer) *EntityCoord {
	return &EntityCoord{
		entity:   entity,
		watchers: make(map[*RangeTriggerNode]struct{}, 4),
	}
}

func (n *EntityCoord) String() string {
	id := ""
	if n.entity != nil {
		id = n.entity.AoiID()
	}
	return fmt.Sprintf("EntityCoord(%s) watchers:%d pos:%s", id, len(n.watchers), n.pos)
}

// Entity bound to the node
func (n *EntityCoord) Entity() Entityer {
	return n.entity
}

// System 返回所在的坐标系统, nil when not entered
func (n *EntityCoord) System() *CoordSystem {
	return n.sys
}

// Handle of the node in System
func (n *EntityCoord) Handle() Handle {
	return n.handle
}

// Position 返回位置
func (n *EntityCoord) Position() Vector3 {
	return n.pos
}

// SetPosition 设置位置, Update must follow to move the node
func (n *EntityCoord) SetPosition(x float32, y float32, z float32) {
	n.pos = Vector3{X: x, Y: y, Z: z}
}

// SetVec3 设置位置
func (n *EntityCoord) SetVec3(v Vector3) {
	n.pos = v
}

// TargetX entity position
func (n *EntityCoord) TargetX() float32 { return n.pos.X }

// TargetY entity position
func (n *EntityCoord) TargetY() float32 { return n.pos.Y }

// TargetZ entity position
func (n *EntityCoord) TargetZ() float32 { return n.pos.Z }

// EnterSystem 进入坐标系统
func (n *EntityCoord) EnterSystem(sys *CoordSystem) bool {
	if n.sys != nil || sys == nil {
		return false
	}
	h := sys.Alloc(n, FlagEntity)
	n.sys = sys
	n.handle = h
	if !sys.Insert(h) {
		sys.Free(h)
		n.sys = nil
		n.handle = Handle{}
		return false
	}
	return true
}

// LeaveSystem 离开坐标系统
//	the node is removed (its watchers uninstall through OnRemove) and released
//	by the system later, the coord can enter a system again right away.
func (n *EntityCoord) LeaveSystem() bool {
	if n.sys == nil {
		return false
	}
	ok := n.sys.Remove(n.handle)
	n.sys = nil
	n.handle = Handle{}
	return ok
}

// Update the node then every watcher
func (n *EntityCoord) Update() {
	sys := n.sys
	if sys == nil {
		return
	}
	h := n.handle

	sys.AddFlags(h, FlagEntityUpdating)
	n.updating++

	sys.Update(h)

	for _, watcher := range n.watcherList() {
		watcher.Update()
	}

	n.updating--
	if n.updating == 0 {
		sys.RemoveFlags(h, FlagEntityUpdating)
	}
}

// OnRemove tells every watcher its parent goes away
func (n *EntityCoord) OnRemove() {
	for _, watcher := range n.watcherList() {
		watcher.OnParentRemove(n.handle)
	}
}

func (n *EntityCoord) watcherList() []*RangeTriggerNode {
	list := make([]*RangeTriggerNode, 0, len(n.watchers))
	for w := range n.watchers {
		list = append(list, w)
	}
	return list
}

func (n *EntityCoord) addWatcherNode(node *RangeTriggerNode) bool {
	if _, ok := n.watchers[node]; ok {
		return false
	}
	n.watchers[node] = struct{}{}
	return true
}

func (n *EntityCoord) delWatcherNode(node *RangeTriggerNode) {
	delete(n.watchers, node)
}

// WatcherCount number of trigger boundaries following this node
func (n *EntityCoord) WatcherCount() int {
	return len(n.watchers)
}
