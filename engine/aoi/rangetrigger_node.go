package aoi

import (
	"fmt"

	"github.com/chewxy/math32"
)

// RangeTriggerNode struct
//	扩展坐标，只有在视距半径大于0的情况下，才会有RangeTriggerNode
//	比如此坐标绑定的实体A，实体A有矩形视距，视距为m
//	则在视距范围的触发器内 会额外有两个坐标
//	一个是正向坐标 此时(x, y, z) 对应为（x+m, y+m, z+m）
//	另外一个是负向坐标 此时(x, y, z) 对应为 (x-m, y-m, z-m)
//	有节点跨过边界时，按 [x-m, x+m], [z-m, z+m] 判定进出范围
type RangeTriggerNode struct {
	BaseCoorder

	trigger *RangeTrigger
	sys     *CoordSystem
	handle  Handle

	positive  bool
	radius    float32
	absRadius float32

	// origin and radius as of the last completed update, wasIn ranges use them
	settled   bool
	oldOrigin Vector3
	oldRadius float32
}

var _ Coorder = (*RangeTriggerNode)(nil)

func newRangeTriggerNode(rangeTrigger *RangeTrigger, radius float32, positiveBoundary bool) *RangeTriggerNode {
	r := &RangeTriggerNode{
		trigger:  rangeTrigger,
		positive: positiveBoundary,
	}
	r.setRange(radius)
	r.oldRadius = radius

	r.trigger.originCoord().addWatcherNode(r)

	return r
}

func (r *RangeTriggerNode) String() string {
	f := "-"
	if r.positive {
		f = "+"
	}
	id := ""
	if r.trigger != nil && r.trigger.origin != nil && r.trigger.origin.entity != nil {
		id = r.trigger.origin.entity.AoiID()
	}
	return fmt.Sprintf("RangeCoord(%s%s) radius:%.2f oldRadius:%.2f", f, id, r.radius, r.oldRadius)
}

func (r *RangeTriggerNode) flags() NodeFlag {
	// 正向坐标和负向坐标，都属于隐藏的坐标，不会被报告给其他节点
	f := FlagHide | FlagTrigger | FlagInstalling
	if r.positive {
		return f | FlagPositiveBoundary
	}
	return f | FlagNegativeBoundary
}

// insert next to the origin node and walk out to origin +- radius
func (r *RangeTriggerNode) insert() bool {
	origin := r.trigger.originCoord()
	sys := origin.System()
	if sys == nil {
		return false
	}

	r.sys = sys
	r.handle = sys.Alloc(r, r.flags())
	r.settled = false
	if !sys.InsertWithRef(r.handle, origin.Handle()) {
		sys.Free(r.handle)
		r.sys = nil
		r.handle = Handle{}
		return false
	}
	r.settle()

	// 插入过程中的回调可能导致触发器被卸载
	if r.trigger == nil {
		return false
	}
	sys.RemoveFlags(r.handle, FlagInstalling)
	return true
}

func (r *RangeTriggerNode) remove() {
	if r.sys != nil {
		r.sys.Remove(r.handle)
	}
	r.onTriggerUninstall()
}

func (r *RangeTriggerNode) onTriggerUninstall() {
	if r.trigger != nil && r.trigger.originCoord() != nil {
		r.trigger.originCoord().delWatcherNode(r)
	}
	r.trigger = nil
	r.sys = nil
	r.handle = Handle{}
}

func (r *RangeTriggerNode) settle() {
	if r.trigger != nil {
		r.oldOrigin = r.trigger.originCoord().pos
	}
	r.oldRadius = r.radius
	r.settled = true
}

func (r *RangeTriggerNode) target(a Axis) float32 {
	if r.trigger == nil {
		return -math32.MaxFloat32
	}
	return r.trigger.originCoord().pos.Axis(a) + r.radius
}

// TargetX origin x + radius
func (r *RangeTriggerNode) TargetX() float32 { return r.target(AxisX) }

// TargetY origin y + radius
func (r *RangeTriggerNode) TargetY() float32 { return r.target(AxisY) }

// TargetZ origin z + radius
func (r *RangeTriggerNode) TargetZ() float32 { return r.target(AxisZ) }

// OnRemove 既然自己都要删除了，通知 trigger 卸载
func (r *RangeTriggerNode) OnRemove() {
	if r.trigger != nil {
		r.trigger.uninstall()
	}
}

// OnParentRemove 父节点删除了，通知 trigger 卸载
func (r *RangeTriggerNode) OnParentRemove(parent Handle) {
	if r.trigger != nil {
		r.trigger.uninstall()
	}
}

func (r *RangeTriggerNode) passable(other Handle) bool {
	if r.trigger == nil || r.sys == nil {
		return false
	}
	if r.sys.HasFlags(r.handle, FlagRemoving|FlagRemoved) {
		return false
	}
	return other != r.trigger.originCoord().Handle()
}

// OnNodePassX other crossed the boundary on x
func (r *RangeTriggerNode) OnNodePassX(other Handle, isFront bool) {
	if r.passable(other) {
		r.trigger.onNodePassX(r, other, isFront)
	}
}

// OnNodePassZ other crossed the boundary on z
func (r *RangeTriggerNode) OnNodePassZ(other Handle, isFront bool) {
	if r.passable(other) {
		r.trigger.onNodePassZ(r, other, isFront)
	}
}

func (r *RangeTriggerNode) setRange(radius float32) {
	r.radius = radius
	r.absRadius = math32.Abs(radius)
}

// Update the node
func (r *RangeTriggerNode) Update() {
	if r.sys == nil {
		return
	}
	r.sys.Update(r.handle)
	if r.trigger != nil {
		r.settle()
	}
}

func (r *RangeTriggerNode) wasInRange(a Axis, node Handle) bool {
	if !r.settled {
		return false
	}
	origin := r.oldOrigin.Axis(a)
	abs := math32.Abs(r.oldRadius)
	v := r.sys.OldTarget(node, a)
	return v >= origin-abs && v <= origin+abs
}

func (r *RangeTriggerNode) isInRange(a Axis, node Handle) bool {
	origin := r.trigger.originCoord().pos.Axis(a)
	v := r.sys.Target(node, a)
	return v >= origin-r.absRadius && v <= origin+r.absRadius
}
