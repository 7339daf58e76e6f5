package aoi

// RangeTrigger 进出范围 触发器
type RangeTrigger struct {
	radius float32

	removing bool

	// 原始节点
	origin *EntityCoord
	// 正向范围的位置节点
	positiveBoundary *RangeTriggerNode
	// 负向范围的位置节点
	negativeBoundary *RangeTriggerNode

	callback ViewCallback
}

func newRangeTrigger(origin *EntityCoord, radius float32, callback ViewCallback) *RangeTrigger {
	return &RangeTrigger{
		origin:   origin,
		radius:   radius,
		callback: callback,
	}
}

func (r *RangeTrigger) reinstall(origin *EntityCoord) bool {
	r.uninstall()
	r.origin = origin

	return r.install()
}

func (r *RangeTrigger) onEnter(node Node) {
	r.callback.onEnter(node)
}

func (r *RangeTrigger) onLeave(node Node) {
	r.callback.onLeave(node)
}

func (r *RangeTrigger) originCoord() *EntityCoord {
	return r.origin
}

// Radius 视距半径
func (r *RangeTrigger) Radius() float32 {
	return r.radius
}

// 更新视距范围
func (r *RangeTrigger) update(radius float32) {
	r.radius = radius

	if r.positiveBoundary != nil {
		r.positiveBoundary.setRange(radius)
		r.positiveBoundary.Update()
	}

	if r.negativeBoundary != nil {
		r.negativeBoundary.setRange(-radius)
		r.negativeBoundary.Update()
	}
}

func (r *RangeTrigger) install() bool {
	if r.isInstalled() {
		return true
	}
	if r.origin == nil || r.origin.System() == nil {
		return false
	}

	/*
		注意：必须先安装负边界再安装正边界。
		节点删除时 x 会被设置为最小值，向负边界方向离开，
		如果先装正边界，安装过程中进入范围又被销毁的实体只会穿过还没有安装的负边界，
		触发器收不到离开事件，留下一个已经销毁的实体。
	*/
	r.negativeBoundary = newRangeTriggerNode(r, -r.radius, false)
	if !r.negativeBoundary.insert() {
		r.uninstall()
		return false
	}

	r.positiveBoundary = newRangeTriggerNode(r, r.radius, true)
	if !r.positiveBoundary.insert() {
		r.uninstall()
		return false
	}

	return true
}

func (r *RangeTrigger) uninstall() bool {
	if r.removing {
		return false
	}
	r.removing = true

	if r.positiveBoundary != nil {
		r.positiveBoundary.remove()
	}

	if r.negativeBoundary != nil {
		r.negativeBoundary.remove()
	}

	r.positiveBoundary = nil
	r.negativeBoundary = nil

	r.removing = false

	return true
}

func (r *RangeTrigger) onNodePassZ(triggerNode *RangeTriggerNode, node Handle, isFront bool) {
	wasInZ := triggerNode.wasInRange(AxisZ, node)
	isInZ := triggerNode.isInRange(AxisZ, node)

	if wasInZ == isInZ {
		return
	}

	wasIn := triggerNode.wasInRange(AxisX, node) && wasInZ
	isIn := triggerNode.isInRange(AxisX, node) && isInZ

	if wasIn == isIn {
		return
	}

	r.fire(triggerNode, node, isIn)
}

func (r *RangeTrigger) onNodePassX(triggerNode *RangeTriggerNode, node Handle, isFront bool) {
	wasInZ := triggerNode.wasInRange(AxisZ, node)
	isInZ := triggerNode.isInRange(AxisZ, node)

	// z 轴情况有变化则交给 z 轴处理，这样才可以保证只有一次 enter 或者 leave
	if wasInZ != isInZ {
		return
	}

	wasIn := triggerNode.wasInRange(AxisX, node) && wasInZ
	isIn := triggerNode.isInRange(AxisX, node) && isInZ

	// 如果情况没有发生变化则忽略
	if wasIn == isIn {
		return
	}

	r.fire(triggerNode, node, isIn)
}

func (r *RangeTrigger) fire(triggerNode *RangeTriggerNode, node Handle, isIn bool) {
	n := triggerNode.sys.Node(node)
	if isIn {
		r.onEnter(n)
	} else {
		r.onLeave(n)
	}
}

func (r *RangeTrigger) isInstalled() bool {
	return r.positiveBoundary != nil && r.negativeBoundary != nil
}
