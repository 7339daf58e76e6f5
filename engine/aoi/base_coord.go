package aoi

// Coorder is implemented by whatever owns a node: it reports where the node
// should be and reacts to topology events raised by the CoordSystem.
type Coorder interface {
	// 节点的目标位置
	TargetX() float32
	TargetY() float32
	TargetZ() float32

	// other 跨过了当前节点, isFront 表示 other 现在排在当前节点前面
	OnNodePassX(other Handle, isFront bool)
	OnNodePassY(other Handle, isFront bool)
	OnNodePassZ(other Handle, isFront bool)

	// 节点进入删除流程时调用一次
	OnRemove()
	// 节点依附的父节点被删除
	OnParentRemove(parent Handle)
}

// BaseCoorder is the bare node behaviour, embed it and override what is needed
type BaseCoorder struct{}

var _ Coorder = BaseCoorder{}

// TargetX 0
func (BaseCoorder) TargetX() float32 { return 0 }

// TargetY 0
func (BaseCoorder) TargetY() float32 { return 0 }

// TargetZ 0
func (BaseCoorder) TargetZ() float32 { return 0 }

// OnNodePassX noop
func (BaseCoorder) OnNodePassX(other Handle, isFront bool) {}

// OnNodePassY noop
func (BaseCoorder) OnNodePassY(other Handle, isFront bool) {}

// OnNodePassZ noop
func (BaseCoorder) OnNodePassZ(other Handle, isFront bool) {}

// OnRemove noop
func (BaseCoorder) OnRemove() {}

// OnParentRemove noop
func (BaseCoorder) OnParentRemove(parent Handle) {}

func targetOf(c Coorder, a Axis) float32 {
	switch a {
	case AxisY:
		return c.TargetY()
	case AxisZ:
		return c.TargetZ()
	}
	return c.TargetX()
}

func passTo(c Coorder, a Axis, other Handle, isFront bool) {
	switch a {
	case AxisX:
		c.OnNodePassX(other, isFront)
	case AxisY:
		c.OnNodePassY(other, isFront)
	case AxisZ:
		c.OnNodePassZ(other, isFront)
	}
}
