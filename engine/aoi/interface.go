package aoi

// Entityer 某个坐标节点绑定的实体
type Entityer interface {
	AoiID() string
	// 实体绑定的坐标节点
	Coord() *EntityCoord

	// 有实体进入视野
	OnEnterAOI(other Entityer)
	// 有实体离开视野
	OnLeaveAOI(other Entityer)

	// 实体的观察者，没有视野的实体返回 nil
	Witness() *Witness
}

// ViewCallback 范围触发器回调
type ViewCallback interface {
	onEnter(node Node)
	onLeave(node Node)
}
