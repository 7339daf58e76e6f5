package aoi

import (
	"github.com/chewxy/math32"
	"github.com/tutumagi/crossaoi/logger"
)

// Witness 实体A的观察者，用来处理 其他实体进入/离开A的视距范围
//	以及维护了 被哪些实体关心的列表和关心哪些实体的列表
type Witness struct {
	entity Entityer

	// 视距半径
	radius  float32
	trigger *ViewTrigger

	// 一个滞后范围, 离开 radius + hysteresis 才算离开视野
	viewHysteresisArea    float32
	hysteresisAreaTrigger *ViewTrigger

	// 关心的实体
	InterestIn map[Entityer]struct{}
	// 被哪些实体关心
	InterestedBy map[Entityer]struct{}
}

// NewWitness ctor
func NewWitness() *Witness {
	w := &Witness{}
	w.reset()
	return w
}

// Entity the witness is attached to
func (w *Witness) Entity() Entityer {
	return w.entity
}

// ViewRadius 视距半径
func (w *Witness) ViewRadius() float32 {
	return w.radius
}

// Hysteresis 滞后范围
func (w *Witness) Hysteresis() float32 {
	return w.viewHysteresisArea
}

func (w *Witness) onEnterView(trigger *ViewTrigger, other Entityer) {
	// 如果进入的是 hysteresis 区域，则不产生作用
	if trigger == w.hysteresisAreaTrigger {
		return
	}

	w.enterView(other)
}

func (w *Witness) enterView(other Entityer) {
	if w.entity == nil || other == w.entity {
		return
	}
	// 离开过内圈但还在滞后区域内的实体，重新进入内圈时已经在视野里了
	if _, ok := w.InterestIn[other]; ok {
		return
	}

	// 告诉其他实体被关注了
	if ow := other.Witness(); ow != nil {
		ow.AddInterestBy(w.entity)
	}
	w.AddInterestIn(other)

	w.entity.OnEnterAOI(other)
}

func (w *Witness) onLeaveView(trigger *ViewTrigger, other Entityer) {
	// 如果设置过 滞后 区域，则离开滞后区域 才算离开了view
	if w.hysteresisAreaTrigger != nil && trigger != w.hysteresisAreaTrigger {
		return
	}

	w.leaveView(other)
}

// other 离开当前视野
func (w *Witness) leaveView(other Entityer) {
	if _, ok := w.InterestIn[other]; !ok {
		return
	}

	// 告诉其他实体，当前实体不关注他了
	if ow := other.Witness(); ow != nil {
		ow.DelInterestBy(w.entity)
	}

	w.DelInterestIn(other)

	if w.entity != nil {
		w.entity.OnLeaveAOI(other)
	}
}

func (w *Witness) inSystem() bool {
	return w.entity != nil && w.entity.Coord() != nil && w.entity.Coord().System() != nil
}

// SetViewRadius 设置视距半径
func (w *Witness) SetViewRadius(radius float32, hyst float32) {
	w.radius = math32.Max(radius, 0)
	w.viewHysteresisArea = math32.Max(hyst, 0)

	if w.radius <= 0 || w.entity == nil {
		w.UninstallViewTrigger()
		return
	}

	w.trigger = w.syncTrigger(w.trigger, w.radius)
	switch {
	case w.viewHysteresisArea > 0.01:
		w.hysteresisAreaTrigger = w.syncTrigger(w.hysteresisAreaTrigger, w.radius+w.viewHysteresisArea)
	case w.hysteresisAreaTrigger != nil:
		// 滞后区域存在时离开视野以它为准，这里只能 update 不能销毁
		w.hysteresisAreaTrigger.update(w.radius + w.viewHysteresisArea)
	}
}

// syncTrigger 创建或更新 trigger 的半径，实体在坐标系统中时保证它已安装
func (w *Witness) syncTrigger(t *ViewTrigger, radius float32) *ViewTrigger {
	if t == nil {
		t = newViewTrigger(w.entity.Coord(), radius)
		if w.inSystem() {
			t.install()
		}
		return t
	}

	t.update(radius)
	if !t.isInstalled() && w.inSystem() {
		t.reinstall(w.entity.Coord())
	}
	return t
}

// InstallViewTrigger 安装视距触发器
func (w *Witness) InstallViewTrigger() {
	if w.trigger != nil {
		// 在设置视距半径为0后，重新进入场景会出现这种情况
		if w.radius <= 0 || w.entity == nil {
			return
		}

		if w.hysteresisAreaTrigger != nil {
			w.hysteresisAreaTrigger.reinstall(w.entity.Coord())
		}

		w.trigger.reinstall(w.entity.Coord())
	} else if w.hysteresisAreaTrigger != nil {
		logger.Warnf("trigger is nil but hysteresisAreaTrigger is not nil")
	}
}

// UninstallViewTrigger 卸载视距触发器，所有关心的实体离开视野
func (w *Witness) UninstallViewTrigger() {
	if w.trigger != nil {
		w.trigger.uninstall()
	}

	if w.hysteresisAreaTrigger != nil {
		w.hysteresisAreaTrigger.uninstall()
	}

	for other := range w.InterestIn {
		w.leaveView(other)
	}
}

/************************* Attach / Detach *******************************/

// Attach entity
func (w *Witness) Attach(entity Entityer) {
	w.entity = entity
}

// Detach entity
func (w *Witness) Detach(entity Entityer) {
	w.clear(entity)
}

func (w *Witness) clear(entity Entityer) {
	w.UninstallViewTrigger()

	// 还在关注当前实体的，让它们离开视野
	for other := range w.InterestedBy {
		if ow := other.Witness(); ow != nil {
			ow.leaveView(w.entity)
		}
		w.DelInterestBy(other)
	}

	// 不销毁 trigger 内的节点，它们已经卸载，由坐标系统回收
	w.reset()
}

func (w *Witness) reset() {
	w.entity = nil

	w.radius = 0
	w.trigger = nil

	w.viewHysteresisArea = 0
	w.hysteresisAreaTrigger = nil

	w.InterestedBy = make(map[Entityer]struct{})
	w.InterestIn = make(map[Entityer]struct{})
}

/************************* interest in/by *********************************/

// AddInterestIn 添加要关心的实体
func (w *Witness) AddInterestIn(other Entityer) {
	w.InterestIn[other] = struct{}{}
}

// DelInterestIn 移除要关心的实体
func (w *Witness) DelInterestIn(other Entityer) {
	delete(w.InterestIn, other)
}

// AddInterestBy 添加被谁关心
func (w *Witness) AddInterestBy(other Entityer) {
	w.InterestedBy[other] = struct{}{}
}

// DelInterestBy 移除被谁关心
func (w *Witness) DelInterestBy(other Entityer) {
	delete(w.InterestedBy, other)
}

// IsInterestIn reports whether other is in view
func (w *Witness) IsInterestIn(other Entityer) bool {
	_, ok := w.InterestIn[other]
	return ok
}
