package aoi

// ViewTrigger 视野触发器
type ViewTrigger struct {
	*RangeTrigger

	witness *Witness
}

func newViewTrigger(origin *EntityCoord, radius float32) *ViewTrigger {
	r := &ViewTrigger{}
	r.RangeTrigger = newRangeTrigger(origin, radius, r)
	r.witness = origin.entity.Witness()

	return r
}

func entityOf(node Node) Entityer {
	if !node.Flags().Has(FlagEntity) {
		return nil
	}
	coord, ok := node.Owner().(*EntityCoord)
	if !ok {
		return nil
	}
	return coord.entity
}

func (r *ViewTrigger) onEnter(node Node) {
	if other := entityOf(node); other != nil {
		r.witness.onEnterView(r, other)
	}
}

func (r *ViewTrigger) onLeave(node Node) {
	if other := entityOf(node); other != nil {
		r.witness.onLeaveView(r, other)
	}
}

// Witness 获取witness
func (r *ViewTrigger) Witness() *Witness {
	return r.witness
}
