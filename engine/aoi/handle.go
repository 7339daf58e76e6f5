package aoi

import "fmt"

// noSlot marks a missing neighbor or head
const noSlot int32 = -1

// Handle is an opaque reference to a node slot. A released slot bumps its
// generation so every Handle still pointing at it goes stale.
// The zero Handle is never valid.
type Handle struct {
	slot int32
	gen  uint32
}

// IsZero reports whether h is the zero Handle
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.slot, h.gen)
}
