package aoi

import "fmt"

// Vector3 position in the space, y is up
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// NewVector3 ctor
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Axis returns the component on a
func (v Vector3) Axis(a Axis) float32 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return v.X
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
