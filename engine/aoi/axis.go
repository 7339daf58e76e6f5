package aoi

// Axis one of the three sorted lists
type Axis int8

const (
	AxisX Axis = iota
	AxisY
	AxisZ

	axisCount
)

// Axes all axes in update order
var Axes = [axisCount]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

func (a Axis) valid() bool {
	return a >= AxisX && a < axisCount
}
