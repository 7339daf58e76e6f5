package utils

import (
	"math/rand"
)

// RandomFloat32 rand float32 in [min, max)
func RandomFloat32(min, max float32) float32 {
	return min + rand.Float32()*(max-min)
}

// RandomInt32 rand int32 in [min, max)
func RandomInt32(min, max int32) int32 {
	if min >= max {
		return min
	}
	return min + rand.Int31n(max-min)
}

// ClampFloat32 limits v to [min, max]
func ClampFloat32(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
