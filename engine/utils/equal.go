package utils

import "github.com/chewxy/math32"

// FloatEqualLow low precision equal
func FloatEqualLow(l float32, r float32) bool {
	return math32.Abs(l-r) <= 0.01
}

// FloatEqualHigh high precision equal
func FloatEqualHigh(l float32, r float32) bool {
	return math32.Abs(l-r) <= 0.0001
}
