package math

import "github.com/chewxy/math32"

// Pi as float32.
const Pi = math32.Pi

// Fract returns the fractional part of x, always in [0, 1), like GLSL fract.
func Fract(x float32) float32 {
	f := x - math32.Floor(x)
	if f >= 1 {
		// x slightly below an integer can round up to exactly 1.
		return 0
	}
	return f
}

// Remap linearly maps value from [min1, max1] to [min2, max2].
// The input range is not clamped.
func Remap(value, min1, max1, min2, max2 float32) float32 {
	return min2 + (value-min1)*(max2-min2)/(max1-min1)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
