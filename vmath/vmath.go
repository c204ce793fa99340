package vmath

import "github.com/go-gl/mathgl/mgl64"

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return mgl64.Clamp(v, lo, hi)
}

// Clamp01 restricts v to [0, 1], NaN maps to 0
func Clamp01(v float64) float64 {
	if v != v {
		return 0
	}
	return mgl64.Clamp(v, 0, 1)
}

// Lerp interpolates scalars a toward b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ApproxEqual compares floats with mgl64's relative epsilon
func ApproxEqual(a, b, epsilon float64) bool {
	return mgl64.FloatEqualThreshold(a, b, epsilon)
}
