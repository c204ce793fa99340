package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the float64 3D vector used for all simulation state
type Vec3 = mgl64.Vec3

// Up is the world up axis, used as the reference for fan rotation and perpendiculars
var Up = Vec3{0, 1, 0}

// Normalize returns the unit vector of v, zero vector for zero-length input
// mgl64's Normalize divides by zero length, this does not
func Normalize(v Vec3) Vec3 {
	mag := v.Len()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

func Distance(a, b Vec3) float64 {
	return b.Sub(a).Len()
}

func DistanceSq(a, b Vec3) float64 {
	return b.Sub(a).LenSqr()
}

// Lerp3 interpolates a toward b by t without clamping t
func Lerp3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// ClampMagnitude limits vector magnitude to maxMag
func ClampMagnitude(v Vec3, maxMag float64) Vec3 {
	magSq := v.LenSqr()
	if magSq <= maxMag*maxMag {
		return v
	}
	return Normalize(v).Mul(maxMag)
}

// Reflect mirrors v about the plane with unit normal n
func Reflect(v, n Vec3) Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Perpendicular returns a unit vector orthogonal to dir, lying in the horizontal plane when possible
func Perpendicular(dir Vec3) Vec3 {
	p := dir.Cross(Up)
	if p.LenSqr() < 1e-12 {
		p = dir.Cross(Vec3{1, 0, 0})
	}
	return Normalize(p)
}

// RotateAbout rotates v by angle radians around axis
func RotateAbout(v, axis Vec3, angle float64) Vec3 {
	axis = Normalize(axis)
	if angle == 0 || axis.LenSqr() == 0 {
		return v
	}
	return mgl64.QuatRotate(angle, axis).Rotate(v)
}

// IsFinite reports whether every component is a real number
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
