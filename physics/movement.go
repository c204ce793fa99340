package physics

import (
	"math"

	"github.com/lixenwraith/starfall/vmath"
)

// CapSpeed clamps velocity magnitude, maxSpeed <= 0 disables the cap
func CapSpeed(vel vmath.Vec3, maxSpeed float64) vmath.Vec3 {
	if maxSpeed <= 0 {
		return vel
	}
	return vmath.ClampMagnitude(vel, maxSpeed)
}

// ApplyDrag scales velocity down linearly, rate is the fraction lost per second
func ApplyDrag(vel vmath.Vec3, rate, dt float64) vmath.Vec3 {
	if rate <= 0 {
		return vel
	}
	f := 1 - rate*dt
	if f < 0 {
		f = 0
	}
	return vel.Mul(f)
}

// SteerToward turns a heading toward desired by at most maxAngle radians
func SteerToward(heading, desired vmath.Vec3, maxAngle float64) vmath.Vec3 {
	h := vmath.Normalize(heading)
	d := vmath.Normalize(desired)
	if h.Len() == 0 {
		return d
	}
	if d.Len() == 0 {
		return h
	}

	cos := vmath.Clamp(h.Dot(d), -1, 1)
	if cos >= 1 {
		return d
	}

	axis := h.Cross(d)
	if axis.Len() == 0 {
		// Opposite headings: pick any perpendicular axis
		axis = vmath.Perpendicular(h)
	}

	angle := math.Acos(cos)
	if angle > maxAngle {
		angle = maxAngle
	}
	return vmath.Normalize(vmath.RotateAbout(h, vmath.Normalize(axis), angle))
}
