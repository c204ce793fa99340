package physics

import (
	"math"

	"github.com/lixenwraith/starfall/vmath"
)

// Orbit describes a circular path around a center
type Orbit struct {
	Center vmath.Vec3
	Axis   vmath.Vec3 // Orbit plane normal, zero means Up
	Radius float64
	Speed  float64 // Angular speed in rad/s
	Phase  float64 // Current angle in radians
}

// CircularOrbitSpeed returns the tangential speed for a circular orbit
// under inverse-square attraction: v = sqrt(factor / r)
func CircularOrbitSpeed(factor, radius float64) float64 {
	if radius <= 0 || factor <= 0 {
		return 0
	}
	return math.Sqrt(factor / radius)
}

// Advance moves the orbit phase by dt and returns position and velocity
func (o *Orbit) Advance(dt float64) (vmath.Vec3, vmath.Vec3) {
	o.Phase = math.Mod(o.Phase+o.Speed*dt, 2*math.Pi)
	return o.Position(), o.Velocity()
}

// Position returns the point on the orbit at the current phase
func (o *Orbit) Position() vmath.Vec3 {
	axis := o.axis()
	ref := vmath.Normalize(vmath.Perpendicular(axis))
	return o.Center.Add(vmath.RotateAbout(ref, axis, o.Phase).Mul(o.Radius))
}

// Velocity returns the tangential velocity at the current phase
func (o *Orbit) Velocity() vmath.Vec3 {
	axis := o.axis()
	radial := o.Position().Sub(o.Center)
	return axis.Cross(radial).Mul(o.Speed)
}

func (o *Orbit) axis() vmath.Vec3 {
	if o.Axis.Len() == 0 {
		return vmath.Up
	}
	return vmath.Normalize(o.Axis)
}
