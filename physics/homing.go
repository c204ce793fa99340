package physics

import (
	"github.com/lixenwraith/starfall/vmath"
)

// HomingProfile defines guided projectile steering
type HomingProfile struct {
	Strength     float64 // Fraction of heading error corrected per second
	Acceleration float64 // Speed gained per second along the current heading
	MaxSpeed     float64 // Speed cap, 0 disables the cap
}

// ApplyHoming rotates vel toward target keeping its magnitude, then accelerates
// along the resulting heading
// Blend factor is Strength*dt clamped to [0,1]
func ApplyHoming(vel, pos, target vmath.Vec3, profile *HomingProfile, dt float64) vmath.Vec3 {
	speed := vel.Len()
	toTarget := target.Sub(pos)

	if speed > 0 && toTarget.Len() > 0 && profile.Strength > 0 {
		desired := vmath.Normalize(toTarget).Mul(speed)
		vel = vmath.Lerp3(vel, desired, vmath.Clamp01(profile.Strength*dt))
	}

	return Accelerate(vel, profile.Acceleration, profile.MaxSpeed, dt)
}

// Accelerate grows speed along the current heading
// A zero velocity has no heading and is returned unchanged
func Accelerate(vel vmath.Vec3, accel, maxSpeed, dt float64) vmath.Vec3 {
	if accel <= 0 {
		return vel
	}
	speed := vel.Len()
	if speed == 0 {
		return vel
	}
	vel = vel.Mul((speed + accel*dt) / speed)
	return CapSpeed(vel, maxSpeed)
}
