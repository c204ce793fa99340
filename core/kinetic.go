package core

import "github.com/lixenwraith/starfall/vmath"

// Kinetic is the motion state shared by every simulated body
type Kinetic struct {
	// Position in world units
	Position vmath.Vec3
	// Velocity in units per second
	Velocity vmath.Vec3
	// Accel in units per second squared, cleared by the owner when thrust stops
	Accel vmath.Vec3
}

// Integrate performs semi-implicit Euler: v += a*dt; p += v*dt
func (k *Kinetic) Integrate(dt float64) {
	k.Velocity = k.Velocity.Add(k.Accel.Mul(dt))
	k.Position = k.Position.Add(k.Velocity.Mul(dt))
}

// ApplyImpulse adds a velocity delta
func (k *Kinetic) ApplyImpulse(dv vmath.Vec3) {
	k.Velocity = k.Velocity.Add(dv)
}

// Speed returns velocity magnitude
func (k *Kinetic) Speed() float64 {
	return k.Velocity.Len()
}
