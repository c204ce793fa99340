package entity

import (
	"github.com/lixenwraith/starfall/combat"
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/lod"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/vmath"
)

// Alien is a hostile fighter that pursues a target and fires when lined up
type Alien struct {
	physics.Body

	Health    float64
	MaxHealth float64
	Weapon    string

	CruiseSpeed    float64
	SteerRate      float64 // Radians per second
	EngageDistance float64
	Heading        vmath.Vec3

	bounty    int
	stunned   float64
	target    vmath.Vec3
	hasTarget bool

	arm    *combat.Armament
	scene  scene.Scene
	visual scene.Visual
}

// NewAlien creates a hostile at pos and attaches its visual
func NewAlien(pos vmath.Vec3, s scene.Scene) *Alien {
	body := physics.NewBody(pos, physics.MaskAlien)
	body.Mass = parameter.AlienMass
	body.Radius = parameter.AlienRadius

	a := &Alien{
		Body:           body,
		Health:         parameter.AlienMaxHealth,
		MaxHealth:      parameter.AlienMaxHealth,
		Weapon:         parameter.AlienWeapon,
		CruiseSpeed:    parameter.AlienCruiseSpeed,
		SteerRate:      parameter.AlienSteerRate,
		EngageDistance: parameter.AlienEngageDistance,
		Heading:        vmath.Vec3{0, 0, -1},
		bounty:         parameter.AlienBounty,
		arm:            combat.NewArmament(parameter.AlienMaxEnergy, parameter.AlienEnergyRegen),
		scene:          scene.OrDiscard(s),
	}
	a.visual = a.scene.Attach(scene.KindAlien, pos, parameter.AlienRadius)
	return a
}

// Pursue sets the position the alien steers toward
func (a *Alien) Pursue(pos vmath.Vec3) {
	a.target = pos
	a.hasTarget = true
}

// Disengage clears the pursuit target, the alien coasts
func (a *Alien) Disengage() {
	a.hasTarget = false
}

// Step steers toward the pursuit target at cruise speed
func (a *Alien) Step(dt float64) {
	if a.stunned > 0 {
		a.stunned -= dt
		a.Position = a.Position.Add(a.Velocity.Mul(dt))
		a.scene.SetTransform(a.visual, a.Position, 1, 1)
		return
	}

	if a.hasTarget {
		desired := a.target.Sub(a.Position)
		if desired.LenSqr() > 0 {
			a.Heading = physics.SteerToward(a.Heading, desired, a.SteerRate*dt)
		}
		a.Velocity = a.Heading.Mul(a.CruiseSpeed)
	}

	a.Position = a.Position.Add(a.Velocity.Mul(dt))
	a.scene.SetTransform(a.visual, a.Position, 1, 1)
}

// Aim returns a firing direction when the target is in range and ahead
func (a *Alien) Aim() (vmath.Vec3, bool) {
	if !a.hasTarget || a.stunned > 0 || a.Health <= 0 {
		return vmath.Vec3{}, false
	}
	toTarget := a.target.Sub(a.Position)
	dist := toTarget.Len()
	if dist == 0 || dist > a.EngageDistance {
		return vmath.Vec3{}, false
	}
	dir := toTarget.Mul(1 / dist)
	if vmath.Normalize(a.Heading).Dot(dir) < parameter.AlienFireCone {
		return vmath.Vec3{}, false
	}
	return dir, true
}

// TakeDamage returns true when health is exhausted
func (a *Alien) TakeDamage(amount float64, _ core.Handle) bool {
	if amount > 0 {
		a.Health = max(0, a.Health-amount)
	}
	return a.Health <= 0
}

// ApplyStatus handles projectile status effects
func (a *Alien) ApplyStatus(effect string) {
	if effect == combat.StatusEMP {
		a.stunned = parameter.AlienStunDuration
	}
}

// Stunned reports whether an EMP is active
func (a *Alien) Stunned() bool {
	return a.stunned > 0
}

func (a *Alien) Armament() *combat.Armament { return a.arm }
func (a *Alien) IsHostile() bool             { return true }
func (a *Alien) Bounty() int                 { return a.bounty }

// SetBounty overrides the credit reward
func (a *Alien) SetBounty(b int) { a.bounty = b }

func (a *Alien) Visual() scene.Visual    { return a.visual }
func (a *Alien) LODPosition() vmath.Vec3 { return a.Position }
func (a *Alien) SetDetail(t lod.Tier)    { a.scene.SetDetail(a.visual, t.Detail()) }

func (a *Alien) Dispose() {
	a.scene.Detach(a.visual)
	a.visual = 0
}
