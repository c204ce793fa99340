// Package entity holds the concrete simulated objects: the player spacecraft,
// hostile aliens, orbiting satellites and planets
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

// Controls are the pilot intents for the current frame, each in [-1,1]
type Controls struct {
	Throttle float64
	Strafe   float64
	Yaw      float64
	Pitch    float64
}

// Spacecraft is the player ship
type Spacecraft struct {
	physics.Body

	Health      float64
	MaxHealth   float64
	Shield      float64
	MaxShield   float64
	ShieldRegen float64

	Thrust       float64
	StrafeThrust float64
	TurnRate     float64
	MaxSpeed     float64

	// Heading is the unit forward vector
	Heading vmath.Vec3

	PrimaryWeapon   string
	SecondaryWeapon string

	controls Controls
	arm      *combat.Armament
	scene    scene.Scene
	visual   scene.Visual
}

// NewSpacecraft creates the player ship facing +Z and attaches its visual
func NewSpacecraft(pos vmath.Vec3, s scene.Scene) *Spacecraft {
	body := physics.NewBody(pos, physics.MaskSpacecraft)
	body.Mass = parameter.PlayerMass
	body.Radius = parameter.PlayerRadius

	ship := &Spacecraft{
		Body:            body,
		Health:          parameter.PlayerMaxHealth,
		MaxHealth:       parameter.PlayerMaxHealth,
		Shield:          parameter.PlayerMaxShield,
		MaxShield:       parameter.PlayerMaxShield,
		ShieldRegen:     parameter.PlayerShieldRegen,
		Thrust:          parameter.PlayerThrust,
		StrafeThrust:    parameter.PlayerStrafeThrust,
		TurnRate:        parameter.PlayerTurnRate,
		MaxSpeed:        parameter.PlayerMaxSpeed,
		Heading:         vmath.Vec3{0, 0, 1},
		PrimaryWeapon:   "laser",
		SecondaryWeapon: "missile",
		arm:             combat.NewArmament(parameter.PlayerMaxEnergy, parameter.PlayerEnergyRegen),
		scene:           scene.OrDiscard(s),
	}
	ship.visual = ship.scene.Attach(scene.KindSpacecraft, pos, parameter.PlayerRadius)
	return ship
}

// Accelerate sets forward throttle
func (s *Spacecraft) Accelerate(amount float64) {
	s.controls.Throttle = vmath.Clamp(amount, -1, 1)
}

// Strafe sets lateral thrust, positive is starboard
func (s *Spacecraft) Strafe(amount float64) {
	s.controls.Strafe = vmath.Clamp(amount, -1, 1)
}

// Rotate sets yaw and pitch rates
func (s *Spacecraft) Rotate(yaw, pitch float64) {
	s.controls.Yaw = vmath.Clamp(yaw, -1, 1)
	s.controls.Pitch = vmath.Clamp(pitch, -1, 1)
}

// SetControls replaces every intent at once
func (s *Spacecraft) SetControls(c Controls) {
	s.Accelerate(c.Throttle)
	s.Strafe(c.Strafe)
	s.Rotate(c.Yaw, c.Pitch)
}

// Controls returns the current intents
func (s *Spacecraft) Controls() Controls {
	return s.controls
}

// Step turns, thrusts and integrates the ship
func (s *Spacecraft) Step(dt float64) {
	side := vmath.Perpendicular(s.Heading)
	if s.controls.Yaw != 0 {
		s.Heading = vmath.Normalize(vmath.RotateAbout(s.Heading, vmath.Up, -s.controls.Yaw*s.TurnRate*dt))
	}
	if s.controls.Pitch != 0 {
		s.Heading = vmath.Normalize(vmath.RotateAbout(s.Heading, side, s.controls.Pitch*s.TurnRate*dt))
		side = vmath.Perpendicular(s.Heading)
	}

	thrust := s.Heading.Mul(s.controls.Throttle * s.Thrust).
		Add(side.Mul(s.controls.Strafe * s.StrafeThrust))
	s.Accel = thrust
	s.Integrate(dt)
	s.Velocity = physics.CapSpeed(s.Velocity, s.MaxSpeed)

	if s.Shield < s.MaxShield {
		s.Shield = min(s.MaxShield, s.Shield+s.ShieldRegen*dt)
	}

	s.scene.SetTransform(s.visual, s.Position, 1, 1)
}

// TakeDamage drains shield before hull, returns true when the hull is gone
func (s *Spacecraft) TakeDamage(amount float64, _ core.Handle) bool {
	if amount <= 0 || s.Health <= 0 {
		return s.Health <= 0
	}
	absorbed := min(s.Shield, amount)
	s.Shield -= absorbed
	s.Health -= amount - absorbed
	if s.Health < 0 {
		s.Health = 0
	}
	return s.Health <= 0
}

// Repair restores hull up to MaxHealth
func (s *Spacecraft) Repair(amount float64) {
	s.Health = min(s.MaxHealth, s.Health+amount)
}

// Alive reports whether the hull holds
func (s *Spacecraft) Alive() bool {
	return s.Health > 0
}

func (s *Spacecraft) Armament() *combat.Armament { return s.arm }
func (s *Spacecraft) IsHostile() bool             { return false }

// HealthRatio, ShieldRatio and EnergyRatio feed the HUD
func (s *Spacecraft) HealthRatio() float64 { return ratio(s.Health, s.MaxHealth) }
func (s *Spacecraft) ShieldRatio() float64 { return ratio(s.Shield, s.MaxShield) }
func (s *Spacecraft) EnergyRatio() float64 { return s.arm.EnergyRatio() }

// Visual returns the attached scene visual
func (s *Spacecraft) Visual() scene.Visual { return s.visual }

func (s *Spacecraft) LODPosition() vmath.Vec3 { return s.Position }

func (s *Spacecraft) SetDetail(t lod.Tier) {
	s.scene.SetDetail(s.visual, t.Detail())
}

// Dispose detaches the visual
func (s *Spacecraft) Dispose() {
	s.scene.Detach(s.visual)
	s.visual = 0
}

func ratio(v, maxV float64) float64 {
	if maxV <= 0 {
		return 0
	}
	return vmath.Clamp01(v / maxV)
}
