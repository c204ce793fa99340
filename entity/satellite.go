package entity

import (
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/lod"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/vmath"
)

// Satellite is a neutral body on a fixed circular orbit
type Satellite struct {
	physics.Body

	Health float64
	Orbit  physics.Orbit

	bounty int
	scene  scene.Scene
	visual scene.Visual
}

// NewSatellite places a satellite on a circular orbit around planet
// The orbit lies in the plane normal to axis at the given phase
func NewSatellite(planet *physics.Planet, radius, phase float64, axis vmath.Vec3, s scene.Scene) *Satellite {
	orbit := physics.Orbit{
		Center: planet.Position,
		Axis:   axis,
		Radius: radius,
		Speed:  parameter.SatelliteOrbitSpeed,
		Phase:  phase,
	}
	if v := physics.CircularOrbitSpeed(planet.GravityFactor, radius); v > 0 && radius > 0 {
		orbit.Speed = v / radius
	}

	body := physics.NewBody(orbit.Position(), physics.MaskSatellite)
	body.Mass = parameter.SatelliteMass
	body.Radius = parameter.SatelliteRadius
	body.Velocity = orbit.Velocity()

	sat := &Satellite{
		Body:   body,
		Health: parameter.SatelliteMaxHealth,
		Orbit:  orbit,
		bounty: parameter.SatelliteBounty,
		scene:  scene.OrDiscard(s),
	}
	sat.visual = sat.scene.Attach(scene.KindSatellite, body.Position, parameter.SatelliteRadius)
	return sat
}

// Step advances along the orbit, collisions never knock it off course
func (s *Satellite) Step(dt float64) {
	s.Position, s.Velocity = s.Orbit.Advance(dt)
	s.scene.SetTransform(s.visual, s.Position, 1, 1)
}

// TakeDamage returns true when health is exhausted
func (s *Satellite) TakeDamage(amount float64, _ core.Handle) bool {
	if amount > 0 {
		s.Health = max(0, s.Health-amount)
	}
	return s.Health <= 0
}

func (s *Satellite) Bounty() int             { return s.bounty }
func (s *Satellite) SetBounty(b int)         { s.bounty = b }
func (s *Satellite) Visual() scene.Visual    { return s.visual }
func (s *Satellite) LODPosition() vmath.Vec3 { return s.Position }
func (s *Satellite) SetDetail(t lod.Tier)    { s.scene.SetDetail(s.visual, t.Detail()) }

func (s *Satellite) Dispose() {
	s.scene.Detach(s.visual)
	s.visual = 0
}
