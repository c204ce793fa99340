package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/combat"
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/lod"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/vmath"
)

// Capability checks
var (
	_ physics.Damageable     = (*Spacecraft)(nil)
	_ physics.Mover          = (*Spacecraft)(nil)
	_ physics.Disposable     = (*Spacecraft)(nil)
	_ combat.Shooter         = (*Spacecraft)(nil)
	_ lod.Managed            = (*Spacecraft)(nil)
	_ combat.Shooter         = (*Alien)(nil)
	_ physics.Bountied       = (*Alien)(nil)
	_ physics.StatusReceiver = (*Alien)(nil)
	_ physics.Mover          = (*Satellite)(nil)
	_ physics.Bountied       = (*Satellite)(nil)
	_ lod.Managed            = (*PlanetBody)(nil)
)

func TestSpacecraft_ShieldAbsorbsFirst(t *testing.T) {
	s := NewSpacecraft(vmath.Vec3{}, nil)

	assert.False(t, s.TakeDamage(30, core.Nil))
	assert.Equal(t, parameter.PlayerMaxShield-30, s.Shield)
	assert.Equal(t, parameter.PlayerMaxHealth, s.Health)

	assert.False(t, s.TakeDamage(40, core.Nil))
	assert.Zero(t, s.Shield)
	assert.Equal(t, parameter.PlayerMaxHealth-20, s.Health)

	assert.True(t, s.TakeDamage(1000, core.Nil))
	assert.Zero(t, s.Health)
	assert.False(t, s.Alive())
	assert.Zero(t, s.HealthRatio())
}

func TestSpacecraft_StepThrustAndTurn(t *testing.T) {
	rec := scene.NewRecorder()
	s := NewSpacecraft(vmath.Vec3{}, rec)

	s.Accelerate(1)
	s.Step(1)
	assert.InDelta(t, parameter.PlayerThrust, s.Velocity[2], 1e-9)
	assert.InDelta(t, parameter.PlayerThrust, s.Position[2], 1e-9)

	node, ok := rec.Node(s.Visual())
	require.True(t, ok)
	assert.Equal(t, s.Position, node.Position)

	s.Accelerate(5)
	assert.Equal(t, 1.0, s.Controls().Throttle, "intents are clamped")

	for i := 0; i < 10; i++ {
		s.Step(1)
	}
	assert.LessOrEqual(t, s.Velocity.Len(), s.MaxSpeed+1e-9)

	s.SetControls(Controls{Yaw: 1})
	before := s.Heading
	s.Step(0.5)
	assert.InDelta(t, 1.0, s.Heading.Len(), 1e-9)
	assert.InDelta(t, math.Cos(s.TurnRate*0.5), before.Dot(s.Heading), 1e-9)
}

func TestSpacecraft_ShieldRegen(t *testing.T) {
	s := NewSpacecraft(vmath.Vec3{}, nil)
	s.Shield = 0
	s.Step(1)
	assert.InDelta(t, parameter.PlayerShieldRegen, s.Shield, 1e-9)
	s.Step(1000)
	assert.Equal(t, s.MaxShield, s.Shield)
}

func TestSpacecraft_DetailAndDispose(t *testing.T) {
	rec := scene.NewRecorder()
	s := NewSpacecraft(vmath.Vec3{}, rec)
	v := s.Visual()

	s.SetDetail(lod.TierLow)
	node, _ := rec.Node(v)
	assert.Equal(t, scene.DetailLow, node.Detail)

	s.Dispose()
	assert.Zero(t, rec.Live())
}

func TestAlien_PursueAndAim(t *testing.T) {
	a := NewAlien(vmath.Vec3{0, 0, 100}, nil)

	_, ok := a.Aim()
	assert.False(t, ok, "no target")

	a.Pursue(vmath.Vec3{})
	dir, ok := a.Aim()
	require.True(t, ok, "default heading points at the origin")
	assert.InDelta(t, -1.0, dir[2], 1e-9)

	a.Step(1)
	assert.InDelta(t, 100-parameter.AlienCruiseSpeed, a.Position[2], 1e-9)

	a.Pursue(vmath.Vec3{0, 0, 10000})
	_, ok = a.Aim()
	assert.False(t, ok, "out of range")

	a.Pursue(vmath.Vec3{100, 0, 60})
	_, ok = a.Aim()
	assert.False(t, ok, "not lined up")

	a.Step(0.5)
	assert.Greater(t, a.Heading[0], 0.0, "turns toward the target")
}

func TestAlien_EMPStun(t *testing.T) {
	a := NewAlien(vmath.Vec3{0, 0, 100}, nil)
	a.Pursue(vmath.Vec3{})
	a.ApplyStatus(combat.StatusEMP)
	assert.True(t, a.Stunned())

	_, ok := a.Aim()
	assert.False(t, ok)

	a.Step(parameter.AlienStunDuration + 0.1)
	assert.False(t, a.Stunned())

	a.ApplyStatus("unknown")
	assert.False(t, a.Stunned())
}

func TestAlien_Damage(t *testing.T) {
	a := NewAlien(vmath.Vec3{}, nil)
	assert.True(t, a.IsHostile())
	assert.Equal(t, parameter.AlienBounty, a.Bounty())
	assert.False(t, a.TakeDamage(10, core.Nil))
	assert.True(t, a.TakeDamage(parameter.AlienMaxHealth, core.Nil))
	assert.Zero(t, a.Health)
}

func TestSatellite_Orbits(t *testing.T) {
	planet := &physics.Planet{GravityRadius: 500, GravityFactor: 1e4}
	sat := NewSatellite(planet, 100, 0, vmath.Vec3{}, nil)

	assert.InDelta(t, 100.0, sat.Position.Len(), 1e-9)
	assert.InDelta(t, 10.0, sat.Velocity.Len(), 1e-9, "circular speed sqrt(factor/r)")

	for i := 0; i < 20; i++ {
		sat.Step(0.1)
	}
	assert.InDelta(t, 100.0, sat.Position.Len(), 1e-9, "stays on the orbit")
	assert.InDelta(t, 0.2, sat.Orbit.Phase, 1e-9)
}

func TestPlanet_IsStaticSolid(t *testing.T) {
	p := NewPlanet(vmath.Vec3{1, 2, 3}, 50, 500, 1e6, nil)
	assert.True(t, p.Static)
	assert.Equal(t, physics.MaskPlanet, p.Group)
	assert.Equal(t, p.Position, p.Well.Position)

	bb, ok := physics.ResolveBounds(p)
	require.True(t, ok)
	assert.Equal(t, 50.0, bb.Radius)
}
