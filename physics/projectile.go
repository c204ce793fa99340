package physics

import (
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/vmath"
)

// TargetLocator resolves a weak target handle to a live position
type TargetLocator interface {
	Locate(h core.Handle) (vmath.Vec3, bool)
}

// Projectile is a short-lived shot owned by a firing entity
type Projectile struct {
	Body

	Owner    core.Handle
	Target   core.Handle
	WeaponID string
	Damage   float64
	Size     float64 // Collision radius
	Lifespan float64 // Seconds
	// CreatedAt is world time at registration
	CreatedAt float64
	HasHit    bool
	// Hostile shots never strike Hostile bodies, player shots never strike friendly ones
	Hostile bool

	Homing HomingProfile
	// Penetrating shots continue after a hit, each body is struck once
	Penetrating  bool
	StatusEffect string

	Visual scene.Visual

	struck map[core.Handle]struct{}
}

// Step advances the projectile by dt, steering toward a live target when homing
func (p *Projectile) Step(dt float64, targets TargetLocator) {
	if p.Homing.Strength > 0 && !p.Target.IsNil() && targets != nil {
		if pos, ok := targets.Locate(p.Target); ok {
			p.Velocity = ApplyHoming(p.Velocity, p.Position, pos, &p.Homing, dt)
		} else {
			p.Velocity = Accelerate(p.Velocity, p.Homing.Acceleration, p.Homing.MaxSpeed, dt)
		}
	} else if p.Homing.Acceleration > 0 {
		p.Velocity = Accelerate(p.Velocity, p.Homing.Acceleration, p.Homing.MaxSpeed, dt)
	}

	p.Position = p.Position.Add(p.Velocity.Mul(dt))
}

// Age returns seconds since registration at world time now
func (p *Projectile) Age(now float64) float64 {
	return now - p.CreatedAt
}

// Expired reports whether the projectile outlived its lifespan
func (p *Projectile) Expired(now float64) bool {
	return p.Age(now) > p.Lifespan
}

func (p *Projectile) radius() float64 {
	if p.Size > 0 {
		return p.Size
	}
	return p.Radius
}

func (p *Projectile) alreadyStruck(h core.Handle) bool {
	_, ok := p.struck[h]
	return ok
}

func (p *Projectile) markStruck(h core.Handle) {
	if p.struck == nil {
		p.struck = make(map[core.Handle]struct{}, 4)
	}
	p.struck[h] = struct{}{}
}
