package combat

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/event"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/status"
	"github.com/lixenwraith/starfall/vmath"
)

// RejectReason explains why FireWeapon did nothing
type RejectReason uint8

const (
	RejectNone RejectReason = iota
	RejectInvalidSource
	RejectUnknownWeapon
	RejectCooldown
	RejectEnergy
	RejectNoDirection
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectInvalidSource:
		return "invalid source"
	case RejectUnknownWeapon:
		return "unknown weapon"
	case RejectCooldown:
		return "cooldown"
	case RejectEnergy:
		return "insufficient energy"
	case RejectNoDirection:
		return "no direction"
	default:
		return "unknown"
	}
}

// FireResult reports the outcome of FireWeapon
type FireResult struct {
	Fired       bool
	Reason      RejectReason
	Projectiles []*physics.Projectile
}

// Options configures a Resolver
type Options struct {
	Arsenal              *Arsenal
	MaxTargetingDistance float64
	ExplosionPoolSize    int
	ImpactPoolSize       int

	Scene  scene.Scene
	Events *event.EventQueue
	Status *status.Registry
	Logger *zerolog.Logger
}

// DefaultOptions uses the stock weapon table and parameter tuning
func DefaultOptions() Options {
	return Options{
		MaxTargetingDistance: parameter.MaxTargetingDistance,
		ExplosionPoolSize:    parameter.ExplosionPoolSize,
		ImpactPoolSize:       parameter.ImpactPoolSize,
	}
}

// Resolver fires weapons into the physics world, tracks hostile targets for the
// player, and runs pooled explosion and impact effects
type Resolver struct {
	world   *physics.World
	arsenal *Arsenal
	scene   scene.Scene
	events  *event.EventQueue
	log     zerolog.Logger

	player   Shooter
	shooters []Shooter

	targets     targetList
	maxDistance float64

	explosions *EffectPool
	impacts    *EffectPool

	statFired    *atomic.Int64
	statRejected *atomic.Int64
	statDropped  *atomic.Int64
	statTargets  *atomic.Int64
}

// NewResolver creates a resolver bound to world
func NewResolver(world *physics.World, opts Options) *Resolver {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "combat").Logger()
	}
	arsenal := opts.Arsenal
	if arsenal == nil {
		arsenal = DefaultArsenal()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	scn := scene.OrDiscard(opts.Scene)

	r := &Resolver{
		world:       world,
		arsenal:     arsenal,
		scene:       scn,
		events:      opts.Events,
		log:         log,
		targets:     newTargetList(),
		maxDistance: opts.MaxTargetingDistance,
		explosions: NewEffectPool(opts.ExplosionPoolSize, EffectProfile{
			Kind:         scene.KindExplosion,
			Lifetime:     parameter.ExplosionLifetime,
			Growth:       parameter.ExplosionGrowth,
			MaxIntensity: parameter.ExplosionMaxIntensity,
		}, scn),
		impacts: NewEffectPool(opts.ImpactPoolSize, EffectProfile{
			Kind:         scene.KindImpact,
			Lifetime:     parameter.ImpactLifetime,
			Growth:       parameter.ImpactGrowth,
			MaxIntensity: parameter.ImpactMaxIntensity,
		}, scn),
		statFired:    reg.Ints.Get("combat.fired"),
		statRejected: reg.Ints.Get("combat.rejected"),
		statDropped:  reg.Ints.Get("combat.effects_dropped"),
		statTargets:  reg.Ints.Get("combat.targets"),
	}
	return r
}

// Arsenal returns the live weapon table
func (r *Resolver) Arsenal() *Arsenal {
	return r.arsenal
}

// SetPlayer designates the player-owned shooter
func (r *Resolver) SetPlayer(s Shooter) {
	r.player = s
	r.RegisterShooter(s)
}

// Player returns the player-owned shooter
func (r *Resolver) Player() Shooter {
	return r.player
}

// RegisterShooter adds s to cooldown and energy ticking
func (r *Resolver) RegisterShooter(s Shooter) {
	if s == nil {
		return
	}
	for _, existing := range r.shooters {
		if existing == s {
			return
		}
	}
	r.shooters = append(r.shooters, s)
}

// UnregisterShooter stops ticking s
func (r *Resolver) UnregisterShooter(s Shooter) {
	for i, existing := range r.shooters {
		if existing == s {
			r.shooters = append(r.shooters[:i], r.shooters[i+1:]...)
			return
		}
	}
}

// FireWeapon discharges weaponID from source along direction
// Rejections leave energy and cooldowns untouched
func (r *Resolver) FireWeapon(source Shooter, weaponID string, direction vmath.Vec3) FireResult {
	if source == nil || source.PhysicsBody() == nil || source.Armament() == nil {
		return r.reject(source, weaponID, RejectInvalidSource)
	}

	w, ok := r.arsenal.Get(weaponID)
	if !ok {
		return r.reject(source, weaponID, RejectUnknownWeapon)
	}

	arm := source.Armament()
	if !arm.Ready(weaponID) {
		return r.reject(source, weaponID, RejectCooldown)
	}
	if !arm.CanAfford(w.EnergyCost) {
		return r.reject(source, weaponID, RejectEnergy)
	}

	dir := vmath.Normalize(direction)
	if dir.LenSqr() == 0 {
		return r.reject(source, weaponID, RejectNoDirection)
	}

	arm.commit(w)
	projectiles := r.spawnVolley(source, w, dir)

	body := source.PhysicsBody()
	r.statFired.Add(1)
	r.events.Emit(event.EventWeaponFired, &event.WeaponFiredPayload{
		Source:   body.Handle(),
		WeaponID: w.ID,
		Effect:   w.Effect.String(),
		Count:    len(projectiles),
		Position: body.Position,
		Player:   r.isPlayer(source),
	})

	return FireResult{Fired: true, Projectiles: projectiles}
}

func (r *Resolver) reject(source Shooter, weaponID string, reason RejectReason) FireResult {
	r.statRejected.Add(1)

	if source != nil && r.isPlayer(source) {
		r.events.Emit(event.EventFireRejected, &event.FireRejectedPayload{
			Source:   source.PhysicsBody().Handle(),
			WeaponID: weaponID,
			Reason:   reason.String(),
			Player:   true,
		})
		r.events.Emit(event.EventNotification, &event.NotificationPayload{
			Message:  rejectMessage(weaponID, reason),
			Severity: event.SeverityWarning,
			Priority: 1,
		})
	}
	return FireResult{Reason: reason}
}

func rejectMessage(weaponID string, reason RejectReason) string {
	switch reason {
	case RejectCooldown:
		return fmt.Sprintf("%s recharging", weaponID)
	case RejectEnergy:
		return fmt.Sprintf("not enough energy for %s", weaponID)
	case RejectUnknownWeapon:
		return fmt.Sprintf("no weapon %q", weaponID)
	default:
		return fmt.Sprintf("%s: %s", weaponID, reason)
	}
}

// spawnVolley creates ProjectileCount projectiles fanned across Spread radians
// Fan members are rotated about the axis normal to the firing plane and offset
// sideways so they do not start stacked
func (r *Resolver) spawnVolley(source Shooter, w *WeaponType, dir vmath.Vec3) []*physics.Projectile {
	body := source.PhysicsBody()
	hostile := source.IsHostile()
	count := max(w.ProjectileCount, 1)

	side := vmath.Perpendicular(dir)
	fanAxis := vmath.Normalize(side.Cross(dir))
	muzzle := body.Position.Add(dir.Mul(physics.SizeOf(source)))

	var target core.Handle
	if w.Homing && !hostile {
		if t, ok := r.targets.current(); ok {
			target = t.Entity
		}
	}

	out := make([]*physics.Projectile, 0, count)
	for i := 0; i < count; i++ {
		heading := dir
		pos := muzzle
		if count > 1 {
			// t spans [-0.5, 0.5] across the fan
			t := float64(i)/float64(count-1) - 0.5
			heading = vmath.RotateAbout(dir, fanAxis, w.Spread*t)
			pos = pos.Add(side.Mul(t * float64(count-1) * w.Size * 2))
		}

		p := &physics.Projectile{
			Body:         physics.NewBody(pos, physics.ProjectileGroupFor(hostile)),
			Owner:        body.Handle(),
			Target:       target,
			WeaponID:     w.ID,
			Damage:       w.Damage,
			Size:         w.Size,
			Lifespan:     w.Lifespan,
			Hostile:      hostile,
			Penetrating:  w.Penetrating,
			StatusEffect: w.StatusEffect,
		}
		p.Radius = w.Size
		p.Velocity = heading.Mul(w.Speed)
		if w.Homing {
			p.Homing = physics.HomingProfile{
				Strength:     w.HomingStrength,
				Acceleration: w.Acceleration,
				MaxSpeed:     w.MaxSpeed,
			}
		}
		p.Visual = r.scene.Attach(scene.KindProjectile, pos, w.Size)

		if r.world != nil {
			r.world.AddProjectile(p)
		}
		out = append(out, p)
	}
	return out
}

func (r *Resolver) isPlayer(s Shooter) bool {
	if r.player == nil || s == nil {
		return false
	}
	return r.player.PhysicsBody() == s.PhysicsBody()
}

// Update ticks cooldowns and energy, refreshes targets and ages effects
func (r *Resolver) Update(dt float64) {
	for i := len(r.shooters) - 1; i >= 0; i-- {
		s := r.shooters[i]
		if s != r.player && !s.PhysicsBody().InWorld() {
			r.shooters = append(r.shooters[:i], r.shooters[i+1:]...)
			continue
		}
		if arm := s.Armament(); arm != nil {
			arm.Tick(dt)
		}
	}

	r.UpdateTargets()
	r.explosions.Update(dt)
	r.impacts.Update(dt)
}

// UpdateTargets rebuilds the hostile list around the player
func (r *Resolver) UpdateTargets() {
	if r.player == nil || r.world == nil {
		_, had := r.targets.current()
		r.targets.clear()
		if had {
			r.emitTarget()
		}
		return
	}

	body := r.player.PhysicsBody()
	if r.targets.rebuild(r.world, body.Position, r.maxDistance, body.Handle()) {
		r.emitTarget()
	}
	r.statTargets.Store(int64(len(r.targets.entries)))
}

// CycleTarget selects the next hostile, wrapping around
func (r *Resolver) CycleTarget() (Target, bool) {
	t, ok := r.targets.cycle()
	r.emitTarget()
	return t, ok
}

// CurrentTarget returns the selected hostile
func (r *Resolver) CurrentTarget() (Target, bool) {
	return r.targets.current()
}

// TargetIndex returns the selected position in Targets, -1 for none
func (r *Resolver) TargetIndex() int {
	return r.targets.index
}

// Targets returns a copy of the current list, closest first
func (r *Resolver) Targets() []Target {
	out := make([]Target, len(r.targets.entries))
	copy(out, r.targets.entries)
	return out
}

func (r *Resolver) emitTarget() {
	t, _ := r.targets.current()
	r.events.Emit(event.EventTargetChanged, &event.TargetChangedPayload{
		Target:   t.Entity,
		Distance: t.Distance,
		Index:    r.targets.index,
		Count:    len(r.targets.entries),
	})
}

// CreateExplosion starts an explosion, false when the pool is exhausted
func (r *Resolver) CreateExplosion(pos vmath.Vec3, size float64) bool {
	if !r.explosions.Spawn(pos, size) {
		r.statDropped.Add(1)
		return false
	}
	return true
}

// CreateImpact starts an impact flash, false when the pool is exhausted
func (r *Resolver) CreateImpact(pos vmath.Vec3, size float64) bool {
	if !r.impacts.Spawn(pos, size) {
		r.statDropped.Add(1)
		return false
	}
	return true
}

// Explosions exposes the explosion pool for rendering and inspection
func (r *Resolver) Explosions() *EffectPool { return r.explosions }

// Impacts exposes the impact pool for rendering and inspection
func (r *Resolver) Impacts() *EffectPool { return r.impacts }

// Reset clears the target list, cooldowns and effects are untouched
func (r *Resolver) Reset() {
	r.targets.clear()
}

// Close detaches pooled visuals
func (r *Resolver) Close() {
	r.explosions.Close()
	r.impacts.Close()
}

// EventTypes implements event.Handler
func (r *Resolver) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventProjectileImpact,
		event.EventEntityDestroyed,
		event.EventGameReset,
	}
}

// HandleEvent implements event.Handler
func (r *Resolver) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventProjectileImpact:
		if p, ok := ev.Payload.(*event.ProjectileImpactPayload); ok {
			r.CreateImpact(p.Position, p.Size)
		}

	case event.EventEntityDestroyed:
		if p, ok := ev.Payload.(*event.EntityDestroyedPayload); ok {
			r.CreateExplosion(p.Position, p.Size)
			r.log.Debug().Str("entity", p.Entity.String()).Bool("hostile", p.Hostile).Msg("explosion")
		}

	case event.EventGameReset:
		r.Reset()
	}
}
