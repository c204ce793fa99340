package physics

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/event"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/vmath"
)

// Options configures a World
type Options struct {
	Restitution      float64
	StaticDamping    float64
	DamageThreshold  float64
	DamageMultiplier float64

	Scene  scene.Scene
	Events *event.EventQueue
	Logger *zerolog.Logger
}

// DefaultOptions returns tuning from the parameter package with no collaborators
func DefaultOptions() Options {
	return Options{
		Restitution:      parameter.Restitution,
		StaticDamping:    parameter.StaticBounceDamping,
		DamageThreshold:  parameter.CollisionDamageThreshold,
		DamageMultiplier: parameter.CollisionDamageMultiplier,
	}
}

// Stats are counters for the most recent Update
type Stats struct {
	Bodies         int
	Projectiles    int
	Collisions     int
	ProjectileHits int
	Expired        int
	Destroyed      int
	Faults         int
	Skipped        int
}

// World owns bodies, planets and projectiles and advances them in fixed order:
// gravity, self-propulsion, body collisions, projectile motion and hits, expiry
//
// Bodies and projectiles are referenced by generation handles; removal tombstones the
// handle immediately and the iteration slices are compacted after the update
type World struct {
	opts Options

	bodies      *core.Arena[Collidable]
	bodyList    []Collidable
	planets     []*Planet
	projectiles *core.Arena[*Projectile]
	projList    []*Projectile

	scene  scene.Scene
	events *event.EventQueue
	log    zerolog.Logger
	warn   zerolog.Logger

	// Pairs overlapping this and the previous detection pass
	contacts     map[contactKey]struct{}
	prevContacts map[contactKey]struct{}

	now      float64
	updating bool
	stats    Stats
}

type contactKey struct{ a, b core.Handle }

func pairKey(a, b core.Handle) contactKey {
	if b.Index < a.Index {
		a, b = b, a
	}
	return contactKey{a, b}
}

// NewWorld creates an empty world
func NewWorld(opts Options) *World {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "physics").Logger()
	}

	return &World{
		opts:         opts,
		bodies:       core.NewArena[Collidable](64),
		bodyList:     make([]Collidable, 0, 64),
		projectiles:  core.NewArena[*Projectile](128),
		projList:     make([]*Projectile, 0, 128),
		scene:        scene.OrDiscard(opts.Scene),
		events:       opts.Events,
		contacts:     make(map[contactKey]struct{}),
		prevContacts: make(map[contactKey]struct{}),
		log:          log,
		// Per-object warnings repeat every frame; keep a burst per second
		warn: log.Sample(&zerolog.BurstSampler{Burst: 5, Period: time.Second}),
	}
}

// SetRestitution changes the body-body restitution coefficient
func (w *World) SetRestitution(e float64) {
	w.opts.Restitution = vmath.Clamp01(e)
}

// Restitution returns the current restitution coefficient
func (w *World) Restitution() float64 {
	return w.opts.Restitution
}

// Time returns accumulated simulation seconds
func (w *World) Time() float64 {
	return w.now
}

// Stats returns counters from the last Update
func (w *World) Stats() Stats {
	return w.stats
}

// AddBody registers c, returns false if it is nil or already present
func (w *World) AddBody(c Collidable) bool {
	if c == nil {
		return false
	}
	b := c.PhysicsBody()
	if b == nil {
		return false
	}
	if b.member {
		return false
	}
	if b.listed && b.world != w {
		// Pending removal from another world
		return false
	}
	if b.Mass <= 0 {
		b.Mass = parameter.DefaultMass
	}

	b.world = w
	b.handle = w.bodies.Insert(c)
	b.member = true
	if !b.listed {
		w.bodyList = append(w.bodyList, c)
		b.listed = true
	}
	return true
}

// RemoveBody unregisters c, returns false if it was not present
// The handle stops resolving immediately, iteration slices are compacted later
func (w *World) RemoveBody(c Collidable) bool {
	if c == nil {
		return false
	}
	b := c.PhysicsBody()
	if b == nil || !b.member || b.world != w {
		return false
	}
	w.bodies.Remove(b.handle)
	b.member = false
	if !w.updating {
		w.compact()
	}
	return true
}

// AddPlanet registers a gravity source, returns false if already present
func (w *World) AddPlanet(p *Planet) bool {
	if p == nil {
		return false
	}
	for _, existing := range w.planets {
		if existing == p {
			return false
		}
	}
	w.planets = append(w.planets, p)
	return true
}

// RemovePlanet unregisters a gravity source
func (w *World) RemovePlanet(p *Planet) bool {
	for i, existing := range w.planets {
		if existing == p {
			w.planets = append(w.planets[:i], w.planets[i+1:]...)
			return true
		}
	}
	return false
}

// AddProjectile registers p and stamps its creation time
func (w *World) AddProjectile(p *Projectile) bool {
	if p == nil || p.member {
		return false
	}
	if p.listed && p.world != w {
		return false
	}

	p.world = w
	p.handle = w.projectiles.Insert(p)
	p.member = true
	p.CreatedAt = w.now
	if !p.listed {
		w.projList = append(w.projList, p)
		p.listed = true
	}
	return true
}

// RemoveProjectile unregisters p; its visual is detached during compaction
func (w *World) RemoveProjectile(p *Projectile) bool {
	if p == nil || !p.member || p.world != w {
		return false
	}
	w.projectiles.Remove(p.handle)
	p.member = false
	if !w.updating {
		w.compact()
	}
	return true
}

// Lookup resolves a body handle
func (w *World) Lookup(h core.Handle) (Collidable, bool) {
	return w.bodies.Get(h)
}

// Locate resolves a body handle to its current position
func (w *World) Locate(h core.Handle) (vmath.Vec3, bool) {
	c, ok := w.bodies.Get(h)
	if !ok {
		return vmath.Vec3{}, false
	}
	return c.PhysicsBody().Position, true
}

// Bodies visits live bodies in registration order until fn returns false
func (w *World) Bodies(fn func(Collidable) bool) {
	for _, c := range w.bodyList {
		if !c.PhysicsBody().member {
			continue
		}
		if !fn(c) {
			return
		}
	}
}

// BodyCount returns the number of live bodies
func (w *World) BodyCount() int {
	return w.bodies.Len()
}

// ProjectileCount returns the number of live projectiles
func (w *World) ProjectileCount() int {
	return w.projectiles.Len()
}

// Projectiles visits live projectiles until fn returns false
func (w *World) Projectiles(fn func(*Projectile) bool) {
	for _, p := range w.projList {
		if !p.member {
			continue
		}
		if !fn(p) {
			return
		}
	}
}

// Clear removes every body, planet and projectile
func (w *World) Clear() {
	for _, c := range w.bodyList {
		b := c.PhysicsBody()
		b.member = false
	}
	for _, p := range w.projList {
		p.member = false
	}
	w.bodies.Clear()
	w.projectiles.Clear()
	w.planets = w.planets[:0]
	clear(w.contacts)
	clear(w.prevContacts)
	w.compact()
}

// Update advances the simulation by dt seconds
func (w *World) Update(dt float64) {
	if dt <= 0 {
		return
	}

	w.updating = true
	w.now += dt
	w.stats = Stats{}

	for _, c := range w.bodyList {
		b := c.PhysicsBody()
		if !b.member {
			continue
		}
		if !vmath.IsFinite(b.Position) {
			w.stats.Skipped++
			w.warn.Warn().Str("body", b.handle.String()).Msg("skipping body without finite position")
			continue
		}
		w.guard(b.handle, "integrate", func() {
			w.applyGravity(b, dt)
			if m, ok := c.(Mover); ok {
				m.Step(dt)
			}
		})
	}

	w.detectCollisions()
	w.updateProjectiles(dt)
	w.expireProjectiles()

	w.updating = false
	w.compact()

	w.stats.Bodies = w.bodies.Len()
	w.stats.Projectiles = w.projectiles.Len()
}

func (w *World) applyGravity(b *Body, dt float64) {
	if b.Static {
		return
	}
	for _, p := range w.planets {
		if !p.Affects(b.Position) {
			continue
		}
		b.Velocity = b.Velocity.Add(GravitationalAccel3D(b.Position, p.Position, p.GravityFactor).Mul(dt))
	}
}

func (w *World) detectCollisions() {
	w.prevContacts, w.contacts = w.contacts, w.prevContacts
	clear(w.contacts)

	n := len(w.bodyList)
	for i := 0; i < n; i++ {
		ca := w.bodyList[i]
		ba := ca.PhysicsBody()
		if !ba.member {
			continue
		}
		boundsA, ok := ResolveBounds(ca)
		if !ok {
			continue
		}

		for j := i + 1; j < n; j++ {
			cb := w.bodyList[j]
			bb := cb.PhysicsBody()
			if !bb.member || !ba.member {
				continue
			}
			if ba == bb || !CanCollide(ba.Group, bb.Group) {
				continue
			}
			boundsB, ok := ResolveBounds(cb)
			if !ok || !boundsA.Intersects(boundsB) {
				continue
			}
			w.contacts[pairKey(ba.handle, bb.handle)] = struct{}{}

			w.guard(ba.handle, "collision", func() {
				w.handleCollision(ca, cb, boundsA, boundsB)
			})

			// Resolution may have moved A
			if boundsA, ok = ResolveBounds(ca); !ok {
				break
			}
		}
	}
}

// handleCollision resolves one overlapping pair
func (w *World) handleCollision(ca, cb Collidable, boundsA, boundsB vmath.Bounds) {
	ba, bb := ca.PhysicsBody(), cb.PhysicsBody()
	if ba.Static && bb.Static {
		return
	}

	centerA, centerB := boundsA.Centroid(), boundsB.Centroid()
	delta := centerB.Sub(centerA)
	dist := delta.Len()
	normal := vmath.Up
	if dist > 0 {
		normal = delta.Mul(1 / dist)
	}
	penetration := boundsA.ProjectedHalfExtent(normal) + boundsB.ProjectedHalfExtent(normal) - dist

	relVel := bb.Velocity.Sub(ba.Velocity)
	if relVel.Dot(normal) > 0 {
		return
	}
	impactSpeed := relVel.Len()

	switch {
	case !ba.Static && !bb.Static:
		ElasticImpulse3D(&ba.Velocity, &bb.Velocity, normal, ba.Mass, bb.Mass, w.opts.Restitution)
		SeparateOverlap3D(&ba.Position, &bb.Position, normal, penetration, ba.Mass, bb.Mass)
	case !ba.Static:
		ba.Velocity = ReflectDamped(ba.Velocity, normal, w.opts.StaticDamping)
		if penetration > 0 {
			ba.Position = ba.Position.Sub(normal.Mul(penetration))
		}
	default:
		bb.Velocity = ReflectDamped(bb.Velocity, normal, w.opts.StaticDamping)
		if penetration > 0 {
			bb.Position = bb.Position.Add(normal.Mul(penetration))
		}
	}
	w.stats.Collisions++

	var damage float64
	if impactSpeed > w.opts.DamageThreshold {
		damage = impactSpeed * w.opts.DamageMultiplier
	}

	// Resting contact reports once when it begins, damaging impacts always report
	_, resting := w.prevContacts[pairKey(ba.handle, bb.handle)]
	if !resting || damage > 0 {
		contact := centerA.Add(normal.Mul(boundsA.ProjectedHalfExtent(normal)))
		w.events.Emit(event.EventCollision, &event.CollisionPayload{
			A:           ba.handle,
			B:           bb.handle,
			Position:    contact,
			ImpactSpeed: impactSpeed,
			Damage:      damage,
		})
	}

	if damage > 0 {
		w.damage(ca, damage, bb.handle)
		w.damage(cb, damage, ba.handle)
	}

	if l, ok := ca.(CollisionListener); ok && ba.member {
		l.OnCollision(cb, impactSpeed)
	}
	if l, ok := cb.(CollisionListener); ok && bb.member {
		l.OnCollision(ca, impactSpeed)
	}
}

// damage applies amount to c if it is Damageable and destroys it on death
func (w *World) damage(c Collidable, amount float64, source core.Handle) {
	b := c.PhysicsBody()
	if !b.member {
		return
	}
	d, ok := c.(Damageable)
	if !ok {
		return
	}
	if d.TakeDamage(amount, source) {
		w.destroy(c, source)
	}
}

// destroy emits the destruction event and removes the body
func (w *World) destroy(c Collidable, killer core.Handle) {
	b := c.PhysicsBody()
	if !b.member {
		return
	}

	payload := &event.EntityDestroyedPayload{
		Entity:   b.handle,
		Killer:   killer,
		Position: b.Position,
		Size:     SizeOf(c),
	}
	if h, ok := c.(Hostile); ok {
		payload.Hostile = h.IsHostile()
	}
	if bt, ok := c.(Bountied); ok {
		payload.Bounty = bt.Bounty()
	}
	w.events.Emit(event.EventEntityDestroyed, payload)
	w.stats.Destroyed++

	w.log.Debug().Str("entity", b.handle.String()).Str("killer", killer.String()).Msg("entity destroyed")

	w.RemoveBody(c)
	if d, ok := c.(Disposable); ok {
		d.Dispose()
	}
}

func (w *World) updateProjectiles(dt float64) {
	for _, p := range w.projList {
		if !p.member || p.HasHit {
			continue
		}
		w.guard(p.handle, "projectile", func() {
			p.Step(dt, w)
			w.scene.SetTransform(p.Visual, p.Position, 1, 1)
			w.checkProjectile(p)
		})
	}
}

// checkProjectile finds the first body the projectile hits this tick
// Sphere overlap rejects cheaply, box overlap confirms
func (w *World) checkProjectile(p *Projectile) {
	if !vmath.IsFinite(p.Position) {
		return
	}

	radius := p.radius()
	probe := vmath.BoxFromCenter(p.Position, vmath.Vec3{radius, radius, radius})

	for _, c := range w.bodyList {
		b := c.PhysicsBody()
		if !b.member || b.handle == p.Owner {
			continue
		}
		if !CanCollide(p.Group, b.Group) {
			continue
		}
		if h, ok := c.(Hostile); ok && h.IsHostile() == p.Hostile {
			continue
		}
		if p.Penetrating && p.alreadyStruck(b.handle) {
			continue
		}

		bounds, ok := ResolveBounds(c)
		if !ok {
			continue
		}
		center, r := bounds.BoundingSphere()
		if !vmath.SpheresOverlap(p.Position, radius, center, r) {
			continue
		}
		if !probe.Intersects(bounds.Box()) {
			continue
		}

		if p.Penetrating {
			p.markStruck(b.handle)
		} else {
			p.HasHit = true
		}
		w.applyProjectileHit(p, c)
		return
	}
}

func (w *World) applyProjectileHit(p *Projectile, c Collidable) {
	b := c.PhysicsBody()
	w.stats.ProjectileHits++

	w.events.Emit(event.EventProjectileImpact, &event.ProjectileImpactPayload{
		Owner:    p.Owner,
		Target:   b.handle,
		WeaponID: p.WeaponID,
		Position: p.Position,
		Damage:   p.Damage,
		Size:     p.radius(),
	})

	if p.StatusEffect != "" {
		if s, ok := c.(StatusReceiver); ok {
			s.ApplyStatus(p.StatusEffect)
		}
	}
	w.damage(c, p.Damage, p.Owner)
}

// expireProjectiles drops projectiles that hit or outlived their lifespan
func (w *World) expireProjectiles() {
	for i := len(w.projList) - 1; i >= 0; i-- {
		p := w.projList[i]
		if !p.member {
			continue
		}
		expired := p.Expired(w.now)
		if !p.HasHit && !expired {
			continue
		}
		if expired && !p.HasHit {
			w.stats.Expired++
			w.events.Emit(event.EventProjectileExpired, &event.ProjectileExpiredPayload{
				Owner:    p.Owner,
				WeaponID: p.WeaponID,
				Position: p.Position,
			})
		}
		w.projectiles.Remove(p.handle)
		p.member = false
	}
}

// compact removes tombstoned entries, iterating in reverse so indices stay valid
func (w *World) compact() {
	for i := len(w.bodyList) - 1; i >= 0; i-- {
		b := w.bodyList[i].PhysicsBody()
		if b.member {
			continue
		}
		b.listed = false
		w.bodyList = append(w.bodyList[:i], w.bodyList[i+1:]...)
	}

	for i := len(w.projList) - 1; i >= 0; i-- {
		p := w.projList[i]
		if p.member {
			continue
		}
		p.listed = false
		w.scene.Detach(p.Visual)
		p.Visual = 0
		w.projList = append(w.projList[:i], w.projList[i+1:]...)
	}
}

// guard isolates a panic in per-object work so the frame continues
func (w *World) guard(h core.Handle, stage string, fn func()) {
	if err := core.Guard(fn); err != nil {
		w.stats.Faults++
		w.warn.Warn().Err(err).Str("object", h.String()).Str("stage", stage).Msg("recovered fault")
	}
}
