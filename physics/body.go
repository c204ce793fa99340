package physics

import (
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/vmath"
)

// Collidable is anything the world can simulate
// Optional capabilities are discovered by asserting Damageable, CollisionListener,
// Mover, BoundsProvider, Disposable, Hostile and Bountied
type Collidable interface {
	PhysicsBody() *Body
}

// Damageable receives collision and projectile damage
// Returns true when the damage destroyed the entity
type Damageable interface {
	TakeDamage(amount float64, source core.Handle) bool
}

// CollisionListener is notified after a resolved collision
type CollisionListener interface {
	OnCollision(other Collidable, impactSpeed float64)
}

// Mover owns its own integration and is stepped by the world each tick
type Mover interface {
	Step(dt float64)
}

// BoundsProvider supplies custom world-space bounds
// ok false falls back to the body's own bounds resolution
type BoundsProvider interface {
	CollisionBounds() (vmath.Bounds, bool)
}

// Disposable releases presentation resources when the world drops a destroyed entity
type Disposable interface {
	Dispose()
}

// Hostile marks an entity as enemy to the player
type Hostile interface {
	IsHostile() bool
}

// Bountied reports the credit reward for destroying the entity
type Bountied interface {
	Bounty() int
}

// StatusReceiver accepts status effects carried by projectiles
type StatusReceiver interface {
	ApplyStatus(effect string)
}

// Geometry is local collision shape data, box half extents around Offset
// A geometry with zero extents takes the union of its children
type Geometry struct {
	HalfExtents vmath.Vec3
	Offset      vmath.Vec3
	Children    []Geometry
}

func (g *Geometry) localBox() (vmath.Bounds, bool) {
	if g.HalfExtents != (vmath.Vec3{}) {
		return vmath.BoxFromCenter(g.Offset, g.HalfExtents), true
	}

	var (
		out   vmath.Bounds
		found bool
	)
	for i := range g.Children {
		cb, ok := g.Children[i].localBox()
		if !ok {
			continue
		}
		cb = cb.Translate(g.Offset)
		if !found {
			out, found = cb, true
			continue
		}
		out = out.Union(cb)
	}
	return out, found
}

type boundsKey struct {
	position vmath.Vec3
	scale    float64
}

// membership tracks a body's slot in a world
type membership struct {
	world  *World
	handle core.Handle
	member bool // Resolvable by handle
	listed bool // Present in the iteration slice, cleared by compaction
}

// Body is the physics state embedded by every simulated entity
type Body struct {
	core.Kinetic

	Mass     float64
	Group    CollisionGroup
	Static   bool // Immovable, never integrated or pushed
	Radius   float64
	Scale    float64 // Geometry scale, 0 means 1
	Geometry *Geometry

	membership

	cacheKey   boundsKey
	cached     vmath.Bounds
	cacheValid bool
}

// NewBody creates a dynamic body at pos with default mass and radius
func NewBody(pos vmath.Vec3, group CollisionGroup) Body {
	return Body{
		Kinetic: core.Kinetic{Position: pos},
		Mass:    parameter.DefaultMass,
		Group:   group,
		Radius:  parameter.DefaultCollisionRadius,
		Scale:   1,
	}
}

// PhysicsBody lets *Body and any struct embedding Body satisfy Collidable
func (b *Body) PhysicsBody() *Body {
	return b
}

// Handle returns the body's handle in its world, Nil if never added
func (b *Body) Handle() core.Handle {
	if !b.member {
		return core.Nil
	}
	return b.handle
}

// InWorld reports whether the body is currently registered
func (b *Body) InWorld() bool {
	return b.member
}

// Bounds resolves world-space bounds from geometry or the default sphere
// The result is cached until position or scale changes
func (b *Body) Bounds() vmath.Bounds {
	key := boundsKey{position: b.Position, scale: b.scale()}
	if b.cacheValid && b.cacheKey == key {
		return b.cached
	}

	b.cached = b.computeBounds()
	b.cacheKey = key
	b.cacheValid = true
	return b.cached
}

// InvalidateBounds drops the cache after geometry mutation
func (b *Body) InvalidateBounds() {
	b.cacheValid = false
}

func (b *Body) computeBounds() vmath.Bounds {
	s := b.scale()
	if b.Geometry != nil {
		if box, ok := b.Geometry.localBox(); ok {
			return box.Scale(s).Translate(b.Position)
		}
	}

	r := b.Radius
	if r <= 0 {
		r = parameter.DefaultCollisionRadius
	}
	return vmath.NewSphere(b.Position, r*s)
}

func (b *Body) scale() float64 {
	if b.Scale == 0 {
		return 1
	}
	return b.Scale
}

// ResolveBounds applies the custom provider first, then the body's own bounds
// ok is false when the body has no usable position
func ResolveBounds(c Collidable) (vmath.Bounds, bool) {
	b := c.PhysicsBody()
	if b == nil || !vmath.IsFinite(b.Position) {
		return vmath.Bounds{}, false
	}
	if p, ok := c.(BoundsProvider); ok {
		if bb, ok := p.CollisionBounds(); ok {
			return bb, true
		}
	}
	return b.Bounds(), true
}

// SizeOf returns the bounding sphere radius used for effect scaling
func SizeOf(c Collidable) float64 {
	bb, ok := ResolveBounds(c)
	if !ok {
		return 0
	}
	_, r := bb.BoundingSphere()
	return r
}
