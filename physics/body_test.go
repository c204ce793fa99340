package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/vmath"
)

func nanValue() float64 { return math.NaN() }

type customBounds struct {
	Body
	bounds vmath.Bounds
	ok     bool
}

func (c *customBounds) CollisionBounds() (vmath.Bounds, bool) { return c.bounds, c.ok }

func TestResolveBounds_DefaultSphere(t *testing.T) {
	b := &Body{}
	b.Position = vmath.Vec3{1, 2, 3}

	bb, ok := ResolveBounds(b)
	require.True(t, ok)
	assert.Equal(t, vmath.ShapeSphere, bb.Shape)
	assert.Equal(t, 1.0, bb.Radius, "radius falls back to 1")
	assert.Equal(t, vmath.Vec3{1, 2, 3}, bb.Center)
}

func TestResolveBounds_GeometryBox(t *testing.T) {
	b := NewBody(vmath.Vec3{10, 0, 0}, GroupSpacecraft)
	b.Scale = 2
	b.Geometry = &Geometry{HalfExtents: vmath.Vec3{1, 2, 3}}

	bb, ok := ResolveBounds(&b)
	require.True(t, ok)
	assert.Equal(t, vmath.ShapeBox, bb.Shape)
	assert.Equal(t, vmath.Vec3{8, -4, -6}, bb.Min)
	assert.Equal(t, vmath.Vec3{12, 4, 6}, bb.Max)
}

func TestResolveBounds_ChildUnion(t *testing.T) {
	b := NewBody(vmath.Vec3{}, GroupSpacecraft)
	b.Geometry = &Geometry{Children: []Geometry{
		{HalfExtents: vmath.Vec3{1, 1, 1}, Offset: vmath.Vec3{-3, 0, 0}},
		{HalfExtents: vmath.Vec3{1, 1, 1}, Offset: vmath.Vec3{3, 0, 0}},
	}}

	bb, ok := ResolveBounds(&b)
	require.True(t, ok)
	assert.Equal(t, vmath.Vec3{-4, -1, -1}, bb.Min)
	assert.Equal(t, vmath.Vec3{4, 1, 1}, bb.Max)
}

func TestResolveBounds_CustomProviderWins(t *testing.T) {
	c := &customBounds{Body: NewBody(vmath.Vec3{}, GroupSpacecraft), bounds: vmath.NewSphere(vmath.Vec3{5, 5, 5}, 9), ok: true}

	bb, ok := ResolveBounds(c)
	require.True(t, ok)
	assert.Equal(t, 9.0, bb.Radius)

	c.ok = false
	bb, _ = ResolveBounds(c)
	assert.Equal(t, 1.0, bb.Radius, "declined provider falls back to body bounds")
}

func TestResolveBounds_CacheFollowsPosition(t *testing.T) {
	b := NewBody(vmath.Vec3{}, GroupSpacecraft)
	b.Geometry = &Geometry{HalfExtents: vmath.Vec3{1, 1, 1}}

	first := b.Bounds()
	b.Position = vmath.Vec3{5, 0, 0}
	moved := b.Bounds()
	assert.NotEqual(t, first, moved)
	assert.Equal(t, vmath.Vec3{4, -1, -1}, moved.Min)

	b.Geometry.HalfExtents = vmath.Vec3{2, 2, 2}
	assert.Equal(t, moved, b.Bounds(), "geometry edits need explicit invalidation")
	b.InvalidateBounds()
	assert.Equal(t, vmath.Vec3{3, -2, -2}, b.Bounds().Min)
}

func TestResolveBounds_InvalidPosition(t *testing.T) {
	b := &Body{}
	b.Position = vmath.Vec3{math.Inf(1), 0, 0}
	_, ok := ResolveBounds(b)
	assert.False(t, ok)

	var nilBody *Body
	_, ok = ResolveBounds(nilBody)
	assert.False(t, ok)
}

func TestCollisionGroups(t *testing.T) {
	assert.True(t, CanCollide(MaskSpacecraft, MaskAlien))
	assert.False(t, CanCollide(GroupAlien, GroupPlanet))
	assert.False(t, CanCollide(MaskPlayerProjectile, GroupSpacecraft))
	assert.True(t, CanCollide(MaskPlayerProjectile, MaskAlien))
	assert.False(t, CanCollide(MaskHostileProjectile, GroupAlien))
	assert.True(t, CanCollide(MaskHostileProjectile, MaskSpacecraft))
	// Ship masks share bits, only the faction check separates these
	assert.True(t, CanCollide(MaskPlayerProjectile, MaskSpacecraft))
	assert.True(t, CanCollide(MaskHostileProjectile, MaskAlien))
	assert.Equal(t, MaskHostileProjectile, ProjectileGroupFor(true))
	assert.Equal(t, "spacecraft|planet", (GroupSpacecraft | GroupPlanet).String())
	assert.Equal(t, "none", GroupNone.String())
}
