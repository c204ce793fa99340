package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/vmath"
)

func TestEffectPool_Lifecycle(t *testing.T) {
	rec := scene.NewRecorder()
	pool := NewEffectPool(2, EffectProfile{Kind: scene.KindExplosion, Lifetime: 1, Growth: 3, MaxIntensity: 5}, rec)

	require.Equal(t, 2, rec.Live(), "visuals are pre-attached")
	for _, n := range rec.Nodes() {
		assert.False(t, n.Visible)
	}

	assert.True(t, pool.Spawn(vmath.Vec3{1, 0, 0}, 2))
	assert.True(t, pool.Spawn(vmath.Vec3{2, 0, 0}, 2))
	assert.False(t, pool.Spawn(vmath.Vec3{3, 0, 0}, 2), "full pool drops the request")
	assert.Equal(t, 1, pool.Dropped())
	assert.Equal(t, 2, pool.Active())

	pool.Update(0.5)
	pool.Each(func(e *Effect) {
		assert.InDelta(t, 0.5, e.Progress(), 1e-9)
		assert.InDelta(t, 5.0, e.Scale, 1e-9)
		assert.InDelta(t, 0.5, e.Opacity, 1e-9)
		assert.InDelta(t, 2.5, e.Intensity, 1e-9)

		node, ok := rec.Node(e.Visual)
		require.True(t, ok)
		assert.True(t, node.Visible)
		assert.InDelta(t, 5.0, node.Scale, 1e-9)
	})

	pool.Update(0.6)
	assert.Zero(t, pool.Active())
	for _, n := range rec.Nodes() {
		assert.False(t, n.Visible, "expired slots are hidden")
	}

	assert.True(t, pool.Spawn(vmath.Vec3{}, 1), "released slots are reused")
	pool.Clear()
	assert.Zero(t, pool.Active())

	pool.Close()
	assert.Zero(t, rec.Live())
	assert.Zero(t, pool.Cap())
}

func TestEffectPool_FreeSlotsRecycle(t *testing.T) {
	rec := scene.NewRecorder()
	pool := NewEffectPool(3, EffectProfile{Kind: scene.KindExplosion, Lifetime: 1}, rec)

	for round := 0; round < 5; round++ {
		for i := 0; i < 3; i++ {
			require.True(t, pool.Spawn(vmath.Vec3{float64(i), 0, 0}, 1), "round %d slot %d", round, i)
		}
		require.False(t, pool.Spawn(vmath.Vec3{}, 1))
		assert.Equal(t, 3, pool.Active())
		pool.Update(1)
		assert.Zero(t, pool.Active())
	}
	assert.Equal(t, 5, pool.Dropped())

	// Slots expire out of spawn order, the freed one is handed out again
	require.True(t, pool.Spawn(vmath.Vec3{}, 1))
	pool.Update(0.5)
	require.True(t, pool.Spawn(vmath.Vec3{}, 1))
	require.True(t, pool.Spawn(vmath.Vec3{}, 1))
	pool.Update(0.6)
	assert.Equal(t, 2, pool.Active(), "only the oldest slot expired")

	require.True(t, pool.Spawn(vmath.Vec3{}, 1))
	assert.False(t, pool.Spawn(vmath.Vec3{}, 1))
	assert.Equal(t, 6, pool.Dropped())

	pool.Clear()
	seen := map[scene.Visual]bool{}
	for i := 0; i < 3; i++ {
		require.True(t, pool.Spawn(vmath.Vec3{}, 1))
	}
	pool.Each(func(e *Effect) { seen[e.Visual] = true })
	assert.Len(t, seen, 3, "each spawn takes a distinct slot")
}

func TestArmament_Tick(t *testing.T) {
	arm := NewArmament(20, 5)
	w := &WeaponType{ID: "laser", Cooldown: 0.2, EnergyCost: 15}

	require.True(t, arm.CanAfford(w.EnergyCost))
	arm.commit(w)
	assert.Equal(t, 5.0, arm.Energy)
	assert.False(t, arm.Ready("laser"))

	arm.Tick(0.1)
	assert.False(t, arm.Ready("laser"))
	assert.InDelta(t, 5.5, arm.Energy, 1e-9)

	arm.Tick(0.1)
	assert.True(t, arm.Ready("laser"))

	arm.Tick(10)
	assert.Equal(t, 20.0, arm.Energy, "regen caps at max")
	assert.Equal(t, 1.0, arm.EnergyRatio())
}

func TestArsenal(t *testing.T) {
	a := DefaultArsenal()
	assert.Equal(t, []string{"emp", "laser", "missile", "plasma", "railgun", "spread"}, a.IDs())

	laser, ok := a.Get("laser")
	require.True(t, ok)
	assert.Equal(t, 0.2, laser.Cooldown)
	assert.Equal(t, 5.0, laser.EnergyCost)

	require.NoError(t, a.ApplyOverrides(map[string]Override{"laser": {Damage: 12}}))
	assert.Equal(t, 12.0, laser.Damage)
	assert.Equal(t, 0.2, laser.Cooldown, "zero fields are left alone")

	assert.Error(t, a.ApplyOverrides(map[string]Override{"nope": {Damage: 1}}))

	a.Define(&WeaponType{ID: "pea"})
	pea, _ := a.Get("pea")
	assert.Equal(t, 1, pea.ProjectileCount)

	e, err := ParseEffectType("missile")
	require.NoError(t, err)
	assert.Equal(t, EffectMissile, e)
	_, err = ParseEffectType("nope")
	assert.Error(t, err)
}
