package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/event"
	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/status"
	"github.com/lixenwraith/starfall/vmath"
)

type testShooter struct {
	physics.Body
	arm     *Armament
	hostile bool
}

func (s *testShooter) Armament() *Armament { return s.arm }
func (s *testShooter) IsHostile() bool     { return s.hostile }

func newShooter(pos vmath.Vec3, energy float64, hostile bool) *testShooter {
	group := physics.MaskSpacecraft
	if hostile {
		group = physics.MaskAlien
	}
	s := &testShooter{Body: physics.NewBody(pos, group), arm: NewArmament(100, 0), hostile: hostile}
	s.arm.Energy = energy
	return s
}

type fixture struct {
	world    *physics.World
	resolver *Resolver
	queue    *event.EventQueue
	scene    *scene.Recorder
	status   *status.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	q := event.NewEventQueue()
	rec := scene.NewRecorder()
	reg := status.NewRegistry()

	wopts := physics.DefaultOptions()
	wopts.Events = q
	wopts.Scene = rec
	world := physics.NewWorld(wopts)

	opts := DefaultOptions()
	opts.Events = q
	opts.Scene = rec
	opts.Status = reg
	return &fixture{
		world:    world,
		resolver: NewResolver(world, opts),
		queue:    q,
		scene:    rec,
		status:   reg,
	}
}

func countEvents(events []event.GameEvent, et event.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == et {
			n++
		}
	}
	return n
}

func TestFireWeapon_LaserCooldownScenario(t *testing.T) {
	f := newFixture(t)
	player := newShooter(vmath.Vec3{}, 10, false)
	f.world.AddBody(player)
	f.resolver.SetPlayer(player)

	forward := vmath.Vec3{0, 0, 1}

	res := f.resolver.FireWeapon(player, "laser", forward)
	require.True(t, res.Fired)
	assert.Len(t, res.Projectiles, 1)
	assert.Equal(t, 5.0, player.arm.Energy)
	assert.Equal(t, 0.2, player.arm.Cooldown("laser"))

	f.resolver.Update(0.05)

	res = f.resolver.FireWeapon(player, "laser", forward)
	assert.False(t, res.Fired)
	assert.Equal(t, RejectCooldown, res.Reason)
	assert.Equal(t, 5.0, player.arm.Energy, "rejection leaves energy untouched")

	events := f.queue.Consume()
	assert.Equal(t, 1, countEvents(events, event.EventWeaponFired))
	assert.Equal(t, 1, countEvents(events, event.EventFireRejected))
	assert.Equal(t, 1, countEvents(events, event.EventNotification))

	f.resolver.Update(0.2)
	res = f.resolver.FireWeapon(player, "laser", forward)
	require.True(t, res.Fired)
	assert.Equal(t, 0.0, player.arm.Energy)

	f.resolver.Update(0.25)
	res = f.resolver.FireWeapon(player, "laser", forward)
	assert.Equal(t, RejectEnergy, res.Reason)

	assert.Equal(t, int64(2), f.status.Ints.Get("combat.fired").Load())
	assert.Equal(t, int64(2), f.status.Ints.Get("combat.rejected").Load())
}

func TestFireWeapon_Rejections(t *testing.T) {
	f := newFixture(t)
	player := newShooter(vmath.Vec3{}, 100, false)
	alien := newShooter(vmath.Vec3{50, 0, 0}, 100, true)
	f.world.AddBody(player)
	f.world.AddBody(alien)
	f.resolver.SetPlayer(player)

	assert.Equal(t, RejectUnknownWeapon, f.resolver.FireWeapon(player, "banana", vmath.Vec3{1, 0, 0}).Reason)
	assert.Equal(t, RejectNoDirection, f.resolver.FireWeapon(player, "laser", vmath.Vec3{}).Reason)
	assert.Equal(t, RejectInvalidSource, f.resolver.FireWeapon(nil, "laser", vmath.Vec3{1, 0, 0}).Reason)
	assert.Equal(t, 100.0, player.arm.Energy)
	assert.True(t, player.arm.Ready("laser"))

	f.queue.Consume()
	alien.arm.Energy = 0
	assert.Equal(t, RejectEnergy, f.resolver.FireWeapon(alien, "plasma", vmath.Vec3{-1, 0, 0}).Reason)
	assert.Zero(t, f.queue.Len(), "hostile rejections are silent")
}

func TestFireWeapon_SpreadFan(t *testing.T) {
	f := newFixture(t)
	player := newShooter(vmath.Vec3{}, 100, false)
	f.world.AddBody(player)
	f.resolver.SetPlayer(player)

	w, _ := f.resolver.Arsenal().Get("spread")
	res := f.resolver.FireWeapon(player, "spread", vmath.Vec3{0, 0, 1})
	require.True(t, res.Fired)
	require.Len(t, res.Projectiles, w.ProjectileCount)
	assert.Equal(t, w.ProjectileCount, f.world.ProjectileCount())

	first := vmath.Normalize(res.Projectiles[0].Velocity)
	last := vmath.Normalize(res.Projectiles[len(res.Projectiles)-1].Velocity)
	middle := vmath.Normalize(res.Projectiles[len(res.Projectiles)/2].Velocity)

	assert.InDelta(t, w.Spread, math.Acos(first.Dot(last)), 1e-9)
	assert.InDelta(t, 1.0, middle[2], 1e-9, "center shot flies straight")

	for _, p := range res.Projectiles {
		assert.InDelta(t, w.Speed, p.Velocity.Len(), 1e-9)
		assert.Equal(t, physics.MaskPlayerProjectile, p.Group)
		assert.Equal(t, player.Handle(), p.Owner)
		assert.False(t, p.Hostile)
		assert.NotZero(t, p.Visual)
	}
	assert.NotEqual(t, res.Projectiles[0].Position, res.Projectiles[1].Position, "fan members are offset")
}

func TestFireWeapon_HostileProjectileGroup(t *testing.T) {
	f := newFixture(t)
	alien := newShooter(vmath.Vec3{}, 100, true)
	f.world.AddBody(alien)

	res := f.resolver.FireWeapon(alien, "plasma", vmath.Vec3{1, 0, 0})
	require.True(t, res.Fired)
	p := res.Projectiles[0]
	assert.Equal(t, physics.MaskHostileProjectile, p.Group)
	assert.True(t, p.Hostile)
	assert.Equal(t, 88.0, alien.arm.Energy)
}

func TestFireWeapon_HomingBindsCurrentTarget(t *testing.T) {
	f := newFixture(t)
	player := newShooter(vmath.Vec3{}, 100, false)
	alien := newShooter(vmath.Vec3{0, 0, 200}, 100, true)
	f.world.AddBody(player)
	f.world.AddBody(alien)
	f.resolver.SetPlayer(player)

	res := f.resolver.FireWeapon(player, "missile", vmath.Vec3{0, 0, 1})
	require.True(t, res.Fired)
	assert.True(t, res.Projectiles[0].Target.IsNil(), "nothing selected yet")

	f.resolver.UpdateTargets()
	_, ok := f.resolver.CycleTarget()
	require.True(t, ok)

	player.arm.ResetCooldowns()
	res = f.resolver.FireWeapon(player, "missile", vmath.Vec3{0, 0, 1})
	require.True(t, res.Fired)
	assert.Equal(t, alien.Handle(), res.Projectiles[0].Target)
	assert.Greater(t, res.Projectiles[0].Homing.Strength, 0.0)
}

func TestTargeting_SortCycleAndClamp(t *testing.T) {
	f := newFixture(t)
	player := newShooter(vmath.Vec3{}, 100, false)
	near := newShooter(vmath.Vec3{100, 0, 0}, 0, true)
	mid := newShooter(vmath.Vec3{0, 300, 0}, 0, true)
	far := newShooter(vmath.Vec3{0, 0, 2000}, 0, true)
	friendly := newShooter(vmath.Vec3{10, 0, 0}, 0, false)
	for _, s := range []*testShooter{player, mid, far, near, friendly} {
		f.world.AddBody(s)
	}
	f.resolver.SetPlayer(player)

	f.resolver.UpdateTargets()
	targets := f.resolver.Targets()
	require.Len(t, targets, 2)
	assert.Equal(t, near.Handle(), targets[0].Entity)
	assert.InDelta(t, 100.0, targets[0].Distance, 1e-9)
	assert.Equal(t, mid.Handle(), targets[1].Entity)

	_, ok := f.resolver.CurrentTarget()
	assert.False(t, ok)

	tg, _ := f.resolver.CycleTarget()
	assert.Equal(t, near.Handle(), tg.Entity)
	tg, _ = f.resolver.CycleTarget()
	assert.Equal(t, mid.Handle(), tg.Entity)
	tg, _ = f.resolver.CycleTarget()
	assert.Equal(t, near.Handle(), tg.Entity, "wraps around")

	// Selection follows the entity when the order changes
	near.Position = vmath.Vec3{500, 0, 0}
	f.resolver.UpdateTargets()
	tg, _ = f.resolver.CurrentTarget()
	assert.Equal(t, near.Handle(), tg.Entity)
	assert.Equal(t, 1, f.resolver.targets.index)

	// Selected target gone: index clamps into the shorter list
	f.world.RemoveBody(near)
	f.resolver.UpdateTargets()
	tg, ok = f.resolver.CurrentTarget()
	require.True(t, ok)
	assert.Equal(t, mid.Handle(), tg.Entity)

	f.world.RemoveBody(mid)
	f.queue.Consume()
	f.resolver.UpdateTargets()
	_, ok = f.resolver.CurrentTarget()
	assert.False(t, ok, "empty list resets selection")
	assert.Equal(t, 1, countEvents(f.queue.Consume(), event.EventTargetChanged))

	_, ok = f.resolver.CycleTarget()
	assert.False(t, ok)
}

func TestReset_KeepsCooldownsAndEffects(t *testing.T) {
	f := newFixture(t)
	player := newShooter(vmath.Vec3{}, 100, false)
	alien := newShooter(vmath.Vec3{10, 0, 0}, 0, true)
	f.world.AddBody(player)
	f.world.AddBody(alien)
	f.resolver.SetPlayer(player)

	f.resolver.UpdateTargets()
	f.resolver.CycleTarget()
	f.resolver.FireWeapon(player, "laser", vmath.Vec3{1, 0, 0})
	f.resolver.CreateExplosion(vmath.Vec3{}, 3)

	f.resolver.Reset()

	_, ok := f.resolver.CurrentTarget()
	assert.False(t, ok)
	assert.Empty(t, f.resolver.Targets())
	assert.False(t, player.arm.Ready("laser"))
	assert.Equal(t, 1, f.resolver.Explosions().Active())
}

func TestHandleEvent_SpawnsEffects(t *testing.T) {
	f := newFixture(t)
	router := event.NewRouter(f.queue)
	router.Register(f.resolver)

	f.queue.Emit(event.EventProjectileImpact, &event.ProjectileImpactPayload{Position: vmath.Vec3{1, 2, 3}, Size: 0.5})
	f.queue.Emit(event.EventEntityDestroyed, &event.EntityDestroyedPayload{Position: vmath.Vec3{4, 5, 6}, Size: 2})
	router.DispatchAll()

	assert.Equal(t, 1, f.resolver.Impacts().Active())
	assert.Equal(t, 1, f.resolver.Explosions().Active())
}

func TestUpdate_DropsDeadShootersAndRegenerates(t *testing.T) {
	f := newFixture(t)
	player := newShooter(vmath.Vec3{}, 50, false)
	player.arm.RegenRate = 10
	alien := newShooter(vmath.Vec3{10, 0, 0}, 0, true)
	alien.arm.RegenRate = 10
	f.world.AddBody(player)
	f.world.AddBody(alien)
	f.resolver.SetPlayer(player)
	f.resolver.RegisterShooter(alien)
	f.resolver.RegisterShooter(alien)

	f.resolver.Update(1)
	assert.Equal(t, 60.0, player.arm.Energy)
	assert.Equal(t, 10.0, alien.arm.Energy)

	f.world.RemoveBody(alien)
	f.resolver.Update(1)
	assert.Equal(t, 10.0, alien.arm.Energy, "removed shooters stop ticking")
	assert.Len(t, f.resolver.shooters, 1)
}
