// Package engine runs the simulation core one frame at a time and drives it on a fixed tick
package engine

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/combat"
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/entity"
	"github.com/lixenwraith/starfall/event"
	"github.com/lixenwraith/starfall/input"
	"github.com/lixenwraith/starfall/lod"
	"github.com/lixenwraith/starfall/observability"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/status"
	"github.com/lixenwraith/starfall/upgrade"
	"github.com/lixenwraith/starfall/vmath"
)

// ErrNoPlayer is returned by operations that need a spawned player ship
var ErrNoPlayer = errors.New("no player ship")

// Simulation owns every component and advances them in fixed order:
// input, hostile AI, physics, dispatch, combat, dispatch, level of detail
//
// Single-threaded: all methods must be called from the goroutine running Step
type Simulation struct {
	queue  *event.EventQueue
	router *event.Router

	world  *physics.World
	combat *combat.Resolver
	lod    *lod.Scheduler
	ledger *upgrade.Ledger

	loadout      *upgrade.Loadout
	player       *entity.Spacecraft
	playerHandle core.Handle
	aliens       []*entity.Alien
	managed      map[core.Handle]lod.Managed

	alienBounty     int
	satelliteBounty int

	scene   scene.Scene
	metrics *observability.SimCollector
	frame   int64
	hud     hudState
	log     zerolog.Logger

	statFrames *atomic.Int64
	statFrame  *status.AtomicFloat
	statPeak   *status.AtomicFloat
}

// NewSimulation builds a world with no entities
func NewSimulation(opts Options) *Simulation {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "engine").Logger()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	sc := scene.OrDiscard(opts.Scene)
	queue := event.NewEventQueue()

	s := &Simulation{
		queue:           queue,
		router:          event.NewRouter(queue),
		managed:         make(map[core.Handle]lod.Managed),
		alienBounty:     opts.AlienBounty,
		satelliteBounty: opts.SatelliteBounty,
		scene:           sc,
		metrics:         opts.Metrics,
		log:             log,
		statFrames:      reg.Ints.Get("engine.frames"),
		statFrame:       reg.Floats.Get("engine.frame_seconds"),
		statPeak:        reg.Floats.Get("engine.frame_seconds_peak"),
	}

	po := opts.Physics
	po.Scene, po.Events, po.Logger = sc, queue, opts.Logger
	s.world = physics.NewWorld(po)

	co := opts.Combat
	co.Scene, co.Events, co.Status, co.Logger = sc, queue, reg, opts.Logger
	s.combat = combat.NewResolver(s.world, co)

	lo := opts.LOD
	lo.Status, lo.Logger = reg, opts.Logger
	s.lod = lod.NewScheduler(lod.ViewpointFunc(s.viewPosition), lo)
	s.lod.SetGlobalEnabled(opts.LODEnabled)

	catalog := opts.Catalog
	if catalog == nil {
		catalog = upgrade.DefaultCatalog()
	}
	s.loadout = &upgrade.Loadout{Arsenal: s.combat.Arsenal()}
	uo := opts.Ledger
	uo.Events, uo.Status, uo.Logger = queue, reg, opts.Logger
	s.ledger = upgrade.NewLedger(catalog, s.loadout, uo)

	s.router.Register(s.combat)
	s.router.Register(s)
	return s
}

func (s *Simulation) World() *physics.World      { return s.world }
func (s *Simulation) Combat() *combat.Resolver   { return s.combat }
func (s *Simulation) LOD() *lod.Scheduler        { return s.lod }
func (s *Simulation) Ledger() *upgrade.Ledger    { return s.ledger }
func (s *Simulation) Player() *entity.Spacecraft { return s.player }
func (s *Simulation) Events() *event.EventQueue  { return s.queue }
func (s *Simulation) Frame() int64               { return s.frame }

// AddHandler routes events to h in addition to the built-in handlers
func (s *Simulation) AddHandler(h event.Handler) {
	s.router.Register(h)
}

// Aliens returns live hostiles
func (s *Simulation) Aliens() []*entity.Alien {
	out := make([]*entity.Alien, 0, len(s.aliens))
	for _, a := range s.aliens {
		if a.InWorld() {
			out = append(out, a)
		}
	}
	return out
}

func (s *Simulation) viewPosition() vmath.Vec3 {
	if s.player == nil {
		return vmath.Vec3{}
	}
	return s.player.Position
}

// SpawnPlayer creates the player ship, replacing any previous one
func (s *Simulation) SpawnPlayer(pos vmath.Vec3) *entity.Spacecraft {
	if s.player != nil {
		s.despawn(s.player)
	}
	ship := entity.NewSpacecraft(pos, s.scene)
	s.world.AddBody(ship)
	s.player = ship
	s.playerHandle = ship.Handle()
	s.loadout.Ship = ship
	s.combat.SetPlayer(ship)
	s.manage(ship.Handle(), ship)
	return ship
}

// SpawnAlien adds a hostile fighter that hunts the player
func (s *Simulation) SpawnAlien(pos vmath.Vec3) *entity.Alien {
	a := entity.NewAlien(pos, s.scene)
	a.SetBounty(s.alienBounty)
	s.world.AddBody(a)
	s.combat.RegisterShooter(a)
	s.aliens = append(s.aliens, a)
	s.manage(a.Handle(), a)
	return a
}

// SpawnPlanet adds a solid planet with a gravity well
func (s *Simulation) SpawnPlanet(pos vmath.Vec3, radius, gravityRadius, gravityFactor float64) *entity.PlanetBody {
	p := entity.NewPlanet(pos, radius, gravityRadius, gravityFactor, s.scene)
	s.world.AddBody(p)
	s.world.AddPlanet(p.Well)
	s.manage(p.Handle(), p)
	return p
}

// SpawnSatellite puts a satellite in circular orbit around planet
func (s *Simulation) SpawnSatellite(planet *entity.PlanetBody, radius, phase float64, axis vmath.Vec3) *entity.Satellite {
	sat := entity.NewSatellite(planet.Well, radius, phase, axis, s.scene)
	sat.SetBounty(s.satelliteBounty)
	s.world.AddBody(sat)
	s.manage(sat.Handle(), sat)
	return sat
}

func (s *Simulation) manage(h core.Handle, m lod.Managed) {
	s.managed[h] = m
	s.lod.Register(m)
}

// despawn removes a body that was not destroyed by damage
func (s *Simulation) despawn(c physics.Collidable) {
	h := c.PhysicsBody().Handle()
	if m, ok := s.managed[h]; ok {
		s.lod.Unregister(m)
		delete(s.managed, h)
	}
	if sh, ok := c.(combat.Shooter); ok {
		s.combat.UnregisterShooter(sh)
	}
	s.world.RemoveBody(c)
	if d, ok := c.(physics.Disposable); ok {
		d.Dispose()
	}
}

// Step advances one frame, in may be nil; in is cleared before returning
func (s *Simulation) Step(dt float64, in *input.State) {
	start := time.Now()
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	if dt < 0 || dt != dt {
		dt = 0
	}

	s.frame++
	s.queue.SetFrame(s.frame)

	if in != nil {
		s.applyInput(in)
		in.Clear()
	}
	s.think()

	s.world.Update(dt)
	s.router.DispatchAll()

	s.combat.Update(dt)
	s.router.DispatchAll()

	s.lod.Update(dt)

	s.hud.age(dt)
	elapsed := time.Since(start)
	s.statFrames.Add(1)
	s.statFrame.Set(elapsed.Seconds())
	s.statPeak.SetMax(elapsed.Seconds())
	s.metrics.ObserveFrame(elapsed, s.world.Stats())
}

func (s *Simulation) applyInput(in *input.State) {
	if in.Reset {
		s.Reset()
	}
	if in.ToggleLOD {
		s.lod.SetGlobalEnabled(!s.lod.Enabled())
		s.notify("detail scaling "+onOff(s.lod.Enabled()), event.SeverityInfo, 0)
	}
	for _, id := range in.Purchase {
		if err := s.Purchase(id); err != nil {
			s.notify(err.Error(), event.SeverityWarning, 1)
		}
	}

	ship := s.player
	if ship == nil || !ship.Alive() {
		return
	}
	ship.SetControls(entity.Controls{
		Throttle: in.Throttle,
		Strafe:   in.Lateral,
		Yaw:      in.Yaw,
		Pitch:    in.Pitch,
	})
	if in.CycleTarget {
		s.combat.CycleTarget()
	}
	if in.FirePrimary {
		s.combat.FireWeapon(ship, ship.PrimaryWeapon, ship.Heading)
	}
	if in.FireSecondary {
		s.combat.FireWeapon(ship, ship.SecondaryWeapon, ship.Heading)
	}
}

// think points hostiles at the player and fires when they are lined up
func (s *Simulation) think() {
	live := s.aliens[:0]
	for _, a := range s.aliens {
		if a.InWorld() {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(s.aliens); i++ {
		s.aliens[i] = nil
	}
	s.aliens = live

	hunting := s.player != nil && s.player.InWorld() && s.player.Alive()
	for _, a := range s.aliens {
		if !hunting {
			a.Disengage()
			continue
		}
		a.Pursue(s.player.Position)
		if dir, ok := a.Aim(); ok {
			s.combat.FireWeapon(a, a.Weapon, dir)
		}
	}
}

// Purchase buys an upgrade for the player
func (s *Simulation) Purchase(id string) error {
	if s.player == nil {
		return ErrNoPlayer
	}
	return s.ledger.Purchase(id)
}

// Reset clears transient combat state through the event bus
func (s *Simulation) Reset() {
	s.queue.Emit(event.EventGameReset, nil)
	s.router.DispatchAll()
}

func (s *Simulation) notify(msg string, sev event.Severity, priority int) {
	s.queue.Emit(event.EventNotification, &event.NotificationPayload{
		Message:  msg,
		Severity: sev,
		Priority: priority,
	})
}

// EventTypes implements event.Handler
func (s *Simulation) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEntityDestroyed,
		event.EventNotification,
	}
}

// HandleEvent implements event.Handler
func (s *Simulation) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventEntityDestroyed:
		p, ok := ev.Payload.(*event.EntityDestroyedPayload)
		if !ok {
			return
		}
		if m, ok := s.managed[p.Entity]; ok {
			s.lod.Unregister(m)
			delete(s.managed, p.Entity)
		}
		if p.Entity == s.playerHandle && !p.Entity.IsNil() {
			s.notify("ship destroyed", event.SeverityCritical, 10)
			s.log.Info().Int64("frame", ev.Frame).Msg("player destroyed")
			return
		}
		if p.Bounty > 0 && !s.playerHandle.IsNil() && p.Killer == s.playerHandle {
			s.ledger.AddCredits(p.Bounty)
		}

	case event.EventNotification:
		if p, ok := ev.Payload.(*event.NotificationPayload); ok {
			s.hud.post(*p)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
