package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/combat"
	"github.com/lixenwraith/starfall/config"
	"github.com/lixenwraith/starfall/lod"
	"github.com/lixenwraith/starfall/observability"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/status"
	"github.com/lixenwraith/starfall/upgrade"
)

// Options wires the simulation components together
// Collaborator fields left nil fall back to no-op implementations
type Options struct {
	Physics physics.Options
	Combat  combat.Options
	LOD     lod.Options
	Ledger  upgrade.Options

	// LODEnabled starts the scheduler globally enabled
	LODEnabled bool

	Catalog *upgrade.Catalog

	AlienBounty     int
	SatelliteBounty int

	Scene   scene.Scene
	Status  *status.Registry
	Metrics *observability.SimCollector
	Logger  *zerolog.Logger
}

// DefaultOptions returns parameter tuning with the stock arsenal and catalog
func DefaultOptions() Options {
	return Options{
		Physics:         physics.DefaultOptions(),
		Combat:          combat.DefaultOptions(),
		LOD:             lod.DefaultOptions(),
		Ledger:          upgrade.Options{StartingCredits: parameter.StartingCredits},
		LODEnabled:      true,
		AlienBounty:     parameter.AlienBounty,
		SatelliteBounty: parameter.SatelliteBounty,
	}
}

// FromConfig applies loaded configuration on top of DefaultOptions
func FromConfig(cfg *config.Config) (Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}

	opts.Physics.Restitution = cfg.Physics.Restitution
	opts.Physics.StaticDamping = cfg.Physics.StaticDamping
	opts.Physics.DamageThreshold = cfg.Physics.DamageThreshold
	opts.Physics.DamageMultiplier = cfg.Physics.DamageMultiplier

	arsenal := combat.DefaultArsenal()
	if err := arsenal.ApplyOverrides(cfg.Weapons); err != nil {
		return opts, fmt.Errorf("weapons: %w", err)
	}
	opts.Combat.Arsenal = arsenal
	opts.Combat.MaxTargetingDistance = cfg.Combat.MaxTargetingDistance
	opts.Combat.ExplosionPoolSize = cfg.Combat.ExplosionPoolSize
	opts.Combat.ImpactPoolSize = cfg.Combat.ImpactPoolSize

	opts.LODEnabled = cfg.LOD.Enabled
	opts.LOD.Interval = cfg.LOD.Interval.Seconds()
	opts.LOD.MaxDistance = cfg.LOD.MaxDistance

	opts.Ledger.StartingCredits = cfg.Economy.StartingCredits
	opts.AlienBounty = cfg.Economy.AlienBounty
	opts.SatelliteBounty = cfg.Economy.SatelliteBounty

	return opts, nil
}
