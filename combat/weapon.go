package combat

import (
	"fmt"
	"sort"
)

// EffectType selects projectile presentation and audio cue
type EffectType uint8

const (
	EffectBeam EffectType = iota
	EffectEnergy
	EffectMissile
)

var effectNames = map[EffectType]string{
	EffectBeam:    "beam",
	EffectEnergy:  "energy",
	EffectMissile: "missile",
}

func (e EffectType) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return "unknown"
}

// ParseEffectType maps a config name to an EffectType
func ParseEffectType(name string) (EffectType, error) {
	for e, s := range effectNames {
		if s == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown effect type %q", name)
}

// WeaponType defines one weapon
// Upgrades mutate Damage, Cooldown and EnergyCost in place
type WeaponType struct {
	ID              string
	Name            string
	Damage          float64
	Speed           float64
	Cooldown        float64 // Seconds
	EnergyCost      float64
	Size            float64
	Lifespan        float64 // Seconds
	Effect          EffectType
	ProjectileCount int
	Spread          float64 // Radians across the whole fan
	Homing          bool
	HomingStrength  float64
	Acceleration    float64
	MaxSpeed        float64
	Penetrating     bool
	StatusEffect    string
}

// Arsenal is the weapon table shared by every shooter
type Arsenal struct {
	weapons map[string]*WeaponType
}

func NewArsenal() *Arsenal {
	return &Arsenal{weapons: make(map[string]*WeaponType)}
}

// DefaultArsenal returns the stock weapon table
func DefaultArsenal() *Arsenal {
	a := NewArsenal()
	for _, w := range defaultWeapons() {
		a.Define(w)
	}
	return a
}

func defaultWeapons() []*WeaponType {
	return []*WeaponType{
		{
			ID: "laser", Name: "Pulse Laser",
			Damage: 10, Speed: 400, Cooldown: 0.2, EnergyCost: 5,
			Size: 0.5, Lifespan: 2, Effect: EffectBeam, ProjectileCount: 1,
		},
		{
			ID: "plasma", Name: "Plasma Cannon",
			Damage: 25, Speed: 250, Cooldown: 0.6, EnergyCost: 12,
			Size: 1.2, Lifespan: 3, Effect: EffectEnergy, ProjectileCount: 1,
		},
		{
			ID: "spread", Name: "Scatter Array",
			Damage: 6, Speed: 350, Cooldown: 0.5, EnergyCost: 15,
			Size: 0.4, Lifespan: 1.5, Effect: EffectEnergy, ProjectileCount: 5, Spread: 0.5,
		},
		{
			ID: "missile", Name: "Seeker Missile",
			Damage: 40, Speed: 120, Cooldown: 1.5, EnergyCost: 25,
			Size: 1, Lifespan: 6, Effect: EffectMissile, ProjectileCount: 1,
			Homing: true, HomingStrength: 3, Acceleration: 80, MaxSpeed: 300,
		},
		{
			ID: "railgun", Name: "Railgun",
			Damage: 60, Speed: 900, Cooldown: 2.5, EnergyCost: 40,
			Size: 0.3, Lifespan: 1.2, Effect: EffectBeam, ProjectileCount: 1,
			Penetrating: true,
		},
		{
			ID: "emp", Name: "EMP Burst",
			Damage: 2, Speed: 200, Cooldown: 3, EnergyCost: 30,
			Size: 2, Lifespan: 1, Effect: EffectEnergy, ProjectileCount: 1,
			StatusEffect: StatusEMP,
		},
	}
}

// Define adds or replaces a weapon
func (a *Arsenal) Define(w *WeaponType) {
	if w.ProjectileCount < 1 {
		w.ProjectileCount = 1
	}
	a.weapons[w.ID] = w
}

// Get returns the live, mutable definition
func (a *Arsenal) Get(id string) (*WeaponType, bool) {
	w, ok := a.weapons[id]
	return w, ok
}

// IDs returns weapon ids in sorted order
func (a *Arsenal) IDs() []string {
	ids := make([]string, 0, len(a.weapons))
	for id := range a.weapons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of defined weapons
func (a *Arsenal) Len() int {
	return len(a.weapons)
}

// Override adjusts numeric fields of a defined weapon, zero fields are left alone
type Override struct {
	Damage     float64
	Speed      float64
	Cooldown   float64
	EnergyCost float64
	Lifespan   float64
}

// ApplyOverrides patches weapons by id, unknown ids are an error
func (a *Arsenal) ApplyOverrides(overrides map[string]Override) error {
	for id, o := range overrides {
		w, ok := a.weapons[id]
		if !ok {
			return fmt.Errorf("override for unknown weapon %q", id)
		}
		if o.Damage > 0 {
			w.Damage = o.Damage
		}
		if o.Speed > 0 {
			w.Speed = o.Speed
		}
		if o.Cooldown > 0 {
			w.Cooldown = o.Cooldown
		}
		if o.EnergyCost > 0 {
			w.EnergyCost = o.EnergyCost
		}
		if o.Lifespan > 0 {
			w.Lifespan = o.Lifespan
		}
	}
	return nil
}
