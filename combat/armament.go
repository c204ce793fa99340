package combat

import (
	"github.com/lixenwraith/starfall/physics"
)

// Status effects carried by projectiles
const (
	StatusEMP = "emp"
)

// Shooter is any body that can fire weapons
type Shooter interface {
	physics.Collidable
	Armament() *Armament
	IsHostile() bool
}

// Armament holds a shooter's energy pool and per-weapon cooldowns
type Armament struct {
	Energy    float64
	MaxEnergy float64
	RegenRate float64 // Energy per second

	cooldowns map[string]float64
}

func NewArmament(maxEnergy, regenRate float64) *Armament {
	return &Armament{
		Energy:    maxEnergy,
		MaxEnergy: maxEnergy,
		RegenRate: regenRate,
		cooldowns: make(map[string]float64),
	}
}

// Cooldown returns remaining seconds for weapon id, values <= 0 mean ready
func (a *Armament) Cooldown(id string) float64 {
	return a.cooldowns[id]
}

// Ready reports whether weapon id is off cooldown
func (a *Armament) Ready(id string) bool {
	return a.cooldowns[id] <= 0
}

// CanAfford reports whether the pool covers cost
func (a *Armament) CanAfford(cost float64) bool {
	return a.Energy >= cost
}

// EnergyRatio returns Energy/MaxEnergy in [0,1]
func (a *Armament) EnergyRatio() float64 {
	if a.MaxEnergy <= 0 {
		return 0
	}
	return a.Energy / a.MaxEnergy
}

// Tick decrements cooldowns and regenerates energy
func (a *Armament) Tick(dt float64) {
	for id, cd := range a.cooldowns {
		if cd > 0 {
			a.cooldowns[id] = cd - dt
		}
	}
	if a.RegenRate > 0 && a.Energy < a.MaxEnergy {
		a.Energy += a.RegenRate * dt
		if a.Energy > a.MaxEnergy {
			a.Energy = a.MaxEnergy
		}
	}
}

// ResetCooldowns clears every cooldown
func (a *Armament) ResetCooldowns() {
	clear(a.cooldowns)
}

func (a *Armament) commit(w *WeaponType) {
	if a.cooldowns == nil {
		a.cooldowns = make(map[string]float64)
	}
	a.cooldowns[w.ID] = w.Cooldown
	a.Energy -= w.EnergyCost
}
