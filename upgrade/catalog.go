package upgrade

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/starfall/combat"
	"github.com/lixenwraith/starfall/entity"
)

// Category groups upgrades for display
type Category string

const (
	CategoryEngine Category = "engine"
	CategoryHull   Category = "hull"
	CategoryShield Category = "shield"
	CategoryEnergy Category = "energy"
	CategoryWeapon Category = "weapon"
)

// Loadout is what upgrades mutate: the player ship and the shared weapon table
type Loadout struct {
	Ship    *entity.Spacecraft
	Arsenal *combat.Arsenal
}

// Upgrade is one purchasable permanent improvement
type Upgrade struct {
	ID            string
	Name          string
	Category      Category
	Cost          int
	Prerequisites []string
	Apply         func(*Loadout)
}

// Catalog is a validated prerequisite DAG of upgrades
type Catalog struct {
	upgrades map[string]*Upgrade
	order    []string
}

// NewCatalog validates ids, prerequisites and acyclicity
func NewCatalog(upgrades ...*Upgrade) (*Catalog, error) {
	c := &Catalog{upgrades: make(map[string]*Upgrade, len(upgrades))}
	for _, u := range upgrades {
		if u.ID == "" {
			return nil, fmt.Errorf("upgrade with empty id")
		}
		if _, dup := c.upgrades[u.ID]; dup {
			return nil, fmt.Errorf("duplicate upgrade %q", u.ID)
		}
		if u.Cost < 0 {
			return nil, fmt.Errorf("upgrade %q has negative cost", u.ID)
		}
		c.upgrades[u.ID] = u
		c.order = append(c.order, u.ID)
	}

	for _, u := range upgrades {
		for _, pre := range u.Prerequisites {
			if _, ok := c.upgrades[pre]; !ok {
				return nil, fmt.Errorf("upgrade %q requires unknown %q", u.ID, pre)
			}
		}
	}

	if err := c.checkAcyclic(); err != nil {
		return nil, err
	}
	return c, nil
}

// checkAcyclic runs a three-color DFS over prerequisite edges
func (c *Catalog) checkAcyclic() error {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(c.upgrades))

	var visit func(id string) error
	visit = func(id string) error {
		switch color[id] {
		case grey:
			return fmt.Errorf("prerequisite cycle through %q", id)
		case black:
			return nil
		}
		color[id] = grey
		for _, pre := range c.upgrades[id].Prerequisites {
			if err := visit(pre); err != nil {
				return err
			}
		}
		color[id] = black
		return nil
	}

	for _, id := range c.order {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the upgrade by id
func (c *Catalog) Get(id string) (*Upgrade, bool) {
	u, ok := c.upgrades[id]
	return u, ok
}

// All returns upgrades in definition order
func (c *Catalog) All() []*Upgrade {
	out := make([]*Upgrade, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.upgrades[id])
	}
	return out
}

// ByCategory returns upgrades of one category sorted by cost
func (c *Catalog) ByCategory(cat Category) []*Upgrade {
	var out []*Upgrade
	for _, id := range c.order {
		if u := c.upgrades[id]; u.Category == cat {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cost < out[j].Cost })
	return out
}

// Len returns the number of upgrades
func (c *Catalog) Len() int {
	return len(c.order)
}

// DefaultCatalog returns the stock upgrade tree
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultUpgrades()...)
	if err != nil {
		panic(err)
	}
	return c
}

func scaleWeapon(id string, fn func(w *combat.WeaponType)) func(*Loadout) {
	return func(l *Loadout) {
		if l.Arsenal == nil {
			return
		}
		if w, ok := l.Arsenal.Get(id); ok {
			fn(w)
		}
	}
}

func onShip(fn func(s *entity.Spacecraft)) func(*Loadout) {
	return func(l *Loadout) {
		if l.Ship != nil {
			fn(l.Ship)
		}
	}
}

func defaultUpgrades() []*Upgrade {
	return []*Upgrade{
		{
			ID: "engine_thrust_1", Name: "Ion Thrusters", Category: CategoryEngine, Cost: 100,
			Apply: onShip(func(s *entity.Spacecraft) {
				s.Thrust *= 1.25
				s.StrafeThrust *= 1.25
			}),
		},
		{
			ID: "engine_thrust_2", Name: "Fusion Thrusters", Category: CategoryEngine, Cost: 250,
			Prerequisites: []string{"engine_thrust_1"},
			Apply: onShip(func(s *entity.Spacecraft) {
				s.Thrust *= 1.25
				s.MaxSpeed *= 1.15
			}),
		},
		{
			ID: "engine_maneuver_1", Name: "Vector Nozzles", Category: CategoryEngine, Cost: 150,
			Prerequisites: []string{"engine_thrust_1"},
			Apply: onShip(func(s *entity.Spacecraft) {
				s.TurnRate *= 1.3
			}),
		},
		{
			ID: "hull_plating_1", Name: "Reinforced Plating", Category: CategoryHull, Cost: 120,
			Apply: onShip(func(s *entity.Spacecraft) {
				s.MaxHealth += 25
				s.Repair(25)
			}),
		},
		{
			ID: "hull_plating_2", Name: "Composite Plating", Category: CategoryHull, Cost: 240,
			Prerequisites: []string{"hull_plating_1"},
			Apply: onShip(func(s *entity.Spacecraft) {
				s.MaxHealth += 50
				s.Repair(50)
			}),
		},
		{
			ID: "shield_capacitor_1", Name: "Shield Capacitor", Category: CategoryShield, Cost: 150,
			Apply: onShip(func(s *entity.Spacecraft) {
				s.MaxShield += 25
				s.ShieldRegen += 1
			}),
		},
		{
			ID: "shield_capacitor_2", Name: "Shield Matrix", Category: CategoryShield, Cost: 300,
			Prerequisites: []string{"shield_capacitor_1", "energy_cell_1"},
			Apply: onShip(func(s *entity.Spacecraft) {
				s.MaxShield += 50
				s.ShieldRegen += 2
			}),
		},
		{
			ID: "energy_cell_1", Name: "Energy Cell", Category: CategoryEnergy, Cost: 120,
			Apply: onShip(func(s *entity.Spacecraft) {
				arm := s.Armament()
				arm.MaxEnergy += 25
				arm.Energy += 25
			}),
		},
		{
			ID: "energy_recycler_1", Name: "Energy Recycler", Category: CategoryEnergy, Cost: 180,
			Prerequisites: []string{"energy_cell_1"},
			Apply: onShip(func(s *entity.Spacecraft) {
				s.Armament().RegenRate *= 1.5
			}),
		},
		{
			ID: "laser_focus_1", Name: "Focused Lens", Category: CategoryWeapon, Cost: 150,
			Apply: scaleWeapon("laser", func(w *combat.WeaponType) {
				w.Damage *= 1.5
			}),
		},
		{
			ID: "laser_rapid_1", Name: "Rapid Capacitors", Category: CategoryWeapon, Cost: 200,
			Prerequisites: []string{"laser_focus_1"},
			Apply: scaleWeapon("laser", func(w *combat.WeaponType) {
				w.Cooldown *= 0.75
			}),
		},
		{
			ID: "missile_efficiency_1", Name: "Compact Warheads", Category: CategoryWeapon, Cost: 200,
			Apply: scaleWeapon("missile", func(w *combat.WeaponType) {
				w.EnergyCost *= 0.7
			}),
		},
		{
			ID: "railgun_capacitor_1", Name: "Rail Capacitor", Category: CategoryWeapon, Cost: 300,
			Prerequisites: []string{"energy_cell_1"},
			Apply: scaleWeapon("railgun", func(w *combat.WeaponType) {
				w.Cooldown *= 0.8
				w.EnergyCost *= 0.85
			}),
		},
	}
}
