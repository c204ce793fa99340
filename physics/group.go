package physics

import "strings"

// CollisionGroup is a bitmask of interaction channels
// Two bodies may collide only if their groups share at least one bit
type CollisionGroup uint8

const (
	GroupSpacecraft CollisionGroup = 1 << iota
	GroupAlien
	GroupPlanet
	GroupSatellite
	GroupProjectile

	GroupNone CollisionGroup = 0
	GroupAll  CollisionGroup = GroupSpacecraft | GroupAlien | GroupPlanet | GroupSatellite | GroupProjectile
)

// Default group masks per entity category
// Ship masks carry each other's bits, so under the group rule alone either projectile mask
// reaches both the player and the aliens. The faction check in checkProjectile, which skips
// bodies whose Hostile flag matches the shot's, is what keeps fire off its own side.
const (
	// MaskSpacecraft lets the player ship bump into everything solid
	MaskSpacecraft = GroupSpacecraft | GroupAlien | GroupPlanet | GroupSatellite
	// MaskAlien lets hostiles bump into the player and planets
	MaskAlien = GroupAlien | GroupSpacecraft | GroupPlanet
	// MaskPlanet collides with every non-projectile body and absorbs all projectiles
	MaskPlanet = GroupPlanet | GroupSpacecraft | GroupAlien | GroupSatellite | GroupProjectile
	// MaskSatellite collides with ships and planets
	MaskSatellite = GroupSatellite | GroupSpacecraft | GroupPlanet
	// MaskPlayerProjectile carries the alien and satellite channels
	MaskPlayerProjectile = GroupProjectile | GroupAlien | GroupSatellite
	// MaskHostileProjectile carries the spacecraft and satellite channels
	MaskHostileProjectile = GroupProjectile | GroupSpacecraft | GroupSatellite
)

// CanCollide reports whether two groups interact
func CanCollide(a, b CollisionGroup) bool {
	return a&b != 0
}

// Has reports whether all bits of flag are set
func (g CollisionGroup) Has(flag CollisionGroup) bool {
	return g&flag == flag
}

// ProjectileGroupFor returns the projectile mask for a firer
func ProjectileGroupFor(hostile bool) CollisionGroup {
	if hostile {
		return MaskHostileProjectile
	}
	return MaskPlayerProjectile
}

func (g CollisionGroup) String() string {
	if g == GroupNone {
		return "none"
	}
	names := make([]string, 0, 5)
	for _, e := range []struct {
		bit  CollisionGroup
		name string
	}{
		{GroupSpacecraft, "spacecraft"},
		{GroupAlien, "alien"},
		{GroupPlanet, "planet"},
		{GroupSatellite, "satellite"},
		{GroupProjectile, "projectile"},
	} {
		if g&e.bit != 0 {
			names = append(names, e.name)
		}
	}
	return strings.Join(names, "|")
}
