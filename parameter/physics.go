package parameter

// Collision response
const (
	// Restitution is the coefficient of restitution for body-body impulses (0 = inelastic, 1 = elastic)
	Restitution = 0.3

	// StaticBounceDamping scales a dynamic body's reflected velocity after hitting a static body
	StaticBounceDamping = 0.7

	// CollisionDamageThreshold is the relative speed (units/sec) above which collisions deal damage
	CollisionDamageThreshold = 20.0

	// CollisionDamageMultiplier converts relative collision speed into damage
	CollisionDamageMultiplier = 0.1
)

// Bodies
const (
	// DefaultMass is assigned to bodies created with non-positive mass
	DefaultMass = 1.0

	// DefaultCollisionRadius is the fallback sphere radius when no geometry is available
	DefaultCollisionRadius = 1.0
)

// Gravity
const (
	// MinGravityDistance clamps the inverse-square singularity near a planet center
	MinGravityDistance = 1.0
)

// Orbits
const (
	// SatelliteOrbitSpeed is the default angular speed of satellites (radians/sec)
	SatelliteOrbitSpeed = 0.2
)
