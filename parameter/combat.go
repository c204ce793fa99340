package parameter

// Targeting
const (
	// MaxTargetingDistance is the radius within which hostiles enter the target list
	MaxTargetingDistance = 1000.0
)

// Effect pools
const (
	// ExplosionPoolSize is the number of pre-allocated explosion slots
	ExplosionPoolSize = 20

	// ImpactPoolSize is the number of pre-allocated impact slots
	ImpactPoolSize = 30

	// ExplosionLifetime is explosion duration in seconds
	ExplosionLifetime = 1.5

	// ImpactLifetime is impact flash duration in seconds
	ImpactLifetime = 0.3

	// ExplosionGrowth is the size multiplier reached at the end of an explosion
	ExplosionGrowth = 3.0

	// ImpactGrowth is the size multiplier reached at the end of an impact flash
	ImpactGrowth = 1.5

	// ExplosionMaxIntensity is the starting light intensity of an explosion
	ExplosionMaxIntensity = 5.0

	// ImpactMaxIntensity is the starting light intensity of an impact flash
	ImpactMaxIntensity = 2.0
)

// Energy
const (
	// PlayerMaxEnergy is the starting energy capacity of the player ship
	PlayerMaxEnergy = 100.0

	// PlayerEnergyRegen is player energy regained per second
	PlayerEnergyRegen = 10.0

	// AlienMaxEnergy is the energy capacity of hostile ships
	AlienMaxEnergy = 50.0

	// AlienEnergyRegen is hostile energy regained per second
	AlienEnergyRegen = 5.0
)

// Hit points
const (
	// PlayerMaxHealth is player hull points
	PlayerMaxHealth = 100.0

	// PlayerMaxShield is player shield points, absorbed before hull
	PlayerMaxShield = 50.0

	// PlayerShieldRegen is shield regained per second
	PlayerShieldRegen = 2.0

	// AlienMaxHealth is hostile hull points
	AlienMaxHealth = 40.0

	// SatelliteMaxHealth is satellite hull points
	SatelliteMaxHealth = 20.0
)

// Hostile behavior
const (
	// AlienEngageDistance is the range at which hostiles open fire
	AlienEngageDistance = 400.0

	// AlienCruiseSpeed is the speed hostiles approach the player at
	AlienCruiseSpeed = 40.0

	// AlienSteerRate is how fast hostiles turn toward the player (lerp factor per second)
	AlienSteerRate = 1.5

	// AlienWeapon is the weapon hostiles fire
	AlienWeapon = "plasma"
)
