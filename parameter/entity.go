package parameter

// Hostile and neutral bodies
const (
	// AlienMass is the collision mass of a hostile fighter
	AlienMass = 6.0

	// AlienRadius is the fallback collision radius of a hostile fighter
	AlienRadius = 4.0

	// AlienStunDuration is seconds an EMP hit disables a hostile's engines and weapons
	AlienStunDuration = 2.0

	// AlienFireCone is the cosine of the half-angle within which hostiles open fire
	AlienFireCone = 0.95

	// SatelliteMass is the collision mass of an orbiting satellite
	SatelliteMass = 3.0

	// SatelliteRadius is the fallback collision radius of a satellite
	SatelliteRadius = 2.0

	// PlanetMass is nominal; planets are static and never integrated
	PlanetMass = 1e6
)
