package parameter

// Player ship handling
const (
	// PlayerThrust is forward acceleration at full throttle (units/sec²)
	PlayerThrust = 60.0

	// PlayerStrafeThrust is lateral acceleration at full input (units/sec²)
	PlayerStrafeThrust = 30.0

	// PlayerTurnRate is rotation speed at full input (radians/sec)
	PlayerTurnRate = 2.0

	// PlayerMaxSpeed caps player speed (units/sec)
	PlayerMaxSpeed = 150.0

	// PlayerMass is the player ship mass
	PlayerMass = 10.0

	// PlayerRadius is the player collision radius
	PlayerRadius = 5.0
)
