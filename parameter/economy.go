package parameter

// Credits
const (
	// StartingCredits is the balance of a new ledger
	StartingCredits = 0

	// AlienBounty is credited when the player destroys a hostile ship
	AlienBounty = 50

	// SatelliteBounty is credited when the player destroys a satellite
	SatelliteBounty = 20
)
