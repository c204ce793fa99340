package parameter

// Level of detail
const (
	// LODUpdateInterval is seconds between tier recomputation passes
	LODUpdateInterval = 0.5

	// LODMaxDistance is the default distance beyond which entities are not drawn
	LODMaxDistance = 2000.0

	// LODHighRatio is the distance ratio at or below which entities render at full detail
	LODHighRatio = 0.15

	// LODMediumRatio is the upper distance ratio for medium detail
	LODMediumRatio = 0.35

	// LODLowRatio is the upper distance ratio for low detail
	LODLowRatio = 0.65

	// LODMinimalRatio is the upper distance ratio for minimal detail, beyond is none
	LODMinimalRatio = 1.0
)
