package lod

import (
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/scene"
)

// Tier is a level-of-detail state
type Tier uint8

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
	TierMinimal
	TierNone
)

var tierNames = [...]string{"high", "medium", "low", "minimal", "none"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return "unknown"
}

// Detail maps a tier to the scene detail level
func (t Tier) Detail() scene.Detail {
	switch t {
	case TierHigh:
		return scene.DetailFull
	case TierMedium:
		return scene.DetailMedium
	case TierLow:
		return scene.DetailLow
	case TierMinimal:
		return scene.DetailMinimal
	default:
		return scene.DetailHidden
	}
}

// Thresholds are upper bounds of d/maxDistance for high, medium, low and minimal
type Thresholds [4]float64

// DefaultThresholds returns the stock ratio table
func DefaultThresholds() Thresholds {
	return Thresholds{
		parameter.LODHighRatio,
		parameter.LODMediumRatio,
		parameter.LODLowRatio,
		parameter.LODMinimalRatio,
	}
}

// TierFor classifies distance d against maxDistance
// Non-positive maxDistance keeps everything at TierHigh
func TierFor(d, maxDistance float64, th Thresholds) Tier {
	if maxDistance <= 0 {
		return TierHigh
	}
	ratio := d / maxDistance
	for i, limit := range th {
		if ratio <= limit {
			return Tier(i)
		}
	}
	return TierNone
}
