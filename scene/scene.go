// Package scene defines the contract between the simulation core and whatever draws it
// The core only requests attach, detach, visibility, transform and detail changes
package scene

import "github.com/lixenwraith/starfall/vmath"

// Kind classifies a visual so the renderer can pick a representation
type Kind uint8

const (
	KindSpacecraft Kind = iota
	KindAlien
	KindPlanet
	KindSatellite
	KindProjectile
	KindExplosion
	KindImpact
)

func (k Kind) String() string {
	switch k {
	case KindSpacecraft:
		return "spacecraft"
	case KindAlien:
		return "alien"
	case KindPlanet:
		return "planet"
	case KindSatellite:
		return "satellite"
	case KindProjectile:
		return "projectile"
	case KindExplosion:
		return "explosion"
	case KindImpact:
		return "impact"
	default:
		return "unknown"
	}
}

// Visual is an opaque renderer-side id, zero means nothing attached
type Visual uint64

// Detail is a render fidelity level, 0 is full detail and DetailHidden is not drawn
type Detail uint8

const (
	DetailFull Detail = iota
	DetailMedium
	DetailLow
	DetailMinimal
	DetailHidden
)

// Scene is the render collaborator
type Scene interface {
	Attach(kind Kind, pos vmath.Vec3, size float64) Visual
	Detach(v Visual)
	SetVisible(v Visual, visible bool)
	SetTransform(v Visual, pos vmath.Vec3, scale, opacity float64)
	SetDetail(v Visual, level Detail)
}

type discard struct{}

// Discard is a Scene that draws nothing
var Discard Scene = discard{}

func (discard) Attach(Kind, vmath.Vec3, float64) Visual           { return 0 }
func (discard) Detach(Visual)                                      {}
func (discard) SetVisible(Visual, bool)                            {}
func (discard) SetTransform(Visual, vmath.Vec3, float64, float64) {}
func (discard) SetDetail(Visual, Detail)                           {}

// OrDiscard returns s, or Discard when s is nil
func OrDiscard(s Scene) Scene {
	if s == nil {
		return Discard
	}
	return s
}
