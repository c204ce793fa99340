package entity

import (
	"github.com/lixenwraith/starfall/lod"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/vmath"
)

// PlanetBody is a static solid planet with a gravity well
// The body handles collisions, Well is registered as the gravity source
type PlanetBody struct {
	physics.Body
	Well *physics.Planet

	scene  scene.Scene
	visual scene.Visual
}

// NewPlanet creates a planet of the given surface radius
func NewPlanet(pos vmath.Vec3, radius, gravityRadius, gravityFactor float64, s scene.Scene) *PlanetBody {
	body := physics.NewBody(pos, physics.MaskPlanet)
	body.Static = true
	body.Mass = parameter.PlanetMass
	body.Radius = radius

	p := &PlanetBody{
		Body: body,
		Well: &physics.Planet{
			Position:      pos,
			GravityRadius: gravityRadius,
			GravityFactor: gravityFactor,
		},
		scene: scene.OrDiscard(s),
	}
	p.visual = p.scene.Attach(scene.KindPlanet, pos, radius)
	return p
}

func (p *PlanetBody) Visual() scene.Visual    { return p.visual }
func (p *PlanetBody) LODPosition() vmath.Vec3 { return p.Position }
func (p *PlanetBody) SetDetail(t lod.Tier)    { p.scene.SetDetail(p.visual, t.Detail()) }

func (p *PlanetBody) Dispose() {
	p.scene.Detach(p.visual)
	p.visual = 0
}
