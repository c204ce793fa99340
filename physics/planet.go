package physics

import "github.com/lixenwraith/starfall/vmath"

// Planet is a gravity source
// Bodies within GravityRadius accelerate toward Position at GravityFactor / d²
type Planet struct {
	Position      vmath.Vec3
	GravityRadius float64
	GravityFactor float64
}

// Affects reports whether pos lies within the gravity well
func (p *Planet) Affects(pos vmath.Vec3) bool {
	return vmath.DistanceSq(p.Position, pos) <= p.GravityRadius*p.GravityRadius
}
