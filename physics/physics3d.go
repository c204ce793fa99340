package physics

import (
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/vmath"
)

// GravitationalAccel3D returns the acceleration on a body at pos toward center
// factor is the attractor's gravity factor, accel = factor / d²
// Distance is clamped to MinGravityDistance to avoid the singularity
func GravitationalAccel3D(pos, center vmath.Vec3, factor float64) vmath.Vec3 {
	delta := center.Sub(pos)
	dist := delta.Len()
	if dist == 0 {
		return vmath.Vec3{}
	}

	d := dist
	if d < parameter.MinGravityDistance {
		d = parameter.MinGravityDistance
	}
	accelMag := factor / (d * d)

	return delta.Mul(accelMag / dist)
}

// ElasticImpulse3D applies an impulse along normal n (pointing from A to B)
// Relative velocity is vB - vA; a positive component along n means separating
// Returns the impulse magnitude, zero when bodies separate or masses are degenerate
func ElasticImpulse3D(velA, velB *vmath.Vec3, n vmath.Vec3, massA, massB, restitution float64) float64 {
	relVel := velB.Sub(*velA)
	vn := relVel.Dot(n)
	if vn > 0 {
		return 0
	}

	invA := inverseMass(massA)
	invB := inverseMass(massB)
	invSum := invA + invB
	if invSum == 0 {
		return 0
	}

	j := -(1 + restitution) * vn / invSum

	*velA = velA.Sub(n.Mul(j * invA))
	*velB = velB.Add(n.Mul(j * invB))

	return j
}

// SeparateOverlap3D pushes two overlapping bodies apart along n by depth
// Each body moves in proportion to its inverse mass
func SeparateOverlap3D(posA, posB *vmath.Vec3, n vmath.Vec3, depth, massA, massB float64) bool {
	if depth <= 0 {
		return false
	}

	invA := inverseMass(massA)
	invB := inverseMass(massB)
	invSum := invA + invB
	if invSum == 0 {
		return false
	}

	*posA = posA.Sub(n.Mul(depth * invA / invSum))
	*posB = posB.Add(n.Mul(depth * invB / invSum))

	return true
}

// ReflectDamped mirrors v about the plane with normal n and scales it by damping
func ReflectDamped(v, n vmath.Vec3, damping float64) vmath.Vec3 {
	return vmath.Reflect(v, n).Mul(damping)
}

func inverseMass(m float64) float64 {
	if m <= 0 {
		return 0
	}
	return 1 / m
}
