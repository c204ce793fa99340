package vmath

import "math"

// Shape distinguishes the two supported bounding volumes
type Shape uint8

const (
	ShapeBox Shape = iota
	ShapeSphere
)

// Bounds is a world-space axis-aligned box or sphere
// Box uses Min/Max, sphere uses Center/Radius
type Bounds struct {
	Shape  Shape
	Min    Vec3
	Max    Vec3
	Center Vec3
	Radius float64
}

// NewBox creates a box from corner points in any order
func NewBox(a, b Vec3) Bounds {
	return Bounds{
		Shape: ShapeBox,
		Min:   Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])},
		Max:   Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])},
	}
}

// BoxFromCenter creates a box from its center and half extents
func BoxFromCenter(center, half Vec3) Bounds {
	return NewBox(center.Sub(half), center.Add(half))
}

func NewSphere(center Vec3, radius float64) Bounds {
	return Bounds{Shape: ShapeSphere, Center: center, Radius: math.Abs(radius)}
}

// Centroid returns the geometric center
func (b Bounds) Centroid() Vec3 {
	if b.Shape == ShapeSphere {
		return b.Center
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfExtents returns half the size along each axis
func (b Bounds) HalfExtents() Vec3 {
	if b.Shape == ShapeSphere {
		return Vec3{b.Radius, b.Radius, b.Radius}
	}
	return b.Max.Sub(b.Min).Mul(0.5)
}

// BoundingSphere returns the smallest sphere centered on the centroid enclosing the volume
func (b Bounds) BoundingSphere() (Vec3, float64) {
	if b.Shape == ShapeSphere {
		return b.Center, b.Radius
	}
	return b.Centroid(), b.HalfExtents().Len()
}

// Box returns the axis-aligned box enclosing the volume
func (b Bounds) Box() Bounds {
	if b.Shape == ShapeBox {
		return b
	}
	r := Vec3{b.Radius, b.Radius, b.Radius}
	return Bounds{Shape: ShapeBox, Min: b.Center.Sub(r), Max: b.Center.Add(r)}
}

// Union returns the box enclosing both volumes
func (b Bounds) Union(o Bounds) Bounds {
	bb, ob := b.Box(), o.Box()
	return Bounds{
		Shape: ShapeBox,
		Min:   Vec3{math.Min(bb.Min[0], ob.Min[0]), math.Min(bb.Min[1], ob.Min[1]), math.Min(bb.Min[2], ob.Min[2])},
		Max:   Vec3{math.Max(bb.Max[0], ob.Max[0]), math.Max(bb.Max[1], ob.Max[1]), math.Max(bb.Max[2], ob.Max[2])},
	}
}

// Translate offsets the volume by d
func (b Bounds) Translate(d Vec3) Bounds {
	if b.Shape == ShapeSphere {
		b.Center = b.Center.Add(d)
		return b
	}
	b.Min = b.Min.Add(d)
	b.Max = b.Max.Add(d)
	return b
}

// Scale multiplies the volume size around the origin of its local frame
func (b Bounds) Scale(s float64) Bounds {
	if b.Shape == ShapeSphere {
		b.Center = b.Center.Mul(s)
		b.Radius *= math.Abs(s)
		return b
	}
	return NewBox(b.Min.Mul(s), b.Max.Mul(s))
}

// Intersects tests overlap between any combination of box and sphere, touching counts
func (b Bounds) Intersects(o Bounds) bool {
	switch {
	case b.Shape == ShapeBox && o.Shape == ShapeBox:
		return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
			b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1] &&
			b.Min[2] <= o.Max[2] && b.Max[2] >= o.Min[2]
	case b.Shape == ShapeSphere && o.Shape == ShapeSphere:
		return SpheresOverlap(b.Center, b.Radius, o.Center, o.Radius)
	case b.Shape == ShapeBox:
		return boxSphere(b, o)
	default:
		return boxSphere(o, b)
	}
}

// ProjectedHalfExtent is the support distance of the volume along unit normal n
func (b Bounds) ProjectedHalfExtent(n Vec3) float64 {
	if b.Shape == ShapeSphere {
		return b.Radius
	}
	h := b.HalfExtents()
	return math.Abs(h[0]*n[0]) + math.Abs(h[1]*n[1]) + math.Abs(h[2]*n[2])
}

// SpheresOverlap reports whether two spheres touch or overlap
func SpheresOverlap(c1 Vec3, r1 float64, c2 Vec3, r2 float64) bool {
	sum := r1 + r2
	return DistanceSq(c1, c2) <= sum*sum
}

func boxSphere(box, sphere Bounds) bool {
	var distSq float64
	for i := 0; i < 3; i++ {
		c := sphere.Center[i]
		if c < box.Min[i] {
			d := box.Min[i] - c
			distSq += d * d
		} else if c > box.Max[i] {
			d := c - box.Max[i]
			distSq += d * d
		}
	}
	return distSq <= sphere.Radius*sphere.Radius
}
