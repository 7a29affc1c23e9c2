package geometry

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// AABB represents an axis-aligned bounding box in some object's local space
type AABB struct {
	Min core.Tuple // Minimum corner
	Max core.Tuple // Maximum corner
}

// NewAABB creates a new AABB from min and max corner points
func NewAABB(min, max core.Tuple) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a box that contains nothing; adding any point or box to
// it yields that point or box
func EmptyAABB() AABB {
	return AABB{
		Min: core.NewPoint(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: core.NewPoint(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// AddPoint grows the box to include the given point
func (b AABB) AddPoint(p core.Tuple) AABB {
	return AABB{
		Min: core.NewPoint(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)),
		Max: core.NewPoint(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)),
	}
}

// Union returns a box that bounds both this box and another
func (b AABB) Union(other AABB) AABB {
	return b.AddPoint(other.Min).AddPoint(other.Max)
}

// Transform maps all 8 corners of the box through the matrix and returns the
// axis-aligned box enclosing them. A tight bound does not commute with
// rotation, so this is required before merging a child's box into its
// parent's space.
func (b AABB) Transform(m core.Matrix) AABB {
	corners := [8]core.Tuple{
		core.NewPoint(b.Min.X, b.Min.Y, b.Min.Z),
		core.NewPoint(b.Min.X, b.Min.Y, b.Max.Z),
		core.NewPoint(b.Min.X, b.Max.Y, b.Min.Z),
		core.NewPoint(b.Min.X, b.Max.Y, b.Max.Z),
		core.NewPoint(b.Max.X, b.Min.Y, b.Min.Z),
		core.NewPoint(b.Max.X, b.Min.Y, b.Max.Z),
		core.NewPoint(b.Max.X, b.Max.Y, b.Min.Z),
		core.NewPoint(b.Max.X, b.Max.Y, b.Max.Z),
	}

	result := EmptyAABB()
	for _, corner := range corners {
		result = result.AddPoint(m.MultiplyTuple(corner))
	}
	return result
}

// Hit tests if a ray intersects the box using the slab method
func (b AABB) Hit(ray core.Ray) bool {
	xtMin, xtMax := checkAxis(ray.Origin.X, ray.Direction.X, b.Min.X, b.Max.X)
	ytMin, ytMax := checkAxis(ray.Origin.Y, ray.Direction.Y, b.Min.Y, b.Max.Y)
	ztMin, ztMax := checkAxis(ray.Origin.Z, ray.Direction.Z, b.Min.Z, b.Max.Z)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))

	return tMin <= tMax
}

// checkAxis computes the entry/exit distances for one slab. Near-zero
// direction components produce signed infinities rather than NaN.
func checkAxis(origin, direction, minVal, maxVal float64) (float64, float64) {
	tMinNumerator := minVal - origin
	tMaxNumerator := maxVal - origin

	var tMin, tMax float64
	if math.Abs(direction) >= core.Epsilon {
		tMin = tMinNumerator / direction
		tMax = tMaxNumerator / direction
	} else {
		tMin = tMinNumerator * math.Inf(1)
		tMax = tMaxNumerator * math.Inf(1)
	}

	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

// ContainsPoint reports whether the point lies inside the box
func (b AABB) ContainsPoint(p core.Tuple) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBox reports whether the other box lies entirely inside this one
func (b AABB) ContainsBox(other AABB) bool {
	return b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}
