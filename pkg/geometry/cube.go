package geometry

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// IntersectCube tests a local-space ray against the unit cube [-1,1]³ using
// the same slab method as AABB.Hit, but returning both crossing distances.
func IntersectCube(id core.ObjectID, ray core.Ray) []core.Intersection {
	xtMin, xtMax := checkAxis(ray.Origin.X, ray.Direction.X, -1, 1)
	ytMin, ytMax := checkAxis(ray.Origin.Y, ray.Direction.Y, -1, 1)
	ztMin, ztMax := checkAxis(ray.Origin.Z, ray.Direction.Z, -1, 1)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))

	if tMin > tMax {
		return nil
	}

	return []core.Intersection{
		core.NewIntersection(tMin, id),
		core.NewIntersection(tMax, id),
	}
}

// CubeNormal returns the local normal of the face containing the point,
// picked by the component with the largest magnitude
func CubeNormal(point core.Tuple) core.Tuple {
	absX := math.Abs(point.X)
	absY := math.Abs(point.Y)
	absZ := math.Abs(point.Z)
	maxC := math.Max(absX, math.Max(absY, absZ))

	switch maxC {
	case absX:
		return core.NewVector(point.X, 0, 0)
	case absY:
		return core.NewVector(0, point.Y, 0)
	default:
		return core.NewVector(0, 0, point.Z)
	}
}

// CubeBounds returns the local bounding box of the unit cube
func CubeBounds() AABB {
	return NewAABB(core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1))
}
