package geometry

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// planeExtent stands in for infinity in plane bounding boxes. A box with
// infinite corners turns into NaN under transform (0 * Inf), so a large
// finite extent is used instead.
const planeExtent = 1e6

// IntersectPlane tests a local-space ray against the infinite xz-plane at
// y=0. Rays parallel to the plane (or coplanar with it) miss.
func IntersectPlane(id core.ObjectID, ray core.Ray) []core.Intersection {
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}

	t := -ray.Origin.Y / ray.Direction.Y
	return []core.Intersection{core.NewIntersection(t, id)}
}

// PlaneNormal returns the constant local normal of the xz-plane
func PlaneNormal() core.Tuple {
	return core.NewVector(0, 1, 0)
}

// PlaneBounds returns the local bounding box of the plane
func PlaneBounds() AABB {
	return NewAABB(
		core.NewPoint(-planeExtent, 0, -planeExtent),
		core.NewPoint(planeExtent, 0, planeExtent),
	)
}
