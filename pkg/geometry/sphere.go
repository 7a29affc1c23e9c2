package geometry

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// IntersectSphere tests a local-space ray against the unit sphere at the
// origin. A miss is an empty slice, never an error.
func IntersectSphere(id core.ObjectID, ray core.Ray) []core.Intersection {
	// Vector from the sphere center to the ray origin
	sphereToRay := ray.Origin.Subtract(core.NewPoint(0, 0, 0))

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	return []core.Intersection{
		core.NewIntersection(t1, id),
		core.NewIntersection(t2, id),
	}
}

// SphereNormal returns the local normal at a point on the unit sphere
func SphereNormal(point core.Tuple) core.Tuple {
	return point.Subtract(core.NewPoint(0, 0, 0))
}

// SphereBounds returns the local bounding box of the unit sphere
func SphereBounds() AABB {
	return NewAABB(core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1))
}
