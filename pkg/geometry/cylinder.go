package geometry

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Cylinder holds the parameters of a unit-radius cylinder around the y axis,
// truncated to the open interval (Min, Max) and optionally capped.
type Cylinder struct {
	Min    float64
	Max    float64
	Closed bool
}

// NewCylinder creates an infinite open cylinder
func NewCylinder() Cylinder {
	return Cylinder{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Intersect tests a local-space ray against the cylinder walls and caps
func (c Cylinder) Intersect(id core.ObjectID, ray core.Ray) []core.Intersection {
	var xs []core.Intersection

	// Quadratic in the xz-plane: at² + bt + cc = 0
	a := ray.Direction.X*ray.Direction.X + ray.Direction.Z*ray.Direction.Z

	if math.Abs(a) >= core.Epsilon {
		b := 2*ray.Origin.X*ray.Direction.X + 2*ray.Origin.Z*ray.Direction.Z
		cc := ray.Origin.X*ray.Origin.X + ray.Origin.Z*ray.Origin.Z - 1

		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return nil
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		// Wall hits count only between the truncation planes
		y0 := ray.Origin.Y + t0*ray.Direction.Y
		if c.Min < y0 && y0 < c.Max {
			xs = append(xs, core.NewIntersection(t0, id))
		}
		y1 := ray.Origin.Y + t1*ray.Direction.Y
		if c.Min < y1 && y1 < c.Max {
			xs = append(xs, core.NewIntersection(t1, id))
		}
	}

	return c.intersectCaps(id, ray, xs)
}

// intersectCaps adds hits on the end caps when the cylinder is closed
func (c Cylinder) intersectCaps(id core.ObjectID, ray core.Ray, xs []core.Intersection) []core.Intersection {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	// Lower cap at y = Min
	t := (c.Min - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, 1) {
		xs = append(xs, core.NewIntersection(t, id))
	}

	// Upper cap at y = Max
	t = (c.Max - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, 1) {
		xs = append(xs, core.NewIntersection(t, id))
	}
	return xs
}

// checkCap reports whether the ray at parameter t falls within the disk of
// the given radius around the y axis
func checkCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius
}

// NormalAt returns the local normal for a point on the cylinder
func (c Cylinder) NormalAt(point core.Tuple) core.Tuple {
	// Square of the distance from the y axis
	dist := point.X*point.X + point.Z*point.Z

	if dist < 1 && point.Y >= c.Max-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if dist < 1 && point.Y <= c.Min+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}
	return core.NewVector(point.X, 0, point.Z)
}

// Bounds returns the local bounding box of the cylinder
func (c Cylinder) Bounds() AABB {
	minY := math.Max(c.Min, -planeExtent)
	maxY := math.Min(c.Max, planeExtent)
	return NewAABB(core.NewPoint(-1, minY, -1), core.NewPoint(1, maxY, 1))
}
