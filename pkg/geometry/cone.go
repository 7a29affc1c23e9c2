package geometry

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Cone holds the parameters of a double-napped unit cone around the y axis,
// with apex at the origin, truncated to (Min, Max) and optionally capped.
// The cap radius equals the cap's |y| height.
type Cone struct {
	Min    float64
	Max    float64
	Closed bool
}

// NewCone creates an infinite open double cone
func NewCone() Cone {
	return Cone{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Intersect tests a local-space ray against the cone walls and caps
func (c Cone) Intersect(id core.ObjectID, ray core.Ray) []core.Intersection {
	var xs []core.Intersection

	o, d := ray.Origin, ray.Direction
	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	switch {
	case math.Abs(a) < core.Epsilon && math.Abs(b) < core.Epsilon:
		// Ray misses both nappes entirely
	case math.Abs(a) < core.Epsilon:
		// Quadratic degenerates to linear: the ray is parallel to one nappe
		// and crosses the other exactly once
		t := -cc / (2 * b)
		y := o.Y + t*d.Y
		if c.Min < y && y < c.Max {
			xs = append(xs, core.NewIntersection(t, id))
		}
	default:
		discriminant := b*b - 4*a*cc
		// Grazing rays can round to just below zero
		if discriminant < 0 && discriminant > -1e-12 {
			discriminant = 0
		}
		if discriminant < 0 {
			return nil
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		y0 := o.Y + t0*d.Y
		if c.Min < y0 && y0 < c.Max {
			xs = append(xs, core.NewIntersection(t0, id))
		}
		y1 := o.Y + t1*d.Y
		if c.Min < y1 && y1 < c.Max {
			xs = append(xs, core.NewIntersection(t1, id))
		}
	}

	return c.intersectCaps(id, ray, xs)
}

// intersectCaps adds hits on the end caps; a cone cap's radius scales with
// its height off the apex
func (c Cone) intersectCaps(id core.ObjectID, ray core.Ray, xs []core.Intersection) []core.Intersection {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	t := (c.Min - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, math.Abs(c.Min)) {
		xs = append(xs, core.NewIntersection(t, id))
	}

	t = (c.Max - ray.Origin.Y) / ray.Direction.Y
	if checkCap(ray, t, math.Abs(c.Max)) {
		xs = append(xs, core.NewIntersection(t, id))
	}
	return xs
}

// NormalAt returns the local normal for a point on the cone
func (c Cone) NormalAt(point core.Tuple) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if dist < point.Y*point.Y && point.Y >= c.Max-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if dist < point.Y*point.Y && point.Y <= c.Min+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.NewVector(point.X, y, point.Z)
}

// Bounds returns the local bounding box of the cone
func (c Cone) Bounds() AABB {
	minY := math.Max(c.Min, -planeExtent)
	maxY := math.Min(c.Max, planeExtent)
	r := math.Min(math.Max(math.Abs(minY), math.Abs(maxY)), planeExtent)
	return NewAABB(core.NewPoint(-r, minY, -r), core.NewPoint(r, maxY, r))
}
