package geometry

import (
	"sort"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Torus holds the parameters of a torus lying in the xz-plane around the
// y axis. The major radius is fixed at 1; only the minor (tube) radius
// varies.
type Torus struct {
	MinorRadius float64
}

// NewTorus creates a torus with the given tube radius
func NewTorus(minorRadius float64) Torus {
	return Torus{MinorRadius: minorRadius}
}

// Intersect tests a local-space ray against the torus. The implicit torus
// equation reduces to a quartic in t; every real root is a candidate
// intersection, returned sorted ascending.
func (tor Torus) Intersect(id core.ObjectID, ray core.Ray) []core.Intersection {
	o, d := ray.Origin, ray.Direction

	// Major radius R = 1
	const rSqMajor = 1.0
	rSqMinor := tor.MinorRadius * tor.MinorRadius

	dDotD := d.X*d.X + d.Y*d.Y + d.Z*d.Z
	oDotD := o.X*d.X + o.Y*d.Y + o.Z*d.Z
	oDotO := o.X*o.X + o.Y*o.Y + o.Z*o.Z

	// (x²+y²+z² + R² - r²)² = 4R²(x²+z²) expanded along o + t*d
	k := oDotO - rSqMinor - rSqMajor
	c4 := dDotD * dDotD
	c3 := 4 * dDotD * oDotD
	c2 := 2*dDotD*k + 4*oDotD*oDotD + 4*rSqMajor*d.Y*d.Y
	c1 := 4*k*oDotD + 8*rSqMajor*o.Y*d.Y
	c0 := k*k - 4*rSqMajor*(rSqMinor-o.Y*o.Y)

	roots := solveQuartic(c4, c3, c2, c1, c0)
	if len(roots) == 0 {
		return nil
	}
	sort.Float64s(roots)

	xs := make([]core.Intersection, 0, len(roots))
	for _, t := range roots {
		xs = append(xs, core.NewIntersection(t, id))
	}
	return xs
}

// NormalAt returns the local normal via the gradient of the implicit torus
// equation
func (tor Torus) NormalAt(point core.Tuple) core.Tuple {
	const rSqMajor = 1.0
	rSqMinor := tor.MinorRadius * tor.MinorRadius

	g := point.X*point.X + point.Y*point.Y + point.Z*point.Z + rSqMajor - rSqMinor
	return core.NewVector(
		point.X*(g-2*rSqMajor),
		point.Y*g,
		point.Z*(g-2*rSqMajor),
	).Normalize()
}

// Bounds returns the local bounding box of the torus
func (tor Torus) Bounds() AABB {
	r := 1 + tor.MinorRadius
	return NewAABB(
		core.NewPoint(-r, -tor.MinorRadius, -r),
		core.NewPoint(r, tor.MinorRadius, r),
	)
}
