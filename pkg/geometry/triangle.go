package geometry

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Triangle holds a triangle's vertices with precomputed edge vectors and a
// face normal. When Smooth is set, N1..N3 carry per-vertex normals that are
// interpolated at shading time using the hit's barycentric coordinates.
type Triangle struct {
	P1, P2, P3 core.Tuple
	E1, E2     core.Tuple // Precomputed edges P2-P1 and P3-P1
	Normal     core.Tuple // Face normal (flat shading)
	N1, N2, N3 core.Tuple // Vertex normals (smooth shading only)
	Smooth     bool
}

// NewTriangle creates a flat-shaded triangle from three vertices
func NewTriangle(p1, p2, p3 core.Tuple) Triangle {
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)
	return Triangle{
		P1: p1, P2: p2, P3: p3,
		E1: e1, E2: e2,
		Normal: e2.Cross(e1).Normalize(),
	}
}

// NewSmoothTriangle creates a triangle with per-vertex normals
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tuple) Triangle {
	t := NewTriangle(p1, p2, p3)
	t.N1, t.N2, t.N3 = n1, n2, n3
	t.Smooth = true
	return t
}

// Intersect tests a local-space ray against the triangle using the
// Möller–Trumbore algorithm. The returned intersection carries the
// barycentric (u, v) of the hit.
func (t Triangle) Intersect(id core.ObjectID, ray core.Ray) []core.Intersection {
	dirCrossE2 := ray.Direction.Cross(t.E2)
	det := t.E1.Dot(dirCrossE2)

	// Near-zero determinant means the ray is parallel to the triangle plane
	if math.Abs(det) < core.Epsilon {
		return nil
	}

	f := 1.0 / det
	p1ToOrigin := ray.Origin.Subtract(t.P1)
	u := f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return nil
	}

	originCrossE1 := p1ToOrigin.Cross(t.E1)
	v := f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return nil
	}

	tHit := f * t.E2.Dot(originCrossE1)
	return []core.Intersection{core.NewIntersectionUV(tHit, id, u, v)}
}

// NormalAt returns the local normal, interpolating the vertex normals for
// smooth triangles: n = n2*u + n3*v + n1*(1-u-v)
func (t Triangle) NormalAt(hit core.Intersection) core.Tuple {
	if !t.Smooth {
		return t.Normal
	}
	return t.N2.Multiply(hit.U).
		Add(t.N3.Multiply(hit.V)).
		Add(t.N1.Multiply(1 - hit.U - hit.V))
}

// Bounds returns the local bounding box of the triangle
func (t Triangle) Bounds() AABB {
	return EmptyAABB().AddPoint(t.P1).AddPoint(t.P2).AddPoint(t.P3)
}
