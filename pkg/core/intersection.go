package core

import "sort"

// ObjectID is a stable integer handle into the scene arena. Identities are
// assigned once at insertion and never reused.
type ObjectID int

// NoObject marks an unset object reference (e.g. a root object's parent)
const NoObject ObjectID = -1

// Intersection records a ray/object crossing: the parametric distance t,
// the struck object, and barycentric (u, v) coordinates. U and V are
// meaningful only for triangle hits and zero otherwise.
type Intersection struct {
	T      float64
	Object ObjectID
	U, V   float64
}

// NewIntersection creates an intersection with zero barycentric coordinates
func NewIntersection(t float64, object ObjectID) Intersection {
	return Intersection{T: t, Object: object}
}

// NewIntersectionUV creates an intersection carrying barycentric coordinates
func NewIntersectionUV(t float64, object ObjectID, u, v float64) Intersection {
	return Intersection{T: t, Object: object, U: u, V: v}
}

// SortIntersections orders intersections ascending by t in place
func SortIntersections(xs []Intersection) {
	sort.Slice(xs, func(i, j int) bool { return xs[i].T < xs[j].T })
}

// Hit returns the intersection with the smallest non-negative t, or false
// if the ray hit nothing in front of its origin. The input must already be
// sorted ascending by t.
func Hit(xs []Intersection) (Intersection, bool) {
	for _, x := range xs {
		if x.T >= 0 {
			return x, true
		}
	}
	return Intersection{}, false
}
