package scene

import (
	"fmt"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// intersectGroup tests every child of a group against the local-space ray,
// but only after the ray passes the group's cached bounding box. Children's
// results are merged and sorted ascending by t.
func (a *Arena) intersectGroup(obj *Object, localRay core.Ray) []core.Intersection {
	if len(obj.Children) == 0 {
		return nil
	}
	if !a.compositeBounds(obj).Hit(localRay) {
		return nil
	}

	var xs []core.Intersection
	for _, child := range obj.Children {
		xs = append(xs, a.Intersect(child, localRay)...)
	}
	core.SortIntersections(xs)
	return xs
}

// intersectCSG gathers both children's intersections and keeps only the
// ones on the boundary of the combined solid. No box pruning here: both
// subtrees are always tested.
func (a *Arena) intersectCSG(obj *Object, localRay core.Ray) []core.Intersection {
	if obj.Left == obj.Right {
		panic(fmt.Sprintf("scene: CSG node %d has identical children", obj.ID))
	}

	xs := a.Intersect(obj.Left, localRay)
	xs = append(xs, a.Intersect(obj.Right, localRay)...)
	core.SortIntersections(xs)

	return a.filterIntersections(obj, xs)
}

// filterIntersections runs the left-to-right boundary sweep: at each
// intersection decide which subtree was hit, consult the operation's truth
// table, then toggle the matching inside flag
func (a *Arena) filterIntersections(obj *Object, xs []core.Intersection) []core.Intersection {
	insideLeft := false
	insideRight := false

	result := make([]core.Intersection, 0, len(xs))
	for _, x := range xs {
		hitLeft := a.Includes(obj.Left, x.Object)

		if IntersectionAllowed(obj.Operation, hitLeft, insideLeft, insideRight) {
			result = append(result, x)
		}

		if hitLeft {
			insideLeft = !insideLeft
		} else {
			insideRight = !insideRight
		}
	}
	return result
}

// IntersectionAllowed is the CSG visibility truth table: an intersection is
// kept exactly when crossing it changes membership in the combined solid
// for the given operation.
func IntersectionAllowed(op CSGOperation, hitLeft, insideLeft, insideRight bool) bool {
	switch op {
	case CSGUnion:
		return (hitLeft && !insideRight) || (!hitLeft && !insideLeft)
	case CSGIntersection:
		return (hitLeft && insideRight) || (!hitLeft && insideLeft)
	case CSGDifference:
		return (hitLeft && !insideRight) || (!hitLeft && insideLeft)
	default:
		panic(fmt.Sprintf("scene: unknown CSG operation %d", op))
	}
}
